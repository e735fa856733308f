package models

import (
	"errors"
	"testing"
)

func TestNormalizeCourse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercase", input: "Matemática", expected: "matematica"},
		{name: "extra whitespace", input: "  Ciencia   y  Tecnología ", expected: "ciencia y tecnologia"},
		{name: "trailing period", input: "Inglés.", expected: "ingles"},
		{name: "already normal", input: "comunicacion", expected: "comunicacion"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCourse(tt.input); got != tt.expected {
				t.Errorf("NormalizeCourse(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseCourse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected CourseLabel
		wantErr  bool
	}{
		{name: "exact label", input: "Matemática", expected: CourseMath},
		{name: "case and accents", input: "EDUCACION PARA EL TRABAJO", expected: CourseWork},
		{name: "period and spaces", input: " inglés. ", expected: CourseEnglish},
		{name: "unknown", input: "Historia", wantErr: true},
		{name: "empty", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCourse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownCourse) {
					t.Errorf("ParseCourse(%q) error = %v, expected ErrUnknownCourse", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCourse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseCourse(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCatalogCoversEveryGradeAndCourse(t *testing.T) {
	entries := Catalog()
	if len(entries) != len(AllGrades())*len(AllCourses()) {
		t.Fatalf("Catalog() returned %d entries, expected %d", len(entries), len(AllGrades())*len(AllCourses()))
	}
	for _, e := range entries {
		if e.Description == "" {
			t.Errorf("missing description for %s / %s", e.Grade, e.Course)
		}
	}
}

func TestQuestionValidate(t *testing.T) {
	if err := (Question{Text: "  \n "}).Validate(); !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("Validate() on blank text = %v, expected ErrEmptyQuestion", err)
	}
	if err := (Question{Text: "¿Qué es una fracción?"}).Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}
