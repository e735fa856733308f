package pinecone

import (
	"testing"

	"github.com/junova144/Eva/models"
)

func TestVectorID(t *testing.T) {
	tests := []struct {
		name     string
		entry    models.CourseInfo
		expected string
	}{
		{
			name:     "accented course",
			entry:    models.CourseInfo{Grade: models.GradeFirst, Course: models.CourseMath},
			expected: "course_1_secundaria_matematica",
		},
		{
			name:     "multi word course",
			entry:    models.CourseInfo{Grade: models.GradeFifth, Course: models.CourseWork},
			expected: "course_5_secundaria_educacion_para_el_trabajo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VectorID(tt.entry); got != tt.expected {
				t.Errorf("VectorID() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestVectorIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range models.Catalog() {
		id := VectorID(e)
		if seen[id] {
			t.Errorf("duplicate vector id %q", id)
		}
		seen[id] = true
	}
}

func TestFormatChunk(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		expected string
	}{
		{
			name:     "full metadata",
			metadata: map[string]any{"course": "Inglés", "grade": "3° Secundaria", "description": "Pasado simple."},
			expected: "Course: Inglés (3° Secundaria)\nSyllabus: Pasado simple.",
		},
		{
			name:     "no grade",
			metadata: map[string]any{"course": "Matemática"},
			expected: "Course: Matemática",
		},
		{
			name:     "empty",
			metadata: map[string]any{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatChunk(tt.metadata); got != tt.expected {
				t.Errorf("formatChunk() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
