package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ErrUnknownCourse = errors.New("unknown course")

// CourseLabel is one of the closed set of subjects the assistant can route to.
type CourseLabel string

const (
	CourseMath          CourseLabel = "Matemática"
	CourseCommunication CourseLabel = "Comunicación"
	CourseScience       CourseLabel = "Ciencia y Tecnología"
	CourseWork          CourseLabel = "Educación para el Trabajo"
	CourseEnglish       CourseLabel = "Inglés"
)

var allCourses = []CourseLabel{
	CourseMath,
	CourseCommunication,
	CourseScience,
	CourseWork,
	CourseEnglish,
}

func AllCourses() []CourseLabel {
	return append([]CourseLabel(nil), allCourses...)
}

func (c CourseLabel) String() string {
	return string(c)
}

func (c CourseLabel) IsValid() bool {
	return lo.Contains(allCourses, c)
}

// NormalizeCourse returns the comparison key for a course name: lowercase,
// periods dropped, whitespace collapsed, diacritics removed.
func NormalizeCourse(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Join(strings.Fields(s), " ")
	return foldAccents(s)
}

func ParseCourse(s string) (CourseLabel, error) {
	key := NormalizeCourse(s)
	if key == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnknownCourse)
	}

	course, ok := lo.Find(allCourses, func(c CourseLabel) bool {
		return NormalizeCourse(string(c)) == key
	})
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCourse, s)
	}
	return course, nil
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
