package validator

import (
	"fmt"

	"github.com/junova144/Eva/models"
)

// Check compares the declared course with the detected one, ignoring case,
// whitespace, periods and accents.
func Check(declared string, detected models.CourseLabel) models.ValidationResult {
	valid := models.NormalizeCourse(declared) == models.NormalizeCourse(detected.String())

	result := models.ValidationResult{
		Valid:          valid,
		DeclaredCourse: declared,
		DetectedCourse: detected,
		ErrorKind:      models.ErrorKindOK,
	}
	if !valid {
		result.ErrorKind = models.ErrorKindCourseMismatch
	}
	return result
}

// Synthesize turns a validation result into either a rejection for the user
// or the instruction handed to the subject agent. Never both.
func Synthesize(result models.ValidationResult, q models.Question) models.SynthOutput {
	if !result.Valid {
		return models.SynthOutput{
			Rejection: fmt.Sprintf(REJECTION_TEMPLATE, result.DeclaredCourse, result.DetectedCourse, result.DeclaredCourse),
		}
	}

	grade := q.Grade
	if grade == "" {
		grade = "unspecified"
	}
	return models.SynthOutput{
		Instruction: fmt.Sprintf(INSTRUCTION_TEMPLATE, q.Text, result.DetectedCourse, grade),
	}
}
