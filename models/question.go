package models

import (
	"errors"
	"strings"
)

var ErrEmptyQuestion = errors.New("question text is empty")

type Question struct {
	Text      string `json:"question"`
	Grade     string `json:"grade"`
	Course    string `json:"course"`
	SessionID string `json:"session_id,omitempty"`
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuestion
	}
	return nil
}

type ErrorKind string

const (
	ErrorKindOK             ErrorKind = "OK"
	ErrorKindCourseMismatch ErrorKind = "COURSE_MISMATCH"
)

// ValidationResult is the outcome of comparing the declared course with the
// classifier's label.
type ValidationResult struct {
	Valid          bool        `json:"valid"`
	DeclaredCourse string      `json:"declared_course"`
	DetectedCourse CourseLabel `json:"detected_course"`
	ErrorKind      ErrorKind   `json:"error_kind"`
}

// SynthOutput carries exactly one of a rejection message or an agent
// instruction.
type SynthOutput struct {
	Rejection   string `json:"rejection,omitempty"`
	Instruction string `json:"instruction,omitempty"`
}

func (s SynthOutput) IsRejection() bool {
	return s.Rejection != ""
}

// AgentResponse is the final answer of a subject agent.
type AgentResponse struct {
	Explanation string `json:"explanation" jsonschema:"required,description=Clear pedagogical explanation of the topic"`
	Example     string `json:"example" jsonschema:"required,description=A worked example or exercise illustrating the explanation"`
}

type AskRequest struct {
	Question  string `json:"question"`
	Grade     string `json:"grade"`
	Course    string `json:"course"`
	SessionID string `json:"session_id,omitempty"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}
