package services

import (
	"errors"
	"testing"

	"github.com/junova144/Eva/db"
	"github.com/junova144/Eva/models"
)

func TestSessionServiceKeepsSessionsApart(t *testing.T) {
	service := NewSessionService(db.NewInMemorySessionRepository())

	if err := service.RecordTurn("alice", models.CourseMath, " ¿2+2? ", "4\n", nil); err != nil {
		t.Fatalf("RecordTurn() unexpected error: %v", err)
	}
	results := []models.ToolResult{{Name: "solve_problem", Output: "3+3=6"}}
	if err := service.RecordTurn("bob", models.CourseMath, "¿3+3?", "6", results); err != nil {
		t.Fatalf("RecordTurn() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		session  string
		expected []models.AgentMessage
	}{
		{
			name:    "first session",
			session: "alice",
			expected: []models.AgentMessage{
				{Role: "user", Content: "¿2+2?"},
				{Role: "assistant", Content: "4"},
			},
		},
		{
			name:    "second session",
			session: "bob",
			expected: []models.AgentMessage{
				{Role: "user", Content: "¿3+3?"},
				{Role: "assistant", Content: "6"},
			},
		},
		{name: "unknown session", session: "carol", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history, err := service.History(tt.session, models.CourseMath)
			if err != nil {
				t.Fatalf("History() unexpected error: %v", err)
			}
			if len(history) != len(tt.expected) {
				t.Fatalf("History() returned %d messages, expected %d", len(history), len(tt.expected))
			}
			for i := range history {
				if history[i].Role != tt.expected[i].Role || history[i].Content != tt.expected[i].Content {
					t.Errorf("message %d = %+v, expected %+v", i, history[i], tt.expected[i])
				}
			}
		})
	}

	if err := service.Reset("alice"); err != nil {
		t.Fatalf("Reset() unexpected error: %v", err)
	}
	if history, _ := service.History("alice", models.CourseMath); len(history) != 0 {
		t.Errorf("History() after Reset returned %d messages", len(history))
	}
	history, _ := service.History("bob", models.CourseMath)
	if len(history) != 2 {
		t.Fatalf("Reset() affected another session")
	}
	if len(history[1].ToolCalls) != 1 || history[1].ToolCalls[0].Name != "solve_problem" {
		t.Errorf("assistant message tools = %+v, expected solve_problem", history[1].ToolCalls)
	}
	if len(history[1].ToolResults) != 1 || history[1].ToolResults[0].Output != "3+3=6" {
		t.Errorf("assistant message tool results = %+v, expected the solve_problem output", history[1].ToolResults)
	}
}

func TestSessionServiceHistoryByCourse(t *testing.T) {
	service := NewSessionService(db.NewInMemorySessionRepository())

	if err := service.RecordTurn("alice", models.CourseMath, "¿2+2?", "4", nil); err != nil {
		t.Fatalf("RecordTurn() unexpected error: %v", err)
	}
	if err := service.RecordTurn("alice", models.CourseEnglish, "past of go", "went", nil); err != nil {
		t.Fatalf("RecordTurn() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		course   models.CourseLabel
		expected []string
	}{
		{name: "math turns", course: models.CourseMath, expected: []string{"¿2+2?", "4"}},
		{name: "english turns", course: models.CourseEnglish, expected: []string{"past of go", "went"}},
		{name: "no science turns", course: models.CourseScience, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history, err := service.History("alice", tt.course)
			if err != nil {
				t.Fatalf("History() unexpected error: %v", err)
			}
			if len(history) != len(tt.expected) {
				t.Fatalf("History() returned %d messages, expected %d", len(history), len(tt.expected))
			}
			for i, content := range tt.expected {
				if history[i].Content != content {
					t.Errorf("message %d = %q, expected %q", i, history[i].Content, content)
				}
			}
		})
	}
}

func TestSessionServiceGet(t *testing.T) {
	service := NewSessionService(db.NewInMemorySessionRepository())

	if err := service.RecordTurn("alice", models.CourseMath, "¿2+2?", "4", nil); err != nil {
		t.Fatalf("RecordTurn() unexpected error: %v", err)
	}
	if err := service.RecordTurn("alice", models.CourseEnglish, "past of go", "went", nil); err != nil {
		t.Fatalf("RecordTurn() unexpected error: %v", err)
	}

	session, err := service.Get("alice")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if session.ID != "alice" {
		t.Errorf("session.ID = %q, expected alice", session.ID)
	}
	if session.Course != models.CourseEnglish {
		t.Errorf("session.Course = %q, expected the latest course %q", session.Course, models.CourseEnglish)
	}
	if len(session.Messages) != 4 {
		t.Errorf("session has %d messages, expected 4", len(session.Messages))
	}
	if session.CreatedAt.IsZero() || session.UpdatedAt.Before(session.CreatedAt) {
		t.Errorf("session timestamps = %v / %v", session.CreatedAt, session.UpdatedAt)
	}

	if _, err := service.Get("nobody"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("Get() error = %v, expected ErrSessionNotFound", err)
	}
}
