package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/junova144/Eva/db"
	"github.com/junova144/Eva/models"
	"github.com/junova144/Eva/services"
	"github.com/junova144/Eva/services/agent"
	"github.com/junova144/Eva/services/llm/llmtest"
	"github.com/junova144/Eva/services/orchestrator"
	"github.com/junova144/Eva/services/search"
	"github.com/junova144/Eva/services/validator"

	"github.com/gorilla/mux"
)

type fixedClassifier models.CourseLabel

func (c fixedClassifier) Classify(context.Context, string) (models.CourseLabel, error) {
	return models.CourseLabel(c), nil
}

func newRouter(t *testing.T, sessions *services.SessionService, steps ...llmtest.Step) *mux.Router {
	t.Helper()

	model := llmtest.NewScriptedModel(steps...)
	registry := agent.NewRegistry(model, search.NoopSearcher{})
	service := orchestrator.NewService(validator.NewPipeline(fixedClassifier(models.CourseMath)), registry, sessions)

	router := mux.NewRouter()
	NewAskHandler(service).RegisterRoutes(router)
	NewSessionHandler(sessions).RegisterRoutes(router)
	return router
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedAnswer string
		expectedError  string
	}{
		{
			name:           "valid question",
			body:           `{"question":"¿Cuánto es 2+2?","grade":"1° Secundaria","course":"Matemática"}`,
			expectedStatus: http.StatusOK,
			expectedAnswer: "✅ **Specialist answer (Matemática):**",
		},
		{
			name:           "course mismatch",
			body:           `{"question":"¿Cuánto es 2+2?","course":"Inglés"}`,
			expectedStatus: http.StatusOK,
			expectedAnswer: "⚠️ **Validator warning:**",
		},
		{
			name:           "invalid json",
			body:           `{"question":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid JSON payload",
		},
		{
			name:           "missing question",
			body:           `{"question":"  ","course":"Matemática"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "A question is required",
		},
		{
			name:           "missing course",
			body:           `{"question":"¿Cuánto es 2+2?"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "A course is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := services.NewSessionService(db.NewInMemorySessionRepository())
			router := newRouter(t, sessions, llmtest.Step{Content: `{"explanation":"2+2=4","example":"3+3=6"}`})

			req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("status = %d, expected %d (%s)", rec.Code, tt.expectedStatus, rec.Body.String())
			}

			if tt.expectedError != "" {
				var body map[string]string
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode error body: %v", err)
				}
				if body["error"] != tt.expectedError {
					t.Errorf("error = %q, expected %q", body["error"], tt.expectedError)
				}
				return
			}

			var resp models.AskResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if !strings.HasPrefix(resp.Answer, tt.expectedAnswer) {
				t.Errorf("answer = %q, expected prefix %q", resp.Answer, tt.expectedAnswer)
			}
		})
	}
}

func TestListCourses(t *testing.T) {
	router := newRouter(t, services.NewSessionService(db.NewInMemorySessionRepository()))

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	var catalog models.CatalogResponse
	if err := json.NewDecoder(rec.Body).Decode(&catalog); err != nil {
		t.Fatalf("failed to decode catalog: %v", err)
	}
	if len(catalog.Courses) != 5 || len(catalog.Grades) != 5 {
		t.Errorf("catalog has %d courses and %d grades, expected 5 and 5", len(catalog.Courses), len(catalog.Grades))
	}
	if len(catalog.Entries) != 25 {
		t.Errorf("catalog has %d entries, expected 25", len(catalog.Entries))
	}
}

func TestDeleteSession(t *testing.T) {
	sessions := services.NewSessionService(db.NewInMemorySessionRepository())
	if err := sessions.RecordTurn("abc", models.CourseMath, "instruction", "answer", nil); err != nil {
		t.Fatalf("RecordTurn() unexpected error: %v", err)
	}
	router := newRouter(t, sessions)

	req := httptest.NewRequest(http.MethodDelete, "/sessions/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, expected 204", rec.Code)
	}
	if history, _ := sessions.History("abc", models.CourseMath); len(history) != 0 {
		t.Errorf("session still has %d messages", len(history))
	}
}

func TestGetSession(t *testing.T) {
	sessions := services.NewSessionService(db.NewInMemorySessionRepository())
	results := []models.ToolResult{{Name: "solve_problem", Output: "x = 2"}}
	if err := sessions.RecordTurn("abc", models.CourseMath, "instruction", "answer", results); err != nil {
		t.Fatalf("RecordTurn() unexpected error: %v", err)
	}
	router := newRouter(t, sessions)

	tests := []struct {
		name           string
		sessionID      string
		expectedStatus int
		expectedCount  int
	}{
		{name: "stored session", sessionID: "abc", expectedStatus: http.StatusOK, expectedCount: 2},
		{name: "unknown session", sessionID: "missing", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/sessions/"+tt.sessionID, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("status = %d, expected %d", rec.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var session models.Session
			if err := json.NewDecoder(rec.Body).Decode(&session); err != nil {
				t.Fatalf("failed to decode session: %v", err)
			}
			if session.Course != models.CourseMath || len(session.Messages) != tt.expectedCount {
				t.Fatalf("session = %+v, expected %d math messages", session, tt.expectedCount)
			}
			if got := session.Messages[1].ToolResults; len(got) != 1 || got[0].Output != "x = 2" {
				t.Errorf("tool results = %+v, expected the solve_problem output", got)
			}
		})
	}
}
