package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/junova144/Eva/models"
	"github.com/junova144/Eva/services"
	"github.com/junova144/Eva/services/agent"
	"github.com/junova144/Eva/services/validator"
	"github.com/junova144/Eva/tracing"

	"github.com/google/uuid"
)

type Service struct {
	pipeline *validator.Pipeline
	registry *agent.Registry
	sessions *services.SessionService
}

func NewService(pipeline *validator.Pipeline, registry *agent.Registry, sessions *services.SessionService) *Service {
	return &Service{
		pipeline: pipeline,
		registry: registry,
		sessions: sessions,
	}
}

// Process answers one question and always returns a display string; every
// failure is rendered as a message instead of an error. A question without a
// session id gets a one-off id and leaves nothing in the session store.
func (s *Service) Process(ctx context.Context, q models.Question) string {
	ctx, span := tracing.Start(ctx, "orchestrator.process")
	defer tracing.End(span, nil)

	sessionID := q.SessionID
	persistent := sessionID != ""
	if !persistent {
		sessionID = uuid.NewString()
	}

	result, synth, err := s.pipeline.Run(ctx, q)
	if err != nil {
		if errors.Is(err, models.ErrEmptyQuestion) {
			return "⚠️ **Validator warning:** please write a question before sending it."
		}
		log.Printf("[ERROR] Validation pipeline failed: %v", err)
		return fmt.Sprintf("❌ **Classification error:** %v", err)
	}

	if synth.IsRejection() {
		return fmt.Sprintf("⚠️ **Validator warning:**\n\n%s", synth.Rejection)
	}

	course := result.DetectedCourse
	subjectAgent, err := s.registry.Get(course)
	if err != nil {
		log.Printf("[ERROR] Routing failed: %v", err)
		return fmt.Sprintf("❓ **Routing error:** no agent configured for '%s'.", course)
	}

	var history []models.AgentMessage
	if persistent {
		if history, err = s.sessions.History(sessionID, course); err != nil {
			log.Printf("[WARN] Continuing without session history: %v", err)
			history = nil
		}
	}

	resp, trace, err := subjectAgent.Run(ctx, agent.Turn{
		SessionID:   sessionID,
		History:     history,
		Instruction: synth.Instruction,
	})
	if err != nil {
		return fmt.Sprintf("❌ **Agent error (%s):** %v", course, err)
	}
	log.Printf("[INFO] Agent %s used %d tools in %d iterations", subjectAgent.Name(), len(trace.ToolCalls), trace.Iterations)

	if strings.TrimSpace(resp.Explanation) == "" && strings.TrimSpace(resp.Example) == "" {
		return fmt.Sprintf("⚠️ The %s agent returned no useful content.", course)
	}

	answer := FormatAnswer(course, resp)
	if persistent {
		if err := s.sessions.RecordTurn(sessionID, course, synth.Instruction, answerBody(resp), trace.ToolResults); err != nil {
			log.Printf("[WARN] Answer not stored in session %s: %v", sessionID, err)
		}
	}
	return answer
}

// FormatAnswer renders a successful agent answer. Empty sections are omitted.
func FormatAnswer(course models.CourseLabel, resp models.AgentResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ **Specialist answer (%s):**\n\n", course)
	b.WriteString(answerBody(resp))
	return strings.TrimRight(b.String(), "\n")
}

func answerBody(resp models.AgentResponse) string {
	var b strings.Builder
	if explanation := strings.TrimSpace(resp.Explanation); explanation != "" {
		fmt.Fprintf(&b, "🧩 **Explanation:**\n%s\n\n", explanation)
	}
	if example := strings.TrimSpace(resp.Example); example != "" {
		fmt.Fprintf(&b, "✏️ **Example:**\n%s", example)
	}
	return strings.TrimRight(b.String(), "\n")
}
