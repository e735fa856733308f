package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/junova144/Eva/db"
	"github.com/junova144/Eva/models"

	"github.com/samber/lo"
)

type SessionService struct {
	repo db.SessionRepository
}

func NewSessionService(repo db.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

// History returns the turns a session held with one course's agent. Turns
// answered by other agents are left out.
func (s *SessionService) History(sessionID string, course models.CourseLabel) ([]models.AgentMessage, error) {
	log.Printf("[INFO] Loading %s history for session %s", course, sessionID)

	messages, err := s.repo.GetMessages(sessionID, course)
	if err != nil {
		log.Printf("[ERROR] Failed to load session history: %v", err)
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}

	log.Printf("[INFO] Loaded %d messages for session %s", len(messages), sessionID)
	return messages, nil
}

func (s *SessionService) Get(sessionID string) (*models.Session, error) {
	session, err := s.repo.GetSession(sessionID)
	if err != nil {
		if !errors.Is(err, models.ErrSessionNotFound) {
			log.Printf("[ERROR] Failed to load session %s: %v", sessionID, err)
		}
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	return session, nil
}

// RecordTurn stores one completed exchange: the instruction and the final
// answer, with the output of every tool used to produce it.
func (s *SessionService) RecordTurn(sessionID string, course models.CourseLabel, instruction, answer string, results []models.ToolResult) error {
	assistant := models.AgentMessage{
		Role:        "assistant",
		Content:     strings.TrimSpace(answer),
		ToolResults: results,
	}
	if len(results) > 0 {
		assistant.ToolCalls = lo.Map(results, func(r models.ToolResult, _ int) models.ToolCall {
			return models.ToolCall{Name: r.Name}
		})
	}

	messages := []models.AgentMessage{
		{Role: "user", Content: strings.TrimSpace(instruction)},
		assistant,
	}

	if err := s.repo.AppendMessages(sessionID, course, messages); err != nil {
		log.Printf("[ERROR] Failed to record session turn: %v", err)
		return fmt.Errorf("failed to record session turn: %w", err)
	}

	log.Printf("[INFO] Recorded turn for session %s", sessionID)
	return nil
}

func (s *SessionService) Reset(sessionID string) error {
	log.Printf("[INFO] Resetting session %s", sessionID)

	if err := s.repo.DeleteSession(sessionID); err != nil {
		log.Printf("[ERROR] Failed to reset session: %v", err)
		return fmt.Errorf("failed to reset session: %w", err)
	}
	return nil
}
