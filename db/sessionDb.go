package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/junova144/Eva/models"

	_ "github.com/lib/pq"
)

type SessionRepository interface {
	GetMessages(sessionID string, course models.CourseLabel) ([]models.AgentMessage, error)
	GetSession(sessionID string) (*models.Session, error)
	AppendMessages(sessionID string, course models.CourseLabel, messages []models.AgentMessage) error
	DeleteSession(sessionID string) error
}

const sessionSchema = `
	CREATE SCHEMA IF NOT EXISTS eva;
	CREATE TABLE IF NOT EXISTS eva.session_messages (
		id         BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		course     TEXT NOT NULL,
		message    JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS session_messages_session_idx ON eva.session_messages (session_id, id);`

type PostgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(databaseURL string) (*PostgresSessionRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(sessionSchema); err != nil {
		return nil, fmt.Errorf("failed to create session schema: %w", err)
	}

	return &PostgresSessionRepository{db: db}, nil
}

func (r *PostgresSessionRepository) GetMessages(sessionID string, course models.CourseLabel) ([]models.AgentMessage, error) {
	query := `
		SELECT message
		FROM eva.session_messages
		WHERE session_id = $1 AND course = $2
		ORDER BY id`

	rows, err := r.db.Query(query, sessionID, string(course))
	if err != nil {
		return nil, fmt.Errorf("failed to query session messages: %w", err)
	}
	defer rows.Close()

	var messages []models.AgentMessage
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan session message: %w", err)
		}
		var msg models.AgentMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session messages: %w", err)
	}

	return messages, nil
}

func (r *PostgresSessionRepository) GetSession(sessionID string) (*models.Session, error) {
	query := `
		SELECT course, message, created_at
		FROM eva.session_messages
		WHERE session_id = $1
		ORDER BY id`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	defer rows.Close()

	session := &models.Session{ID: sessionID}
	for rows.Next() {
		var (
			course    string
			raw       []byte
			createdAt time.Time
		)
		if err := rows.Scan(&course, &raw, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan session message: %w", err)
		}
		var msg models.AgentMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session message: %w", err)
		}
		if len(session.Messages) == 0 {
			session.CreatedAt = createdAt
		}
		session.Course = models.CourseLabel(course)
		session.UpdatedAt = createdAt
		session.Messages = append(session.Messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session messages: %w", err)
	}
	if len(session.Messages) == 0 {
		return nil, models.ErrSessionNotFound
	}

	return session, nil
}

func (r *PostgresSessionRepository) AppendMessages(sessionID string, course models.CourseLabel, messages []models.AgentMessage) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO eva.session_messages (session_id, course, message)
		VALUES ($1, $2, $3)`

	for _, msg := range messages {
		raw, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal session message: %w", err)
		}
		if _, err := tx.Exec(query, sessionID, string(course), raw); err != nil {
			return fmt.Errorf("failed to insert session message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session messages: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) DeleteSession(sessionID string) error {
	query := `DELETE FROM eva.session_messages WHERE session_id = $1`

	if _, err := r.db.Exec(query, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) Close() error {
	return r.db.Close()
}

type storedMessage struct {
	course    models.CourseLabel
	message   models.AgentMessage
	createdAt time.Time
}

// InMemorySessionRepository keeps histories for the process lifetime.
type InMemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string][]storedMessage
	now      func() time.Time
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		sessions: make(map[string][]storedMessage),
		now:      time.Now,
	}
}

func (r *InMemorySessionRepository) GetMessages(sessionID string, course models.CourseLabel) ([]models.AgentMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var messages []models.AgentMessage
	for _, stored := range r.sessions[sessionID] {
		if stored.course == course {
			messages = append(messages, stored.message)
		}
	}
	return messages, nil
}

func (r *InMemorySessionRepository) GetSession(sessionID string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.sessions[sessionID]
	if len(stored) == 0 {
		return nil, models.ErrSessionNotFound
	}

	last := stored[len(stored)-1]
	session := &models.Session{
		ID:        sessionID,
		Course:    last.course,
		CreatedAt: stored[0].createdAt,
		UpdatedAt: last.createdAt,
	}
	for _, m := range stored {
		session.Messages = append(session.Messages, m.message)
	}
	return session, nil
}

func (r *InMemorySessionRepository) AppendMessages(sessionID string, course models.CourseLabel, messages []models.AgentMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := r.now()
	for _, msg := range messages {
		r.sessions[sessionID] = append(r.sessions[sessionID], storedMessage{course: course, message: msg, createdAt: at})
	}
	return nil
}

func (r *InMemorySessionRepository) DeleteSession(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}
