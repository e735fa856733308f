package models

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// AgentMessage is one stored entry of a session history.
type AgentMessage struct {
	Role        string       `json:"role"`
	Content     string       `json:"content"`
	ToolCalls   []ToolCall   `json:"tool_calls,omitempty"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

// ToolCall records a tool the agent used while producing an answer.
type ToolCall struct {
	Name string `json:"name"`
}

type ToolResult struct {
	Name   string `json:"name"`
	Output string `json:"output"`
}

// Session is a stored conversation. Course is the course of the latest turn.
type Session struct {
	ID        string         `json:"id"`
	Course    CourseLabel    `json:"course"`
	Messages  []AgentMessage `json:"messages"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
