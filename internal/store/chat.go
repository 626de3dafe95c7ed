package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// ChatMessage is one persisted conversation turn.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transcript roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// LoadChatHistory reads the persisted transcript. A missing or unreadable
// file yields an empty history; the transcript is a convenience, not a
// source of truth.
func LoadChatHistory(dir string) []ChatMessage {
	data, err := os.ReadFile(ChatHistoryPath(dir))
	if err != nil {
		return nil
	}
	var history []ChatMessage
	if json.Unmarshal(data, &history) != nil {
		return nil
	}
	return history
}

// SaveChatHistory persists the transcript with the same atomic write
// discipline as the task file.
func SaveChatHistory(dir string, history []ChatMessage) error {
	if history == nil {
		history = []ChatMessage{}
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("encode chat history: %w", err)
	}
	return atomicWrite(ChatHistoryPath(dir), data)
}

// TaskContext serializes the full task collection to the opaque context
// blob the assistant gateway receives.
func (s *Store) TaskContext() string {
	data, err := json.MarshalIndent(s.Tasks, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
