// Package domain holds the shared value types of the chatbot core.
package domain

import (
	"time"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Turn is one message in a user's conversation history. Turns are
// immutable once created; ordering is insertion order.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// AgentReply is a human operator's reply queued for delivery to a user.
type AgentReply struct {
	Text      string    `json:"reply"`
	Agent     string    `json:"from"`
	Timestamp time.Time `json:"ts"`
}
