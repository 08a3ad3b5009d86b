package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageChannel represents the communication channel
type MessageChannel string

const (
	ChannelWeb       MessageChannel = "web"
	ChannelWebSocket MessageChannel = "websocket"
)

// Message is one stored conversation turn.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MessageID   string             `bson:"message_id" json:"message_id"`
	SessionID   string             `bson:"session_id" json:"session_id"`
	UserMessage string             `bson:"user_message" json:"user_message"`
	BotResponse string             `bson:"bot_response" json:"bot_response"`
	Intent      IntentType         `bson:"intent" json:"intent"`
	State       ConversationState  `bson:"state" json:"state"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	UserID      string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Channel     MessageChannel     `bson:"channel,omitempty" json:"channel,omitempty"`
}

// ChatRequest is an inbound chat turn.
type ChatRequest struct {
	Message   string         `json:"message" binding:"required"`
	SessionID string         `json:"session_id,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
	Channel   MessageChannel `json:"channel,omitempty"`

	// Profile, when present, pre-seeds the conversation from a known
	// patient record. It is read-only and never mutated by the core.
	Profile *PatientProfile `json:"profile,omitempty"`
}

// Action is a client-side follow-up the frontend can render.
type Action struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// ChatResponse is the reply for one processed turn.
type ChatResponse struct {
	Response       string            `json:"response"`
	Intent         IntentType        `json:"intent"`
	State          ConversationState `json:"state"`
	SessionID      string            `json:"session_id"`
	MessageID      string            `json:"message_id"`
	Action         *Action           `json:"action,omitempty"`
	BackendRequest *BackendRequest   `json:"backend_request,omitempty"`
}

// SessionRecord persists a conversation context between turns.
type SessionRecord struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SessionID    string              `bson:"session_id" json:"session_id"`
	UserID       string              `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Channel      MessageChannel      `bson:"channel,omitempty" json:"channel,omitempty"`
	Context      ConversationContext `bson:"context" json:"context"`
	LastActivity time.Time           `bson:"last_activity" json:"last_activity"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	ExpiresAt    time.Time           `bson:"expires_at" json:"expires_at"`
}
