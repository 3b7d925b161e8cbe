package entity

import "time"

type MessageType string

const (
	MessageText   MessageType = "text"
	MessageSystem MessageType = "system"
)

// Message is one chat message inside a collaboration. System messages are
// written by the negotiation flow itself (respond, terms updates) so the chat
// timeline reflects the negotiation history.
type Message struct {
	ID              string      `json:"id"`
	CollaborationID string      `json:"collaboration_id"`
	SenderID        string      `json:"sender_id,omitempty"`
	Content         string      `json:"content"`
	MessageType     MessageType `json:"message_type"`
	CreatedAt       time.Time   `json:"created_at"`
}

// ConversationSummary is the per-user projection of one non-pending
// collaboration joined with its chat state. Derived, never stored.
type ConversationSummary struct {
	CollaborationID     string     `json:"collaboration_id"`
	CollaborationStatus Status     `json:"collaboration_status"`
	PartnerName         string     `json:"partner_name"`
	PartnerAvatar       string     `json:"partner_avatar,omitempty"`
	MyRole              Party      `json:"my_role"`
	LastMessage         string     `json:"last_message,omitempty"`
	LastMessageAt       *time.Time `json:"last_message_at,omitempty"`
	UnreadCount         int        `json:"unread_count"`
}
