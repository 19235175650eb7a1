package message

import (
	"time"

	"github.com/google/uuid"
)

// MessageStatus tracks how far the team has taken a contact message.
type MessageStatus string

const (
	StatusUnread  MessageStatus = "unread"
	StatusRead    MessageStatus = "read"
	StatusReplied MessageStatus = "replied"
)

// Message is a contact-form submission from the storefront.
type Message struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    MessageStatus `json:"status"`
	Reply     string        `json:"reply,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// SubmitMessageRequest is the public contact-form payload.
type SubmitMessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}
