package types

import (
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
)

// Event types published to the real-time transport, scoped per class.
const (
	EventMessagePosted  = "message_posted"
	EventMessageEdited  = "message_edited"
	EventMessageDeleted = "message_deleted"
	EventMemberJoined   = "member_joined"
	EventMemberLeft     = "member_left"
)

type MessageEventPayload struct {
	MessageID  string            `json:"message_id"`
	ClassID    string            `json:"class_id"`
	SenderID   string            `json:"sender_id"`
	SenderRole string            `json:"sender_role"`
	Type       string            `json:"type"`
	Content    string            `json:"content,omitempty"`
	Media      []entity.MediaRef `json:"media,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	EditedAt   *time.Time        `json:"edited_at,omitempty"`
	DeletedAt  *time.Time        `json:"deleted_at,omitempty"`
}

type MemberEventPayload struct {
	ClassID     string    `json:"class_id"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type ClassInvitePayload struct {
	ClassID   string `json:"class_id"`
	ClassName string `json:"class_name"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
}
