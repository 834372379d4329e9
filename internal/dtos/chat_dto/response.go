package chat_dto

import (
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
)

type MessageResponse struct {
	MessageID  string            `json:"message_id"`
	ClassID    string            `json:"class_id"`
	SenderID   string            `json:"sender_id"`
	SenderRole string            `json:"sender_role"`
	Type       string            `json:"type"`
	Content    string            `json:"content,omitempty"`
	Media      []entity.MediaRef `json:"media,omitempty"`
	IsDeleted  bool              `json:"is_deleted"`
	CreatedAt  time.Time         `json:"created_at"`
	EditedAt   *time.Time        `json:"edited_at,omitempty"`
	DeletedAt  *time.Time        `json:"deleted_at,omitempty"`
}

type ListMessagesResponse struct {
	Messages   []MessageResponse `json:"messages"`
	NextCursor *string           `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
}
