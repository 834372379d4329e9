package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageType string

const (
	MessageText    MessageType = "text"
	MessageImage   MessageType = "image"
	MessageFile    MessageType = "file"
	MessageDeleted MessageType = "deleted"
)

// ValidPostType reports whether t can be posted directly. The deleted type
// only ever comes out of a soft delete.
func ValidPostType(t MessageType) bool {
	return t == MessageText || t == MessageImage || t == MessageFile
}

type MediaRef struct {
	Kind string `bson:"kind" json:"kind"`
	URL  string `bson:"url" json:"url"`
}

type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ClassID    string             `bson:"class_id"`
	SenderID   string             `bson:"sender_id"`
	SenderRole string             `bson:"sender_role"`
	Type       MessageType        `bson:"type"`
	Content    string             `bson:"content,omitempty"`
	Media      []MediaRef         `bson:"media,omitempty"`
	IsDeleted  bool               `bson:"is_deleted"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
	EditedAt   *time.Time         `bson:"edited_at,omitempty"`
	DeletedAt  *time.Time         `bson:"deleted_at,omitempty"`
}
