package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Class doubles as the conversation scope: one class, one message thread.
type Class struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedBy string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type ClassMember struct {
	ID          int64  `gorm:"primaryKey"`
	ClassID     string `gorm:"not null;uniqueIndex:idx_class_member"`
	UserID      string `gorm:"not null;uniqueIndex:idx_class_member"`
	Role        string `gorm:"not null"` // teacher | student
	DisplayName string
	JoinedAt    time.Time `gorm:"autoCreateTime"`
}
