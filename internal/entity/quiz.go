package entity

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID         uuid.UUID `gorm:"primaryKey"`
	ClassID    string    `gorm:"not null;index"`
	Title      string    `gorm:"not null"`
	TotalScore float64   `gorm:"not null;default:100"`
	CreatedBy  string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;references:ID"`
}

type QuizQuestion struct {
	ID           int64    `gorm:"primaryKey"`
	QuizID       string   `gorm:"not null;index"`
	Content      string   `gorm:"not null"`
	Options      []string `gorm:"serializer:json;not null"`
	CorrectIndex int      `gorm:"not null"`
	Points       float64  `gorm:"not null;default:1"`
	Position     int      `gorm:"not null"`
}

// QuizAttempt is immutable once created. The composite unique index is the
// storage-level invariant: at most one attempt per (quiz, student), also
// under concurrent submissions.
type QuizAttempt struct {
	ID           int64     `gorm:"primaryKey"`
	QuizID       string    `gorm:"not null;uniqueIndex:idx_quiz_student"`
	StudentID    string    `gorm:"not null;uniqueIndex:idx_quiz_student"`
	Answers      []int     `gorm:"serializer:json;not null"`
	CorrectCount int       `gorm:"not null"`
	Score        float64   `gorm:"not null"`
	SubmittedAt  time.Time `gorm:"autoCreateTime"`
}
