package quiz_dto

import "time"

type QuizResponse struct {
	QuizID     string  `json:"quiz_id"`
	ClassID    string  `json:"class_id"`
	Title      string  `json:"title"`
	TotalScore float64 `json:"total_score"`
	Questions  int     `json:"questions"`
}

type AttemptResponse struct {
	QuizID       string    `json:"quiz_id"`
	StudentID    string    `json:"student_id"`
	Answers      []int     `json:"answers"`
	CorrectCount int       `json:"correct_count"`
	Score        float64   `json:"score"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

type ListAttemptsResponse struct {
	QuizID   string            `json:"quiz_id"`
	Attempts []AttemptResponse `json:"attempts"`
}
