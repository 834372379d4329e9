package quiz_dto

type QuestionPayload struct {
	Content      string   `json:"content" validate:"required,min=1"`
	Options      []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectIndex int      `json:"correct_index" validate:"gte=0"`
	Points       float64  `json:"points" validate:"omitempty,gte=0"`
	Order        int      `json:"order" validate:"gte=0"`
}

type CreateQuizRequest struct {
	Title      string            `json:"title" validate:"required,min=1,max=200"`
	TotalScore float64           `json:"total_score" validate:"omitempty,gt=0"`
	Questions  []QuestionPayload `json:"questions" validate:"required,min=1,dive"`
}

type UpdateQuestionsRequest struct {
	Questions []QuestionPayload `json:"questions" validate:"required,min=1,dive"`
}

type SubmitAttemptRequest struct {
	// one selected option index per question, in question order
	Answers []int `json:"answers" validate:"required,min=1,dive,gte=0"`
}
