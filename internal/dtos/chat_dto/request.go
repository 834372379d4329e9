package chat_dto

import (
	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostMessageRequest struct {
	Type    string            `json:"type" validate:"required,oneof=text image file"`
	Content string            `json:"content" validate:"omitempty,max=4000"`
	Media   []entity.MediaRef `json:"media" validate:"omitempty,dive"`
}

type ListMessagesRequest struct {
	Limit    int     `json:"limit" validate:"omitempty,min=1,max=100"`
	BeforeID *string `json:"before_id,omitempty"` // cursor pagination
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

func ObjectIDValidator(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
