package class_dto

type CreateClassRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type AddMemberRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	Role        string `json:"role" validate:"required,oneof=teacher student"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
}
