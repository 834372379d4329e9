package class_dto

import "time"

type ClassResponse struct {
	ClassID   string    `json:"class_id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type MemberSummary struct {
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
}

type ListMembersResponse struct {
	ClassID string          `json:"class_id"`
	Members []MemberSummary `json:"members"`
}

type JoinSessionResponse struct {
	ClassID   string    `json:"class_id"`
	RoomID    string    `json:"room_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
