package class_service

import (
	"context"

	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/class_dto"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
)

type ClassServiceContract interface {
	CreateClass(ctx context.Context, req class_dto.CreateClassRequest, creatorID string) (*class_dto.ClassResponse, *app_error.AppError)
	AddMember(ctx context.Context, classID, requesterID string, req class_dto.AddMemberRequest) (*class_dto.MemberSummary, *app_error.AppError)
	RemoveMember(ctx context.Context, classID, userID, requesterID string) *app_error.AppError
	ListMembers(ctx context.Context, classID string) (*class_dto.ListMembersResponse, *app_error.AppError)
	IsMember(ctx context.Context, classID, userID string) (bool, *app_error.AppError)
}
