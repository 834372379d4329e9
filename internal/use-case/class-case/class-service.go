package class_service

import (
	"context"
	"net/http"
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/class_dto"
	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/QuangLP2607/DATN-final-sub001/internal/queue"
	membership_repo "github.com/QuangLP2607/DATN-final-sub001/internal/repo/membership"
	user_repo "github.com/QuangLP2607/DATN-final-sub001/internal/repo/user"
	"github.com/QuangLP2607/DATN-final-sub001/internal/utils/types"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ClassService struct {
	AppState   *state.AppState
	Membership membership_repo.MembershipRepoContract
	Users      user_repo.UserRepoContract
	Producer   queue.Producer
}

func NewClassService(appState *state.AppState) ClassServiceContract {
	return &ClassService{
		AppState:   appState,
		Membership: membership_repo.NewMembershipRepo(appState),
		Users:      user_repo.NewUserRepo(appState),
		Producer:   queue.NewProducer(appState.Redis),
	}
}

func (s *ClassService) CreateClass(ctx context.Context, req class_dto.CreateClassRequest, creatorID string) (*class_dto.ClassResponse, *app_error.AppError) {
	creator, err := s.Users.FindUserByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	class := &entity.Class{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedBy: creatorID,
	}

	owner := &entity.ClassMember{
		UserID:      creatorID,
		Role:        entity.RoleTeacher,
		DisplayName: creator.DisplayName,
		JoinedAt:    time.Now(),
	}

	if err := s.Membership.CreateClass(ctx, class, owner); err != nil {
		return nil, err
	}

	return &class_dto.ClassResponse{
		ClassID:   class.ID.String(),
		Name:      class.Name,
		CreatedBy: class.CreatedBy,
		CreatedAt: class.CreatedAt,
	}, nil
}

func (s *ClassService) AddMember(ctx context.Context, classID, requesterID string, req class_dto.AddMemberRequest) (*class_dto.MemberSummary, *app_error.AppError) {
	class, err := s.Membership.FindClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if err := s.requireTeacher(ctx, classID, requesterID); err != nil {
		return nil, err
	}

	user, err := s.Users.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = user.DisplayName
	}

	member := &entity.ClassMember{
		ClassID:     classID,
		UserID:      req.UserID,
		Role:        req.Role,
		DisplayName: displayName,
		JoinedAt:    time.Now(),
	}

	member, created, err := s.Membership.AddMember(ctx, member)
	if err != nil {
		return nil, err
	}

	if created {
		s.publishMemberEvent(ctx, queue.JobBroadcastMemberJoined, member)
		s.enqueueInviteMail(ctx, class, user)
	}

	return &class_dto.MemberSummary{
		UserID:      member.UserID,
		Role:        member.Role,
		DisplayName: member.DisplayName,
		JoinedAt:    member.JoinedAt,
	}, nil
}

func (s *ClassService) RemoveMember(ctx context.Context, classID, userID, requesterID string) *app_error.AppError {
	if _, err := s.Membership.FindClassByID(ctx, classID); err != nil {
		return err
	}

	// members may leave on their own, anyone else needs the teacher role
	if requesterID != userID {
		if err := s.requireTeacher(ctx, classID, requesterID); err != nil {
			return err
		}
	}

	member, err := s.Membership.FindMember(ctx, classID, userID)
	if err != nil {
		if err.Code == http.StatusNotFound {
			return nil // removing a non-member is a no-op
		}
		return err
	}

	removed, err := s.Membership.RemoveMember(ctx, classID, userID)
	if err != nil {
		return err
	}

	if removed {
		s.publishMemberEvent(ctx, queue.JobBroadcastMemberLeft, member)
	}

	return nil
}

func (s *ClassService) ListMembers(ctx context.Context, classID string) (*class_dto.ListMembersResponse, *app_error.AppError) {
	if _, err := s.Membership.FindClassByID(ctx, classID); err != nil {
		return nil, err
	}

	members, err := s.Membership.ListMembers(ctx, classID)
	if err != nil {
		return nil, err
	}

	summaries := make([]class_dto.MemberSummary, 0, len(members))
	for _, m := range members {
		summaries = append(summaries, class_dto.MemberSummary{
			UserID:      m.UserID,
			Role:        m.Role,
			DisplayName: m.DisplayName,
			JoinedAt:    m.JoinedAt,
		})
	}

	return &class_dto.ListMembersResponse{
		ClassID: classID,
		Members: summaries,
	}, nil
}

func (s *ClassService) IsMember(ctx context.Context, classID, userID string) (bool, *app_error.AppError) {
	_, err := s.Membership.FindMember(ctx, classID, userID)
	if err != nil {
		if err.Code == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *ClassService) requireTeacher(ctx context.Context, classID, userID string) *app_error.AppError {
	member, err := s.Membership.FindMember(ctx, classID, userID)
	if err != nil {
		if err.Code == http.StatusNotFound {
			return app_error.Forbidden("requester is not a member of this class", "membership")
		}
		return err
	}
	if member.Role != entity.RoleTeacher {
		return app_error.Forbidden("teacher role required", "role")
	}
	return nil
}

func (s *ClassService) publishMemberEvent(ctx context.Context, jobType string, member *entity.ClassMember) {
	payload := types.MemberEventPayload{
		ClassID:     member.ClassID,
		UserID:      member.UserID,
		Role:        member.Role,
		DisplayName: member.DisplayName,
		OccurredAt:  time.Now(),
	}

	now := time.Now()
	job := queue.Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Payload:   queue.MustMarshal(payload),
		Priority:  1,
		MaxRetry:  3,
		CreatedAt: now.Unix(),
		ExpireAt:  now.Add(time.Minute).Unix(),
	}

	if err := s.Producer.Enqueue(ctx, job); err != nil {
		log.Error().Err(err).Str("type", jobType).Str("classID", member.ClassID).Msg("failed to enqueue member event")
	}
}

func (s *ClassService) enqueueInviteMail(ctx context.Context, class *entity.Class, user *entity.User) {
	if user.Email == "" {
		return
	}

	payload := types.ClassInvitePayload{
		ClassID:   class.ID.String(),
		ClassName: class.Name,
		UserID:    user.ID,
		Email:     user.Email,
	}

	now := time.Now()
	job := queue.Job{
		ID:        uuid.New().String(),
		Type:      queue.JobSendClassInvite,
		Payload:   queue.MustMarshal(payload),
		Priority:  3,
		MaxRetry:  5,
		CreatedAt: now.Unix(),
		ExpireAt:  now.Add(time.Hour).Unix(),
	}

	if err := s.Producer.Enqueue(ctx, job); err != nil {
		log.Error().Err(err).Str("classID", payload.ClassID).Msg("failed to enqueue invite mail")
	}
}
