package chat_service

import (
	"context"
	"net/http"
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/chat_dto"
	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/QuangLP2607/DATN-final-sub001/internal/queue"
	membership_repo "github.com/QuangLP2607/DATN-final-sub001/internal/repo/membership"
	message_repo "github.com/QuangLP2607/DATN-final-sub001/internal/repo/message"
	"github.com/QuangLP2607/DATN-final-sub001/internal/utils/types"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ChatService struct {
	AppState   *state.AppState
	Membership membership_repo.MembershipRepoContract
	Messages   message_repo.MessageRepoContract
	Producer   queue.Producer
}

func NewChatService(appState *state.AppState) ChatServiceContract {
	return &ChatService{
		AppState:   appState,
		Membership: membership_repo.NewMembershipRepo(appState),
		Messages:   message_repo.NewMessageRepo(appState),
		Producer:   queue.NewProducer(appState.Redis),
	}
}

func (c *ChatService) PostMessage(ctx context.Context, classID, senderID string, req chat_dto.PostMessageRequest) (*chat_dto.MessageResponse, *app_error.AppError) {
	if _, err := c.Membership.FindClassByID(ctx, classID); err != nil {
		return nil, err
	}

	member, err := c.Membership.FindMember(ctx, classID, senderID)
	if err != nil {
		if err.Code == http.StatusNotFound {
			return nil, app_error.Forbidden("sender is not a member of this class", "membership")
		}
		return nil, err
	}

	msgType := entity.MessageType(req.Type)
	if !entity.ValidPostType(msgType) {
		return nil, app_error.InvalidArgument("unsupported message type", "type")
	}
	if req.Content == "" && len(req.Media) == 0 {
		return nil, app_error.InvalidArgument("message needs content or at least one media item", "content")
	}

	now := time.Now()
	msg := &entity.Message{
		ClassID:    classID,
		SenderID:   senderID,
		SenderRole: member.Role,
		Type:       msgType,
		Content:    req.Content,
		Media:      req.Media,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	msgID, err := c.Messages.InsertMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	resp := messageToResponse(msg)
	resp.MessageID = msgID.Hex()

	c.publishMessageEvent(ctx, queue.JobBroadcastMessagePosted, msg, msgID.Hex())

	return resp, nil
}

func (c *ChatService) EditMessage(ctx context.Context, messageID, editorID string, req chat_dto.EditMessageRequest) (*chat_dto.MessageResponse, *app_error.AppError) {
	msg, err := c.Messages.FindMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if msg.IsDeleted {
		return nil, app_error.NotFound("message not found or has been deleted", "message-id")
	}

	// only the original sender may edit, and only plain text messages
	if msg.SenderID != editorID {
		return nil, app_error.Forbidden("only the original sender can edit a message", "editor")
	}
	if msg.Type != entity.MessageText {
		return nil, app_error.Forbidden("only text messages can be edited", "type")
	}

	originalTimestamp := msg.UpdatedAt
	now := time.Now()
	msg.Content = req.Content
	msg.UpdatedAt = now
	msg.EditedAt = &now

	if err := c.Messages.UpdateContent(ctx, msg, &originalTimestamp); err != nil {
		return nil, err
	}

	resp := messageToResponse(msg)
	resp.MessageID = msg.ID.Hex()

	c.publishMessageEvent(ctx, queue.JobBroadcastMessageEdited, msg, msg.ID.Hex())

	return resp, nil
}

func (c *ChatService) SoftDeleteMessage(ctx context.Context, messageID, requesterID string) *app_error.AppError {
	msg, err := c.Messages.FindMessageByID(ctx, messageID)
	if err != nil {
		return err
	}

	// deleting twice is a no-op
	if msg.IsDeleted {
		return nil
	}

	if msg.SenderID != requesterID {
		requester, err := c.Membership.FindMember(ctx, msg.ClassID, requesterID)
		if err != nil || requester.Role != entity.RoleTeacher {
			return app_error.Forbidden("only the sender or a teacher can delete a message", "requester")
		}
	}

	now := time.Now()
	if err := c.Messages.SoftDelete(ctx, msg.ID, now); err != nil {
		return err
	}

	msg.Type = entity.MessageDeleted
	msg.Content = ""
	msg.Media = nil
	msg.IsDeleted = true
	msg.DeletedAt = &now

	c.publishMessageEvent(ctx, queue.JobBroadcastMessageDeleted, msg, msg.ID.Hex())

	return nil
}

func (c *ChatService) ListMessages(ctx context.Context, classID string, req chat_dto.ListMessagesRequest) (*chat_dto.ListMessagesResponse, *app_error.AppError) {
	if _, err := c.Membership.FindClassByID(ctx, classID); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = 20
	}

	// fetch one past the page so the has-more flag reflects what is actually
	// stored, not a full-page guess
	fetched, err := c.Messages.ListMessages(ctx, classID, limit+1, req.BeforeID)
	if err != nil {
		return nil, err
	}

	hasMore := len(fetched) > limit
	messages := fetched
	if hasMore {
		messages = fetched[len(fetched)-limit:]
	}

	respMessages := make([]chat_dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		r := messageToResponse(msg)
		r.MessageID = msg.ID.Hex()
		respMessages = append(respMessages, *r)
	}

	var nextCursor *string
	if len(messages) > 0 {
		oldest := messages[0].ID.Hex()
		nextCursor = &oldest
	}

	return &chat_dto.ListMessagesResponse{
		Messages:   respMessages,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (c *ChatService) publishMessageEvent(ctx context.Context, jobType string, msg *entity.Message, msgID string) {
	payload := types.MessageEventPayload{
		MessageID:  msgID,
		ClassID:    msg.ClassID,
		SenderID:   msg.SenderID,
		SenderRole: msg.SenderRole,
		Type:       string(msg.Type),
		Content:    msg.Content,
		Media:      msg.Media,
		CreatedAt:  msg.CreatedAt,
		EditedAt:   msg.EditedAt,
		DeletedAt:  msg.DeletedAt,
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

	// delivery is the transport's concern, a failed enqueue only gets logged
	if err := c.Producer.Enqueue(ctx, job); err != nil {
		log.Error().Err(err).Str("type", jobType).Str("messageID", msgID).Msg("failed to enqueue broadcast job")
	}
}

func messageToResponse(msg *entity.Message) *chat_dto.MessageResponse {
	return &chat_dto.MessageResponse{
		ClassID:    msg.ClassID,
		SenderID:   msg.SenderID,
		SenderRole: msg.SenderRole,
		Type:       string(msg.Type),
		Content:    msg.Content,
		Media:      msg.Media,
		IsDeleted:  msg.IsDeleted,
		CreatedAt:  msg.CreatedAt,
		EditedAt:   msg.EditedAt,
		DeletedAt:  msg.DeletedAt,
	}
}
