package chat_service

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/chat_dto"
	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/QuangLP2607/DATN-final-sub001/internal/queue"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeMembershipRepo struct {
	classes map[string]*entity.Class
	members map[string]*entity.ClassMember
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{
		classes: make(map[string]*entity.Class),
		members: make(map[string]*entity.ClassMember),
	}
}

func (f *fakeMembershipRepo) addClass(classID string) {
	f.classes[classID] = &entity.Class{ID: uuid.New(), Name: "test class"}
}

func (f *fakeMembershipRepo) addMember(classID, userID, role string) {
	f.members[classID+"|"+userID] = &entity.ClassMember{ClassID: classID, UserID: userID, Role: role}
}

func (f *fakeMembershipRepo) CreateClass(ctx context.Context, class *entity.Class, owner *entity.ClassMember) *app_error.AppError {
	f.classes[class.ID.String()] = class
	return nil
}

func (f *fakeMembershipRepo) FindClassByID(ctx context.Context, classID string) (*entity.Class, *app_error.AppError) {
	class, ok := f.classes[classID]
	if !ok {
		return nil, app_error.NotFound("class not found", "class-id")
	}
	return class, nil
}

func (f *fakeMembershipRepo) AddMember(ctx context.Context, member *entity.ClassMember) (*entity.ClassMember, bool, *app_error.AppError) {
	f.members[member.ClassID+"|"+member.UserID] = member
	return member, true, nil
}

func (f *fakeMembershipRepo) RemoveMember(ctx context.Context, classID, userID string) (bool, *app_error.AppError) {
	delete(f.members, classID+"|"+userID)
	return true, nil
}

func (f *fakeMembershipRepo) FindMember(ctx context.Context, classID, userID string) (*entity.ClassMember, *app_error.AppError) {
	member, ok := f.members[classID+"|"+userID]
	if !ok {
		return nil, app_error.NotFound("member not found", "membership")
	}
	return member, nil
}

func (f *fakeMembershipRepo) ListMembers(ctx context.Context, classID string) ([]*entity.ClassMember, *app_error.AppError) {
	return nil, nil
}

// fakeMessageRepo keeps messages in insertion order like the mongo _id scan.
type fakeMessageRepo struct {
	messages []*entity.Message
}

func (f *fakeMessageRepo) InsertMessage(ctx context.Context, msg *entity.Message) (primitive.ObjectID, *app_error.AppError) {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	f.messages = append(f.messages, msg)
	return msg.ID, nil
}

func (f *fakeMessageRepo) FindMessageByID(ctx context.Context, messageID string) (*entity.Message, *app_error.AppError) {
	for _, msg := range f.messages {
		if msg.ID.Hex() == messageID {
			// decoding from mongo always yields a fresh value
			copied := *msg
			return &copied, nil
		}
	}
	return nil, app_error.NotFound("message not found", "message-id")
}

func (f *fakeMessageRepo) ListMessages(ctx context.Context, classID string, limit int, beforeID *string) ([]*entity.Message, *app_error.AppError) {
	var out []*entity.Message
	for _, msg := range f.messages {
		if msg.ClassID != classID {
			continue
		}
		if beforeID != nil && msg.ID.Hex() >= *beforeID {
			continue
		}
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeMessageRepo) UpdateContent(ctx context.Context, msg *entity.Message, originalTimestamp *time.Time) *app_error.AppError {
	for _, stored := range f.messages {
		if stored.ID == msg.ID {
			if stored.IsDeleted || stored.UpdatedAt.After(*originalTimestamp) {
				return app_error.Conflict("message was modified concurrently", "message")
			}
			*stored = *msg
			return nil
		}
	}
	return app_error.NotFound("message not found", "message-id")
}

func (f *fakeMessageRepo) SoftDelete(ctx context.Context, messageID primitive.ObjectID, deletedAt time.Time) *app_error.AppError {
	for _, stored := range f.messages {
		if stored.ID == messageID && !stored.IsDeleted {
			stored.IsDeleted = true
			stored.Type = entity.MessageDeleted
			stored.Content = ""
			stored.Media = nil
			stored.DeletedAt = &deletedAt
			return nil
		}
	}
	return nil
}

// recordingProducer captures enqueued jobs instead of touching redis.
type recordingProducer struct {
	jobs []queue.Job
}

func (p *recordingProducer) Enqueue(ctx context.Context, job queue.Job) error {
	p.jobs = append(p.jobs, job)
	return nil
}

func setupChatService(t *testing.T) (*ChatService, *fakeMembershipRepo, *fakeMessageRepo, *recordingProducer) {
	t.Helper()
	members := newFakeMembershipRepo()
	members.addClass("class-1")
	members.addMember("class-1", "teacher-1", entity.RoleTeacher)
	members.addMember("class-1", "student-1", entity.RoleStudent)
	members.addMember("class-1", "student-2", entity.RoleStudent)

	messages := &fakeMessageRepo{}
	producer := &recordingProducer{}
	svc := &ChatService{
		Membership: members,
		Messages:   messages,
		Producer:   producer,
	}
	return svc, members, messages, producer
}

func TestPostMessage_Success(t *testing.T) {
	svc, _, messages, producer := setupChatService(t)

	resp, err := svc.PostMessage(context.Background(), "class-1", "student-1", chat_dto.PostMessageRequest{
		Type:    "text",
		Content: "hello everyone",
	})

	require.Nil(t, err)
	assert.NotEmpty(t, resp.MessageID)
	assert.Equal(t, entity.RoleStudent, resp.SenderRole)
	assert.Len(t, messages.messages, 1)

	require.Len(t, producer.jobs, 1)
	assert.Equal(t, queue.JobBroadcastMessagePosted, producer.jobs[0].Type)
}

func TestPostMessage_NonMemberIsForbiddenAndSilent(t *testing.T) {
	svc, _, messages, producer := setupChatService(t)

	_, err := svc.PostMessage(context.Background(), "class-1", "stranger", chat_dto.PostMessageRequest{
		Type:    "text",
		Content: "let me in",
	})

	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code)
	assert.Empty(t, messages.messages, "nothing persisted for a rejected sender")
	assert.Empty(t, producer.jobs, "nothing broadcast for a rejected sender")
}

func TestPostMessage_RequiresContentOrMedia(t *testing.T) {
	svc, _, _, _ := setupChatService(t)

	_, err := svc.PostMessage(context.Background(), "class-1", "student-1", chat_dto.PostMessageRequest{
		Type: "text",
	})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)

	// media alone is enough
	_, err = svc.PostMessage(context.Background(), "class-1", "student-1", chat_dto.PostMessageRequest{
		Type:  "image",
		Media: []entity.MediaRef{{Kind: "image", URL: "https://cdn.example.com/a.png"}},
	})
	assert.Nil(t, err)
}

func TestPostMessage_RejectsDeletedType(t *testing.T) {
	svc, _, _, _ := setupChatService(t)

	_, err := svc.PostMessage(context.Background(), "class-1", "student-1", chat_dto.PostMessageRequest{
		Type:    "deleted",
		Content: "sneaky",
	})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}

func TestEditMessage_OnlySenderAndOnlyText(t *testing.T) {
	svc, _, _, _ := setupChatService(t)

	posted, err := svc.PostMessage(context.Background(), "class-1", "student-1", chat_dto.PostMessageRequest{
		Type:    "text",
		Content: "original",
	})
	require.Nil(t, err)

	// a teacher who is not the sender still may not edit
	_, err = svc.EditMessage(context.Background(), posted.MessageID, "teacher-1", chat_dto.EditMessageRequest{Content: "overruled"})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code)

	// the sender may
	edited, err := svc.EditMessage(context.Background(), posted.MessageID, "student-1", chat_dto.EditMessageRequest{Content: "fixed typo"})
	require.Nil(t, err)
	assert.Equal(t, "fixed typo", edited.Content)
	require.NotNil(t, edited.EditedAt)

	// image messages cannot be edited at all
	image, err := svc.PostMessage(context.Background(), "class-1", "student-1", chat_dto.PostMessageRequest{
		Type:  "image",
		Media: []entity.MediaRef{{Kind: "image", URL: "https://cdn.example.com/a.png"}},
	})
	require.Nil(t, err)
	_, err = svc.EditMessage(context.Background(), image.MessageID, "student-1", chat_dto.EditMessageRequest{Content: "caption"})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code)
}

func TestSoftDelete_SenderAndTeacherIdempotent(t *testing.T) {
	svc, _, messages, producer := setupChatService(t)

	posted, err := svc.PostMessage(context.Background(), "class-1", "student-1", chat_dto.PostMessageRequest{
		Type:    "text",
		Content: "delete me",
	})
	require.Nil(t, err)

	// another student may not delete it
	delErr := svc.SoftDeleteMessage(context.Background(), posted.MessageID, "student-2")
	require.NotNil(t, delErr)
	assert.Equal(t, http.StatusForbidden, delErr.Code)

	// a teacher may
	require.Nil(t, svc.SoftDeleteMessage(context.Background(), posted.MessageID, "teacher-1"))
	stored := messages.messages[0]
	assert.True(t, stored.IsDeleted)
	assert.Equal(t, entity.MessageDeleted, stored.Type)
	assert.Empty(t, stored.Content)
	assert.Nil(t, stored.Media)

	// deleting again is a no-op and publishes nothing new
	published := len(producer.jobs)
	require.Nil(t, svc.SoftDeleteMessage(context.Background(), posted.MessageID, "teacher-1"))
	assert.Len(t, producer.jobs, published)

	// a deleted message cannot be edited
	_, editErr := svc.EditMessage(context.Background(), posted.MessageID, "student-1", chat_dto.EditMessageRequest{Content: "resurrect"})
	require.NotNil(t, editErr)
	assert.Equal(t, http.StatusNotFound, editErr.Code)
}

func TestListMessages_AppendOrderAndPaging(t *testing.T) {
	svc, _, _, _ := setupChatService(t)

	contents := []string{"first", "second", "third", "fourth", "fifth"}
	for _, c := range contents {
		_, err := svc.PostMessage(context.Background(), "class-1", "student-1", chat_dto.PostMessageRequest{
			Type:    "text",
			Content: c,
		})
		require.Nil(t, err)
	}

	resp, err := svc.ListMessages(context.Background(), "class-1", chat_dto.ListMessagesRequest{Limit: 3})
	require.Nil(t, err)
	require.Len(t, resp.Messages, 3)
	assert.True(t, resp.HasMore)

	// the newest page, oldest first within it
	assert.Equal(t, "third", resp.Messages[0].Content)
	assert.Equal(t, "fourth", resp.Messages[1].Content)
	assert.Equal(t, "fifth", resp.Messages[2].Content)

	// page backwards using the cursor
	require.NotNil(t, resp.NextCursor)
	older, err := svc.ListMessages(context.Background(), "class-1", chat_dto.ListMessagesRequest{Limit: 3, BeforeID: resp.NextCursor})
	require.Nil(t, err)
	require.Len(t, older.Messages, 2)
	assert.Equal(t, "first", older.Messages[0].Content)
	assert.Equal(t, "second", older.Messages[1].Content)
}

func TestListMessages_HasMoreIsExactOnPageBoundary(t *testing.T) {
	svc, _, _, _ := setupChatService(t)

	// six messages split evenly across two pages of three
	contents := []string{"m1", "m2", "m3", "m4", "m5", "m6"}
	for _, c := range contents {
		_, err := svc.PostMessage(context.Background(), "class-1", "student-1", chat_dto.PostMessageRequest{
			Type:    "text",
			Content: c,
		})
		require.Nil(t, err)
	}

	newest, err := svc.ListMessages(context.Background(), "class-1", chat_dto.ListMessagesRequest{Limit: 3})
	require.Nil(t, err)
	require.Len(t, newest.Messages, 3)
	assert.Equal(t, "m4", newest.Messages[0].Content)
	assert.True(t, newest.HasMore)

	// the second page is full too, but nothing lies beyond it
	older, err := svc.ListMessages(context.Background(), "class-1", chat_dto.ListMessagesRequest{Limit: 3, BeforeID: newest.NextCursor})
	require.Nil(t, err)
	require.Len(t, older.Messages, 3)
	assert.Equal(t, "m1", older.Messages[0].Content)
	assert.False(t, older.HasMore)

	// a single page holding the whole conversation reports no more either
	all, err := svc.ListMessages(context.Background(), "class-1", chat_dto.ListMessagesRequest{Limit: 6})
	require.Nil(t, err)
	require.Len(t, all.Messages, 6)
	assert.False(t, all.HasMore)
}

func TestListMessages_UnknownClass(t *testing.T) {
	svc, _, _, _ := setupChatService(t)

	_, err := svc.ListMessages(context.Background(), "no-such-class", chat_dto.ListMessagesRequest{})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)
}
