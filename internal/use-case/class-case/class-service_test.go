package class_service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/internal/dtos/class_dto"
	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/QuangLP2607/DATN-final-sub001/internal/queue"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func (f *fakeMembershipRepo) CreateClass(ctx context.Context, class *entity.Class, owner *entity.ClassMember) *app_error.AppError {
	class.CreatedAt = time.Now()
	owner.ClassID = class.ID.String()
	f.classes[class.ID.String()] = class
	f.members[owner.ClassID+"|"+owner.UserID] = owner
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
	key := member.ClassID + "|" + member.UserID
	if existing, ok := f.members[key]; ok {
		return existing, false, nil
	}
	f.members[key] = member
	return member, true, nil
}

func (f *fakeMembershipRepo) RemoveMember(ctx context.Context, classID, userID string) (bool, *app_error.AppError) {
	key := classID + "|" + userID
	if _, ok := f.members[key]; !ok {
		return false, nil
	}
	delete(f.members, key)
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
	var out []*entity.ClassMember
	for _, m := range f.members {
		if m.ClassID == classID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) CountUser(ctx context.Context, filter entity.UserFilter) (int64, *app_error.AppError) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) SaveUser(ctx context.Context, user entity.User) *app_error.AppError {
	f.users[user.ID] = &user
	return nil
}

func (f *fakeUserRepo) FindUserByID(ctx context.Context, userID string) (*entity.User, *app_error.AppError) {
	user, ok := f.users[userID]
	if !ok {
		return nil, app_error.NotFound("user not found", "user-id")
	}
	return user, nil
}

func (f *fakeUserRepo) FindUserByCredential(ctx context.Context, username string) (*entity.User, *app_error.AppError) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, app_error.NotFound("user not found", "username")
}

type recordingProducer struct {
	jobs []queue.Job
}

func (p *recordingProducer) Enqueue(ctx context.Context, job queue.Job) error {
	p.jobs = append(p.jobs, job)
	return nil
}

func setupClassService(t *testing.T) (*ClassService, *fakeMembershipRepo, *recordingProducer) {
	t.Helper()
	members := newFakeMembershipRepo()
	users := &fakeUserRepo{users: map[string]*entity.User{
		"teacher-1": {ID: "teacher-1", Username: "prof", Email: "prof@example.com", DisplayName: "Prof"},
		"student-1": {ID: "student-1", Username: "alice", Email: "alice@example.com", DisplayName: "Alice"},
		"student-2": {ID: "student-2", Username: "bob", Email: "bob@example.com", DisplayName: "Bob"},
	}}
	producer := &recordingProducer{}
	svc := &ClassService{
		Membership: members,
		Users:      users,
		Producer:   producer,
	}
	return svc, members, producer
}

func createClass(t *testing.T, svc *ClassService) string {
	t.Helper()
	resp, err := svc.CreateClass(context.Background(), class_dto.CreateClassRequest{Name: "algorithms"}, "teacher-1")
	require.Nil(t, err)
	return resp.ClassID
}

func TestCreateClass_CreatorBecomesTeacher(t *testing.T) {
	svc, members, _ := setupClassService(t)

	classID := createClass(t, svc)

	member, err := members.FindMember(context.Background(), classID, "teacher-1")
	require.Nil(t, err)
	assert.Equal(t, entity.RoleTeacher, member.Role)
}

func TestAddMember_IsIdempotent(t *testing.T) {
	svc, _, producer := setupClassService(t)
	classID := createClass(t, svc)

	req := class_dto.AddMemberRequest{UserID: "student-1", Role: entity.RoleStudent}

	first, err := svc.AddMember(context.Background(), classID, "teacher-1", req)
	require.Nil(t, err)
	assert.Equal(t, "Alice", first.DisplayName)
	published := len(producer.jobs)
	assert.NotZero(t, published, "a fresh join publishes events")

	// adding the same member again succeeds without publishing anything new
	second, err := svc.AddMember(context.Background(), classID, "teacher-1", req)
	require.Nil(t, err)
	assert.Equal(t, first.UserID, second.UserID)
	assert.Len(t, producer.jobs, published)
}

func TestAddMember_RequiresTeacher(t *testing.T) {
	svc, _, _ := setupClassService(t)
	classID := createClass(t, svc)

	req := class_dto.AddMemberRequest{UserID: "student-1", Role: entity.RoleStudent}
	_, err := svc.AddMember(context.Background(), classID, "teacher-1", req)
	require.Nil(t, err)

	// students may not invite
	_, err = svc.AddMember(context.Background(), classID, "student-1", class_dto.AddMemberRequest{
		UserID: "student-2",
		Role:   entity.RoleStudent,
	})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code)
}

func TestAddMember_UnknownClassAndUser(t *testing.T) {
	svc, _, _ := setupClassService(t)
	classID := createClass(t, svc)

	_, err := svc.AddMember(context.Background(), uuid.New().String(), "teacher-1", class_dto.AddMemberRequest{
		UserID: "student-1",
		Role:   entity.RoleStudent,
	})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)

	_, err = svc.AddMember(context.Background(), classID, "teacher-1", class_dto.AddMemberRequest{
		UserID: "ghost",
		Role:   entity.RoleStudent,
	})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)
}

func TestRemoveMember_SelfLeaveAndTeacherRemoval(t *testing.T) {
	svc, members, _ := setupClassService(t)
	classID := createClass(t, svc)

	for _, id := range []string{"student-1", "student-2"} {
		_, err := svc.AddMember(context.Background(), classID, "teacher-1", class_dto.AddMemberRequest{
			UserID: id,
			Role:   entity.RoleStudent,
		})
		require.Nil(t, err)
	}

	// a student may not remove another student
	err := svc.RemoveMember(context.Background(), classID, "student-2", "student-1")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code)

	// but may leave on their own
	require.Nil(t, svc.RemoveMember(context.Background(), classID, "student-1", "student-1"))
	_, findErr := members.FindMember(context.Background(), classID, "student-1")
	require.NotNil(t, findErr)

	// the teacher may remove anyone
	require.Nil(t, svc.RemoveMember(context.Background(), classID, "student-2", "teacher-1"))
}

func TestRemoveMember_NonMemberIsNoOp(t *testing.T) {
	svc, _, producer := setupClassService(t)
	classID := createClass(t, svc)

	published := len(producer.jobs)
	require.Nil(t, svc.RemoveMember(context.Background(), classID, "student-1", "teacher-1"))
	assert.Len(t, producer.jobs, published, "removing a non-member publishes nothing")
}

func TestIsMember(t *testing.T) {
	svc, _, _ := setupClassService(t)
	classID := createClass(t, svc)

	ok, err := svc.IsMember(context.Background(), classID, "teacher-1")
	require.Nil(t, err)
	assert.True(t, ok)

	ok, err = svc.IsMember(context.Background(), classID, "student-1")
	require.Nil(t, err)
	assert.False(t, ok)
}
