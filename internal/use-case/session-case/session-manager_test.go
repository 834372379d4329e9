package session_service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/internal/broker"
	"github.com/QuangLP2607/DATN-final-sub001/internal/entity"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
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

// countingBroker counts IssueToken calls and can be primed to fail.
type countingBroker struct {
	calls    atomic.Int64
	failures int64 // fail the first N calls with Unavailable
	fatal    bool  // fail every call with InvalidCredentials
}

func (b *countingBroker) IssueToken(ctx context.Context, classID, userID, role string) (*broker.RoomCredentials, *app_error.AppError) {
	n := b.calls.Add(1)
	if b.fatal {
		return nil, app_error.InvalidCredentials("provider rejected credentials", "provider")
	}
	if n <= b.failures {
		return nil, app_error.Unavailable("provider unreachable", "provider")
	}
	return &broker.RoomCredentials{
		RoomID:    fmt.Sprintf("room-%s-%d", classID, n),
		Token:     fmt.Sprintf("token-%d", n),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func newTestManager(brk broker.LiveRoomBrokerContract) (*SessionManager, *fakeMembershipRepo) {
	members := newFakeMembershipRepo()
	members.addClass("class-1")
	members.addMember("class-1", "teacher-1", entity.RoleTeacher)
	for i := 0; i < 10; i++ {
		members.addMember("class-1", fmt.Sprintf("student-%d", i), entity.RoleStudent)
	}
	// no redis: the cache layer is optional and skipped when nil
	m := NewSessionManagerWith(members, brk, nil, 2*time.Second, 3)
	return m, members
}

func TestJoin_MintsAndReusesSession(t *testing.T) {
	brk := &countingBroker{}
	m, _ := newTestManager(brk)

	first, err := m.Join(context.Background(), "class-1", "teacher-1")
	require.Nil(t, err)
	require.NotNil(t, first)
	assert.NotEmpty(t, first.Token)

	second, err := m.Join(context.Background(), "class-1", "student-0")
	require.Nil(t, err)
	assert.Equal(t, first.Token, second.Token, "an active session is reused, not re-minted")
	assert.EqualValues(t, 1, brk.calls.Load())
	assert.Equal(t, 2, m.Participants("class-1"))
}

func TestJoin_ConcurrentJoinersShareOneBrokerCall(t *testing.T) {
	brk := &countingBroker{}
	m, _ := newTestManager(brk)

	const joiners = 10
	tokens := make([]string, joiners)
	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session, err := m.Join(context.Background(), "class-1", fmt.Sprintf("student-%d", i))
			if !assert.Nil(t, err) {
				return
			}
			tokens[i] = session.Token
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, brk.calls.Load(), "coalesced joiners share a single token request")
	for _, token := range tokens {
		assert.Equal(t, tokens[0], token, "every joiner receives the same credentials")
	}
}

func TestJoin_NonMemberIsForbidden(t *testing.T) {
	brk := &countingBroker{}
	m, _ := newTestManager(brk)

	_, err := m.Join(context.Background(), "class-1", "stranger")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code)
	assert.EqualValues(t, 0, brk.calls.Load(), "no broker call for a rejected joiner")
}

func TestJoin_UnknownClass(t *testing.T) {
	m, _ := newTestManager(&countingBroker{})

	_, err := m.Join(context.Background(), "no-such-class", "teacher-1")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)
}

func TestJoin_RetriesTransientFailures(t *testing.T) {
	brk := &countingBroker{failures: 2}
	m, _ := newTestManager(brk)

	session, err := m.Join(context.Background(), "class-1", "teacher-1")
	require.Nil(t, err)
	assert.NotEmpty(t, session.Token)
	assert.EqualValues(t, 3, brk.calls.Load(), "two transient failures then one success")
}

func TestJoin_FatalBrokerErrorIsNotRetried(t *testing.T) {
	brk := &countingBroker{fatal: true}
	m, _ := newTestManager(brk)

	_, err := m.Join(context.Background(), "class-1", "teacher-1")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusUnauthorized, err.Code)
	assert.EqualValues(t, 1, brk.calls.Load(), "credential rejection is fatal, no retries")
}

func TestJoin_FailureRevertsToIdleAndAllowsRetry(t *testing.T) {
	brk := &countingBroker{failures: 3} // exhausts all retries once
	m, _ := newTestManager(brk)

	_, err := m.Join(context.Background(), "class-1", "teacher-1")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, err.Code)
	assert.Equal(t, 0, m.Participants("class-1"))

	// the class dropped back to idle, a later join starts fresh and succeeds
	session, err := m.Join(context.Background(), "class-1", "teacher-1")
	require.Nil(t, err)
	assert.NotEmpty(t, session.Token)
}

func TestLeave_LastParticipantClosesSession(t *testing.T) {
	brk := &countingBroker{}
	m, _ := newTestManager(brk)

	_, err := m.Join(context.Background(), "class-1", "teacher-1")
	require.Nil(t, err)
	_, err = m.Join(context.Background(), "class-1", "student-0")
	require.Nil(t, err)
	require.Equal(t, 2, m.Participants("class-1"))

	require.Nil(t, m.Leave(context.Background(), "class-1", "teacher-1"))
	assert.Equal(t, 1, m.Participants("class-1"))

	require.Nil(t, m.Leave(context.Background(), "class-1", "student-0"))
	assert.Equal(t, 0, m.Participants("class-1"))

	// session closed: a new join mints fresh credentials
	fresh, err := m.Join(context.Background(), "class-1", "teacher-1")
	require.Nil(t, err)
	assert.EqualValues(t, 2, brk.calls.Load())
	assert.NotEmpty(t, fresh.Token)
}

func TestJoin_CloseRacingRegistrationMintsFreshSession(t *testing.T) {
	brk := &countingBroker{}
	m, _ := newTestManager(brk)

	_, err := m.Join(context.Background(), "class-1", "teacher-1")
	require.Nil(t, err)
	require.Nil(t, m.Leave(context.Background(), "class-1", "teacher-1"))

	// a joiner whose flight lost the race against the close must not slip
	// into the dead session
	assert.False(t, m.register("class-1", "student-0"))
	assert.Equal(t, 0, m.Participants("class-1"))

	// joining again runs a fresh flight and comes back registered
	fresh, err := m.Join(context.Background(), "class-1", "student-0")
	require.Nil(t, err)
	assert.NotEmpty(t, fresh.Token)
	assert.EqualValues(t, 2, brk.calls.Load())
	assert.Equal(t, 1, m.Participants("class-1"))
}

func TestJoinAndLeave_ConcurrentChurnStaysConsistent(t *testing.T) {
	brk := &countingBroker{}
	m, _ := newTestManager(brk)

	const churners = 5
	var wg sync.WaitGroup
	for i := 0; i < churners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("student-%d", i)
			for n := 0; n < 20; n++ {
				if _, err := m.Join(context.Background(), "class-1", user); err != nil {
					// a close can still win repeatedly under heavy churn,
					// which surfaces as a retryable error, never a dead token
					if !assert.True(t, err.IsRetryable()) {
						return
					}
					continue
				}
				if !assert.Nil(t, m.Leave(context.Background(), "class-1", user)) {
					return
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, m.Participants("class-1"))
}

func TestLeave_IsIdempotent(t *testing.T) {
	m, _ := newTestManager(&countingBroker{})

	// leaving without ever joining is a no-op
	require.Nil(t, m.Leave(context.Background(), "class-1", "teacher-1"))

	_, err := m.Join(context.Background(), "class-1", "teacher-1")
	require.Nil(t, err)

	require.Nil(t, m.Leave(context.Background(), "class-1", "teacher-1"))
	require.Nil(t, m.Leave(context.Background(), "class-1", "teacher-1"))
	assert.Equal(t, 0, m.Participants("class-1"))
}
