package session_service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/config"
	"github.com/QuangLP2607/DATN-final-sub001/internal/broker"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	membership_repo "github.com/QuangLP2607/DATN-final-sub001/internal/repo/membership"
	"github.com/QuangLP2607/DATN-final-sub001/internal/utils"
	"github.com/QuangLP2607/DATN-final-sub001/internal/utils/types"
	"github.com/QuangLP2607/DATN-final-sub001/state"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

type sessionState int

const (
	stateIdle sessionState = iota
	stateRequested
	stateActive
	stateClosed
)

type classSession struct {
	state        sessionState
	room         *types.LiveRoomSession
	participants map[string]struct{}
}

// SessionManager coordinates live room sessions per class. The singleflight
// group is the per-key in-flight registry: concurrent joiners of one class
// coalesce onto a single broker request.
type SessionManager struct {
	Membership membership_repo.MembershipRepoContract
	Broker     broker.LiveRoomBrokerContract
	Redis      *redis.Client

	JoinTimeout time.Duration
	MaxRetries  int

	mu       sync.Mutex
	sessions map[string]*classSession
	flight   singleflight.Group
}

func NewSessionManager(appState *state.AppState) SessionServiceContract {
	return &SessionManager{
		Membership:  membership_repo.NewMembershipRepo(appState),
		Broker:      broker.NewHTTPBroker(),
		Redis:       appState.Redis,
		JoinTimeout: config.Conf.LIVEROOM.RequestTimeout,
		MaxRetries:  config.Conf.LIVEROOM.MaxRetries,
		sessions:    make(map[string]*classSession),
	}
}

// NewSessionManagerWith wires explicit collaborators, used by the hub glue
// and tests.
func NewSessionManagerWith(membership membership_repo.MembershipRepoContract, brk broker.LiveRoomBrokerContract, rdb *redis.Client, joinTimeout time.Duration, maxRetries int) *SessionManager {
	return &SessionManager{
		Membership:  membership,
		Broker:      brk,
		Redis:       rdb,
		JoinTimeout: joinTimeout,
		MaxRetries:  maxRetries,
		sessions:    make(map[string]*classSession),
	}
}

func (m *SessionManager) Join(ctx context.Context, classID, userID string) (*types.LiveRoomSession, *app_error.AppError) {
	if _, err := m.Membership.FindClassByID(ctx, classID); err != nil {
		return nil, err
	}

	member, err := m.Membership.FindMember(ctx, classID, userID)
	if err != nil {
		if err.Code == http.StatusNotFound {
			return nil, app_error.Forbidden("user is not a member of this class", "membership")
		}
		return nil, err
	}

	// a Leave by the last counted participant can close the session between
	// the shared flight returning and this joiner registering itself. When
	// that happens the room credentials are dead, so run the join again.
	for attempt := 0; attempt < 3; attempt++ {
		v, flightErr, _ := m.flight.Do(classID, func() (any, error) {
			room, appErr := m.obtainSession(classID, userID, member.Role)
			if appErr != nil {
				return nil, appErr
			}
			return room, nil
		})
		if flightErr != nil {
			if appErr, ok := flightErr.(*app_error.AppError); ok {
				return nil, appErr
			}
			return nil, app_error.Unavailable(flightErr.Error(), "session")
		}

		room := v.(*types.LiveRoomSession)
		if m.register(classID, userID) {
			return room, nil
		}
	}

	return nil, app_error.Unavailable("live session closed while joining", "session")
}

// register adds the joiner to the session's participant set. It reports false
// when the session is no longer active, so the caller never keeps credentials
// for a closed room.
func (m *SessionManager) register(classID, userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[classID]
	if !ok || sess.state != stateActive {
		return false
	}
	sess.participants[userID] = struct{}{}
	return true
}

// obtainSession runs inside the singleflight. It reuses an unexpired active
// session and otherwise walks Idle -> Requested -> Active, falling back to
// Idle when the broker fails or the request deadline passes.
func (m *SessionManager) obtainSession(classID, userID, role string) (*types.LiveRoomSession, *app_error.AppError) {
	now := time.Now()

	m.mu.Lock()
	sess, ok := m.sessions[classID]
	if ok && sess.state == stateActive && !sess.room.Expired(now) {
		room := sess.room
		m.mu.Unlock()
		return room, nil
	}
	if !ok {
		sess = &classSession{participants: make(map[string]struct{})}
		m.sessions[classID] = sess
	}
	sess.state = stateRequested
	m.mu.Unlock()

	if cached := m.cachedSession(classID, now); cached != nil {
		m.activate(classID, cached)
		return cached, nil
	}

	// the deadline keeps a stalled broker from leaving the class in
	// Requested forever. Background context on purpose: the work is shared
	// by every coalesced joiner, one caller going away must not cancel it.
	ctx, cancel := context.WithTimeout(context.Background(), m.JoinTimeout)
	defer cancel()

	creds, appErr := m.issueWithRetry(ctx, classID, userID, role)
	if appErr != nil {
		m.mu.Lock()
		sess.state = stateIdle
		m.mu.Unlock()
		return nil, appErr
	}

	room := &types.LiveRoomSession{
		ClassID:   classID,
		RoomID:    creds.RoomID,
		Token:     creds.Token,
		IssuedAt:  now,
		ExpiresAt: creds.ExpiresAt,
	}

	m.cacheSession(room)
	m.activate(classID, room)

	return room, nil
}

func (m *SessionManager) issueWithRetry(ctx context.Context, classID, userID, role string) (*broker.RoomCredentials, *app_error.AppError) {
	var lastErr *app_error.AppError
	backoff := 100 * time.Millisecond

	for attempt := 0; attempt < m.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, app_error.Unavailable("live room request timed out", "provider")
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		creds, appErr := m.Broker.IssueToken(ctx, classID, userID, role)
		if appErr == nil {
			return creds, nil
		}
		if !appErr.IsRetryable() {
			return nil, appErr
		}

		lastErr = appErr
		log.Warn().Str("classID", classID).Int("attempt", attempt+1).Msg("live room broker unavailable, retrying")
	}

	return nil, lastErr
}

func (m *SessionManager) Leave(ctx context.Context, classID, userID string) *app_error.AppError {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[classID]
	if !ok || sess.state != stateActive {
		return nil
	}

	delete(sess.participants, userID)
	if len(sess.participants) > 0 {
		return nil
	}

	// last one out closes the room
	sess.state = stateClosed
	if m.Redis != nil {
		if err := utils.DeleteCacheData(ctx, m.Redis, liveRoomKey(classID)); err != nil {
			log.Error().Err(err).Str("classID", classID).Msg("failed to invalidate live room cache")
		}
	}
	delete(m.sessions, classID) // Closed collapses straight back to Idle

	return nil
}

func (m *SessionManager) Participants(classID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[classID]; ok {
		return len(sess.participants)
	}
	return 0
}

func (m *SessionManager) activate(classID string, room *types.LiveRoomSession) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[classID]
	if !ok {
		sess = &classSession{participants: make(map[string]struct{})}
		m.sessions[classID] = sess
	}
	sess.state = stateActive
	sess.room = room
}

func (m *SessionManager) cachedSession(classID string, now time.Time) *types.LiveRoomSession {
	if m.Redis == nil {
		return nil
	}

	cached, err := utils.GetCacheData[types.LiveRoomSession](context.Background(), m.Redis, liveRoomKey(classID))
	if err != nil || cached == nil {
		return nil
	}
	if cached.Expired(now) {
		return nil
	}
	return cached
}

func (m *SessionManager) cacheSession(room *types.LiveRoomSession) {
	if m.Redis == nil {
		return
	}

	// the TTL is capped at token expiry so a token is never served stale
	ttl := time.Until(room.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if err := utils.SetCacheData(context.Background(), m.Redis, liveRoomKey(room.ClassID), room, ttl); err != nil {
		log.Error().Err(err).Str("classID", room.ClassID).Msg("failed to cache live room session")
	}
}

func liveRoomKey(classID string) string {
	return fmt.Sprintf("liveroom:%s", classID)
}
