package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/config"
	app_error "github.com/QuangLP2607/DATN-final-sub001/internal/errors"
	"github.com/rs/zerolog/log"
)

// RoomCredentials are the ephemeral grant minted by the conferencing
// provider. The token is an opaque signed credential.
type RoomCredentials struct {
	RoomID    string    `json:"room_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type LiveRoomBrokerContract interface {
	IssueToken(ctx context.Context, classID, userID, role string) (*RoomCredentials, *app_error.AppError)
}

type HTTPBroker struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewHTTPBroker() LiveRoomBrokerContract {
	return &HTTPBroker{
		BaseURL: config.Conf.LIVEROOM.ProviderURL,
		APIKey:  config.Conf.LIVEROOM.APIKey,
		Client: &http.Client{
			Timeout: config.Conf.LIVEROOM.RequestTimeout,
		},
	}
}

type issueTokenRequest struct {
	ClassID string `json:"class_id"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}

func (b *HTTPBroker) IssueToken(ctx context.Context, classID, userID, role string) (*RoomCredentials, *app_error.AppError) {
	body, err := json.Marshal(issueTokenRequest{
		ClassID: classID,
		UserID:  userID,
		Role:    role,
	})
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to marshal token request", "json")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/v1/rooms/token", bytes.NewReader(body))
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to build token request", "request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	resp, err := b.Client.Do(req)
	if err != nil {
		// network errors and timeouts are transient from our point of view
		log.Warn().Err(err).Str("classID", classID).Msg("live room provider unreachable")
		return nil, app_error.Unavailable("conferencing provider unreachable", "provider")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// bad provider credentials are fatal, retrying cannot help
		log.Error().Int("status", resp.StatusCode).Msg("live room provider rejected credentials")
		return nil, app_error.InvalidCredentials("conferencing provider rejected credentials", "provider")
	case resp.StatusCode != http.StatusOK:
		log.Warn().Int("status", resp.StatusCode).Str("classID", classID).Msg("live room provider error")
		return nil, app_error.Unavailable(fmt.Sprintf("conferencing provider returned %d", resp.StatusCode), "provider")
	}

	var creds RoomCredentials
	if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
		return nil, app_error.Unavailable("malformed provider response", "provider")
	}

	if creds.RoomID == "" || creds.Token == "" || !creds.ExpiresAt.After(time.Now()) {
		return nil, app_error.Unavailable("provider returned unusable credentials", "provider")
	}

	return &creds, nil
}
