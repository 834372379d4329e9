package types

import "time"

// LiveRoomSession is the ephemeral credential minted for a class. It lives in
// the short-lived redis cache only and is never persisted.
type LiveRoomSession struct {
	ClassID   string    `json:"class_id"`
	RoomID    string    `json:"room_id"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *LiveRoomSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
