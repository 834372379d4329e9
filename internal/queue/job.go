package queue

import "encoding/json"

type Job struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Priority  int             `json:"priority"`
	Retry     int             `json:"retry"`
	MaxRetry  int             `json:"max_retry"`
	ErrorMsg  string          `json:"error_msg,omitempty"`
	CreatedAt int64           `json:"created_at"`
	ExpireAt  int64           `json:"expired_at"`
}

// Job types handled by the worker pool.
const (
	JobBroadcastMessagePosted  = "broadcast_message_posted"
	JobBroadcastMessageEdited  = "broadcast_message_edited"
	JobBroadcastMessageDeleted = "broadcast_message_deleted"
	JobBroadcastMemberJoined   = "broadcast_member_joined"
	JobBroadcastMemberLeft     = "broadcast_member_left"
	JobSendClassInvite         = "send_class_invite"
)

func MustMarshal(payload any) json.RawMessage {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil
	}

	return b
}
