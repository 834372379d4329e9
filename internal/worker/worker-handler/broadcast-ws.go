package worker_handler

import (
	"encoding/json"
	"fmt"

	"github.com/QuangLP2607/DATN-final-sub001/internal/queue"
	"github.com/QuangLP2607/DATN-final-sub001/internal/utils/types"
	"github.com/QuangLP2607/DATN-final-sub001/internal/websocket"
)

// jobEventType maps queue job types onto the event names subscribers see.
func jobEventType(jobType string) string {
	switch jobType {
	case queue.JobBroadcastMessagePosted:
		return types.EventMessagePosted
	case queue.JobBroadcastMessageEdited:
		return types.EventMessageEdited
	case queue.JobBroadcastMessageDeleted:
		return types.EventMessageDeleted
	case queue.JobBroadcastMemberJoined:
		return types.EventMemberJoined
	case queue.JobBroadcastMemberLeft:
		return types.EventMemberLeft
	}
	return jobType
}

func (wh *WorkerHandler) HandleBroadcastMessageEvent(jobType string, raw json.RawMessage) error {
	var payload types.MessageEventPayload

	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid message event payload: %w", err)
	}

	msg := websocket.OutgoingMessage{
		Type:      jobEventType(jobType),
		ClassID:   payload.ClassID,
		Payload:   raw,
		Timestamp: payload.CreatedAt.Unix(),
	}

	// the sender already has the message, deliver to the rest of the class
	wh.Ws.BroadcastToClassExcept(payload.ClassID, msg, payload.SenderID)

	return nil
}

func (wh *WorkerHandler) HandleBroadcastMemberEvent(jobType string, raw json.RawMessage) error {
	var payload types.MemberEventPayload

	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid member event payload: %w", err)
	}

	msg := websocket.OutgoingMessage{
		Type:      jobEventType(jobType),
		ClassID:   payload.ClassID,
		Payload:   raw,
		Timestamp: payload.OccurredAt.Unix(),
	}

	wh.Ws.BroadcastToClass(payload.ClassID, msg)
	return nil
}
