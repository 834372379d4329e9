package worker_handler

import (
	"encoding/json"
	"fmt"

	"github.com/QuangLP2607/DATN-final-sub001/internal/utils/types"
	worker_service "github.com/QuangLP2607/DATN-final-sub001/internal/worker/worker-service"
	"github.com/rs/zerolog/log"
)

func (wh *WorkerHandler) HandleSendClassInvite(raw json.RawMessage) error {
	var payload types.ClassInvitePayload

	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid class invite payload: %w", err)
	}

	log.Info().Str("classID", payload.ClassID).Str("userID", payload.UserID).Msg("sending class invite mail")

	return worker_service.SendClassInviteMail(payload.Email, payload.ClassName)
}
