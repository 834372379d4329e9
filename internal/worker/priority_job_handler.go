package worker

import (
	"context"
	"fmt"

	"github.com/QuangLP2607/DATN-final-sub001/internal/queue"
	"github.com/QuangLP2607/DATN-final-sub001/internal/websocket"
	worker_handler "github.com/QuangLP2607/DATN-final-sub001/internal/worker/worker-handler"
	"github.com/redis/go-redis/v9"
)

func HandleJob(ctx context.Context, job queue.Job, redis *redis.Client, ws *websocket.Hub) error {
	workerHandler := worker_handler.NewWorkerHandler(ctx, redis, ws)
	switch job.Type {
	case queue.JobBroadcastMessagePosted,
		queue.JobBroadcastMessageEdited,
		queue.JobBroadcastMessageDeleted:
		return workerHandler.HandleBroadcastMessageEvent(job.Type, job.Payload)
	case queue.JobBroadcastMemberJoined, queue.JobBroadcastMemberLeft:
		return workerHandler.HandleBroadcastMemberEvent(job.Type, job.Payload)
	case queue.JobSendClassInvite:
		return workerHandler.HandleSendClassInvite(job.Payload)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}
