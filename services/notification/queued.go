package notification

import (
	"context"
	"fmt"

	"halo/models"
	"halo/services/tasks"
	"halo/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the subset of *asynq.Client used for email hand-off.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuedMailer hands emails to the background worker. Send succeeds once the
// task is durably queued.
type QueuedMailer struct {
	client Enqueuer
}

func NewQueuedMailer(client Enqueuer) *QueuedMailer {
	return &QueuedMailer{client: client}
}

func (q *QueuedMailer) Send(ctx context.Context, msg models.EmailPayload) error {
	task, opts, err := tasks.NewEmailTask(msg)
	if err != nil {
		return fmt.Errorf("failed to build email task: %w", err)
	}
	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}
	utils.GetLogger().Debug("email queued", zap.String("taskId", info.ID), zap.String("to", msg.To))
	return nil
}
