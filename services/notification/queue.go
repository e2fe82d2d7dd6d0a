package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeNoticeDeliver is the asynq task type carrying one notice.
const TypeNoticeDeliver = "notice:deliver"

// QueueNotifier enqueues notices for asynchronous delivery by the
// background worker, so slow delivery never blocks a booking request.
type QueueNotifier struct {
	Client *asynq.Client
}

func NewQueueNotifier(client *asynq.Client) *QueueNotifier {
	return &QueueNotifier{Client: client}
}

func (n *QueueNotifier) Notify(ctx context.Context, notice Notice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}
	task := asynq.NewTask(TypeNoticeDeliver, payload)
	if _, err := n.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue notice: %w", err)
	}
	return nil
}
