package worker

import (
	"context"
	"encoding/json"

	"coladay/config"
	"coladay/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitNoticeWorker runs the asynq worker draining queued notices in the
// background. The terminal notifier must not be the queue notifier itself.
func InitNoticeWorker(terminal notification.Notifier, logger *zap.Logger) *asynq.Server {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeNoticeDeliver, handleNoticeTask(terminal, logger))

	go func() {
		logger.Info("Starting notice worker")
		if err := srv.Run(mux); err != nil {
			logger.Fatal("Notice worker failed to start", zap.Error(err))
		}
	}()

	return srv
}

func handleNoticeTask(terminal notification.Notifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var notice notification.Notice
		if err := json.Unmarshal(task.Payload(), &notice); err != nil {
			logger.Warn("Invalid notice payload", zap.Error(err))
			return err
		}
		return terminal.Notify(ctx, notice)
	}
}
