package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes notices to the application log. It is the default
// delivery path and the terminal handler behind the queue notifier's worker.
type LogNotifier struct {
	Logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notice Notice) error {
	fields := []zap.Field{
		zap.String("id", notice.ID),
		zap.String("severity", string(notice.Severity)),
	}
	if notice.User != "" {
		fields = append(fields, zap.String("user", notice.User))
	}
	switch notice.Severity {
	case SeverityError:
		n.Logger.Warn(notice.Message, fields...)
	default:
		n.Logger.Info(notice.Message, fields...)
	}
	return nil
}
