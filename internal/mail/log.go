package mail

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of delivering them. It is
// meant for local development.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender; a nil logger discards output.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send implements Sender.
func (l *LogSender) Send(_ context.Context, m Message) (string, error) {
	id := uuid.NewString()
	l.logger.Info("email not delivered (log provider)",
		zap.String("id", id),
		zap.Strings("to", m.To),
		zap.String("reply_to", m.ReplyTo),
		zap.String("subject", m.Subject),
		zap.String("body", m.Text),
	)
	return id, nil
}
