package store

import "go.uber.org/zap"

// Notifier surfaces operation outcomes to the user (toast equivalent).
type Notifier interface {
	Info(message string)
	Error(message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Info(string)  {}
func (NopNotifier) Error(string) {}

// LogNotifier writes notifications to the structured log; the default when
// no UI notifier is injected.
type LogNotifier struct {
	Logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) Info(message string) {
	n.Logger.Info("notification", zap.String("message", message))
}

func (n *LogNotifier) Error(message string) {
	n.Logger.Warn("notification", zap.String("message", message))
}
