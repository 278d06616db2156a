package controller

import "time"

// ActionEvent describes one completed controller action for tracing.
type ActionEvent struct {
	Action   string
	Context  string
	RecordID string
	Duration time.Duration
	Err      error
}

// Logger records controller action events. The default is a no-op; hosts
// attach their own structured logger via WithLogger.
type Logger interface {
	LogAction(ActionEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(ActionEvent)

// LogAction implements Logger.
func (f LoggerFunc) LogAction(event ActionEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogAction(ActionEvent) {}
