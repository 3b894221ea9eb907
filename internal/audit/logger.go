package audit

import "go.uber.org/zap"

// Logger writes audit events as structured log lines. Events are not
// retained anywhere else.
type Logger struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log.Named("audit")}
}

func (l *Logger) Log(ev Event) error {
	fields := []zap.Field{
		zap.String("actor", ev.Actor),
		zap.String("role", ev.Role),
		zap.String("action", ev.Action),
		zap.String("entity", ev.Entity),
	}
	if ev.EntityID != "" {
		fields = append(fields, zap.String("entity_id", ev.EntityID))
	}
	if ev.Metadata != nil {
		fields = append(fields, zap.Any("metadata", ev.Metadata))
	}

	l.log.Info("audit", fields...)
	return nil
}
