package audit

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType classifies auditable events in the contact pipeline
type EventType string

const (
	EventRateLimited        EventType = "rate_limited"
	EventAttachmentRejected EventType = "attachment_rejected"
	EventDispatchFailed     EventType = "dispatch_failed"
	EventArchiveFailed      EventType = "archive_failed"
	EventDraftReaped        EventType = "draft_reaped"
	EventUnauthorizedAccess EventType = "unauthorized_access"
)

// Event is one audit record. Subject values should be pre-masked by the
// caller; this logger never persists anything beyond stdout.
type Event struct {
	Event     EventType
	Subject   string
	IP        string
	RequestID string
	Details   map[string]interface{}
}

// Logger writes structured audit events via zap
type Logger struct {
	zap         *zap.Logger
	serviceName string
	environment string
}

var (
	defaultLogger *Logger
	initOnce      sync.Once
)

// Init sets up the process-wide audit logger
func Init(serviceName, environment string) *Logger {
	initOnce.Do(func() {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		zl, err := config.Build(zap.WithCaller(false))
		if err != nil {
			// Fall back to a no-op logger rather than failing startup
			zl = zap.NewNop()
		}

		defaultLogger = &Logger{
			zap:         zl,
			serviceName: serviceName,
			environment: environment,
		}
	})
	return defaultLogger
}

// Log records a single audit event. Safe to call before Init (no-op).
func Log(ev Event) {
	if defaultLogger == nil {
		return
	}
	defaultLogger.Log(ev)
}

func (l *Logger) Log(ev Event) {
	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(ev.Event)),
		zap.Time("at", time.Now().UTC()),
	}
	if ev.Subject != "" {
		fields = append(fields, zap.String("subject", ev.Subject))
	}
	if ev.IP != "" {
		fields = append(fields, zap.String("ip", ev.IP))
	}
	if ev.RequestID != "" {
		fields = append(fields, zap.String("request_id", ev.RequestID))
	}
	if len(ev.Details) > 0 {
		fields = append(fields, zap.Any("details", ev.Details))
	}
	l.zap.Info("audit", fields...)
}

// Sync flushes buffered log entries (call on shutdown)
func Sync() {
	if defaultLogger != nil {
		_ = defaultLogger.zap.Sync()
	}
}

// Environment derives the env label the same way gin does
func Environment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
