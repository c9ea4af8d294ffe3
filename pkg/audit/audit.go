package audit

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Workflow actions written to the audit trail
const (
	ActionApplicationSubmitted       = "application_submitted"
	ActionApplicationStatusChanged   = "application_status_changed"
	ActionInterviewScheduled         = "interview_scheduled"
	ActionInterviewUpdated           = "interview_updated"
	ActionCompanyCreated             = "company_created"
	ActionNotificationDeliveryFailed = "notification_delivery_failed"
	ActionAccessDenied               = "access_denied"
)

// Logger writes structured audit events through zap
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// New builds a production zap logger writing to stdout
func New(serviceName, environment string) *Logger {
	if environment == "" {
		environment = environmentFromGinMode()
	}

	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return NewWithZap(logger, serviceName, environment)
}

func NewWithZap(logger *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{zapLogger: logger, serviceName: serviceName, environment: environment}
}

// NewNop discards every event
func NewNop() *Logger {
	return NewWithZap(zap.NewNop(), "", "")
}

func levelFor(action string) zapcore.Level {
	switch action {
	case ActionNotificationDeliveryFailed:
		return zapcore.WarnLevel
	case ActionAccessDenied:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Record satisfies domain.AuditRecorder
func (l *Logger) Record(ctx context.Context, event domain.AuditEvent) {
	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", event.Action),
		zap.Time("at", time.Now().UTC()),
	}
	if event.ActorID != 0 {
		fields = append(fields, zap.Int64("actor_id", event.ActorID))
	}
	if event.Subject != "" {
		fields = append(fields, zap.String("subject_type", event.Subject), zap.Int64("subject_id", event.SubjectID))
	}
	if reqID := domain.RequestIDFrom(ctx); reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(levelFor(event.Action), event.Action, fields...)
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

func environmentFromGinMode() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
