package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldUserID    = "user_id"
	FieldJobID     = "job_id"
	FieldSwipeID   = "swipe_id"
	FieldRequestID = "request_id"
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace
// and omitting entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// AIFields describes the qualification provider and model. Empty values are
// dropped.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithAIFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, AIFields(provider, model)...)
}

// ForUser scopes logger to one user. Zero ids are not logged.
func ForUser(logger *zap.Logger, userID uint) *zap.Logger {
	if userID == 0 {
		return WithFields(logger)
	}
	return WithFields(logger, zap.Uint(FieldUserID, userID))
}

func JobID(id uint) zap.Field {
	return zap.Uint(FieldJobID, id)
}

func SwipeID(id uint) zap.Field {
	return zap.Uint(FieldSwipeID, id)
}

func RequestID(id string) zap.Field {
	return zap.String(FieldRequestID, id)
}
