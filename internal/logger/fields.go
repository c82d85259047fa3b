package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldMethod is the structured log field key for the HTTP method of an API call.
	FieldMethod = "method"
	// FieldEndpoint is the structured log field key for the API path.
	FieldEndpoint = "endpoint"
	// FieldRequestID is the structured log field key for the X-Request-ID header value.
	FieldRequestID = "request_id"
	// FieldPage is the structured log field key for the view that emitted the entry.
	FieldPage = "page"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
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

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// RequestFields describes one API call. Empty values are dropped.
func RequestFields(method, endpoint, requestID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldMethod, Value: method},
		StringField{Key: FieldEndpoint, Value: endpoint},
		StringField{Key: FieldRequestID, Value: requestID},
	)
}

// ForPage returns a logger tagged with the page name.
func ForPage(logger *zap.Logger, page string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldPage, Value: page})...)
}
