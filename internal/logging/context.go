package logging

import "context"

type logDataKeyType struct{}

// LogDataKey is the context key under which a request's LogData is stored.
// Exported so HTTP middleware can attach LogData with huma.WithValue.
var LogDataKey logDataKeyType

// WithLogData returns a context carrying the given LogData.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, LogDataKey, logData)
}

// GetLogData returns the LogData attached to the context, or nil.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(LogDataKey).(*LogData)
	return logData
}
