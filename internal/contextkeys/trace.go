package contextkeys

import "context"

type traceIDKeyType struct{}

var traceIDKey = traceIDKeyType{}

// ContextWithTraceID помещает trace id в контекст запроса.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext извлекает trace id или пустую строку.
func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}
