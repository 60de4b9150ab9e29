package search

import "context"

const RequestIDHeader = "X-Request-Id"

type ctxKey string

const contextKeyRequestID ctxKey = "request-id"

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}
