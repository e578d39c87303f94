package logger

import "context"

type requestIDCtxKey struct{}

// WithRequestID stores the request ID so log records emitted deeper in the
// booking path can carry it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, id)
}

// RequestID returns the request ID stored by WithRequestID, or "" when the
// context carries none.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey{}).(string)
	return id
}
