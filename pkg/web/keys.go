package web

import "context"

type userIDKey struct{}

type requestIDKey struct{}

// WithUserID adds an authenticated user ID to the context.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID retrieves the authenticated user ID from the context.
// Returns the ID and a boolean indicating whether it was found.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID retrieves the request ID from the context.
// Returns the request ID and a boolean indicating whether it was found.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
