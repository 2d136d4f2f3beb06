package analyses

import "context"

type requestIDKey struct{}

// backgroundWithRequestID builds a fresh context for the async worker
// that outlives the HTTP request but keeps its request ID for logs.
func backgroundWithRequestID(requestID string) context.Context {
	if requestID == "" {
		return context.Background()
	}
	return context.WithValue(context.Background(), requestIDKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
