package domain

// ContextKey is the type for request-scoped context keys
type ContextKey string

const (
	KeyUserID    ContextKey = "UserID"
	KeyUserEmail ContextKey = "UserEmail"
	KeyRequestID ContextKey = "RequestID"
)
