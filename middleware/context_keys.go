package middleware

// Context keys used by middleware and handlers. Gin contexts are string
// keyed, so these are plain constants.
const (
	// UserIDKey holds the authenticated user's ID.
	UserIDKey = "userID"
	// RequestIDKey holds the per-request correlation ID.
	RequestIDKey = "request_id"
)
