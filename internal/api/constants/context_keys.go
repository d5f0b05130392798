package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyRequestID = "RequestID"
	ContextKeyLanguage  = "language"
)
