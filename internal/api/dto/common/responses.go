package common

// StatusResponse is the body of every contact relay response. Exactly one
// of Message or Error is set.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewSuccessResponse creates a new successful response
func NewSuccessResponse(message string) StatusResponse {
	return StatusResponse{
		Success: true,
		Message: message,
	}
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string) StatusResponse {
	return StatusResponse{
		Success: false,
		Error:   message,
	}
}
