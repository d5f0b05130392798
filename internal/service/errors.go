package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for service layer
var (
	ErrNotConfigured   = errors.New("webhook destination not configured")
	ErrSinkRejected    = errors.New("webhook rejected notification")
	ErrSinkUnreachable = errors.New("webhook unreachable")
	ErrCaptchaRejected = errors.New("captcha rejected")
)

// SinkError records a non-2xx answer from the webhook. It is for logs only.
type SinkError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *SinkError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook returned %s", e.Status)
	}
	return fmt.Sprintf("webhook returned %s: %s", e.Status, e.Body)
}

func (e *SinkError) Unwrap() error {
	return ErrSinkRejected
}
