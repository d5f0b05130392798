package contact

import "github.com/denischpt/portfolio/internal/models"

// ContactRequest represents a contact form submission. Fields are checked
// by the shared validator, not by binding tags, so that rule order is fixed.
type ContactRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	RecaptchaToken string `json:"recaptcha_token,omitempty"`
}

// Submission converts the request to the domain type
func (r ContactRequest) Submission() models.ContactSubmission {
	return models.ContactSubmission{
		Name:    r.Name,
		Email:   r.Email,
		Message: r.Message,
	}
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	Version           string `json:"version"`
	WebhookConfigured bool   `json:"webhook_configured"`
}
