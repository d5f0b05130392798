package models

// ContactSubmission is a contact form payload as authored by a visitor.
// It is untrusted until it has passed validation on the relay.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Field identifies one editable field of a contact form.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Maximum lengths, in characters, retained after sanitization.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 100
	MaxMessageLength = 2000
)

// Get returns the value of the given field.
func (s ContactSubmission) Get(field Field) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldMessage:
		return s.Message
	}
	return ""
}

// Set assigns value to the given field. Unknown fields are ignored and
// reported with false.
func (s *ContactSubmission) Set(field Field, value string) bool {
	switch field {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldMessage:
		s.Message = value
	default:
		return false
	}
	return true
}
