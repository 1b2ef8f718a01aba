package service

import "strings"

// User-facing summaries carried by ValidationError.Message.
const (
	MsgMissingFields    = "Please fill in all required fields"
	MsgValidationFailed = "Validation failed"
)

// ValidationError reports a submission rejected because of its content.
// Errors lists one message per failed field rule.
type ValidationError struct {
	Message string
	Errors  []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Errors, "; ")
}
