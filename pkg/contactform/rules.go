// Package contactform holds the field rules for contact-form submissions.
//
// The same rule tables are compiled into every process that needs them: the
// API server uses ServerRules as the authority on what gets persisted, the
// record stores use StoreRules as their schema, and the terminal client uses
// ClientRules for immediate feedback before anything goes over the wire.
package contactform

import "strings"

// Field names a submission field.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists every submission field in the order errors are reported.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// Label returns the human-readable field name used in messages.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldMessage:
		return "Message"
	default:
		return string(f)
	}
}

// Rule describes the constraints on a single field. Zero MinLen/MaxLen and an
// empty Pattern mean "no constraint". Lengths are counted in characters.
type Rule struct {
	Required       bool
	MinLen         int
	MaxLen         int
	Pattern        string
	PatternMessage string
}

// Rules maps each field to its rule. Fields without an entry are unchecked.
type Rules map[Field]Rule

// emailPattern is deliberately loose: something, an @, and a dotted domain.
const emailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

// ClientRules mirrors the form's input constraints.
var ClientRules = Rules{
	FieldName:    {Required: true, MinLen: 2, MaxLen: 50},
	FieldEmail:   {Required: true, Pattern: emailPattern, PatternMessage: "Please provide a valid email address"},
	FieldMessage: {Required: true, MinLen: 10, MaxLen: 1000},
}

// ServerRules is the endpoint's own pre-check before anything reaches a store.
var ServerRules = Rules{
	FieldName:    {Required: true},
	FieldEmail:   {Required: true, Pattern: `@`, PatternMessage: "Please provide a valid email address"},
	FieldMessage: {Required: true},
}

// StoreRules is the record schema every store enforces on create.
var StoreRules = Rules{
	FieldName:    {Required: true, MaxLen: 50},
	FieldEmail:   {Required: true, Pattern: emailPattern, PatternMessage: "Please provide a valid email address"},
	FieldMessage: {Required: true, MaxLen: 1000},
}

// Candidate is a submission as received from a visitor.
type Candidate struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Normalize returns a copy with surrounding whitespace removed from every field.
func (c Candidate) Normalize() Candidate {
	return Candidate{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Message: strings.TrimSpace(c.Message),
	}
}

// Value returns the raw value of field f.
func (c Candidate) Value(f Field) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldEmail:
		return c.Email
	case FieldMessage:
		return c.Message
	default:
		return ""
	}
}
