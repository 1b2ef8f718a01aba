package contactform

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   Field
	Tag     string
	Message string
}

// Result is the outcome of validating one candidate. A Result with no errors
// is valid.
type Result struct {
	Errors []FieldError
}

// Valid reports whether every rule passed.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Messages returns the human-readable error messages in field order.
func (r Result) Messages() []string {
	return lo.Map(r.Errors, func(e FieldError, _ int) string { return e.Message })
}

// MissingRequired reports whether any failure is a missing required field.
func (r Result) MissingRequired() bool {
	return lo.ContainsBy(r.Errors, func(e FieldError) bool { return e.Tag == "required" })
}

// Err returns nil for a valid result and an *InvalidError otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &InvalidError{Result: r}
}

// InvalidError carries a failed Result through error returns.
type InvalidError struct {
	Result Result
}

func (e *InvalidError) Error() string {
	return "invalid submission: " + strings.Join(e.Result.Messages(), "; ")
}

// AsInvalid extracts the failed Result from err, if it carries one.
func AsInvalid(err error) (Result, bool) {
	var inv *InvalidError
	if errors.As(err, &inv) {
		return inv.Result, true
	}
	return Result{}, false
}

// Validator checks candidates against a compiled rule table.
type Validator struct {
	rules    Rules
	validate *validator.Validate
	tags     map[Field]string
}

// Compile turns a rule table into a Validator. Each pattern is registered as
// its own validator tag so regexps never have to survive tag parsing.
func Compile(rules Rules) (*Validator, error) {
	v := validator.New()
	tags := make(map[Field]string, len(rules))
	for _, f := range Fields {
		rule, ok := rules[f]
		if !ok {
			continue
		}
		var parts []string
		if rule.Required {
			parts = append(parts, "required")
		} else {
			parts = append(parts, "omitempty")
		}
		if rule.MinLen > 0 {
			parts = append(parts, fmt.Sprintf("min=%d", rule.MinLen))
		}
		if rule.MaxLen > 0 {
			parts = append(parts, fmt.Sprintf("max=%d", rule.MaxLen))
		}
		if rule.Pattern != "" {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("contactform: %s pattern: %w", f, err)
			}
			tag := string(f) + "_pattern"
			if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return re.MatchString(fl.Field().String())
			}); err != nil {
				return nil, fmt.Errorf("contactform: register %s: %w", tag, err)
			}
			parts = append(parts, tag)
		}
		tags[f] = strings.Join(parts, ",")
	}
	return &Validator{rules: rules, validate: v, tags: tags}, nil
}

// MustCompile is like Compile but panics on a malformed rule table.
func MustCompile(rules Rules) *Validator {
	v, err := Compile(rules)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks the normalized form of c. It never mutates c.
func (v *Validator) Validate(c Candidate) Result {
	c = c.Normalize()
	var res Result
	for _, f := range Fields {
		tag, ok := v.tags[f]
		if !ok {
			continue
		}
		err := v.validate.Var(c.Value(f), tag)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			res.Errors = append(res.Errors, FieldError{Field: f, Tag: "invalid", Message: f.Label() + " is invalid"})
			continue
		}
		tagName := verrs[0].Tag()
		res.Errors = append(res.Errors, FieldError{
			Field:   f,
			Tag:     tagName,
			Message: v.message(f, tagName),
		})
	}
	return res
}

func (v *Validator) message(f Field, tag string) string {
	rule := v.rules[f]
	switch tag {
	case "required":
		return f.Label() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %d characters", f.Label(), rule.MinLen)
	case "max":
		return fmt.Sprintf("%s cannot exceed %d characters", f.Label(), rule.MaxLen)
	default:
		if rule.PatternMessage != "" {
			return rule.PatternMessage
		}
		return f.Label() + " is invalid"
	}
}

var (
	Client = MustCompile(ClientRules)
	Server = MustCompile(ServerRules)
	Store  = MustCompile(StoreRules)
)
