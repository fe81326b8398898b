// Package validator collects field-level validation failures.
//
// Rules never short-circuit: [Apply] evaluates every rule and returns all
// failures at once, so a form can show every problem in one round trip.
//
//	err := validator.Apply(
//		validator.RequiredString("name", in.Name),
//		validator.MinNum("priceInCents", in.PriceInCents, 1),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		fields := errs.Map() // {"name": "is required"}
//	}
package validator

import (
	"errors"
	"strings"
)

// ValidationError is a single failed rule. TranslationKey and
// TranslationValues let callers swap Message for a localized text.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is the outcome of Apply.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (ve ValidationErrors) IsEmpty() bool { return len(ve) == 0 }

// Has reports whether field failed any rule.
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Get returns every message recorded for field, in rule order.
func (ve ValidationErrors) Get(field string) []string {
	var out []string
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

// Map keeps the first message per field.
func (ve ValidationErrors) Map() map[string]string {
	out := make(map[string]string, len(ve))
	for _, e := range ve {
		if _, seen := out[e.Field]; !seen {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Translate rewrites messages in place. Errors without a TranslationKey
// and a nil fn are left untouched.
func (ve ValidationErrors) Translate(fn func(key string, values map[string]any) string) {
	if fn == nil {
		return
	}
	for i := range ve {
		if ve[i].TranslationKey != "" {
			ve[i].Message = fn(ve[i].TranslationKey, ve[i].TranslationValues)
		}
	}
}

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs every rule and returns ValidationErrors, or nil when all pass.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r.Check != nil && !r.Check() {
			errs = append(errs, r.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors unwraps ValidationErrors from err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
