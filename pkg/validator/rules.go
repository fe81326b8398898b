package validator

import (
	"cmp"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Translation keys attached to the built-in rules.
const (
	KeyRequired  = "validation.required"
	KeyMinLength = "validation.min_length"
	KeyMaxLength = "validation.max_length"
	KeyMin       = "validation.min"
	KeyMax       = "validation.max"
	KeyInvalid   = "validation.invalid"
)

// RequiredString fails on empty or whitespace-only input.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{
			Field:             field,
			Message:           "is required",
			TranslationKey:    KeyRequired,
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinLenString counts runes, not bytes.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at least %d characters", min),
			TranslationKey:    KeyMinLength,
			TranslationValues: map[string]any{"field": field, "min": min},
		},
	}
}

func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at most %d characters", max),
			TranslationKey:    KeyMaxLength,
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}

// Number covers the numeric kinds the rules accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// RequiredNum fails on the zero value.
func RequiredNum[T Number](field string, value T) Rule {
	return Rule{
		Check: func() bool { return value != 0 },
		Error: ValidationError{
			Field:             field,
			Message:           "is required",
			TranslationKey:    KeyRequired,
			TranslationValues: map[string]any{"field": field},
		},
	}
}

func MinNum[T Number](field string, value, min T) Rule {
	return Rule{
		Check: func() bool { return cmp.Compare(value, min) >= 0 },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at least %v", min),
			TranslationKey:    KeyMin,
			TranslationValues: map[string]any{"field": field, "min": min},
		},
	}
}

func MaxNum[T Number](field string, value, max T) Rule {
	return Rule{
		Check: func() bool { return cmp.Compare(value, max) <= 0 },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at most %v", max),
			TranslationKey:    KeyMax,
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}

// Check turns an already computed condition into a rule, for checks the
// built-ins do not cover (parse failures, upload sniffing).
func Check(field string, ok bool, message string) Rule {
	return Rule{
		Check: func() bool { return ok },
		Error: ValidationError{
			Field:             field,
			Message:           message,
			TranslationKey:    KeyInvalid,
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// When returns rule if cond holds, otherwise a rule that always passes.
// It lets dependent checks be skipped after a more basic one failed.
func When(cond bool, rule Rule) Rule {
	if cond {
		return rule
	}
	return Rule{Check: func() bool { return true }}
}
