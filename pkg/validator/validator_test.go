package validator_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.RequiredString("name", "Book"),
			validator.MinNum("priceInCents", int64(1999), 1),
		)
		require.NoError(t, err)
	})

	t.Run("collects every failure in order", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.RequiredString("name", "  "),
			validator.MinNum("priceInCents", int64(-5), 1),
			validator.RequiredString("description", "ok"),
			validator.MaxLenString("name", "  ", 1),
		)
		require.Error(t, err)
		require.True(t, validator.IsValidationError(err))

		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 3)
		assert.Equal(t, []string{"is required", "must be at most 1 characters"}, errs.Get("name"))
		assert.Equal(t, map[string]string{
			"name":         "is required",
			"priceInCents": "must be at least 1",
		}, errs.Map())
		assert.False(t, errs.Has("description"))
		assert.Contains(t, err.Error(), "priceInCents: must be at least 1")
	})

	t.Run("wrapped errors are still extracted", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("create product: %w", validator.Apply(validator.RequiredString("name", "")))
		assert.True(t, validator.IsValidationError(err))
		assert.Len(t, validator.ExtractValidationErrors(err), 1)
	})

	t.Run("other errors", func(t *testing.T) {
		t.Parallel()

		assert.False(t, validator.IsValidationError(errors.New("boom")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})
}

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule validator.Rule
		ok   bool
	}{
		{"required string set", validator.RequiredString("f", "x"), true},
		{"required string blank", validator.RequiredString("f", "\t\n"), false},
		{"min len counts runes", validator.MinLenString("f", "żółw", 4), true},
		{"min len short", validator.MinLenString("f", "abc", 8), false},
		{"max len", validator.MaxLenString("f", "abcd", 3), false},
		{"required num zero", validator.RequiredNum("f", 0), false},
		{"required num", validator.RequiredNum("f", 0.5), true},
		{"min num boundary", validator.MinNum("f", 1, 1), true},
		{"min num below", validator.MinNum("f", int64(0), 1), false},
		{"max num", validator.MaxNum("f", uint(11), 10), false},
		{"check false", validator.Check("f", false, "bad"), false},
		{"when skips", validator.When(false, validator.RequiredString("f", "")), true},
		{"when applies", validator.When(true, validator.RequiredString("f", "")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.ok, validator.Apply(tt.rule) == nil)
		})
	}
}

func TestValidationErrors_Translate(t *testing.T) {
	t.Parallel()

	dict := map[string]string{
		validator.KeyRequired:  "{field} is required.",
		validator.KeyMinLength: "{field} needs {min}+ characters.",
	}
	translate := func(key string, values map[string]any) string {
		out, ok := dict[key]
		if !ok {
			return key
		}
		for k, v := range values {
			out = strings.ReplaceAll(out, "{"+k+"}", fmt.Sprint(v))
		}
		return out
	}

	t.Run("rewrites messages with keys", func(t *testing.T) {
		t.Parallel()

		errs := validator.ExtractValidationErrors(validator.Apply(
			validator.RequiredString("email", ""),
			validator.MinLenString("password", "abc", 8),
			validator.Rule{Check: func() bool { return false }, Error: validator.ValidationError{Field: "x", Message: "raw"}},
		))
		errs.Translate(translate)

		assert.Equal(t, "email is required.", errs[0].Message)
		assert.Equal(t, "password needs 8+ characters.", errs[1].Message)
		assert.Equal(t, "raw", errs[2].Message)
		assert.Equal(t, validator.KeyRequired, errs[0].TranslationKey)
	})

	t.Run("nil func and empty set are no-ops", func(t *testing.T) {
		t.Parallel()

		errs := validator.ValidationErrors{{Field: "a", Message: "m", TranslationKey: validator.KeyRequired}}
		errs.Translate(nil)
		assert.Equal(t, "m", errs[0].Message)

		var none validator.ValidationErrors
		none.Translate(translate)
		assert.True(t, none.IsEmpty())
	})
}
