package i18n_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storefront/pkg/i18n"
)

func TestLocaleFormat_FormatCents(t *testing.T) {
	t.Parallel()

	us := i18n.NewLocaleFormat()
	de := i18n.NewLocaleFormat(
		i18n.WithDecimalSeparator(","),
		i18n.WithThousandsSeparator("."),
		i18n.WithCurrencySymbol("€"),
		i18n.WithSymbolPosition(i18n.SymbolAfter),
	)

	tests := []struct {
		name  string
		lf    *i18n.LocaleFormat
		cents int64
		want  string
	}{
		{"zero", us, 0, "$0.00"},
		{"single cent", us, 1, "$0.01"},
		{"preview example", us, 2050, "$20.50"},
		{"whole dollars", us, 1900, "$19.00"},
		{"grouping", us, 123456789, "$1,234,567.89"},
		{"exactly one thousand", us, 100000, "$1,000.00"},
		{"negative", us, -2050, "-$20.50"},
		{"min int64 does not overflow", us, math.MinInt64, "-$92,233,720,368,547,758.08"},
		{"symbol after", de, 123450, "1.234,50 €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.lf.FormatCents(tt.cents))
		})
	}
}

func TestLocaleFormat_FormatCurrency(t *testing.T) {
	t.Parallel()

	us := i18n.NewLocaleFormat()

	assert.Equal(t, "$20.50", us.FormatCurrency(20.5))
	assert.Equal(t, "$0.10", us.FormatCurrency(0.1))
	assert.Equal(t, "$0.00", us.FormatCurrency(math.NaN()))
	assert.Equal(t, "$0.00", us.FormatCurrency(math.Inf(1)))
}

func TestLocaleFormat_FormatInt(t *testing.T) {
	t.Parallel()

	us := i18n.NewLocaleFormat()
	assert.Equal(t, "999", us.FormatInt(999))
	assert.Equal(t, "12,345", us.FormatInt(12345))
	assert.Equal(t, "-1,000", us.FormatInt(-1000))

	bare := i18n.NewLocaleFormat(i18n.WithThousandsSeparator(""))
	assert.Equal(t, "12345", bare.FormatInt(12345))
}

func TestLocaleFormat_FormatDate(t *testing.T) {
	t.Parallel()

	d := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 9, 2024", i18n.NewLocaleFormat().FormatDate(d))
	assert.Equal(t, "09.03.2024", i18n.NewLocaleFormat(i18n.WithDateLayout("02.01.2006")).FormatDate(d))
}
