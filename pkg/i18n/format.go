package i18n

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// SymbolPosition places the currency symbol around the amount.
type SymbolPosition uint8

const (
	SymbolBefore SymbolPosition = iota // $20.50
	SymbolAfter                        // 20,50 €
)

// LocaleFormat renders numbers, money and dates for one locale.
// It is immutable once built and safe to share.
type LocaleFormat struct {
	decimal   string
	thousands string
	symbol    string
	position  SymbolPosition
	date      string
}

// FormatOption adjusts a LocaleFormat under construction.
type FormatOption func(*LocaleFormat)

// NewLocaleFormat starts from en-US conventions and applies opts.
func NewLocaleFormat(opts ...FormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		decimal:   ".",
		thousands: ",",
		symbol:    "$",
		position:  SymbolBefore,
		date:      "Jan 2, 2006",
	}
	for _, opt := range opts {
		opt(lf)
	}
	return lf
}

func WithDecimalSeparator(s string) FormatOption {
	return func(lf *LocaleFormat) { lf.decimal = s }
}

func WithThousandsSeparator(s string) FormatOption {
	return func(lf *LocaleFormat) { lf.thousands = s }
}

func WithCurrencySymbol(s string) FormatOption {
	return func(lf *LocaleFormat) { lf.symbol = s }
}

func WithSymbolPosition(p SymbolPosition) FormatOption {
	return func(lf *LocaleFormat) { lf.position = p }
}

// WithDateLayout sets the time layout used by FormatDate.
func WithDateLayout(layout string) FormatOption {
	return func(lf *LocaleFormat) { lf.date = layout }
}

// FormatCents renders an amount held in minor units, so 2050 becomes
// "$20.50" in en-US. The arithmetic stays in integers.
func (lf *LocaleFormat) FormatCents(cents int64) string {
	neg := cents < 0
	// Negating math.MinInt64 overflows; work in uint64.
	abs := uint64(cents)
	if neg {
		abs = -abs
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if lf.position == SymbolBefore {
		b.WriteString(lf.symbol)
	}

	b.WriteString(lf.group(strconv.FormatUint(abs/100, 10)))
	b.WriteString(lf.decimal)
	frac := abs % 100
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatUint(frac, 10))

	if lf.position == SymbolAfter {
		b.WriteByte(' ')
		b.WriteString(lf.symbol)
	}
	return b.String()
}

// FormatCurrency renders a major-unit amount, rounded to the cent.
func (lf *LocaleFormat) FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return lf.FormatCents(int64(math.Round(amount * 100)))
}

// FormatInt renders n with thousands grouping.
func (lf *LocaleFormat) FormatInt(n int64) string {
	if n < 0 {
		return "-" + lf.group(strconv.FormatUint(-uint64(n), 10))
	}
	return lf.group(strconv.FormatInt(n, 10))
}

func (lf *LocaleFormat) FormatDate(t time.Time) string {
	return t.Format(lf.date)
}

func (lf *LocaleFormat) group(digits string) string {
	if len(digits) <= 3 || lf.thousands == "" {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(lf.thousands)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
