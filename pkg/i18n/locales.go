package i18n

import (
	"context"

	"golang.org/x/text/language"
)

// Formats known to the storefront, keyed by BCP 47 tag.
var builtin = map[language.Tag]*LocaleFormat{
	language.AmericanEnglish: NewLocaleFormat(),
	language.BritishEnglish: NewLocaleFormat(
		WithCurrencySymbol("£"),
		WithDateLayout("2 Jan 2006"),
	),
	language.German: NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandsSeparator("."),
		WithCurrencySymbol("€"),
		WithSymbolPosition(SymbolAfter),
		WithDateLayout("02.01.2006"),
	),
	language.French: NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandsSeparator(" "),
		WithCurrencySymbol("€"),
		WithSymbolPosition(SymbolAfter),
		WithDateLayout("02/01/2006"),
	),
	language.Polish: NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandsSeparator(" "),
		WithCurrencySymbol("zł"),
		WithSymbolPosition(SymbolAfter),
		WithDateLayout("02.01.2006"),
	),
}

// Registry picks a LocaleFormat for a request's Accept-Language header.
type Registry struct {
	tags    []language.Tag
	formats []*LocaleFormat
	matcher language.Matcher
}

// NewRegistry builds a registry over the built-in formats. fallback is
// used when nothing in the header matches and must be one of them; an
// unknown fallback falls back to en-US.
func NewRegistry(fallback language.Tag) *Registry {
	if _, ok := builtin[fallback]; !ok {
		fallback = language.AmericanEnglish
	}

	r := &Registry{
		tags:    []language.Tag{fallback},
		formats: []*LocaleFormat{builtin[fallback]},
	}
	for tag, lf := range builtin {
		if tag == fallback {
			continue
		}
		r.tags = append(r.tags, tag)
		r.formats = append(r.formats, lf)
	}
	r.matcher = language.NewMatcher(r.tags)
	return r
}

// Match resolves an Accept-Language header. Malformed headers get the
// fallback.
func (r *Registry) Match(acceptLanguage string) (language.Tag, *LocaleFormat) {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return r.tags[0], r.formats[0]
	}
	_, idx, _ := r.matcher.Match(prefs...)
	return r.tags[idx], r.formats[idx]
}

// Default returns the fallback format.
func (r *Registry) Default() *LocaleFormat {
	return r.formats[0]
}

type formatKey struct{}

// WithFormat stores lf in ctx.
func WithFormat(ctx context.Context, lf *LocaleFormat) context.Context {
	return context.WithValue(ctx, formatKey{}, lf)
}

// FormatFromContext returns the request's format, en-US when none was set.
func FormatFromContext(ctx context.Context) *LocaleFormat {
	if lf, ok := ctx.Value(formatKey{}).(*LocaleFormat); ok && lf != nil {
		return lf
	}
	return builtin[language.AmericanEnglish]
}
