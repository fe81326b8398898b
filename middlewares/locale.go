package middlewares

import (
	"context"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/i18n"
)

type languageKey struct{}

// LocaleSources is the default lookup order: ?lang=, the lang cookie, then
// Accept-Language.
func LocaleSources() internal.Extractor {
	return internal.NewExtractor(
		internal.FromQuery("lang"),
		internal.FromCookie("lang"),
		internal.FromHeader("Accept-Language"),
	)
}

// Locale resolves the request's number and currency format and stores it
// where Context.Locale and i18n.FormatFromContext find it.
func Locale(reg *i18n.Registry, sources ...internal.ExtractorSource) internal.Middleware {
	ext := LocaleSources()
	if len(sources) > 0 {
		ext = internal.NewExtractor(sources...)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			pref, _ := ext.Extract(c)
			tag, lf := reg.Match(pref)

			ctx := i18n.WithFormat(c.Context(), lf)
			c.WithContext(context.WithValue(ctx, languageKey{}, tag))
			c.SetHeader("Content-Language", tag.String())
			return next(c)
		}
	}
}

// GetLanguage returns the tag chosen by Locale, or language.Und.
func GetLanguage(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(languageKey{}).(language.Tag); ok {
		return tag
	}
	return language.Und
}
