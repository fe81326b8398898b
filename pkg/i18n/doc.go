// Package i18n formats prices and dates for the visitor's locale.
//
// Prices are stored in cents and rendered with [LocaleFormat.FormatCents]:
//
//	i18n.NewLocaleFormat().FormatCents(2050) // "$20.50"
//
// A [Registry] resolves the Accept-Language header to one of the built-in
// formats using golang.org/x/text/language matching.
package i18n
