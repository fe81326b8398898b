package internal

// ExtractorSource reads one candidate value from a request.
type ExtractorSource = func(Context) (string, bool)

// Extractor returns the first non-empty value among its sources.
type Extractor struct {
	sources []ExtractorSource
}

func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func nonEmpty(v string) (string, bool) { return v, v != "" }

func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) { return nonEmpty(c.Header(name)) }
}

func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) { return nonEmpty(c.Query(name)) }
}

func FromParam(name string) ExtractorSource {
	return func(c Context) (string, bool) { return nonEmpty(c.Param(name)) }
}

func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		ck, err := c.Request().Cookie(name)
		if err != nil {
			return "", false
		}
		return nonEmpty(ck.Value)
	}
}
