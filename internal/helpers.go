package internal

import "strconv"

// ContextValue reads a typed value stored with Context.Set.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

type scalar interface {
	~string | ~int | ~int64 | ~bool
}

// Param converts a URL parameter, yielding the zero value when it does not parse.
func Param[T scalar](c Context, name string) T {
	v, _ := parse[T](c.Param(name))
	return v
}

// QueryDefault converts a query parameter, yielding def when it is missing
// or does not parse.
func QueryDefault[T scalar](c Context, name string, def T) T {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, ok := parse[T](raw)
	if !ok {
		return def
	}
	return v
}

func parse[T scalar](raw string) (T, bool) {
	var zero T
	var (
		v   any
		err error
	)
	switch any(zero).(type) {
	case string:
		v = raw
	case int:
		v, err = strconv.Atoi(raw)
	case int64:
		v, err = strconv.ParseInt(raw, 10, 64)
	case bool:
		v, err = strconv.ParseBool(raw)
	default:
		return zero, false
	}
	if err != nil {
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}
