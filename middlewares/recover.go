package middlewares

import (
	"log/slog"
	"runtime"

	"github.com/dmitrymomot/storefront/internal"
)

const defaultStackSize = 4 << 10

// Recover converts a panic into a *PanicError and logs it with the stack.
func Recover() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				stack := make([]byte, defaultStackSize)
				stack = stack[:runtime.Stack(stack, false)]
				c.LogError("panic recovered",
					slog.Any("panic", r),
					slog.String("stack", string(stack)),
				)
				err = &PanicError{Value: r, Stack: stack}
			}()
			return next(c)
		}
	}
}
