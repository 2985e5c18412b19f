package openai

import (
	"context"
	"time"
)

// timeoutFunc derives a bounded context for one external call.
type timeoutFunc func(ctx context.Context) (context.Context, context.CancelFunc)

func timeoutFor(d time.Duration) timeoutFunc {
	return func(ctx context.Context) (context.Context, context.CancelFunc) {
		if d <= 0 {
			return ctx, func() {}
		}
		return context.WithTimeout(ctx, d)
	}
}
