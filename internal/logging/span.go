package logging

import (
	"context"
	"time"
)

// maxSpanErrLen bounds the error text recorded on span end lines; the full
// error is reported by the caller.
const maxSpanErrLen = 32

// Span emits a start line and returns a context whose logger carries kv, plus
// a function that emits the matching end line.
//
// Usage:
//
//	ctx, end := logging.Span(ctx, "CMD:build", "resourceId", id)
//	defer func() { end(err) }()
//
// Lines:
//   - Start:   <name>/S
//   - Success: <name>/EOK   (err="", elapsed)
//   - Failure: <name>/EFAIL (err=<truncated>, elapsed)
//
// Span lines are mechanical records and always use INFO.
func Span(ctx context.Context, name string, kv ...any) (context.Context, func(err error)) {
	startAt := time.Now()

	logger := FromContext(ctx)
	if len(kv) > 0 {
		logger = logger.With(kv...)
	}
	ctx = WithLogger(ctx, logger)
	logger.Info(ctx, name+"/S")

	end := func(err error) {
		elapsed := time.Since(startAt).Seconds()
		if err == nil {
			logger.Info(ctx, name+"/EOK", "err", "", "elapsed", elapsed)
			return
		}
		msg := err.Error()
		if len(msg) > maxSpanErrLen {
			msg = msg[:maxSpanErrLen] + "..."
		}
		logger.Info(ctx, name+"/EFAIL", "err", msg, "elapsed", elapsed)
	}
	return ctx, end
}
