// Package ctxlogger is a slog.Handler wrapper that merges attributes stashed
// on a context.Context into every log record, so a request/ws-message ID
// attached once at the top of a call chain shows up on every log line below
// it without threading it through every function signature.
package ctxlogger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// ContextHandler decorates another slog.Handler, adding any attrs stored
// on the context via AppendCtx after the record's own attrs.
type ContextHandler struct {
	slog.Handler
}

func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		for _, a := range attrs {
			r.AddAttrs(a)
		}
	}
	return h.Handler.Handle(ctx, r)
}

// AppendCtx returns a context carrying attr in addition to any already
// stashed on ctx by an earlier AppendCtx call.
func AppendCtx(ctx context.Context, attr slog.Attr) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, ok := ctx.Value(ctxKey{}).([]slog.Attr)
	if !ok {
		return context.WithValue(ctx, ctxKey{}, []slog.Attr{attr})
	}
	return context.WithValue(ctx, ctxKey{}, append(append([]slog.Attr{}, existing...), attr))
}
