package lsp

import (
	"context"

	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/exp/jsonrpc2"
)

type Middleware func(next jsonrpc2.Handler) jsonrpc2.Handler

// Chain applies middlewares to a handler, first middleware outermost.
func Chain(h jsonrpc2.Handler, middlewares ...Middleware) jsonrpc2.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// ContextLogMiddleware tags every handled message's context with the
// connection name, method and message type.
func ContextLogMiddleware(name string) Middleware {
	return func(next jsonrpc2.Handler) jsonrpc2.Handler {
		f := func(ctx context.Context, r *jsonrpc2.Request) (any, error) {
			ctx = slogctx.Append(ctx, "name", name, "method", r.Method)
			if r.IsCall() {
				ctx = slogctx.Append(ctx, "type", "request", "id", r.ID.Raw())
			} else {
				ctx = slogctx.Append(ctx, "type", "notification")
			}
			return next.Handle(ctx, r)
		}
		return jsonrpc2.HandlerFunc(f)
	}
}
