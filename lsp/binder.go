package lsp

import (
	"context"

	"golang.org/x/exp/jsonrpc2"
)

type Binder struct {
	h jsonrpc2.Handler
}

func NewBinder(h jsonrpc2.Handler) *Binder {
	return &Binder{h}
}

func (b Binder) Bind(ctx context.Context, conn *jsonrpc2.Connection) (jsonrpc2.ConnectionOptions, error) {
	return jsonrpc2.ConnectionOptions{
		Framer:  jsonrpc2.HeaderFramer(),
		Handler: b.h,
	}, nil
}
