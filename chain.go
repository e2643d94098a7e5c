// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// chain is the transport a client's protocol is bound to. It forwards to the
// outermost layer and rebuilds all layers on the first Open after a Close:
// a closed THttpClient drops its request buffer and a closed TZlibTransport
// its compressor, and neither comes back on Open.
type chain struct {
	build  func() ([]Layer, error)
	layers []Layer
	stale  bool
}

var _ thrift.TTransport = (*chain)(nil)

func newChain(build func() ([]Layer, error)) (*chain, error) {
	layers, err := build()
	if err != nil {
		return nil, err
	}
	return &chain{build: build, layers: layers}, nil
}

func (c *chain) top() thrift.TTransport { return c.layers[len(c.layers)-1].Transport }

// Layers returns a copy of the current layers, base first.
func (c *chain) Layers() []Layer {
	out := make([]Layer, len(c.layers))
	copy(out, c.layers)
	return out
}

func (c *chain) Open() error {
	if c.stale {
		layers, err := c.build()
		if err != nil {
			return err
		}
		c.layers = layers
		c.stale = false
	}
	return c.top().Open()
}

func (c *chain) IsOpen() bool { return !c.stale && c.top().IsOpen() }

func (c *chain) Close() error {
	c.stale = true
	err := c.top().Close()
	if err != nil && len(c.layers) > 1 {
		// A decorator failing to flush on close (zlib) returns before
		// closing what it wraps.
		_ = c.layers[0].Transport.Close()
	}
	return err
}

func (c *chain) Read(p []byte) (int, error) { return c.top().Read(p) }

func (c *chain) Write(p []byte) (int, error) { return c.top().Write(p) }

func (c *chain) Flush(ctx context.Context) error { return c.top().Flush(ctx) }

func (c *chain) RemainingBytes() uint64 { return c.top().RemainingBytes() }
