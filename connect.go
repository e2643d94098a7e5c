// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"context"

	"go.uber.org/zap"
)

// Open connects the transport chain. Any failure of the underlying transport
// is returned as a *ConnectionError wrapping it; nothing is retried.
//
// In always-connect mode the host calls Open before every unit of work and
// Close after it, see package hook.
func (c *Client) Open() error {
	if err := c.chain.Open(); err != nil {
		c.log.Warn("unable to connect to thrift server", zap.Error(err))
		return &ConnectionError{Endpoint: c.endpoint.URI, Err: err}
	}
	c.connected = true
	c.log.Debug("thrift connection opened")
	return nil
}

// Close releases the connection. The next Open starts from a fresh chain.
func (c *Client) Close() error {
	c.connected = false
	if err := c.chain.Close(); err != nil {
		c.log.Debug("thrift connection closed with error", zap.Error(err))
		return err
	}
	c.log.Debug("thrift connection closed")
	return nil
}

// Connect opens the connection, runs fn and closes the connection on every
// exit path, including a panic in fn. If Open fails fn is not run and the
// *ConnectionError is returned. fn's error takes precedence over a Close
// error.
//
// Inside an Open or Connect already in effect on c, Connect runs fn in that
// scope: the connection is neither reopened nor closed.
func (c *Client) Connect(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if c.connected {
		return fn(ctx)
	}
	if err := c.Open(); err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ctx)
}

// Call is Connect for functions returning a value.
func Call[T any](ctx context.Context, c *Client, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := c.Connect(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

// AutoConnect wraps fn for a single call. With AlwaysConnect the host hooks
// already bracket the call, so fn runs as is; otherwise it runs inside
// Connect.
func (c *Client) AutoConnect(fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if c.cfg.AlwaysConnect {
			return fn(ctx)
		}
		return c.Connect(ctx, fn)
	}
}

// AutoCall is AutoConnect for functions returning a value.
func AutoCall[T any](c *Client, fn func(ctx context.Context) (T, error)) func(ctx context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		if c.cfg.AlwaysConnect {
			return fn(ctx)
		}
		return Call(ctx, c, fn)
	}
}
