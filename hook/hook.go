// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hook wires a thriftclient.Connector into a host's request
// lifecycle: the connection is opened before each request and closed after
// it, whatever the handler does. This is the always-connect mode.
//
// Hosts serve requests concurrently while a thriftclient.Client is not safe
// for concurrent use. Either give each consumer its own client or pass
// Serialized() so one request at a time holds the connection.
package hook

import (
	"sync"

	"go.uber.org/zap"

	"github.com/luxfi/thriftclient"
)

// Option configures a hook
type Option func(*options)

type options struct {
	log *zap.Logger
	mu  *sync.Mutex
}

// WithLogger sets the logger for open/close failures
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// Serialized makes requests take turns on the connection: each holds a lock
// from open to close.
func Serialized() Option {
	return func(o *options) { o.mu = new(sync.Mutex) }
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	return o
}

// bracket opens c, runs fn and closes c, also when fn panics. A failed open
// is returned without running fn.
func (o *options) bracket(c thriftclient.Connector, method string, fn func()) error {
	if o.mu != nil {
		o.mu.Lock()
		defer o.mu.Unlock()
	}
	if err := c.Open(); err != nil {
		o.log.Error("thrift connection failed", zap.String("method", method), zap.Error(err))
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			o.log.Warn("thrift connection close failed", zap.String("method", method), zap.Error(err))
		}
	}()
	fn()
	return nil
}
