// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"github.com/apache/thrift/lib/go/thrift"
)

// Bind constructs a service client over c's protocol. ctor is typically a
// generated NewXxxClient. The service does not own the connection; open and
// close it through c.
func Bind[T any](c *Client, ctor func(thrift.TClient) T) T {
	return ctor(thrift.NewTStandardClient(c.protocol, c.protocol))
}

// BindProtocol is Bind for constructors taking the protocol itself.
func BindProtocol[T any](c *Client, ctor func(thrift.TProtocol) T) T {
	return ctor(c.protocol)
}

// Handle is a Client with its bound service.
type Handle[T any] struct {
	*Client
	Service T
}

// New resolves cfg and binds ctor over the result.
//
//	h, err := thriftclient.New(cfg, calc.NewCalculatorClient)
//	...
//	err = h.Connect(ctx, func(ctx context.Context) error {
//	    sum, err = h.Service.Add(ctx, 1, 2)
//	    return err
//	})
func New[T any](cfg EndpointConfig, ctor func(thrift.TClient) T, opts ...Option) (*Handle[T], error) {
	c, err := NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Handle[T]{Client: c, Service: Bind(c, ctor)}, nil
}
