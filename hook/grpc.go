// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hook

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/luxfi/thriftclient"
)

// UnaryServerInterceptor brackets each unary call with c.Open and c.Close.
// A failed open ends the call with codes.Unavailable.
func UnaryServerInterceptor(c thriftclient.Connector, opts ...Option) grpc.UnaryServerInterceptor {
	o := newOptions(opts)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		var (
			resp any
			err  error
		)
		if oerr := o.bracket(c, info.FullMethod, func() {
			resp, err = handler(ctx, req)
		}); oerr != nil {
			return nil, status.Error(codes.Unavailable, oerr.Error())
		}
		return resp, err
	}
}

// StreamServerInterceptor holds the connection open for the whole stream.
func StreamServerInterceptor(c thriftclient.Connector, opts ...Option) grpc.StreamServerInterceptor {
	o := newOptions(opts)
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		var err error
		if oerr := o.bracket(c, info.FullMethod, func() {
			err = handler(srv, ss)
		}); oerr != nil {
			return status.Error(codes.Unavailable, oerr.Error())
		}
		return err
	}
}
