// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hook

import (
	"fmt"
	"net/http"

	rpc "github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"

	"github.com/luxfi/thriftclient"
)

// NewJSONRPCServer exposes services over JSON-RPC 2.0 with the connection to
// the thrift backend opened and closed around every request. Service methods
// follow the gorilla/rpc shape:
//
//	func (s *Svc) Method(r *http.Request, args *Args, reply *Reply) error
//
// Services are registered under their type name.
func NewJSONRPCServer(c thriftclient.Connector, services []any, opts ...Option) (http.Handler, error) {
	s := rpc.NewServer()
	s.RegisterCodec(json2.NewCodec(), "application/json")
	for _, svc := range services {
		if err := s.RegisterService(svc, ""); err != nil {
			return nil, fmt.Errorf("register %T: %w", svc, err)
		}
	}
	return Middleware(c, s, opts...), nil
}
