//go:build !nojson

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"github.com/apache/thrift/lib/go/thrift"
)

func init() {
	// JSON is optional; build with -tags nojson to leave it out.
	registerProtocol(ProtocolJSON, func(t thrift.TTransport, _ *thrift.TConfiguration) thrift.TProtocol {
		return thrift.NewTJSONProtocol(t)
	})
}
