// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package thriftclient assembles Apache Thrift client stacks from a
// declarative endpoint description.
//
// # Transport Selection
//
// The endpoint URI picks the base transport:
//
//	tcp://127.0.0.1          TSocket, port defaults to 9090
//	tcps://localhost:5533/   TSSLSocket
//	http://myservice.local/  THttpClient (https:// for TLS)
//	unix:///tmp/mysocket     TSocket over a unix socket, also unix:/tmp/mysocket
//	unix:./mysocket          relative socket path
//	unixs:/tmp/mysocket      TSSLSocket over a unix socket
//
// Unix URIs take zero or three slashes after the scheme; anything that parses
// as a host is rejected.
//
// Optional decorators are stacked buffered, then zlib, then framed. The
// protocol (BINARY, COMPACT or JSON) wraps the outermost transport. JSON is
// compiled in unless built with -tags nojson.
//
// # Usage
//
//	cfg := thriftclient.DefaultConfig()
//	cfg.Transport = "tcp://127.0.0.1:9090"
//	cfg.AlwaysConnect = false
//
//	h, err := thriftclient.New(cfg, calc.NewCalculatorClient)
//	if err != nil {
//	    log.Fatal(err) // *ConfigurationError
//	}
//
//	// Scoped connect: closed on every exit path
//	err = h.Connect(ctx, func(ctx context.Context) error {
//	    _, err := h.Service.Ping(ctx)
//	    return err
//	})
//
//	// Single call wrapper, a no-op bracket when AlwaysConnect is set
//	ping := h.AutoConnect(func(ctx context.Context) error {
//	    _, err := h.Service.Ping(ctx)
//	    return err
//	})
//
// # Lifecycle
//
// With AlwaysConnect (the default) the host opens and closes the connection
// around each unit of work; package hook provides net/http, gRPC and
// JSON-RPC adapters. Without it, use Connect, Call, AutoConnect or drive
// Transport().Open/Close by hand.
//
// A Client is not safe for concurrent use.
package thriftclient
