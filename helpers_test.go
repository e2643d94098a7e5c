// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTransport records lifecycle calls and loops writes back to reads.
type fakeTransport struct {
	opens   int
	closes  int
	open    bool
	openErr error
	buf     bytes.Buffer
}

func (f *fakeTransport) Open() error {
	f.opens++
	if f.openErr != nil {
		return f.openErr
	}
	f.open = true
	return nil
}

func (f *fakeTransport) IsOpen() bool { return f.open }

func (f *fakeTransport) Close() error {
	f.closes++
	f.open = false
	return nil
}

func (f *fakeTransport) Read(p []byte) (int, error) { return f.buf.Read(p) }
func (f *fakeTransport) Write(p []byte) (int, error) { return f.buf.Write(p) }
func (f *fakeTransport) Flush(context.Context) error { return nil }
func (f *fakeTransport) RemainingBytes() uint64 { return uint64(f.buf.Len()) }

// newFakeClient builds a Client whose base transport is ft.
func newFakeClient(t *testing.T, cfg EndpointConfig, ft *fakeTransport) *Client {
	t.Helper()
	c, err := newClient(cfg, Endpoint{Scheme: SchemeTCP, Host: "fake", Port: DefaultPort, URI: "tcp://fake"}, zap.NewNop(),
		func() ([]Layer, error) {
			return []Layer{{Kind: LayerBase, Transport: ft}}, nil
		})
	require.NoError(t, err)
	return c
}

// stringField is a thrift struct with a single string field, enough to stand
// in for generated args and result structs.
type stringField struct {
	id  int16
	val string
}

func (s *stringField) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "fields"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "value", thrift.STRING, s.id); err != nil {
		return err
	}
	if err := p.WriteString(ctx, s.val); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	return p.WriteStructEnd(ctx)
}

func (s *stringField) Read(ctx context.Context, p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, typ, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if typ == thrift.STOP {
			break
		}
		if id == s.id && typ == thrift.STRING {
			if s.val, err = p.ReadString(ctx); err != nil {
				return err
			}
		} else if err := p.Skip(ctx, typ); err != nil {
			return err
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

// echoClient mirrors the shape of a generated service client.
type echoClient struct {
	c thrift.TClient
}

func newEchoClient(c thrift.TClient) *echoClient { return &echoClient{c: c} }

func (e *echoClient) Echo(ctx context.Context, msg string) (string, error) {
	res := &stringField{id: 0}
	if _, err := e.c.Call(ctx, "echo", &stringField{id: 1, val: msg}, res); err != nil {
		return "", err
	}
	return res.val, nil
}

// echoProcessor answers every call with its first string argument.
type echoProcessor struct{}

func (echoProcessor) Process(ctx context.Context, in, out thrift.TProtocol) (bool, thrift.TException) {
	name, _, seq, err := in.ReadMessageBegin(ctx)
	if err != nil {
		return false, thrift.WrapTException(err)
	}
	args := &stringField{id: 1}
	if err := args.Read(ctx, in); err != nil {
		return false, thrift.WrapTException(err)
	}
	if err := in.ReadMessageEnd(ctx); err != nil {
		return false, thrift.WrapTException(err)
	}
	if err := out.WriteMessageBegin(ctx, name, thrift.REPLY, seq); err != nil {
		return false, thrift.WrapTException(err)
	}
	if err := (&stringField{id: 0, val: args.val}).Write(ctx, out); err != nil {
		return false, thrift.WrapTException(err)
	}
	if err := out.WriteMessageEnd(ctx); err != nil {
		return false, thrift.WrapTException(err)
	}
	return true, thrift.WrapTException(out.Flush(ctx))
}

func (echoProcessor) ProcessorMap() map[string]thrift.TProcessorFunction { return nil }

func (echoProcessor) AddToProcessorMap(string, thrift.TProcessorFunction) {}

// serveEcho accepts connections on l and serves each with the decorators and
// protocol described by cfg, so the server mirrors the client stack.
func serveEcho(t *testing.T, l net.Listener, cfg EndpointConfig) {
	t.Helper()
	t.Cleanup(func() { l.Close() })
	conf := tConfiguration(cfg)
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				layers, err := applyDecorators(thrift.NewTSocketFromConnConf(conn, conf), cfg, conf)
				if err != nil {
					return
				}
				proto, err := selectProtocol(layers[len(layers)-1].Transport, cfg.Protocol, conf)
				if err != nil {
					return
				}
				for {
					ok, err := echoProcessor{}.Process(context.Background(), proto, proto)
					if !ok || err != nil {
						return
					}
				}
			}(conn)
		}
	}()
}

// acceptAndDiscard accepts connections on l until it is closed.
func acceptAndDiscard(t *testing.T, l net.Listener) {
	t.Helper()
	t.Cleanup(func() { l.Close() })
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				_, _ = io.Copy(io.Discard, conn)
			}()
		}
	}()
}

var errBoom = errors.New("boom")
