// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		uri  string
		want Endpoint
	}{
		{"tcp://127.0.0.1", Endpoint{Scheme: SchemeTCP, Host: "127.0.0.1", Port: 9090}},
		{"tcp://localhost:1234/", Endpoint{Scheme: SchemeTCP, Host: "localhost", Port: 1234, Path: "/"}},
		{"tcps://localhost:5533/", Endpoint{Scheme: SchemeTCPTLS, Host: "localhost", Port: 5533, Path: "/"}},
		{"tcp://[::1]:7000", Endpoint{Scheme: SchemeTCP, Host: "::1", Port: 7000}},
		{"http://myservice.local/rpc", Endpoint{Scheme: SchemeHTTP, Host: "myservice.local", Path: "/rpc"}},
		{"https://myserver/", Endpoint{Scheme: SchemeHTTPS, Host: "myserver", Path: "/"}},
		{"unix:///abs/path", Endpoint{Scheme: SchemeUnix, Path: "/abs/path"}},
		{"unix:/abs/path", Endpoint{Scheme: SchemeUnix, Path: "/abs/path"}},
		{"unix:./mysocket", Endpoint{Scheme: SchemeUnix, Path: "./mysocket"}},
		{"unixs:/tmp/mysocket", Endpoint{Scheme: SchemeUnixTLS, Path: "/tmp/mysocket"}},
		{"TCP://host", Endpoint{Scheme: SchemeTCP, Host: "host", Port: 9090}},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := ParseEndpoint(tt.uri)
			require.NoError(t, err)
			tt.want.URI = tt.uri
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseEndpointErrors(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"no scheme", "localhost:9090"},
		{"unknown scheme", "udp://localhost:9090"},
		{"ws scheme", "ws://localhost/"},
		{"unix with host", "unix://somehost/path"},
		{"unix with two slashes", "unix://tmp/sock"},
		{"unix with four slashes", "unix:////tmp/sock"},
		{"unixs with host", "unixs://somehost/path"},
		{"unix without path", "unix:"},
		{"port out of range", "tcp://localhost:70000"},
		{"port zero", "tcp://localhost:0"},
		{"bad port", "tcp://localhost:abc"},
		{"http without host", "http:///path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEndpoint(tt.uri)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrConfiguration), "got %v", err)

			var cerr *ConfigurationError
			require.ErrorAs(t, err, &cerr)
			require.Equal(t, "transport", cerr.Field)
		})
	}
}

func TestParseEndpointUnixHostMessage(t *testing.T) {
	_, err := ParseEndpoint("unix://somehost/path")
	require.ErrorContains(t, err, "zero or three slashes")
}

func TestParseEndpointNamesUnknownScheme(t *testing.T) {
	_, err := ParseEndpoint("zmq://localhost")
	require.ErrorContains(t, err, "zmq://localhost")
}

func TestEndpointAddress(t *testing.T) {
	for uri, want := range map[string]string{
		"tcp://example.com":       "example.com:9090",
		"tcps://[::1]:1234":       "[::1]:1234",
		"unix:/run/thrift.sock":   "/run/thrift.sock",
		"https://example.com/rpc": "https://example.com/rpc",
	} {
		ep, err := ParseEndpoint(uri)
		require.NoError(t, err)
		require.Equal(t, want, ep.Address(), uri)
	}
}

func TestParseScheme(t *testing.T) {
	for token, want := range schemeTokens {
		got, err := ParseScheme(token)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, token, got.String())
	}
	_, err := ParseScheme("ftp")
	require.ErrorIs(t, err, ErrConfiguration)

	require.True(t, SchemeHTTPS.TLS())
	require.False(t, SchemeUnix.TLS())
}
