// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// DefaultPort is used by tcp and tcps endpoints that omit the port.
const DefaultPort = 9090

// Scheme identifies the base transport of an endpoint.
type Scheme int

const (
	SchemeTCP Scheme = iota
	SchemeTCPTLS
	SchemeHTTP
	SchemeHTTPS
	SchemeUnix
	SchemeUnixTLS
)

var schemeTokens = map[string]Scheme{
	"tcp":   SchemeTCP,
	"tcps":  SchemeTCPTLS,
	"http":  SchemeHTTP,
	"https": SchemeHTTPS,
	"unix":  SchemeUnix,
	"unixs": SchemeUnixTLS,
}

func (s Scheme) String() string {
	switch s {
	case SchemeTCP:
		return "tcp"
	case SchemeTCPTLS:
		return "tcps"
	case SchemeHTTP:
		return "http"
	case SchemeHTTPS:
		return "https"
	case SchemeUnix:
		return "unix"
	case SchemeUnixTLS:
		return "unixs"
	default:
		return "scheme(" + strconv.Itoa(int(s)) + ")"
	}
}

// TLS reports whether the scheme wraps its connection in TLS.
func (s Scheme) TLS() bool {
	return s == SchemeTCPTLS || s == SchemeHTTPS || s == SchemeUnixTLS
}

func (s Scheme) isUnix() bool { return s == SchemeUnix || s == SchemeUnixTLS }

func (s Scheme) isHTTP() bool { return s == SchemeHTTP || s == SchemeHTTPS }

// ParseScheme maps a URI scheme token to its Scheme.
func ParseScheme(token string) (Scheme, error) {
	s, ok := schemeTokens[strings.ToLower(token)]
	if !ok {
		return 0, configError("transport", token, "unsupported scheme")
	}
	return s, nil
}

// Endpoint is a parsed transport URI.
type Endpoint struct {
	Scheme Scheme
	Host   string // empty for unix schemes
	Port   int    // zero unless Scheme is tcp or tcps
	Path   string
	URI    string // the URI as configured
}

// Address returns what the base transport dials: host:port for sockets,
// the socket path for unix schemes and the full URL for http schemes.
func (e Endpoint) Address() string {
	switch {
	case e.Scheme.isUnix():
		return e.Path
	case e.Scheme.isHTTP():
		return e.URI
	default:
		return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
	}
}

func (e Endpoint) String() string { return e.URI }

// ParseEndpoint splits a transport URI into its parts.
//
//	tcp://host[:port][/]    port defaults to 9090
//	tcps://host[:port][/]
//	http://... https://...  kept verbatim
//	unix:/path unix:///path unix:relative/path
//	unixs:...               as unix
func ParseEndpoint(uri string) (Endpoint, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return Endpoint{}, configError("transport", "", "transport URI must be specified")
	}
	u, err := url.Parse(uri)
	if err != nil {
		return Endpoint{}, &ConfigurationError{Field: "transport", Value: uri, Msg: "malformed URI", Err: err}
	}
	if u.Scheme == "" {
		return Endpoint{}, configError("transport", uri, "missing scheme")
	}
	scheme, err := ParseScheme(u.Scheme)
	if err != nil {
		return Endpoint{}, configError("transport", uri, "unsupported scheme")
	}

	ep := Endpoint{Scheme: scheme, URI: uri}
	switch {
	case scheme.isHTTP():
		if u.Host == "" {
			return Endpoint{}, configError("transport", uri, "http endpoint needs a host")
		}
		ep.Host = u.Hostname()
		ep.Path = u.Path

	case scheme.isUnix():
		if u.Host != "" || u.User != nil {
			return Endpoint{}, configError("transport", uri, "unix socket path must use zero or three slashes after the scheme")
		}
		path := u.Path
		if u.Opaque != "" {
			// unix:relative/path
			path, err = url.PathUnescape(u.Opaque)
			if err != nil {
				return Endpoint{}, &ConfigurationError{Field: "transport", Value: uri, Msg: "malformed socket path", Err: err}
			}
		}
		if strings.HasPrefix(path, "//") {
			return Endpoint{}, configError("transport", uri, "unix socket path must use zero or three slashes after the scheme")
		}
		if path == "" {
			return Endpoint{}, configError("transport", uri, "unix socket path is empty")
		}
		ep.Path = path

	default:
		ep.Host = u.Hostname()
		if ep.Host == "" {
			ep.Host = "localhost"
		}
		ep.Port = DefaultPort
		if p := u.Port(); p != "" {
			port, err := strconv.Atoi(p)
			if err != nil || port <= 0 || port > 65535 {
				return Endpoint{}, configError("transport", uri, "invalid port")
			}
			ep.Port = port
		}
		ep.Path = u.Path
	}
	return ep, nil
}
