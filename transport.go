// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"net/http"
	"os"

	"github.com/apache/thrift/lib/go/thrift"
)

// unixTLSServerName is checked against the server certificate on unixs
// endpoints unless SSLServerName says otherwise.
const unixTLSServerName = "localhost"

// tConfiguration carries the transport-level settings shared by every layer
// and protocol of one client.
func tConfiguration(cfg EndpointConfig) *thrift.TConfiguration {
	return &thrift.TConfiguration{
		ConnectTimeout: cfg.ConnectTimeout,
		SocketTimeout:  cfg.SocketTimeout,
		MaxFrameSize:   cfg.MaxFrameSize,
	}
}

// buildBaseTransport creates the innermost transport for ep. Every scheme
// maps to exactly one thrift constructor.
func buildBaseTransport(ep Endpoint, cfg EndpointConfig, conf *thrift.TConfiguration) (thrift.TTransport, error) {
	switch ep.Scheme {
	case SchemeTCP:
		return thrift.NewTSocketConf(ep.Address(), conf), nil

	case SchemeTCPTLS:
		var tlsConf *tls.Config
		if !cfg.SSLValidate {
			// Explicitly insecure: any certificate is accepted.
			tlsConf = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			var err error
			if tlsConf, err = validatingTLSConfig(cfg, ep.Host); err != nil {
				return nil, err
			}
		}
		return thrift.NewTSSLSocketConf(ep.Address(), withTLS(conf, tlsConf)), nil

	case SchemeHTTP, SchemeHTTPS:
		client := http.DefaultClient
		if ep.Scheme == SchemeHTTPS {
			tlsConf, err := httpsTLSConfig(cfg, ep.Host)
			if err != nil {
				return nil, err
			}
			client = newHTTPClient(tlsConf, cfg)
		} else if cfg.SocketTimeout > 0 || cfg.ConnectTimeout > 0 {
			client = newHTTPClient(nil, cfg)
		}
		t, err := thrift.NewTHttpClientWithOptions(ep.URI, thrift.THttpClientOptions{Client: client})
		if err != nil {
			return nil, &ConfigurationError{Field: "transport", Value: ep.URI, Msg: "malformed http endpoint", Err: err}
		}
		return t, nil

	case SchemeUnix:
		return thrift.NewTSocketFromAddrConf(unixAddr(ep.Path), conf), nil

	case SchemeUnixTLS:
		// No insecure branch here: SSLValidate is passed straight through.
		name := cfg.SSLServerName
		if name == "" {
			name = unixTLSServerName
		}
		tlsConf, err := tlsConfig(cfg.SSLValidate, cfg.SSLCACerts, name)
		if err != nil {
			return nil, err
		}
		return thrift.NewTSSLSocketFromAddrConf(unixAddr(ep.Path), withTLS(conf, tlsConf)), nil

	default:
		return nil, configError("transport", ep.URI, "unsupported scheme")
	}
}

func unixAddr(path string) net.Addr {
	return &net.UnixAddr{Name: path, Net: "unix"}
}

func withTLS(conf *thrift.TConfiguration, tlsConf *tls.Config) *thrift.TConfiguration {
	c := *conf
	c.TLSConfig = tlsConf
	return &c
}

func validatingTLSConfig(cfg EndpointConfig, host string) (*tls.Config, error) {
	name := cfg.SSLServerName
	if name == "" {
		name = host
	}
	return tlsConfig(true, cfg.SSLCACerts, name)
}

func httpsTLSConfig(cfg EndpointConfig, host string) (*tls.Config, error) {
	if !cfg.SSLValidate {
		return &tls.Config{InsecureSkipVerify: true}, nil //nolint:gosec
	}
	return validatingTLSConfig(cfg, host)
}

// tlsConfig builds a client TLS config. An empty caFile defers to the system
// trust store.
func tlsConfig(validate bool, caFile, serverName string) (*tls.Config, error) {
	c := &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: !validate, //nolint:gosec
		MinVersion:         tls.VersionTLS12,
	}
	if caFile == "" {
		return c, nil
	}
	pem, err := os.ReadFile(caFile)
	if err != nil {
		return nil, &ConfigurationError{Field: "ssl_ca_certs", Value: caFile, Msg: "cannot read CA certificates", Err: err}
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, configError("ssl_ca_certs", caFile, "no PEM certificates found")
	}
	c.RootCAs = pool
	return c, nil
}

// newHTTPClient creates the http.Client behind an http(s) endpoint. Keep-alives
// stay enabled; the thrift http transport drains bodies before reuse.
func newHTTPClient(tlsConf *tls.Config, cfg EndpointConfig) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if tlsConf != nil {
		tr.TLSClientConfig = tlsConf
	}
	if cfg.ConnectTimeout > 0 {
		tr.DialContext = (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext
	}
	return &http.Client{
		Timeout:   cfg.SocketTimeout,
		Transport: tr,
	}
}
