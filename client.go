// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"github.com/apache/thrift/lib/go/thrift"
	"go.uber.org/zap"
)

// Connector is what host request hooks need from a client: a way to open the
// connection before a unit of work and close it afterwards.
type Connector interface {
	// Open connects the transport. Failures are *ConnectionError.
	Open() error

	// Close releases the connection.
	Close() error
}

var _ Connector = (*Client)(nil)

// Client owns one endpoint's transport chain and protocol. It is not safe
// for concurrent use: thrift calls are sequential over one connection, so
// either serialize access or build one Client per goroutine.
type Client struct {
	cfg      EndpointConfig
	endpoint Endpoint
	chain    *chain
	protocol thrift.TProtocol
	log      *zap.Logger

	// connected is set while an Open issued through this Client is in effect.
	connected bool
}

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for connection events
func WithLogger(l *zap.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// NewClient resolves cfg into a transport chain and protocol. All
// configuration errors surface here, before any network activity; on error
// no Client is returned.
func NewClient(cfg EndpointConfig, opts ...Option) (*Client, error) {
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kind, err := ParseProtocolKind(string(cfg.Protocol))
	if err != nil {
		return nil, err
	}
	cfg.Protocol = kind

	ep, err := ParseEndpoint(cfg.Transport)
	if err != nil {
		return nil, err
	}
	conf := tConfiguration(cfg)

	return newClient(cfg, ep, o.logger, func() ([]Layer, error) {
		base, err := buildBaseTransport(ep, cfg, conf)
		if err != nil {
			return nil, err
		}
		return applyDecorators(base, cfg, conf)
	})
}

// newClient assembles a Client around build, which produces the base
// transport and its decorators.
func newClient(cfg EndpointConfig, ep Endpoint, log *zap.Logger, build func() ([]Layer, error)) (*Client, error) {
	ch, err := newChain(build)
	if err != nil {
		return nil, err
	}
	proto, err := selectProtocol(ch, cfg.Protocol, tConfiguration(cfg))
	if err != nil {
		return nil, err
	}

	log = log.With(zap.String("endpoint", ep.URI))
	log.Debug("thrift client configured",
		zap.Stringer("scheme", ep.Scheme),
		zap.String("protocol", string(cfg.Protocol)),
		zap.Stringers("layers", layerKinds(ch.layers)),
		zap.Bool("always_connect", cfg.AlwaysConnect),
	)

	return &Client{
		cfg:      cfg,
		endpoint: ep,
		chain:    ch,
		protocol: proto,
		log:      log,
	}, nil
}

// Config returns the resolved configuration.
func (c *Client) Config() EndpointConfig { return c.cfg }

// Endpoint returns the parsed transport URI.
func (c *Client) Endpoint() Endpoint { return c.endpoint }

// AlwaysConnect reports whether host hooks manage the connection.
func (c *Client) AlwaysConnect() bool { return c.cfg.AlwaysConnect }

// Transport returns the transport the protocol is bound to. Calling Open and
// Close on it directly is the manual lifecycle: nothing else is guaranteed.
func (c *Client) Transport() thrift.TTransport { return c.chain }

// Protocol returns the wire protocol over Transport.
func (c *Client) Protocol() thrift.TProtocol { return c.protocol }

// Layers returns the current transport chain, base first.
func (c *Client) Layers() []Layer { return c.chain.Layers() }

func layerKinds(layers []Layer) []LayerKind {
	kinds := make([]LayerKind, len(layers))
	for i, l := range layers {
		kinds[i] = l.Kind
	}
	return kinds
}
