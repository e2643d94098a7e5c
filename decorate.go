// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// LayerKind names one layer of a transport chain.
type LayerKind int

const (
	LayerBase LayerKind = iota
	LayerBuffered
	LayerZlib
	LayerFramed
)

func (k LayerKind) String() string {
	switch k {
	case LayerBase:
		return "base"
	case LayerBuffered:
		return "buffered"
	case LayerZlib:
		return "zlib"
	case LayerFramed:
		return "framed"
	default:
		return fmt.Sprintf("layer(%d)", int(k))
	}
}

// Layer is one transport in a chain together with its role.
type Layer struct {
	Kind      LayerKind
	Transport thrift.TTransport
}

// applyDecorators wraps base with the enabled decorators, always in the
// order buffered, zlib, framed. The returned layers run from base outward;
// the last one is the transport the protocol writes to.
func applyDecorators(base thrift.TTransport, cfg EndpointConfig, conf *thrift.TConfiguration) ([]Layer, error) {
	layers := []Layer{{Kind: LayerBase, Transport: base}}
	t := base

	if cfg.Buffered {
		t = thrift.NewTBufferedTransport(t, cfg.BufferSize)
		layers = append(layers, Layer{Kind: LayerBuffered, Transport: t})
	}
	if cfg.Zlib {
		z, err := thrift.NewTZlibTransport(t, cfg.ZlibLevel)
		if err != nil {
			return nil, &ConfigurationError{Field: "zlib_level", Value: fmt.Sprint(cfg.ZlibLevel), Err: err}
		}
		t = z
		layers = append(layers, Layer{Kind: LayerZlib, Transport: t})
	}
	if cfg.Framed {
		t = thrift.NewTFramedTransportConf(t, conf)
		layers = append(layers, Layer{Kind: LayerFramed, Transport: t})
	}
	return layers, nil
}
