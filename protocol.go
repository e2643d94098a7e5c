// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"sort"
	"strings"
	"sync"

	"github.com/apache/thrift/lib/go/thrift"
)

// ProtocolKind selects the wire encoding.
type ProtocolKind string

// Protocol kinds
const (
	ProtocolBinary  ProtocolKind = "BINARY"
	ProtocolCompact ProtocolKind = "COMPACT"
	ProtocolJSON    ProtocolKind = "JSON" // requires the json capability, see protocol_json.go
)

// DefaultProtocol is the protocol used when none is configured.
const DefaultProtocol = ProtocolBinary

type protocolFunc func(t thrift.TTransport, conf *thrift.TConfiguration) thrift.TProtocol

var (
	protocolsMu sync.RWMutex
	protocols   = map[ProtocolKind]protocolFunc{
		ProtocolBinary: func(t thrift.TTransport, conf *thrift.TConfiguration) thrift.TProtocol {
			return thrift.NewTBinaryProtocolConf(t, conf)
		},
		ProtocolCompact: func(t thrift.TTransport, conf *thrift.TConfiguration) thrift.TProtocol {
			return thrift.NewTCompactProtocolConf(t, conf)
		},
	}
)

// registerProtocol registers an optional protocol (used by build tags)
func registerProtocol(kind ProtocolKind, fn protocolFunc) {
	protocolsMu.Lock()
	defer protocolsMu.Unlock()
	protocols[kind] = fn
}

// AvailableProtocols returns the protocol kinds compiled into this build.
func AvailableProtocols() []ProtocolKind {
	protocolsMu.RLock()
	defer protocolsMu.RUnlock()
	result := make([]ProtocolKind, 0, len(protocols))
	for kind := range protocols {
		result = append(result, kind)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// HasProtocol checks if a protocol is available
func HasProtocol(kind ProtocolKind) bool {
	protocolsMu.RLock()
	defer protocolsMu.RUnlock()
	_, ok := protocols[kind]
	return ok
}

// ParseProtocolKind normalizes s. An empty string selects DefaultProtocol.
// Kinds that exist but are not compiled in are rejected like unknown ones.
func ParseProtocolKind(s string) (ProtocolKind, error) {
	kind := ProtocolKind(strings.ToUpper(strings.TrimSpace(s)))
	if kind == "" {
		return DefaultProtocol, nil
	}
	if !HasProtocol(kind) {
		return "", configError("protocol", s, "unsupported protocol")
	}
	return kind, nil
}

// selectProtocol wraps t in the encoder for kind.
func selectProtocol(t thrift.TTransport, kind ProtocolKind, conf *thrift.TConfiguration) (thrift.TProtocol, error) {
	protocolsMu.RLock()
	fn, ok := protocols[kind]
	protocolsMu.RUnlock()
	if !ok {
		return nil, configError("protocol", string(kind), "unsupported protocol")
	}
	return fn(t, conf), nil
}
