// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("thriftclient: invalid configuration")
	// ErrConnection matches every *ConnectionError via errors.Is.
	ErrConnection = errors.New("thriftclient: unable to connect")
)

// ConfigurationError reports a setting that cannot be resolved into a
// transport stack. It is never retryable.
type ConfigurationError struct {
	Field string // configuration key, e.g. "transport"
	Value string
	Msg   string
	Err   error
}

func (e *ConfigurationError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "invalid value"
	}
	s := fmt.Sprintf("invalid configuration for %s: %s", e.Field, msg)
	if e.Value != "" {
		s += fmt.Sprintf(" (%q)", e.Value)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ConnectionError is returned when opening the transport fails. Err holds the
// transport-level cause.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unable to connect to thrift server %s", e.Endpoint)
	}
	return fmt.Sprintf("unable to connect to thrift server %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

func configError(field, value, msg string) error {
	return &ConfigurationError{Field: field, Value: value, Msg: msg}
}
