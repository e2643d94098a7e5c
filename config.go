// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package thriftclient

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultTransportURI is used when no transport is configured.
	DefaultTransportURI = "tcp://localhost:9090"
	// DefaultBufferSize matches the thrift buffered transport default.
	DefaultBufferSize = 4096
	// DefaultZlibLevel is zlib's best compression level.
	DefaultZlibLevel = 9

	envPrefix = "THRIFTCLIENT"
)

// EndpointConfig describes one thrift endpoint and how the stack in front of
// it is assembled. A Client copies it on construction; changing a config
// afterwards has no effect on clients built from it.
type EndpointConfig struct {
	// Transport is the endpoint URI: tcp://, tcps://, http://, https://,
	// unix: or unixs:.
	Transport string `mapstructure:"transport"`
	// Protocol selects the wire encoding.
	Protocol ProtocolKind `mapstructure:"protocol"`

	SSLValidate bool   `mapstructure:"ssl_validate"`
	SSLCACerts  string `mapstructure:"ssl_ca_certs"`
	// SSLServerName overrides the name checked against the server
	// certificate. unixs endpoints default to "localhost".
	SSLServerName string `mapstructure:"ssl_server_name"`

	Buffered bool `mapstructure:"buffered"`
	Zlib     bool `mapstructure:"zlib"`
	Framed   bool `mapstructure:"framed"`

	// AlwaysConnect selects the request-scoped lifecycle: host hooks open
	// and close the connection around every unit of work.
	AlwaysConnect bool `mapstructure:"always_connect"`

	BufferSize int `mapstructure:"buffer_size"`
	ZlibLevel  int `mapstructure:"zlib_level"`

	// Timeouts are handed to the thrift socket transports. Zero means none.
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	SocketTimeout  time.Duration `mapstructure:"socket_timeout"`
	MaxFrameSize   int32         `mapstructure:"max_frame_size"`
}

// DefaultConfig returns the configuration used for every unset option.
func DefaultConfig() EndpointConfig {
	return EndpointConfig{
		Transport:     DefaultTransportURI,
		Protocol:      ProtocolBinary,
		SSLValidate:   true,
		AlwaysConnect: true,
		BufferSize:    DefaultBufferSize,
		ZlibLevel:     DefaultZlibLevel,
	}
}

// Validate checks the settings that do not need the endpoint to be parsed.
func (c EndpointConfig) Validate() error {
	if strings.TrimSpace(c.Transport) == "" {
		return configError("transport", "", "transport URI must be specified")
	}
	if _, err := ParseProtocolKind(string(c.Protocol)); err != nil {
		return err
	}
	if c.Buffered && c.BufferSize <= 0 {
		return configError("buffer_size", fmt.Sprint(c.BufferSize), "must be positive")
	}
	if c.ConnectTimeout < 0 {
		return configError("connect_timeout", c.ConnectTimeout.String(), "must not be negative")
	}
	if c.SocketTimeout < 0 {
		return configError("socket_timeout", c.SocketTimeout.String(), "must not be negative")
	}
	if c.MaxFrameSize < 0 {
		return configError("max_frame_size", fmt.Sprint(c.MaxFrameSize), "must not be negative")
	}
	return nil
}

// LoadConfig reads an EndpointConfig from the YAML file at path (optional)
// and the environment. Environment keys use the THRIFTCLIENT prefix, so
// THRIFTCLIENT_TRANSPORT, THRIFTCLIENT_SSL_VALIDATE and friends override
// the file. An empty path falls back to $THRIFTCLIENT_CONFIG, then to
// thriftclient.yaml in the working directory if present.
func LoadConfig(path string) (EndpointConfig, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("transport", cfg.Transport)
	v.SetDefault("protocol", string(cfg.Protocol))
	v.SetDefault("ssl_validate", cfg.SSLValidate)
	v.SetDefault("ssl_ca_certs", cfg.SSLCACerts)
	v.SetDefault("ssl_server_name", cfg.SSLServerName)
	v.SetDefault("buffered", cfg.Buffered)
	v.SetDefault("zlib", cfg.Zlib)
	v.SetDefault("framed", cfg.Framed)
	v.SetDefault("always_connect", cfg.AlwaysConnect)
	v.SetDefault("buffer_size", cfg.BufferSize)
	v.SetDefault("zlib_level", cfg.ZlibLevel)
	v.SetDefault("connect_timeout", cfg.ConnectTimeout)
	v.SetDefault("socket_timeout", cfg.SocketTimeout)
	v.SetDefault("max_frame_size", cfg.MaxFrameSize)

	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("thriftclient")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return EndpointConfig{}, &ConfigurationError{Field: "config", Value: path, Msg: "cannot read config file", Err: err}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return EndpointConfig{}, &ConfigurationError{Field: "config", Value: path, Msg: "cannot decode config", Err: err}
	}
	kind, err := ParseProtocolKind(string(cfg.Protocol))
	if err != nil {
		return EndpointConfig{}, err
	}
	cfg.Protocol = kind
	if err := cfg.Validate(); err != nil {
		return EndpointConfig{}, err
	}
	return cfg, nil
}
