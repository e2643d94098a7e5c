// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/luxfi/thriftclient"
)

type globalFlags struct {
	ConfigPath  string
	LogLevel    string
	Transport   string
	Protocol    string
	SSLValidate bool
	SSLCACerts  string
	Buffered    bool
	Zlib        bool
	Framed      bool
}

var (
	flags  globalFlags
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "thriftprobe",
	Short: "Inspect and test thrift client endpoints",
	Long: `thriftprobe resolves a thrift endpoint configuration the same way an
application using thriftclient does, then prints the resulting stack or
checks that a connection can be opened.

Configuration comes from --config (YAML), THRIFTCLIENT_* environment
variables and the flags below, in increasing order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(flags.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "path to YAML config file")
	pf.StringVar(&flags.LogLevel, "log-level", "warn", "log level: debug|info|warn|error")
	pf.StringVar(&flags.Transport, "transport", "", "endpoint URI (default "+thriftclient.DefaultTransportURI+")")
	pf.StringVar(&flags.Protocol, "protocol", "", "wire protocol: BINARY|COMPACT|JSON")
	pf.BoolVar(&flags.SSLValidate, "ssl-validate", true, "validate server certificates")
	pf.StringVar(&flags.SSLCACerts, "ssl-ca-certs", "", "PEM file with trusted CA certificates")
	pf.BoolVar(&flags.Buffered, "buffered", false, "add a buffered transport")
	pf.BoolVar(&flags.Zlib, "zlib", false, "add a zlib transport")
	pf.BoolVar(&flags.Framed, "framed", false, "add a framed transport")

	rootCmd.AddCommand(layersCmd)
	rootCmd.AddCommand(checkCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges file/env configuration with the flags set on cmd.
func loadConfig(fs *pflag.FlagSet) (thriftclient.EndpointConfig, error) {
	cfg, err := thriftclient.LoadConfig(flags.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if fs.Changed("transport") {
		cfg.Transport = flags.Transport
	}
	if fs.Changed("protocol") {
		cfg.Protocol = thriftclient.ProtocolKind(flags.Protocol)
	}
	if fs.Changed("ssl-validate") {
		cfg.SSLValidate = flags.SSLValidate
	}
	if fs.Changed("ssl-ca-certs") {
		cfg.SSLCACerts = flags.SSLCACerts
	}
	if fs.Changed("buffered") {
		cfg.Buffered = flags.Buffered
	}
	if fs.Changed("zlib") {
		cfg.Zlib = flags.Zlib
	}
	if fs.Changed("framed") {
		cfg.Framed = flags.Framed
	}
	// The probe drives the connection itself.
	cfg.AlwaysConnect = false
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
