// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luxfi/thriftclient"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Open and close a connection to the endpoint",
	Long: `check resolves the configuration, opens the transport chain and closes it
again. It exits non-zero on a configuration or connection error. No RPC is
sent, so http endpoints only have their configuration checked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		c, err := thriftclient.NewClient(cfg, thriftclient.WithLogger(logger))
		if err != nil {
			return err
		}

		start := time.Now()
		err = c.Connect(cmd.Context(), func(context.Context) error {
			logger.Info("connection open", zap.String("endpoint", c.Endpoint().URI))
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok  %s  %s\n", c.Endpoint().URI, time.Since(start).Round(time.Microsecond))
		return nil
	},
}
