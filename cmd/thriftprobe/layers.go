// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/luxfi/thriftclient"
)

var layersCmd = &cobra.Command{
	Use:   "layers",
	Short: "Print the transport chain and protocol for the configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		c, err := thriftclient.NewClient(cfg, thriftclient.WithLogger(logger))
		if err != nil {
			return err
		}
		printStack(cmd.OutOrStdout(), c)
		return nil
	},
}

func printStack(w io.Writer, c *thriftclient.Client) {
	ep := c.Endpoint()
	fmt.Fprintf(w, "endpoint  %s (%s %s)\n", ep.URI, ep.Scheme, ep.Address())
	for i, l := range c.Layers() {
		fmt.Fprintf(w, "layer %d   %-8s %T\n", i, l.Kind, l.Transport)
	}
	fmt.Fprintf(w, "protocol  %s %T\n", c.Config().Protocol, c.Protocol())
}
