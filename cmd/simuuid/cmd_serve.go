// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/simuuid/cmd/simuuid/config"
	"github.com/AleutianAI/simuuid/services/simuuid"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve identifiers over HTTP",
		Long: `Starts the HTTP server with GET /simUuid, /v1/simuuid/batch, /v1/simuuid/stats,
/health and /metrics. Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			logger, err := cfg.NewLogger()
			if err != nil {
				return err
			}

			svc, err := simuuid.New(cfg.ServiceConfig(logger))
			if err != nil {
				return fmt.Errorf("failed to create simuuid service: %w", err)
			}

			ctx, stop := signal.NotifyContext(baseContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return svc.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to simuuid.yaml (created with defaults if missing)")
	cmd.Flags().IntVarP(&port, "port", "p", 12310, "HTTP port, overrides the config file")
	return cmd
}

func baseContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
