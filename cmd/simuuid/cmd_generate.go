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
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/simuuid/pkg/logging"
	"github.com/AleutianAI/simuuid/pkg/validation"
	"github.com/AleutianAI/simuuid/services/simuuid/generator"
)

type generateOptions struct {
	x, y, z     int
	count       int
	workers     int
	seed        uint64
	seeded      bool
	showMetrics bool
	logLevel    string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print identifiers, one per line",
		Long: `Builds one generator from --x, --y and --z and prints --count identifiers.
With --seed the random source is deterministic and the output is reproducible;
--seed also forces a single worker so the output order is stable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seeded = cmd.Flags().Changed("seed")
			return runGenerate(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().IntVar(&opts.x, "x", generator.DefaultX, "Divisor of the divide rule (must be more than 1)")
	cmd.Flags().IntVar(&opts.y, "y", generator.DefaultY, "Addend of the add rule (cannot be 0)")
	cmd.Flags().IntVar(&opts.z, "z", generator.DefaultZ, "Number of rules, including the seed (minimum 3)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 1, "Number of identifiers to print")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "Concurrent generate calls")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for a deterministic random source")
	cmd.Flags().BoolVar(&opts.showMetrics, "metrics", false, "Print rule counters to stderr when done")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level on stderr (debug shows palindrome winners)")
	return cmd
}

func runGenerate(ctx context.Context, opts *generateOptions, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", opts.count)
	}
	if opts.workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", opts.workers)
	}

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{Level: level, Service: "simuuid", Output: errOut})
	defer logger.Close()

	cfg := generator.Config{X: opts.x, Y: opts.y, Z: opts.z, Logger: logger}
	workers := opts.workers
	if opts.seeded {
		cfg.Source = generator.NewSeededSource(opts.seed)
		workers = 1
	}

	g, err := generator.Build(cfg)
	if err != nil {
		return err
	}

	ids := make([]string, opts.count)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range ids {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			ids[i] = g.Generate(egCtx)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if err := writeIdentifiers(out, ids); err != nil {
		return err
	}

	if opts.showMetrics {
		m := g.Metrics()
		fmt.Fprintf(errOut, "seed=%d divide=%d add=%d palindrome=%d consistent=%t\n",
			m.Get(generator.RuleSeed),
			m.Get(generator.RuleDivide),
			m.Get(generator.RuleAdd),
			m.Get(generator.RulePalindrome),
			m.Consistent(),
		)
	}
	return nil
}

// writeIdentifiers prints ids one per line. Every id is checked against the
// 30 to 40 digit shape first; nothing is printed if any id fails.
func writeIdentifiers(out io.Writer, ids []string) error {
	for i, id := range ids {
		if err := validation.ValidateIdentifier(id); err != nil {
			return fmt.Errorf("identifier %d: %w", i, err)
		}
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(out, id); err != nil {
			return err
		}
	}
	return nil
}
