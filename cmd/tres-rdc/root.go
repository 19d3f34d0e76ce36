package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tres-rdc/internal/config"
)

func newRootCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "tres-rdc",
		Short: "Reduce a TRES snapshot history to a flat table",
		Long: "tres-rdc reads the snapshot history of a hierarchical triple evolved by TRES\n" +
			"and writes one row per snapshot to a delimited text table, plus optional\n" +
			"JSON Lines, SQLite and GreptimeDB sinks.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath, flags.schemaPath)
			if err != nil {
				return err
			}
			cfg.ApplyEnv(os.Getenv)
			flags.apply(cfg, cmd.Flags())

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runReduce(ctx, cfg, reduceOptions{
				printInit: flags.printInit,
				line:      flags.line,
				stdout:    cmd.OutOrStdout(),
			})
		},
	}
	flags.bind(cmd.Flags())
	cmd.SetGlobalNormalizationFunc(dashFlags)
	cmd.AddCommand(newColumnsCmd())
	return cmd
}

// dashFlags accepts underscored long flag names, e.g. --print_init.
func dashFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
