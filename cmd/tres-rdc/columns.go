package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tres-rdc/internal/rdc"
)

func newColumnsCmd() *cobra.Command {
	var layout string
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Print the output columns, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := rdc.ParseLayout(layout)
			if err != nil {
				return err
			}
			for _, c := range l.Columns() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&layout, "layout", string(rdc.LayoutStandard), "column layout: standard or legacy")
	return cmd
}
