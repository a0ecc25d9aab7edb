package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hushcut/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the environment a run would use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cfg)
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				state := "ok"
				if !result.Passed {
					state = "missing"
					if result.Optional {
						state = "warning"
					}
				}
				rows = append(rows, []string{result.Name, state, result.Detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Check", "State", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if failure, found := preflight.FirstFailure(results); found {
				return fmt.Errorf("%s: %s", failure.Name, failure.Detail)
			}
			fmt.Fprintln(out, "Ready.")
			return nil
		},
	}
}
