package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"autosplit/internal/deps"
	"autosplit/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file.mkv]",
		Short: "Check external tools and file access",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source := ""
			if len(args) > 0 {
				source = strings.TrimSpace(args[0])
			}

			statuses := preflight.CheckSystemDeps(cfg)
			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				state := "ok"
				detail := s.Path
				if !s.Available {
					state = "missing"
					if s.Optional {
						state = "missing (optional)"
					}
					detail = s.Detail
				}
				rows = append(rows, []string{s.Name, s.Command, state, detail})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tableSpec{
				Title:   "Tools",
				Headers: []string{"Tool", "Command", "Status", "Detail"},
				Rows:    rows,
			}.render())

			results := preflight.RunAll(cfg, source)
			if len(results) > 0 {
				checkRows := make([][]string, 0, len(results))
				for _, r := range results {
					checkRows = append(checkRows, []string{r.Name, yesNo(r.Passed), r.Detail})
				}
				fmt.Fprintln(out, tableSpec{
					Title:   "Access",
					Headers: []string{"Check", "Passed", "Detail"},
					Rows:    checkRows,
				}.render())
			}

			missing := deps.MissingRequired(statuses)
			failed := preflight.Failed(results)
			if len(missing) > 0 || len(failed) > 0 {
				return fmt.Errorf("check failed: %d required tool(s) missing, %d access check(s) failed", len(missing), len(failed))
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
