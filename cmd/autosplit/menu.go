package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// runModeMenu asks which detection path to run when autosplit is started
// without a subcommand.
func runModeMenu(cmd *cobra.Command, ctx *commandContext) error {
	out := cmd.OutOrStdout()
	prompt := ctx.prompt(out)

	fmt.Fprintln(out, "Choose detection mode:")
	fmt.Fprintln(out, "  1. Audio fingerprint")
	fmt.Fprintln(out, "  2. Chapter length")
	fmt.Fprintln(out, "  q. Quit")
	for {
		answer, err := prompt.ask("\nEnter 1, 2 or q: ")
		if err != nil {
			if errors.Is(err, errInputClosed) {
				return cmd.Help()
			}
			return err
		}
		switch answer {
		case "q", "Q":
			fmt.Fprintln(out, "Cancelled.")
			return nil
		case "1":
			return runAudio(cmd, ctx, nil, audioFlags{split: splitModeAsk})
		case "2":
			return runLength(cmd, ctx, nil, lengthFlags{split: splitModeAsk})
		}
		fmt.Fprintln(out, "Please enter 1, 2 or q.")
	}
}
