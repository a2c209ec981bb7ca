package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"autosplit/internal/analysis"
	"autosplit/internal/episodeplan"
)

type lengthFlags struct {
	episodes  int
	tolerance float64
	split     string
	yes       bool
	json      bool
}

func newLengthCommand(ctx *commandContext) *cobra.Command {
	flags := lengthFlags{split: splitModeAsk}

	cmd := &cobra.Command{
		Use:   "length [file.mkv]",
		Short: "Find episode starts by repeating chapter lengths",
		Long: "Groups chapters whose lengths agree within a tolerance (recaps, outros, credits) and\n" +
			"picks the group that yields the expected number of episodes.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLength(cmd, ctx, args, flags)
		},
	}

	cmd.Flags().IntVar(&flags.episodes, "episodes", 0, "Expected number of episodes (prompted when omitted)")
	cmd.Flags().Float64Var(&flags.tolerance, "tolerance", 0, "Duration tolerance in seconds (default from config)")
	cmd.Flags().StringVar(&flags.split, "split", splitModeAsk, "Split handling: ask, run, print or skip")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Accept defaults instead of prompting")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output as JSON")
	return cmd
}

func runLength(cmd *cobra.Command, ctx *commandContext, args []string, flags lengthFlags) error {
	if err := validSplitMode(flags.split); err != nil {
		return err
	}
	if flags.tolerance < 0 {
		return fmt.Errorf("--tolerance must not be negative, got %v", flags.tolerance)
	}
	nonInteractive := flags.yes || flags.json
	if flags.episodes <= 0 && nonInteractive {
		return errors.New("--episodes is required with --yes or --json")
	}

	session, err := newSession(cmd, ctx, args, nonInteractive)
	if err != nil {
		return handleSessionError(cmd, err)
	}
	defer session.display.finish()

	expected := flags.episodes
	if expected <= 0 {
		list, err := session.analyzer.LoadChapters(cmd.Context(), session.source)
		if err != nil {
			return err
		}
		fmt.Fprintf(session.out, "Found %d chapters\n", len(list))
		var quit bool
		expected, quit, err = session.prompt.positiveInt("\nHow many episodes do you expect?")
		if err != nil {
			return err
		}
		if quit {
			fmt.Fprintln(session.out, "Quitting.")
			return nil
		}
	}

	var decider episodeplan.Decider = terminalDecider{prompt: session.prompt}
	if nonInteractive {
		decider = episodeplan.FirstCandidate
	}
	report, err := session.analyzer.RunLength(cmd.Context(), session.source, analysis.LengthOptions{
		ToleranceSeconds: flags.tolerance,
		Expected:         expected,
		Decider:          decider,
	})
	if err != nil {
		if errors.Is(err, episodeplan.ErrSelectionDeclined) {
			fmt.Fprintln(session.out, "Selection cancelled.")
			return nil
		}
		return err
	}

	if flags.json {
		command := ""
		if report.Plan != nil {
			command = buildSplitCommand(session.cfg, session.source, report.Plan).String()
		}
		if err := writeJSON(cmd, lengthPayload(report, command)); err != nil {
			return err
		}
		if flags.split != splitModeRun {
			return nil
		}
		session.out = cmd.ErrOrStderr()
	} else {
		renderLengthReport(session.out, report)
		if report.Plan == nil && len(report.Groups) > 0 {
			fmt.Fprintln(session.out, "\nNo suitable repeating chapter-length pattern for the given episode count.")
		}
		renderPlan(session.out, report.Plan)
	}
	return offerSplit(cmd.Context(), session.splitRequest(report.Plan, flags.split, nonInteractive))
}
