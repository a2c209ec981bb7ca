package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"autosplit/internal/analysis"
	"autosplit/internal/config"
	"autosplit/internal/episodeplan"
)

type audioFlags struct {
	similarity float64
	maxResults int
	episodes   int
	split      string
	yes        bool
	json       bool
}

func newAudioCommand(ctx *commandContext) *cobra.Command {
	flags := audioFlags{split: splitModeAsk}

	cmd := &cobra.Command{
		Use:   "audio [file.mkv]",
		Short: "Find episode starts by recurring intro music",
		Long: "Fingerprints the first seconds of every chapter, matches them pairwise and reports the\n" +
			"chapters that open with the same music. Without a file, MKV files in the current\n" +
			"directory are offered.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudio(cmd, ctx, args, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.similarity, "similarity", 0, "Cosine distance threshold (0.005 = 99.5% similarity; default from config)")
	cmd.Flags().IntVar(&flags.maxResults, "max-results", 0, "Maximum matches listed when no intro sequence is found")
	cmd.Flags().IntVar(&flags.episodes, "episodes", 0, "Expected number of episodes (optional)")
	cmd.Flags().StringVar(&flags.split, "split", splitModeAsk, "Split handling: ask, run, print or skip")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Accept defaults instead of prompting")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output as JSON")
	return cmd
}

func runAudio(cmd *cobra.Command, ctx *commandContext, args []string, flags audioFlags) error {
	if err := validSplitMode(flags.split); err != nil {
		return err
	}
	if flags.similarity != 0 {
		if err := config.ValidateDistanceThreshold(flags.similarity); err != nil {
			return fmt.Errorf("--similarity: %w", err)
		}
	}
	session, err := newSession(cmd, ctx, args, flags.yes || flags.json)
	if err != nil {
		return handleSessionError(cmd, err)
	}
	defer session.display.finish()

	var decider episodeplan.Decider = terminalDecider{prompt: session.prompt}
	if flags.yes || flags.json {
		decider = episodeplan.FirstCandidate
	}
	report, err := session.analyzer.RunAudio(cmd.Context(), session.source, analysis.AudioOptions{
		DistanceThreshold: flags.similarity,
		MaxResults:        flags.maxResults,
		Expected:          flags.episodes,
		Decider:           decider,
	})
	session.display.finish()
	if err != nil {
		if errors.Is(err, episodeplan.ErrSelectionDeclined) {
			fmt.Fprintln(cmd.OutOrStdout(), "Selection cancelled.")
			return nil
		}
		return err
	}

	if flags.json {
		command := ""
		if report.Plan != nil {
			command = buildSplitCommand(session.cfg, session.source, report.Plan).String()
		}
		if err := writeJSON(cmd, audioPayload(report, command)); err != nil {
			return err
		}
		if flags.split != splitModeRun {
			return nil
		}
		session.out = cmd.ErrOrStderr()
	} else {
		renderAudioReport(session.out, report)
		renderPlan(session.out, report.Plan)
	}
	return offerSplit(cmd.Context(), session.splitRequest(report.Plan, flags.split, flags.yes || flags.json))
}
