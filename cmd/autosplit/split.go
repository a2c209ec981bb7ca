package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"autosplit/internal/config"
	"autosplit/internal/episodeplan"
	"autosplit/internal/logging"
	"autosplit/internal/services/mkvtoolnix"
)

// Split modes accepted by --split.
const (
	splitModeAsk   = "ask"
	splitModeRun   = "run"
	splitModePrint = "print"
	splitModeSkip  = "skip"
)

func validSplitMode(mode string) error {
	switch mode {
	case splitModeAsk, splitModeRun, splitModePrint, splitModeSkip:
		return nil
	default:
		return fmt.Errorf("invalid --split value %q (want ask, run, print or skip)", mode)
	}
}

func buildSplitCommand(cfg *config.Config, source string, plan *episodeplan.Plan) mkvtoolnix.SplitCommand {
	return mkvtoolnix.NewSplitCommand(cfg.Tools.MKVMerge, source, cfg.Split.Suffix, plan.Starts)
}

type splitRequest struct {
	cfg      *config.Config
	logger   *slog.Logger
	source   string
	plan     *episodeplan.Plan
	mode     string
	yes      bool
	prompt   *prompter
	display  *progressDisplay
	out      io.Writer
	executor mkvtoolnix.Executor
}

// offerSplit prints, runs or skips the mkvmerge command for plan according
// to the split mode, asking when the mode is ask.
func offerSplit(ctx context.Context, req splitRequest) error {
	if req.plan == nil || len(req.plan.Starts) == 0 {
		return nil
	}
	command := buildSplitCommand(req.cfg, req.source, req.plan)
	if err := command.Validate(); err != nil {
		return err
	}

	action := splitSkip
	switch req.mode {
	case splitModeRun:
		action = splitRun
	case splitModePrint:
		action = splitPrint
	case splitModeSkip:
		return nil
	default:
		if req.yes {
			action = splitPrint
			break
		}
		ok, err := req.prompt.confirm("\nGenerate MKV split command?")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		fmt.Fprintf(req.out, "\nGenerated command:\n  %s\n\n", command.String())
		action, err = req.prompt.splitAction()
		if err != nil {
			return err
		}
	}

	switch action {
	case splitPrint:
		fmt.Fprintf(req.out, "\nCommand to copy:\n  %s\n", command.String())
		return nil
	case splitRun:
		return runSplit(ctx, req, command)
	default:
		fmt.Fprintln(req.out, "Skipping split.")
		return nil
	}
}

func runSplit(ctx context.Context, req splitRequest, command mkvtoolnix.SplitCommand) error {
	var opts []mkvtoolnix.Option
	if req.executor != nil {
		opts = append(opts, mkvtoolnix.WithExecutor(req.executor))
	}
	client, err := mkvtoolnix.New(req.cfg.Tools.MKVExtract, req.cfg.Tools.MKVMerge, req.cfg.Tools.TimeoutSeconds, opts...)
	if err != nil {
		return err
	}
	logger := logging.WithContext(ctx, logging.NewComponentLogger(req.logger, "split"))
	logger.Info("running mkvmerge",
		logging.String("output", command.Output),
		logging.String("chapters", command.ChapterList()),
	)
	fmt.Fprintln(req.out, "\nRunning mkvmerge...")
	err = client.Split(ctx, command, req.display.splitProgress)
	req.display.finish()
	if err != nil {
		fmt.Fprintf(req.out, "mkvmerge failed. You can run the command manually:\n  %s\n", command.String())
		return err
	}
	fmt.Fprintf(req.out, "Split complete. Output: %s\n", strings.TrimSpace(command.Output))
	return nil
}
