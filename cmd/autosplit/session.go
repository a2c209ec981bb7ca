package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"autosplit/internal/analysis"
	"autosplit/internal/config"
	"autosplit/internal/episodeplan"
	"autosplit/internal/preflight"
)

// session bundles what one analysis command needs after the container has
// been chosen.
type session struct {
	ctx      *commandContext
	cfg      *config.Config
	logger   *slog.Logger
	prompt   *prompter
	display  *progressDisplay
	analyzer *analysis.Analyzer
	source   string
	out      io.Writer
}

func newSession(cmd *cobra.Command, ctx *commandContext, args []string, assumeYes bool) (*session, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger(cmd)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	prompt := ctx.prompt(out)

	dir, err := ctx.searchDir()
	if err != nil {
		return nil, err
	}
	source, err := resolveSource(args, dir, prompt, assumeYes)
	if err != nil {
		return nil, err
	}

	if failed := preflight.Failed(preflight.RunAll(cfg, source)); len(failed) > 0 {
		details := make([]string, 0, len(failed))
		for _, r := range failed {
			details = append(details, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
		return nil, fmt.Errorf("preflight failed: %s", strings.Join(details, "; "))
	}

	display := newProgressDisplay(cmd.ErrOrStderr(), logger, true)
	opts := append([]analysis.Option{analysis.WithProgress(display.report)}, ctx.analysisOptions...)
	analyzer, err := analysis.New(cfg, logger, opts...)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Processing: %s\n", source)
	return &session{
		ctx:      ctx,
		cfg:      cfg,
		logger:   logger,
		prompt:   prompt,
		display:  display,
		analyzer: analyzer,
		source:   source,
		out:      out,
	}, nil
}

func (s *session) splitRequest(plan *episodeplan.Plan, mode string, yes bool) splitRequest {
	return splitRequest{
		cfg:      s.cfg,
		logger:   s.logger,
		source:   s.source,
		plan:     plan,
		mode:     mode,
		yes:      yes,
		prompt:   s.prompt,
		display:  s.display,
		out:      s.out,
		executor: s.ctx.splitExecutor,
	}
}

// handleSessionError turns a cancelled selection into a clean exit.
func handleSessionError(cmd *cobra.Command, err error) error {
	if errors.Is(err, errCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	return err
}
