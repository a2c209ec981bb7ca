package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"autosplit/internal/logging"
	"autosplit/internal/progress"
	"autosplit/internal/services/mkvtoolnix"
)

var stageLabels = map[string]string{
	progress.StageFingerprint: "Fingerprinting chapters",
	progress.StageCompare:     "Comparing fingerprints",
	"split":                   "Splitting with mkvmerge",
}

// progressDisplay draws a bar per stage on a terminal and falls back to
// sampled log lines elsewhere.
type progressDisplay struct {
	out     io.Writer
	tty     bool
	logger  *slog.Logger
	sampler *logging.ProgressSampler

	stage string
	bar   *progressbar.ProgressBar
}

func newProgressDisplay(out io.Writer, logger *slog.Logger, enabled bool) *progressDisplay {
	return &progressDisplay{
		out:     out,
		tty:     enabled && isTerminal(out),
		logger:  logging.NewComponentLogger(logger, "progress"),
		sampler: logging.NewProgressSampler(10),
	}
}

func (d *progressDisplay) report(ev progress.Event) {
	if d == nil {
		return
	}
	if !d.tty {
		if d.sampler.ShouldLog(ev) {
			d.logger.Info(label(ev.Stage),
				logging.String(logging.FieldStage, ev.Stage),
				logging.Int("current", ev.Current),
				logging.Int("total", ev.Total),
			)
		}
		return
	}
	if ev.Stage != d.stage || d.bar == nil {
		d.finish()
		d.stage = ev.Stage
		d.bar = progressbar.NewOptions(max(ev.Total, 1),
			progressbar.OptionSetWriter(d.out),
			progressbar.OptionSetDescription(label(ev.Stage)),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionThrottle(0),
		)
	}
	_ = d.bar.Set(ev.Current)
}

// splitProgress adapts mkvmerge percentages to the display.
func (d *progressDisplay) splitProgress(update mkvtoolnix.ProgressUpdate) {
	d.report(progress.Event{Stage: "split", Current: int(update.Percent), Total: 100})
}

func (d *progressDisplay) finish() {
	if d == nil || d.bar == nil {
		return
	}
	_ = d.bar.Finish()
	d.bar = nil
	d.stage = ""
}

func label(stage string) string {
	if text, ok := stageLabels[stage]; ok {
		return text
	}
	return stage
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
