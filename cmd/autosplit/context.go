package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"autosplit/internal/analysis"
	"autosplit/internal/config"
	"autosplit/internal/logging"
	"autosplit/internal/services/mkvtoolnix"
)

type commandContext struct {
	configFlag *string
	verbose    *bool
	logFormat  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	// stdin is read by interactive prompts; tests replace it.
	stdin io.Reader
	// workDir is searched for MKV files when no path is given.
	workDir string

	prompter *prompter

	analysisOptions []analysis.Option
	splitExecutor   mkvtoolnix.Executor
}

func newCommandContext(configFlag *string, verbose *bool, logFormat *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
		logFormat:  logFormat,
		stdin:      os.Stdin,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.verbose != nil && *c.verbose {
			cfg.Logging.Level = "debug"
		}
		if c.logFormat != nil {
			if format := strings.ToLower(strings.TrimSpace(*c.logFormat)); format != "" {
				cfg.Logging.Format = format
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the run logger once. Console logs go to stderr so
// they never interleave with --json output.
func (c *commandContext) ensureLogger(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfigWriter(cfg, cmd.ErrOrStderr())
	})
	return c.logger, c.loggerErr
}

// prompt returns the shared prompter so buffered input survives between
// questions asked by different steps.
func (c *commandContext) prompt(out io.Writer) *prompter {
	if c.prompter == nil {
		c.prompter = newPrompter(c.stdin, out)
	}
	c.prompter.out = out
	return c.prompter
}

func (c *commandContext) searchDir() (string, error) {
	if c.workDir != "" {
		return c.workDir, nil
	}
	return os.Getwd()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
