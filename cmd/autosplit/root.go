package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(configure ...func(*commandContext)) *cobra.Command {
	var configFlag string
	var verbose bool
	var logFormat string

	ctx := newCommandContext(&configFlag, &verbose, &logFormat)
	for _, fn := range configure {
		fn(ctx)
	}

	rootCmd := &cobra.Command{
		Use:           "autosplit",
		Short:         "Find episode boundaries in multi-episode MKV files",
		Long:          "autosplit looks for recurring intro music or repeating chapter lengths inside one long\nMKV and proposes the chapters at which to split it into episodes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModeMenu(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format override (console or json)")

	rootCmd.AddCommand(newAudioCommand(ctx))
	rootCmd.AddCommand(newLengthCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
