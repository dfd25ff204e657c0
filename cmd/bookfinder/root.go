package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kerbaras/bookfinder/pkg/app"
	"github.com/kerbaras/bookfinder/pkg/config"
	"github.com/kerbaras/bookfinder/pkg/logger"
)

var (
	configPath string
	cfg        config.Config
	logCloser  io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "bookfinder",
	Short: "Search the Open Library catalog from your terminal",
	Long:  "Search books by title on Open Library and browse the results with their covers",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath, cmd.Flags())
		if err != nil {
			return err
		}
		logCloser, err = logger.Setup(cfg.LogFile, cfg.LogLevel)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser == nil {
			return nil
		}
		return logCloser.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Launch TUI by default
		return app.NewApp(cfg).Run(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/bookfinder/config.toml)")
	flags.String("log-file", "", "write logs to this file")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("search-url", "", "Open Library search endpoint")
	flags.Bool("no-covers", false, "do not fetch or render cover art")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(configCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
