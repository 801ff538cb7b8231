package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jblaunch/jblaunch/internal/config"
	"github.com/jblaunch/jblaunch/internal/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "jblaunch",
	Short: "jblaunch - search and open JetBrains IDE projects",
	Long: `jblaunch lists the projects your installed JetBrains IDEs have recently
opened and launches the right IDE against the one you pick. A background
daemon exposes the same catalog over a unix socket for quick-launcher hosts.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Init(cfgFile)
		logger.SetLevel(config.Load().LogLevel)
	},
}

func Execute() error {
	// Silence usage and errors to avoid cluttering output with Cobra defaults
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/jblaunch/config.yaml)")
}
