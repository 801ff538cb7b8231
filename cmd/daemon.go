//go:build unix

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jblaunch/jblaunch/internal/config"
	"github.com/jblaunch/jblaunch/internal/daemon"
	"github.com/jblaunch/jblaunch/internal/logger"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the jblaunch daemon",
	Long: `Control the jblaunch background daemon that serves the project catalog
to quick-launcher hosts over a unix socket.

The daemon keeps IDE discovery warm, watches the JetBrains config trees for
changes, and answers search and open requests without a rescan per call.`,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the jblaunch daemon",
	Long: `Start the jblaunch daemon in foreground mode.

For background operation, use:
  nohup jblaunch daemon start > /tmp/jblaunch-daemon.log 2>&1 &`,
	RunE: startDaemon,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the jblaunch daemon",
	Long:  "Stop the running jblaunch daemon gracefully.",
	RunE:  stopDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check daemon status",
	Long:  "Check if the jblaunch daemon is running and display its status.",
	RunE:  statusDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
}

func newDaemon() (*daemon.Daemon, error) {
	cfg := daemon.DefaultConfig()
	cfg.Settings = config.Load()
	cfg.Logger = logger.Get()
	return daemon.New(cfg)
}

func startDaemon(cmd *cobra.Command, args []string) error {
	d, err := newDaemon()
	if err != nil {
		return fmt.Errorf("failed to initialize daemon: %w", err)
	}

	return d.Start()
}

func stopDaemon(cmd *cobra.Command, args []string) error {
	d, err := newDaemon()
	if err != nil {
		return fmt.Errorf("failed to initialize daemon: %w", err)
	}

	return d.Stop()
}

func statusDaemon(cmd *cobra.Command, args []string) error {
	d, err := newDaemon()
	if err != nil {
		return fmt.Errorf("failed to initialize daemon: %w", err)
	}

	status, err := d.GetStatus()
	if err != nil {
		return err
	}

	if !status.Running {
		if status.PID > 0 {
			if status.ErrorMessage != "" {
				fmt.Printf("jblaunch daemon process exists (PID: %d) but not responding\n", status.PID)
				fmt.Printf("  Socket: %s\n", status.SocketPath)
				fmt.Printf("  Error: %v\n", status.ErrorMessage)
			} else {
				fmt.Printf("jblaunch daemon is not running (stale pidfile)\n")
				fmt.Printf("  Socket: %s\n", status.SocketPath)
			}
		} else {
			fmt.Printf("jblaunch daemon is not running\n")
			fmt.Printf("  Socket: %s\n", status.SocketPath)
		}
	} else {
		fmt.Printf("jblaunch daemon running (PID: %d)\n", status.PID)
		fmt.Printf("  Socket: %s\n", status.SocketPath)
		fmt.Printf("  Uptime: %s\n", status.Uptime.Round(time.Second))
	}

	return nil
}
