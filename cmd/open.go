//go:build unix

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jblaunch/jblaunch/internal/apiclient"
	"github.com/jblaunch/jblaunch/internal/catalog"
	"github.com/jblaunch/jblaunch/internal/config"
	"github.com/jblaunch/jblaunch/internal/history"
	"github.com/jblaunch/jblaunch/internal/launch"
	"github.com/jblaunch/jblaunch/internal/logger"
)

type openReq struct {
	Path string `json:"path"`
}
type openResp struct {
	Launch history.Launch `json:"launch"`
}

var openJSON bool

var openCmd = &cobra.Command{
	Use:   "open <project-path>",
	Short: "Open a project in the IDE that last used it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := strings.TrimSpace(args[0])
		// client-side friendliness: expand ~ and make absolute
		if strings.HasPrefix(path, "~") {
			if home, _ := os.UserHomeDir(); home != "" {
				path = filepath.Join(home, strings.TrimPrefix(path, "~"))
			}
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}

		rec, err := openProject(cmd.Context(), path)
		if err != nil {
			return err
		}

		if openJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(openResp{Launch: rec})
		}
		fmt.Printf("Opening %s with %s (pid=%d)\n", rec.ProjectPath, rec.ProductCode, rec.PID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().BoolVar(&openJSON, "json", false, "print JSON")
}

// openProject launches via the daemon when running, locally otherwise.
func openProject(ctx context.Context, path string) (history.Launch, error) {
	c := apiclient.New()
	var out openResp
	err := c.PostJSON(ctx, "/api/projects/open", openReq{Path: path}, &out)
	if err == nil {
		return out.Launch, nil
	}
	if apiclient.IsNotFound(err) {
		return history.Launch{}, fmt.Errorf("no such project in any IDE's recent list: %s", path)
	}
	if !apiclient.IsUnavailable(err) {
		return history.Launch{}, err
	}
	return openLocally(ctx, path)
}

func openLocally(ctx context.Context, path string) (history.Launch, error) {
	cfg := config.Load()
	cat := catalog.FromSettings(cfg, logger.Get())

	project, ok := cat.Find(ctx, path)
	if !ok {
		return history.Launch{}, fmt.Errorf("no such project in any IDE's recent list: %s", path)
	}

	pid, err := launch.Open(project.Installation.Executable, project.Path)
	if err != nil {
		if errors.Is(err, launch.ErrUnlaunchable) {
			return history.Launch{}, fmt.Errorf("%w; is %s on your PATH?", err, strings.Join(project.Installation.Product.ExecutableNames, " or "))
		}
		return history.Launch{}, err
	}

	rec := history.Launch{
		ProjectPath: project.Path,
		ProductCode: project.Installation.Product.Code,
		PID:         pid,
	}
	if store, err := history.Open(cfg.HistoryPath); err == nil {
		defer store.Close()
		if saved, err := store.Record(ctx, rec); err == nil {
			rec = saved
		} else {
			logger.Get().Warn("failed to record launch", "path", project.Path, "error", err)
		}
	}
	return rec, nil
}
