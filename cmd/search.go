//go:build unix

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jblaunch/jblaunch/internal/apiclient"
	"github.com/jblaunch/jblaunch/internal/catalog"
	"github.com/jblaunch/jblaunch/internal/config"
	"github.com/jblaunch/jblaunch/internal/logger"
)

type searchResp struct {
	Projects []catalog.Project `json:"projects"`
	Count    int               `json:"count"`
}

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:     "search [query]",
	Aliases: []string{"list"},
	Short:   "List recent projects, most recently opened first",
	Long: `List projects from every detected JetBrains IDE, deduplicated and ranked
by last-opened time. An optional query filters by substring match against
the project name and path.

Uses the daemon when it is running, otherwise scans directly.

Examples:
  jblaunch search                 # everything, ranked
  jblaunch search api             # projects matching "api"
  jblaunch search --json          # output JSON for piping`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	projects, err := searchProjects(cmd.Context(), query)
	if err != nil {
		return err
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(searchResp{Projects: projects, Count: len(projects)})
	}

	if len(projects) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tIDE\tLAST OPENED\tBRANCH\tPATH")
	for _, p := range projects {
		opened := "-"
		if !p.OpenedAt.IsZero() {
			opened = p.OpenedAt.Local().Format(time.DateTime)
		}
		branch := p.Branch
		if branch == "" {
			branch = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Title, p.Installation.Product.Name, opened, branch, p.Path)
	}
	return w.Flush()
}

// searchProjects asks the daemon first; without a daemon it scans locally so
// the command works standalone.
func searchProjects(ctx context.Context, query string) ([]catalog.Project, error) {
	c := apiclient.New()
	var out searchResp
	err := c.GetJSON(ctx, "/api/projects?q="+url.QueryEscape(query), &out)
	if err == nil {
		return out.Projects, nil
	}
	if !apiclient.IsUnavailable(err) {
		return nil, err
	}

	cat := catalog.FromSettings(config.Load(), logger.Get())
	return cat.Search(ctx, query), nil
}
