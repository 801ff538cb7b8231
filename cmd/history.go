package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jblaunch/jblaunch/internal/config"
	"github.com/jblaunch/jblaunch/internal/history"
)

var (
	historyJSON  bool
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently launched projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(config.Load().HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		launches, err := store.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		counts, err := store.LaunchCounts(cmd.Context())
		if err != nil {
			return err
		}

		if historyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Launches []history.Launch `json:"launches"`
				Counts   map[string]int   `json:"counts"`
			}{Launches: launches, Counts: counts})
		}

		if len(launches) == 0 {
			fmt.Println("No launches recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LAUNCHED\tIDE\tOPENS\tPROJECT")
		for _, l := range launches {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				l.LaunchedAt.Local().Format(time.DateTime), l.ProductCode, counts[l.ProjectPath], l.ProjectPath)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print JSON")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max launches to show")
}
