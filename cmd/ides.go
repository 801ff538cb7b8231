package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jblaunch/jblaunch/internal/catalog"
	"github.com/jblaunch/jblaunch/internal/config"
	"github.com/jblaunch/jblaunch/internal/discovery"
	"github.com/jblaunch/jblaunch/internal/logger"
)

var idesJSON bool

var idesCmd = &cobra.Command{
	Use:   "ides",
	Short: "List detected JetBrains IDE installations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.FromSettings(config.Load(), logger.Get())
		installs := cat.Installations()

		if idesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				IDEs []discovery.Installation `json:"ides"`
			}{IDEs: installs})
		}

		if len(installs) == 0 {
			fmt.Println("No JetBrains IDEs detected")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tCONFIG DIR\tEXECUTABLE")
		for _, inst := range installs {
			exe := inst.Executable
			if exe == "" {
				exe = "(not found)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", inst.Product.Code, inst.Product.Name, inst.ConfigDir, exe)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(idesCmd)
	idesCmd.Flags().BoolVar(&idesJSON, "json", false, "print JSON")
}
