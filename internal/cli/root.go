// Package cli implements solatctl, the operator command line for looking up
// zones and fetching prayer times without running the server.
package cli

import (
	"encoding/json"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// Global flag values, shared across subcommands.
var (
	FlagJSON    bool
	FlagBaseURL string
)

// NewRootCmd builds the solatctl command tree.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "solatctl",
		Short:         "JAKIM prayer times operator CLI",
		Long:          "Look up JAKIM zones, fetch prayer times and mint admin tokens for the solat server.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(newZonesCmd())
	rootCmd.AddCommand(newZoneCmd())
	rootCmd.AddCommand(newTimesCmd())
	rootCmd.AddCommand(newTokenCmd())

	return rootCmd
}

func renderTable(w io.Writer, header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
