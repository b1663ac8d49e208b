package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/solat/internal/zone"
)

func newZonesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List JAKIM zones",
		Long:  "List every JAKIM prayer zone, optionally filtered by state.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _ := cmd.Flags().GetString("state")
			zones := filterByState(zone.All(), state)
			if FlagJSON {
				return renderJSON(cmd.OutOrStdout(), zones)
			}
			rows := make([]table.Row, 0, len(zones))
			for _, z := range zones {
				rows = append(rows, table.Row{z.Code, z.State, z.Description})
			}
			renderTable(cmd.OutOrStdout(), table.Row{"Code", "State", "Areas"}, rows)
			return nil
		},
	}
	cmd.Flags().String("state", "", "Only show zones in this state")
	return cmd
}

func filterByState(all []zone.Info, state string) []zone.Info {
	if state == "" {
		return all
	}
	out := make([]zone.Info, 0)
	for _, z := range all {
		if strings.EqualFold(z.State, state) {
			out = append(out, z)
		}
	}
	return out
}

func newZoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Inspect a single zone",
	}

	resolve := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a masjid address to a JAKIM zone",
		Long:  "Map a state and city to the JAKIM zone the server would use. Unknown addresses fall back to WLY01.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _ := cmd.Flags().GetString("state")
			city, _ := cmd.Flags().GetString("city")
			if state == "" && city == "" {
				return fmt.Errorf("--state or --city is required")
			}
			info, _ := zone.Lookup(zone.Resolve(state, city))
			if FlagJSON {
				return renderJSON(cmd.OutOrStdout(), info)
			}
			renderTable(cmd.OutOrStdout(), table.Row{"Code", "State", "Areas"},
				[]table.Row{{info.Code, info.State, info.Description}})
			return nil
		},
	}
	resolve.Flags().String("state", "", "State name, e.g. Selangor")
	resolve.Flags().String("city", "", "City or district name")

	cmd.AddCommand(resolve)
	return cmd
}
