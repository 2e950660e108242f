package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukydev/tourfleet/internal/dashboard"
	"github.com/ukydev/tourfleet/internal/fleet"
	"github.com/ukydev/tourfleet/internal/store"
)

// viewFlags names the server-side subset each list command can ask for.
var viewFlags = map[store.Kind]struct{ name, usage string }{
	store.Vehicles:    {"available", "only vehicles available for assignment"},
	store.Drivers:     {"available", "only active drivers with a valid license"},
	store.Routes:      {"active", "only active routes"},
	store.Assignments: {"today", "only assignments departing today"},
}

// listCmd prints one collection as a table.
func listCmd(s *session, kind store.Kind) *cobra.Command {
	var (
		search string
		subset bool
	)
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: fmt.Sprintf("List %s", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subset {
				return s.board.ShowView(cmd.Context(), cmd.OutOrStdout(), kind, search)
			}
			return s.board.Show(cmd.Context(), cmd.OutOrStdout(), kind, search)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only show rows containing this text")
	flag := viewFlags[kind]
	cmd.Flags().BoolVar(&subset, flag.name, false, flag.usage)
	return cmd
}

// get <entity> <id>: re-read one record from the server.
func getCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <entity> <id>",
		Short: "Show one vehicle, driver, route or assignment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseTarget(args[0], args[1])
			if err != nil {
				return err
			}
			return s.board.ShowOne(cmd.Context(), cmd.OutOrStdout(), kind, id)
		},
	}
}

func statsCmd(s *session) *cobra.Command {
	var server bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the fleet summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				stats fleet.Stats
				err   error
			)
			if server {
				stats, err = s.board.ServerStats(cmd.Context())
			} else {
				stats, err = s.board.Stats(cmd.Context())
			}
			if err != nil {
				return err
			}
			return dashboard.RenderStats(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().BoolVar(&server, "server", false, "use the statistics computed by the server")
	return cmd
}

func alertsCmd(s *session) *cobra.Command {
	var server bool
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List expiring licenses and due maintenance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				alerts []fleet.AlertItem
				err    error
			)
			if server {
				alerts, err = s.board.ServerAlerts(cmd.Context())
			} else {
				alerts, err = s.board.Alerts(cmd.Context())
			}
			if err != nil {
				return err
			}
			return dashboard.RenderAlerts(cmd.OutOrStdout(), alerts)
		},
	}
	cmd.Flags().BoolVar(&server, "server", false, "use the alerts computed by the server")
	return cmd
}
