package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/tourfleet/internal/client"
	"github.com/ukydev/tourfleet/internal/config"
	"github.com/ukydev/tourfleet/internal/dashboard"
	"github.com/ukydev/tourfleet/internal/store"
)

// session holds the dependencies shared by the subcommands of one run.
type session struct {
	apiURL string
	token  string

	api   *client.Client
	board *dashboard.Dashboard
}

func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		return err
	}
	if err := cfg.ConfigureLogging(); err != nil {
		log.WithError(err).Error("Failed to configure logging")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd(cfg).ExecuteContext(ctx)
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	s := &session{}
	root := &cobra.Command{
		Use:           "fleetctl",
		Short:         "Administer the tour fleet: vehicles, drivers, routes and assignments",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s.api = client.New(s.apiURL, s.token)
			s.board = dashboard.New(store.New(s.api, log.WithField("component", "fleetctl")))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&s.apiURL, "api", cfg.APIBaseURL, "fleet API base URL (e.g. http://localhost:8080/api)")
	root.PersistentFlags().StringVar(&s.token, "token", cfg.FleetToken, "bearer token (default $FLEET_TOKEN)")

	for _, kind := range []store.Kind{store.Vehicles, store.Drivers, store.Routes, store.Assignments} {
		root.AddCommand(listCmd(s, kind))
	}
	root.AddCommand(getCmd(s), statsCmd(s), alertsCmd(s), deleteCmd(s), setStatusCmd(s), loginCmd(s, cfg.AdminUsername))
	return root
}
