package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukydev/tourfleet/internal/dashboard"
	"github.com/ukydev/tourfleet/internal/store"
)

func parseTarget(entity, rawID string) (store.Kind, int64, error) {
	kind, err := dashboard.ParseKind(entity)
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("invalid id %q", rawID)
	}
	return kind, id, nil
}

func singular(kind store.Kind) string { return strings.TrimSuffix(string(kind), "s") }

// delete <entity> <id>: remove a record after a y/N prompt.
func deleteCmd(s *session) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <entity> <id>",
		Short: "Delete a vehicle, driver, route or assignment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseTarget(args[0], args[1])
			if err != nil {
				return err
			}
			// Loaded records give the prompt a readable name.
			if res := s.board.Load(cmd.Context(), kind); !res.Success {
				return errors.New(res.Error)
			}

			var confirm dashboard.Confirmer = &dashboard.PromptConfirmer{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			if yes {
				confirm = dashboard.AlwaysConfirm
			}
			res := s.board.Delete(cmd.Context(), kind, id, confirm)
			switch {
			case res.Success:
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d.\n", singular(kind), id)
			case res.Error == dashboard.Cancelled:
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			default:
				return errors.New(res.Error)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// set-status <entity> <id> <status>: drivers take active or inactive.
func setStatusCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <entity> <id> <status>",
		Short: "Change the status of a record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseTarget(args[0], args[1])
			if err != nil {
				return err
			}
			res := s.board.SetStatus(cmd.Context(), kind, id, args[2])
			if !res.Success {
				return errors.New(res.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %d: %s\n", singular(kind), id, strings.ToLower(args[2]))
			return nil
		},
	}
}

func loginCmd(s *session, defaultUser string) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a token for --token or FLEET_TOKEN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("password required (-p)")
			}
			resp, err := s.api.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", defaultUser, "account name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}
