package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bikerent/internal/domain"
)

// login <token>: store the token and load its profile.
func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <token>",
		Short: "Store an API token and load its profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := domain.Token(strings.TrimSpace(args[0]))
			if err := wire.Sessions.Authenticate(cmd.Context(), token); err != nil {
				if errors.Is(err, domain.ErrAuthRejected) {
					return fmt.Errorf("token rejected by the service")
				}
				return err
			}
			s := wire.Sessions.Session()
			if len(s.Profile) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Logged in. Profile unavailable right now.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in as:")
			return printJSON(cmd.OutOrStdout(), s.Profile)
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session and the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return protect(&cobra.Command{
		Use:   "whoami",
		Short: "Print the profile of the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := wire.Sessions.Session()
			if len(s.Profile) == 0 {
				return fmt.Errorf("profile unavailable; the service could not be reached")
			}
			return printJSON(cmd.OutOrStdout(), s.Profile)
		},
	})
}
