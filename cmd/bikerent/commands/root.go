package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"bikerent/internal/apierr"
	"bikerent/internal/app"
	"bikerent/internal/domain"
	"bikerent/internal/guard"
)

// annotation key marking commands that need a session.
const protected = "bikerent/protected"

var wire *app.Wire

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRoot()
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bikerent:", apierr.Message(err))
	}
	if wire != nil {
		if cerr := wire.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "bikerent",
		Short:         "Rent and return bikes from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			if cfg.Storage.Backend == app.BackendFile {
				if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
					return err
				}
			}
			log := app.NewLogger(cmd.ErrOrStderr(), cfg.Log.Level)
			if wire, err = app.NewWire(cfg, log); err != nil {
				return err
			}
			if cmd.Annotations[protected] == "" {
				return nil
			}
			d := wire.Guard.Check(cmd.Context(), guard.Route{Path: "/" + cmd.Name(), RequiresAuth: true})
			if d.Allow {
				return nil
			}
			return loginHint(d)
		},
	}

	pf := root.PersistentFlags()
	pf.String("api-root", "", "rental service base URL (default http://127.0.0.1:8000)")
	pf.String("home", "", "state directory (default ~/.bikerent)")
	pf.StringP("passphrase", "p", "", "passphrase sealing the stored token")
	pf.String("storage", "", "token storage backend: file, redis or memory")
	pf.String("redis-addr", "", "redis address for --storage redis")
	pf.Bool("debug", false, "debug logging")

	root.AddCommand(loginCmd(), logoutCmd(), whoamiCmd(), startCmd(), finishCmd(), rentalsCmd())
	return root
}

func protect(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[protected] = "true"
	return cmd
}

func loginHint(d guard.Decision) error {
	switch {
	case errors.Is(d.Err, domain.ErrNoStoredToken):
		return fmt.Errorf("not logged in (%s): run `bikerent login <token>`", d.Redirect)
	case errors.Is(d.Err, domain.ErrAuthRejected):
		return fmt.Errorf("session rejected by the service (%s): run `bikerent login <token>`", d.Redirect)
	default:
		return fmt.Errorf("cannot restore session (%s): %w", d.Redirect, d.Err)
	}
}

// locationFlags adds flags fixing the device position for one command.
func locationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("lat", 0, "device latitude")
	cmd.Flags().Float64("lng", 0, "device longitude")
	cmd.Flags().Float64("accuracy", 0, "fix accuracy radius in metres")
}

func printJSON(w io.Writer, raw json.RawMessage) error {
	if len(raw) == 0 {
		_, err := fmt.Fprintln(w, "null")
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
