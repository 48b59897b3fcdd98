package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"bikerent/internal/app"
	"bikerent/internal/devservice"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr  string
		users map[string]string
		debug bool
	)
	cmd := &cobra.Command{
		Use:   "rentald",
		Short: "In-memory bike rental service for development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "info"
			if debug {
				level = "debug"
			}
			log := app.NewLogger(cmd.ErrOrStderr(), level)

			svc := devservice.New(log)
			for token, name := range users {
				u := svc.AddUser(token, name)
				log.Info("user added", "username", u.Username, "id", u.ID)
			}
			if len(users) == 0 {
				log.Warn("no users configured; every request will be rejected (use --user token=name)")
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           svc.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdown)
			}()

			log.Info("rental service listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8000", "listen address")
	cmd.Flags().StringToStringVar(&users, "user", nil, "token=username pairs to accept")
	cmd.Flags().BoolVar(&debug, "debug", false, "debug logging")
	return cmd
}
