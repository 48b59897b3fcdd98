package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"bikerent/internal/domain"
)

// start <bike>: rent a bike, attaching the position when it is precise enough.
func startCmd() *cobra.Command {
	cmd := protect(&cobra.Command{
		Use:   "start <bike>",
		Short: "Rent a bike",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rent, err := wire.Rental.StartRental(cmd.Context(), domain.BikeID(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rent)
		},
	})
	locationFlags(cmd)
	return cmd
}

// finish <rent-id>: return a rented bike.
func finishCmd() *cobra.Command {
	cmd := protect(&cobra.Command{
		Use:   "finish <rent-id>",
		Short: "Return a rented bike",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rent, err := wire.Rental.EndRental(cmd.Context(), domain.RentalID(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rent)
		},
	})
	locationFlags(cmd)
	return cmd
}

func rentalsCmd() *cobra.Command {
	return protect(&cobra.Command{
		Use:   "rentals",
		Short: "List your rentals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wire.Rentals.Refresh(cmd.Context())
			list := wire.Rentals.List()
			if list == nil {
				list = domain.RentalList{}
			}
			out, err := json.Marshal(list)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	})
}
