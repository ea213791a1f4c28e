package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// assignCommand assigns one passenger to one cabin and prints the resulting
// passenger list.
func assignCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assign CABIN PASSENGER",
		Short: "Assigns a passenger to a cabin",
		Args:  cobra.ExactArgs(2), //nolint: mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			registry, err := a.loadRegistry(ctx)
			if err != nil {
				return err
			}
			if err := registry.AssignPassenger(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("could not assign %s to %s: %w", args[1], args[0], err)
			}

			printPassengers(cmd.OutOrStdout(), registry)

			return nil
		},
	}
}
