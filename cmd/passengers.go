package main

import (
	"context"
	"cruise/internal/cruise"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// passengersCommand prints every passenger with the cabin they occupy. Pairs
// given with --assign are applied, in order, before printing.
func passengersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passengers",
		Short: "Lists passengers and their cabins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			registry, err := a.loadRegistry(ctx)
			if err != nil {
				return err
			}

			pairs, _ := cmd.Flags().GetStringArray("assign")
			if err := assignPairs(ctx, registry, pairs); err != nil {
				return err
			}

			printPassengers(cmd.OutOrStdout(), registry)

			return nil
		},
	}

	cmd.Flags().StringArray("assign", nil, "Assignment to apply first, as CABIN:PASSENGER (repeatable)")

	return cmd
}

func assignPairs(ctx context.Context, registry cruise.Registry, pairs []string) error {
	for _, pair := range pairs {
		cabinCode, passengerCode, ok := strings.Cut(pair, ":")
		if !ok || cabinCode == "" || passengerCode == "" {
			return fmt.Errorf("invalid assignment %q, expected CABIN:PASSENGER", pair)
		}
		if err := registry.AssignPassenger(ctx, cabinCode, passengerCode); err != nil {
			return fmt.Errorf("could not assign %s: %w", pair, err)
		}
	}

	return nil
}

func printPassengers(out io.Writer, registry cruise.Registry) {
	for _, entry := range registry.ListPassengers() {
		fmt.Fprintln(out, entry)
	}
}
