package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cabinsCommand prints the cabins from cheapest to most expensive.
func cabinsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cabins",
		Short: "Lists cabins ordered by price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := a.loadRegistry(cmd.Context())
			if err != nil {
				return err
			}

			cabins := registry.CabinsByPrice()
			if available, _ := cmd.Flags().GetBool("available"); available {
				cabins = registry.AvailableCabins()
			}

			out := cmd.OutOrStdout()
			for _, c := range cabins {
				fmt.Fprintln(out, c)
			}

			return nil
		},
	}

	cmd.Flags().Bool("available", false, "Only list cabins without a passenger, in file order")

	return cmd
}
