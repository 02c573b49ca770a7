package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "List store locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		stores, err := a.catalog.Stores(cmd.Context())
		if err != nil {
			return hint(err)
		}

		selected := a.stores.Selected()
		for _, store := range stores {
			marker := " "
			if selected != nil && selected.StoreID == store.StoreID {
				marker = "*"
			}
			fmt.Printf("%s %4d  %s\n", marker, store.StoreID, store.Label())
		}
		return nil
	},
}

var storesSelectCmd = &cobra.Command{
	Use:   "select <store_id>",
	Short: "Select the store that scopes your cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storeID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid store id %q", args[0])
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		stores, err := a.catalog.Stores(cmd.Context())
		if err != nil {
			return hint(err)
		}
		for _, store := range stores {
			if store.StoreID == storeID {
				if err := a.stores.Select(cmd.Context(), store); err != nil {
					fmt.Println("Warning: selection not persisted; it will be forgotten on exit.")
				}
				fmt.Printf("Selected store #%d: %s\n", store.StoreID, store.Label())
				return nil
			}
		}
		return fmt.Errorf("store %d not found", storeID)
	},
}

var storesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the store selection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		if err := a.stores.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Store selection cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storesCmd)
	storesCmd.AddCommand(storesSelectCmd)
	storesCmd.AddCommand(storesClearCmd)
}
