package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/mkim/storefront-client/internal/errors"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the cart for your selected store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		items := a.cart.Items()
		if len(items) == 0 {
			fmt.Println("Cart is empty.")
			return nil
		}

		for _, item := range items {
			stock := "?"
			if item.Stock != nil {
				stock = strconv.Itoa(*item.Stock)
			}
			fmt.Printf("#%-5d %-30s x%-3d @ %8.2f = %8.2f  (stock %s)\n",
				item.LineItemID, item.ProductName, item.Quantity,
				item.UnitPrice, item.Subtotal(), stock)
		}
		fmt.Printf("Items: %d   Total: %.2f\n", a.cart.Count(), a.cart.Total())
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product_id> <quantity>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		store := a.stores.Selected()
		if store == nil {
			return hint(apperrors.Precondition(apperrors.PreconditionNoStore, "no store selected"))
		}

		// Look up the product at the selected store for its captured price.
		product, err := a.catalog.ProductStock(cmd.Context(), store.StoreID, productID)
		if err != nil {
			return hint(err)
		}

		if err := a.cart.Add(cmd.Context(), productID, quantity, product.Price); err != nil {
			return hint(err)
		}

		fmt.Printf("Added %dx %s. Cart total: %.2f (%d items)\n",
			quantity, product.ProductName, a.cart.Total(), a.cart.Count())
		return nil
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <line_item_id> <quantity>",
	Short: "Set the quantity of a cart line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lineItemID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid line item id %q", args[0])
		}
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		if err := a.cart.SetQuantity(cmd.Context(), lineItemID, quantity); err != nil {
			return hint(err)
		}

		fmt.Printf("Cart total: %.2f (%d items)\n", a.cart.Total(), a.cart.Count())
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <line_item_id>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lineItemID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid line item id %q", args[0])
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		if err := a.cart.Remove(cmd.Context(), lineItemID); err != nil {
			return hint(err)
		}

		fmt.Printf("Removed. Cart total: %.2f (%d items)\n", a.cart.Total(), a.cart.Count())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartSetCmd)
	cartCmd.AddCommand(cartRemoveCmd)
}
