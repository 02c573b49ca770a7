package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Check out the cart at your selected store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		total := a.cart.Total()
		if err := a.orders.Checkout(cmd.Context()); err != nil {
			return hint(err)
		}

		fmt.Printf("Order placed. Total: %.2f\n", total)
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your past orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		orders, err := a.orders.PastOrders(cmd.Context())
		if err != nil {
			return hint(err)
		}
		if len(orders) == 0 {
			fmt.Println("No past orders.")
			return nil
		}

		for _, order := range orders {
			placed := time.UnixMilli(order.OrderDateTime).Format("2006-01-02")
			fmt.Printf("#%-6d %s  store %-4d  %8.2f  %s\n",
				order.OrderID, placed, order.StoreID, order.TotalPrice, order.Status)
		}
		return nil
	},
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <order_id>",
	Short: "Show one order with its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orderID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		order, err := a.orders.OrderDetail(cmd.Context(), orderID)
		if err != nil {
			return hint(err)
		}

		placed := time.UnixMilli(order.OrderDateTime).Format("2006-01-02")
		fmt.Printf("Order #%d  placed %s  total %.2f\n", order.OrderID, placed, order.TotalPrice)
		for _, item := range order.Items {
			status := "delivered"
			if item.IsReturn {
				status = "returned"
			}
			fmt.Printf("  #%-5d %-30s x%-3d @ %8.2f  %s\n",
				item.OrderItemID, item.ProductName, item.Quantity, item.UnitPrice, status)
		}
		return nil
	},
}

var ordersReturnCmd = &cobra.Command{
	Use:   "return <order_id> <order_item_id>...",
	Short: "Return items from a past order",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		orderID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}
		itemIDs := make([]int, 0, len(args)-1)
		for _, arg := range args[1:] {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid order item id %q", arg)
			}
			itemIDs = append(itemIDs, id)
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		if err := a.orders.ReturnItems(cmd.Context(), orderID, itemIDs); err != nil {
			return hint(err)
		}

		fmt.Printf("%d item(s) marked for return.\n", len(itemIDs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(ordersShowCmd)
	ordersCmd.AddCommand(ordersReturnCmd)
}
