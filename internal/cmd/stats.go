package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	statsLimit int
	statsOut   string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show admin analytics (top sellers, best region)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		sellers, err := a.stats.TopSellers(cmd.Context(), statsLimit)
		if err != nil {
			return hint(err)
		}
		region, err := a.stats.BestRegion(cmd.Context())
		if err != nil {
			return hint(err)
		}

		fmt.Println("Top sellers:")
		for i, seller := range sellers {
			fmt.Printf("  %d. %-30s %-12s sold %d\n",
				i+1, seller.ProductName, seller.Category, seller.TotalSold)
		}

		fmt.Println("Best region:")
		state, city := "n/a", "n/a"
		if region.State != nil {
			state = *region.State
		}
		if region.City != nil {
			city = *region.City
		}
		fmt.Printf("  %s / %s: %d orders, %.2f revenue\n",
			state, city, region.OrderCount, region.TotalRevenue)
		return nil
	},
}

var statsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export analytics to an Excel workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		if err := a.stats.ExportReport(cmd.Context(), statsOut, statsLimit); err != nil {
			return hint(err)
		}

		fmt.Printf("Report written to %s\n", statsOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsExportCmd)

	statsCmd.PersistentFlags().IntVar(&statsLimit, "limit", 5, "Number of top sellers")
	statsExportCmd.Flags().StringVar(&statsOut, "out", "storefront-report.xlsx", "Output file path")
}
