package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkim/storefront-client/internal/app/model"
)

var profileFields model.ProfileFields

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the customer profile for the logged-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		user := a.session.User()
		if user == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("User: %s (%s)\n", user.UserName, user.Role)

		customer := a.session.Customer()
		if customer == nil {
			fmt.Println("No profile on file; run 'storefront profile update'.")
			return nil
		}
		fmt.Printf("Name:    %s\n", customer.CustomerName)
		fmt.Printf("Phone:   %s\n", customer.PhoneNumber)
		fmt.Printf("Address: %s, %s, %s %s, %s\n",
			customer.Street, customer.City, customer.State, customer.ZipCode, customer.Country)
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Create or update the customer profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		customer, err := a.session.UpsertProfile(cmd.Context(), profileFields)
		if err != nil {
			return hint(err)
		}

		fmt.Printf("Profile saved (customer #%d).\n", customer.CustomerID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	profileUpdateCmd.Flags().StringVar(&profileFields.CustomerName, "name", "", "Full name")
	profileUpdateCmd.Flags().StringVar(&profileFields.PhoneNumber, "phone", "", "Phone number")
	profileUpdateCmd.Flags().StringVar(&profileFields.Street, "street", "", "Street address")
	profileUpdateCmd.Flags().StringVar(&profileFields.City, "city", "", "City")
	profileUpdateCmd.Flags().StringVar(&profileFields.State, "state", "", "State")
	profileUpdateCmd.Flags().StringVar(&profileFields.ZipCode, "zip", "", "ZIP code")
	profileUpdateCmd.Flags().StringVar(&profileFields.Country, "country", "", "Country")
}
