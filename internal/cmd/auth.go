package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log in to the storefront backend",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		if err := a.session.Login(cmd.Context(), args[0], args[1]); err != nil {
			return hint(err)
		}

		user := a.session.User()
		fmt.Printf("Logged in as %s (%s)\n", user.UserName, user.Role)
		if a.session.Customer() == nil {
			fmt.Println("No profile on file yet; run 'storefront profile update' before checkout.")
		}
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup <username> <password>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		if err := a.session.Signup(cmd.Context(), args[0], args[1]); err != nil {
			return hint(err)
		}

		fmt.Printf("Account created for %s\n", args[0])
		fmt.Println("Run 'storefront profile update' to add your shipping details.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.dispose()

		a.session.Logout(cmd.Context())
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
}
