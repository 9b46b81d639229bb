package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"calassist/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Connect a Google Calendar account",
	}
	cmd.PersistentFlags().StringVar(&account, "account", "", "account label, for keeping several accounts apart")

	urlCmd := &cobra.Command{
		Use:   "url",
		Short: "Print the authorization URL to visit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			fmt.Println("Visit this URL, grant calendar access, then run 'calassist auth save <code>':")
			fmt.Println(google.GetAuthURLForAccount(account))
			return nil
		},
	}

	saveCmd := &cobra.Command{
		Use:   "save <authorization-code>",
		Short: "Exchange the authorization code and store the token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			if err := google.SaveTokenForAccount(cmd.Context(), account, args[0]); err != nil {
				return fmt.Errorf("saving token: %w", err)
			}
			fmt.Println("Token stored. The assistant can now create events directly.")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is stored",
		Run: func(cmd *cobra.Command, args []string) {
			if google.HasTokenForAccount(account) {
				fmt.Println("A token is stored for this account.")
			} else {
				fmt.Println("No token stored. Run 'calassist auth url' to connect.")
			}
		},
	}

	cmd.AddCommand(urlCmd, saveCmd, statusCmd)
	return cmd
}
