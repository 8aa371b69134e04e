package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var userDelCmd = &cobra.Command{
	Use:   "delete-user <username>",
	Args:  cobra.ExactArgs(1),
	Short: "Delete a bptreekv user",
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		if _, err := userStore.GetUser(username); err != nil {
			return fmt.Errorf("user does not exist")
		}

		if err := userStore.DeleteUser(username); err != nil {
			return err
		}

		fmt.Printf("User %s deleted\n", username)
		return nil
	},
}
