package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bptree/internal/auth"
)

// Later let's give a -p option to include password in cmdline - if ommited we will
// prompt for password with protection
var userCreateCmd = &cobra.Command{
	Use:   "create-user <username> <password> <role>",
	Args:  cobra.ExactArgs(3),
	Short: "Create a new bptreekv user",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, password, roleStr := args[0], args[1], args[2]

		if _, err := userStore.GetUser(username); err == nil {
			return fmt.Errorf("user already exists")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		u := &auth.User{
			Username: username,
			Password: hash,
			Role:     auth.Role(roleStr),
			AccessDB: []string{},
		}

		if err := userStore.SaveUser(u); err != nil {
			return err
		}

		fmt.Printf("User %s created\n", username)
		return nil
	},
}
