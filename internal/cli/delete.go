package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Args:  cobra.ExactArgs(1),
	Short: "Delete <key> and its value",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Delete(args[0]); err != nil {
			return err
		}

		fmt.Printf("%s deleted\n", args[0])
		return nil
	},
}
