package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exitCmd = &cobra.Command{
	Use:   "exit",
	Short: "Close the database and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Close(); err != nil {
			return err
		}

		fmt.Println("bye")
		os.Exit(0)
		return nil
	},
}
