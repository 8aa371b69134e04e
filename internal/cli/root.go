package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bptree/internal/auth"
	"bptree/internal/config"
	"bptree/internal/engine"
	"bptree/internal/logger"
)

var (
	cfg       *config.Config
	db        *engine.Database
	userStore auth.Store
	log       *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bptreekv",
	Short: "bptreekv - a key/value store backed by a B+tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		startREPL(cmd)
		return nil
	},
}

// Execute wires up the process-wide config, engine, and user catalog
// and hands control to cobra. There's exactly one Database and one
// user Store per process, so both live in package-level vars that
// every subcommand's RunE reaches into directly.
func Execute() {
	var err error
	cfg, err = config.LoadConfig("", "")
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(filepath.Join(cfg.LogDir, "cli.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	log = logger.New(logFile, logger.INFO)

	db, err = engine.Open(cfg)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	userStore = auth.NewTreeStore()
	if err := bootstrapSuperuser(userStore); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

// bootstrapSuperuser creates a default "admin"/"admin" superuser the
// first time a process starts against an empty user catalog, since
// there is no other way to reach a superuser-gated command on a
// brand new store. The operator is expected to change the password
// immediately with create-user / delete-user.
func bootstrapSuperuser(store auth.Store) error {
	users, err := store.ListUsers()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin")
	if err != nil {
		return err
	}
	log.Infof("bootstrapping default superuser %q", "admin")
	return store.SaveUser(&auth.User{
		Username: "admin",
		Password: hash,
		Role:     auth.RoleSuperuser,
		AccessDB: []string{},
	})
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exitCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userDelCmd)
}
