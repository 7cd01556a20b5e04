package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/complycloud/chatbridge/internal/config"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default chatbridge.yaml to the current directory",
	RunE: func(_ *cobra.Command, _ []string) error {
		if _, err := os.Stat(config.FileName); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
		}
		if err := config.Save(config.Default(), config.FileName); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", config.FileName)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
