package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/audiobooksmith/chapterize/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the home directory and a starter config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appHome.EnsureExists(); err != nil {
			return err
		}
		if appHome.ConfigExists() {
			fmt.Printf("Config already exists: %s\n", appHome.ConfigPath())
			return nil
		}
		if err := config.WriteDefault(appHome.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("Created %s\n", appHome.ConfigPath())
		fmt.Printf("Inbox:  %s\n", appHome.InboxPath())
		fmt.Printf("Output: %s\n", appHome.OutputPath())
		return nil
	},
}
