package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "repoprofile",
	Short: "Repoprofile - repository analysis pipeline",
	Long:  `Repoprofile clones a git repository, extracts its code structure, and profiles its technology stack and integrations.`,
}

func Execute() error {
	return rootCmd.Execute()
}
