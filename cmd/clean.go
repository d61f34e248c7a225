package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adalundhe/repoprofile/core/config"
	"github.com/spf13/cobra"
)

var cleanConfigPath string

var cleanCmd = &cobra.Command{
	Use:   "clean [repo-id]",
	Short: "Remove cloned working copies",
	Long: `Remove the working copy for a repository id, or every working copy
under the configured temp directory when no id is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVarP(&cleanConfigPath, "config", "c", "", "Path to a yaml config file")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cleanConfigPath)
	if err != nil {
		return err
	}

	target := cfg.Repo.TempDir
	if len(args) == 1 {
		target = filepath.Join(cfg.Repo.TempDir, args[0])
	}

	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("failed to remove %s: %w", target, err)
	}

	fmt.Printf("Removed %s\n", target)
	return nil
}
