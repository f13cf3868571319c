package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pslits/oai-pmh-sub003/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [target_path]",
	Short: "Write a starter repository.yaml",
	Long: `Write a starter repository.yaml into the target directory.

The starter file defines a small but complete repository: identity,
one oai_dc metadata format, a two-level set hierarchy and a handful of
records, one of them deleted. It validates as-is and is meant to be
edited into your own repository.

An existing repository.yaml is never overwritten.

Examples:
  oaipmh init                # Current directory
  oaipmh init ./my-repo      # Existing subdirectory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}
	verbose := getVerboseFlag(cmd)

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Target directory: %s\n", targetDir)
	}

	path, err := config.WriteStarter(targetDir)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Starter repository written to %s\n", path)

	// Next steps
	fmt.Fprintln(os.Stderr, "\nNext steps:")
	fmt.Fprintf(os.Stderr, "  1. Edit %s with your own identity and records\n", path)
	fmt.Fprintln(os.Stderr, "  2. Answer a first request:")
	if targetDir != "." {
		fmt.Fprintf(os.Stderr, "       oaipmh respond \"verb=Identify\" --config %s\n", targetDir)
	} else {
		fmt.Fprintln(os.Stderr, "       oaipmh respond \"verb=Identify\"")
	}
	return nil
}
