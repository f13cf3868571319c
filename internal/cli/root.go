package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "oaipmh",
	Short: "OAI-PMH 2.0 repository toolkit",
	Long: asciiLogo + `

oaipmh validates OAI-PMH 2.0 protocol requests and answers them from a
repository defined in a single repository.yaml file: identity, metadata
formats, set hierarchy and records.

Requests are checked the way a conforming repository must check them,
and every violation is reported in one response. No partial answers.
No silent coercion. Just the protocol.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Repository configuration missing or invalid
  12 - Request failed protocol validation
  13 - Response could not be rendered`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for oaipmh")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Directory containing repository.yaml (default \".\" or $OAIPMH_CONFIG)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
