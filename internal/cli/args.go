package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireQuery validates that exactly one query argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireQuery(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <query>

Usage: %s <query>

Example:
  %s "verb=ListRecords&metadataPrefix=oai_dc"`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d\n\nTip: quote the query so the shell does not split it on '&'", len(args))
	}
	return nil
}
