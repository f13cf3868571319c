package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pslits/oai-pmh-sub003/internal/tui"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List the repository's set hierarchy",
	Long: `List every set the repository organizes its records into, as declared
in repository.yaml. Colon-separated setSpecs express the hierarchy, so
'articles:open' is a child of 'articles'.

Examples:
  # Human-readable listing
  oaipmh sets

  # Machine-readable listing
  oaipmh sets --json`,
	Args: cobra.NoArgs,
	RunE: runSets,
}

var setsJSON bool

func init() {
	rootCmd.AddCommand(setsCmd)

	setsCmd.Flags().BoolVar(&setsJSON, "json", false, "Output sets as JSON")
}

func runSets(cmd *cobra.Command, args []string) error {
	store, _, err := loadRepository(cmd)
	if err != nil {
		return err
	}

	sets := store.Sets()

	if setsJSON {
		type setEntry struct {
			Spec        string `json:"spec"`
			Name        string `json:"name"`
			Description string `json:"description,omitempty"`
		}

		entries := make([]setEntry, 0, len(sets))
		for _, s := range sets {
			entry := setEntry{Spec: s.Spec().String(), Name: s.Name()}
			if description, ok := s.Description(); ok {
				entry.Description = description
			}
			entries = append(entries, entry)
		}

		jsonBytes, err := json.MarshalIndent(map[string]interface{}{
			"total_sets": len(entries),
			"sets":       entries,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
		return nil
	}

	if !store.HasSets() {
		fmt.Fprintln(os.Stderr, "The repository does not maintain a set hierarchy.")
		return nil
	}

	fmt.Fprintf(os.Stderr, "Sets (%d):\n\n", len(sets))
	for _, s := range sets {
		fmt.Fprintf(os.Stderr, "%s %s\n", tui.SymbolBullet, s.Spec())
		fmt.Fprintf(os.Stderr, "    Name: %s\n", s.Name())
		if description, ok := s.Description(); ok {
			fmt.Fprintf(os.Stderr, "    Description: %s\n", description)
		}
		fmt.Fprintln(os.Stderr)
	}
	return nil
}
