package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pslits/oai-pmh-sub003/internal/tui"
	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the repository's metadata formats",
	Long: `List every metadata format the repository can disseminate, as declared
in repository.yaml.

Examples:
  # Human-readable listing
  oaipmh formats

  # Machine-readable listing
  oaipmh formats --json`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

var formatsJSON bool

func init() {
	rootCmd.AddCommand(formatsCmd)

	formatsCmd.Flags().BoolVar(&formatsJSON, "json", false, "Output formats as JSON")
}

func runFormats(cmd *cobra.Command, args []string) error {
	store, _, err := loadRepository(cmd)
	if err != nil {
		return err
	}

	formats := store.Formats()

	if formatsJSON {
		type formatEntry struct {
			Prefix    string `json:"prefix"`
			Schema    string `json:"schema"`
			Namespace string `json:"namespace"`
			RootTag   string `json:"root_tag"`
		}

		entries := make([]formatEntry, 0, len(formats))
		for _, f := range formats {
			el := oaipmh.NewMetadataFormatElement(f)
			entries = append(entries, formatEntry{
				Prefix:    el.Prefix,
				Schema:    el.Schema,
				Namespace: el.Namespace,
				RootTag:   f.RootTag().String(),
			})
		}

		jsonBytes, err := json.MarshalIndent(map[string]interface{}{
			"total_formats": len(entries),
			"formats":       entries,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
		return nil
	}

	fmt.Fprintf(os.Stderr, "Metadata formats (%d):\n\n", len(formats))
	for _, f := range formats {
		el := oaipmh.NewMetadataFormatElement(f)
		fmt.Fprintf(os.Stderr, "%s %s\n", tui.SymbolBullet, el.Prefix)
		fmt.Fprintf(os.Stderr, "    Schema:    %s\n", el.Schema)
		fmt.Fprintf(os.Stderr, "    Namespace: %s\n", el.Namespace)
		fmt.Fprintf(os.Stderr, "    Root tag:  %s\n", f.RootTag())
		fmt.Fprintln(os.Stderr)
	}
	return nil
}
