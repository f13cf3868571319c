package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pslits/oai-pmh-sub003/internal/handler"
	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

var respondCmd = &cobra.Command{
	Use:   "respond <query>",
	Short: "Answer a protocol request from the configured repository",
	Long: `Answer a raw query string with a complete OAI-PMH response document.

The request runs through the same validation pipeline as 'oaipmh validate'
and is then dispatched against the repository defined in repository.yaml.
The XML response goes to stdout whether it carries a verb payload or
protocol errors; an error response also exits with code 12.

The repository is loaded from the current directory, the --config flag,
or the OAIPMH_CONFIG environment variable.

Examples:
  # Repository identity
  oaipmh respond "verb=Identify"

  # Harvest every record in a format
  oaipmh respond "verb=ListRecords&metadataPrefix=oai_dc"

  # A single record
  oaipmh respond "verb=GetRecord&identifier=oai:example.org:article-1&metadataPrefix=oai_dc"

  # A bounded, set-scoped harvest
  oaipmh respond "verb=ListIdentifiers&metadataPrefix=oai_dc&from=2024-01-01&set=articles"`,
	Args: RequireQuery,
	RunE: runRespond,
}

func init() {
	rootCmd.AddCommand(respondCmd)
}

func runRespond(cmd *cobra.Command, args []string) error {
	raw := args[0]
	verbose := getVerboseFlag(cmd)

	store, logger, err := loadRepository(cmd)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Raw query: %s\n", raw)
	}

	h := handler.New(store, logger)
	env := h.Respond(raw, time.Now().UTC())

	data, err := env.Marshal()
	if err != nil {
		return fmt.Errorf("%v: %w", err, oaipmh.ErrResponseBuild)
	}
	fmt.Println(string(data))

	if env.HasErrors() {
		return protocolFailure(env)
	}
	return nil
}

// protocolFailure rebuilds the response's error list as a report so the
// process exits with the protocol validation code.
func protocolFailure(env *oaipmh.Envelope) error {
	report := oaipmh.NewReport()
	for _, e := range env.Errors {
		report.Add(oaipmh.Code(e.Code), "%s", e.Message)
	}
	return report
}
