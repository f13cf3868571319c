package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pslits/oai-pmh-sub003/internal/handler"
	"github.com/pslits/oai-pmh-sub003/internal/tui"
	"github.com/pslits/oai-pmh-sub003/internal/tui/wizards"
	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Interactively build a protocol request",
	Long: `Launches an interactive wizard that assembles a protocol request step
by step: pick a verb, fill in its arguments with live validation, then
review the assembled query string against the full validation pipeline.

The query string is printed to stdout, ready to paste into
'oaipmh respond'. With --respond the configured repository answers it
immediately.

This command requires an interactive terminal. For non-interactive use,
pass a query string to 'oaipmh validate' or 'oaipmh respond'.

Examples:
  # Build a request and print the query string
  oaipmh request

  # Build a request and answer it from the repository
  oaipmh request --respond`,
	Args: cobra.NoArgs,
	RunE: runRequest,
}

var requestRespond bool

func init() {
	rootCmd.AddCommand(requestCmd)

	requestCmd.Flags().BoolVar(&requestRespond, "respond", false, "Answer the built request from the configured repository")
}

func runRequest(cmd *cobra.Command, args []string) error {
	// Require interactive terminal
	if !tui.IsInteractive() {
		return fmt.Errorf("the request builder needs a terminal: %w\n"+
			"For non-interactive use, pass a query string to 'oaipmh validate' or 'oaipmh respond'",
			oaipmh.ErrNotInteractive)
	}

	result, err := wizards.RunRequestWizard()
	if err != nil {
		return fmt.Errorf("request wizard failed: %w", err)
	}
	if result.Cancelled {
		fmt.Println("Cancelled.")
		return nil
	}

	if !requestRespond {
		fmt.Fprintf(os.Stderr, "%s Request assembled:\n", tui.SymbolCheck)
		fmt.Println(result.Query)
		return nil
	}

	store, logger, err := loadRepository(cmd)
	if err != nil {
		return err
	}

	h := handler.New(store, logger)
	env := h.Respond(result.Query, time.Now().UTC())

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
