package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pslits/oai-pmh-sub003/internal/config"
	"github.com/pslits/oai-pmh-sub003/internal/tui"
	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

var validateCmd = &cobra.Command{
	Use:   "validate <query>",
	Short: "Validate a protocol request without answering it",
	Long: `Run a raw query string through the full validation pipeline without
touching the repository.

The pipeline applies, in order:
1. Query grammar: tokenization, decoding, repeated and empty arguments
2. Verb resolution and argument name checks
3. Per-verb argument rules: required, optional and exclusive arguments,
   value grammars, and harvest window consistency

All violations are collected and reported together. A rejected request
exits with code 12.

Examples:
  # A valid request
  oaipmh validate "verb=Identify"

  # Report every problem at once
  oaipmh validate "verb=GetRecord&identifier=bad id"

  # Machine-readable result
  oaipmh validate "verb=ListRecords&metadataPrefix=oai_dc" --json

  # Render the rejection as a protocol error response
  oaipmh validate "verb=Bogus" --xml`,
	Args: RequireQuery,
	RunE: runValidate,
}

var (
	validateJSON bool
	validateXML  bool
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output validation results as JSON")
	validateCmd.Flags().BoolVar(&validateXML, "xml", false, "Render a rejection as an OAI-PMH error response")
}

// runPipeline pushes a raw query through every validation stage. A failure
// is always a *oaipmh.Report; the request is returned alongside it when
// the verb and argument names resolved but the rule check failed.
func runPipeline(raw string) (*oaipmh.Request, *oaipmh.Report) {
	q, err := oaipmh.ParseQuery(raw)
	if err != nil {
		return nil, asReport(err)
	}
	req, err := oaipmh.Validate(q)
	if err != nil {
		return nil, asReport(err)
	}
	if err := oaipmh.ValidateArguments(req); err != nil {
		return req, asReport(err)
	}
	return req, nil
}

// asReport unwraps the *oaipmh.Report every pipeline stage reports
// failures with.
func asReport(err error) *oaipmh.Report {
	var report *oaipmh.Report
	if errors.As(err, &report) {
		return report
	}
	report = oaipmh.NewReport()
	report.Add(oaipmh.CodeBadArgument, "%v", err)
	return report
}

func runValidate(cmd *cobra.Command, args []string) error {
	raw := args[0]
	verbose := getVerboseFlag(cmd)

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Raw query: %s\n", raw)
		fmt.Fprintf(os.Stderr, "[VERBOSE] JSON output: %v\n", validateJSON)
		fmt.Fprintf(os.Stderr, "[VERBOSE] XML output: %v\n", validateXML)
	}

	req, report := runPipeline(raw)

	if validateJSON {
		if err := printValidationJSON(raw, req, report); err != nil {
			return err
		}
	} else if validateXML && report != nil {
		if err := printRejectionXML(cmd, req, report); err != nil {
			return err
		}
	} else {
		printValidationText(req, report)
	}

	if report != nil {
		return report
	}
	return nil
}

// printValidationText writes the human-readable verdict to stderr.
func printValidationText(req *oaipmh.Request, report *oaipmh.Report) {
	if report == nil {
		fmt.Fprintln(os.Stderr, tui.SuccessStyle.Render(tui.SymbolCheck+" Request is valid"))
		fmt.Fprintf(os.Stderr, "  Verb: %s\n", req.Verb())
		for arg, value := range req.Arguments() {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", arg, value)
		}
		return
	}

	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render(fmt.Sprintf("%s Request rejected with %d error(s)", tui.SymbolCross, report.Len())))
	fmt.Fprintln(os.Stderr)
	for _, code := range report.Codes() {
		for _, msg := range report.Messages(code) {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", code, msg)
		}
	}
}

// printValidationJSON writes the machine-readable verdict to stdout.
func printValidationJSON(raw string, req *oaipmh.Request, report *oaipmh.Report) error {
	result := map[string]interface{}{
		"query": raw,
		"valid": report == nil,
	}

	if report == nil {
		result["verb"] = req.Verb().String()
		arguments := make(map[string]string, len(req.Arguments()))
		for arg, value := range req.Arguments() {
			arguments[arg.String()] = value
		}
		result["arguments"] = arguments
	} else {
		var errorList []map[string]string
		for _, code := range report.Codes() {
			for _, msg := range report.Messages(code) {
				errorList = append(errorList, map[string]string{
					"code":    string(code),
					"message": msg,
				})
			}
		}
		result["errors"] = errorList
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

// printRejectionXML renders the rejection as the OAI-PMH error response a
// repository would return, using the configured base URL when one loads.
func printRejectionXML(cmd *cobra.Command, req *oaipmh.Request, report *oaipmh.Report) error {
	env := oaipmh.NewEnvelope(validationBaseURL(cmd), time.Now().UTC())
	if req != nil {
		env.SetRequest(req)
	}
	env.AddReport(report)

	data, err := env.Marshal()
	if err != nil {
		return fmt.Errorf("%v: %w", err, oaipmh.ErrResponseBuild)
	}
	fmt.Println(string(data))
	return nil
}

// defaultBaseURL stands in for the repository base URL when no
// repository.yaml is available to the validate command.
const defaultBaseURL = "http://localhost/oai"

func validationBaseURL(cmd *cobra.Command) string {
	f, err := config.Load(resolveConfigDir(cmd))
	if err != nil || f.Repository.BaseURL == "" {
		return defaultBaseURL
	}
	if _, err := oaipmh.NewAnyURI(f.Repository.BaseURL); err != nil {
		return defaultBaseURL
	}
	return f.Repository.BaseURL
}
