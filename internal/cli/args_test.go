package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

func TestRequireQuery(t *testing.T) {
	cmd := &cobra.Command{
		Use: "validate <query>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireQuery(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <query>") {
			t.Errorf("expected error to contain 'missing required argument: <query>', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		err := RequireQuery(cmd, []string{"verb=Identify"})
		if err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireQuery(cmd, []string{"verb=ListRecords", "metadataPrefix=oai_dc"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 1 arg") {
			t.Errorf("expected error to contain 'accepts 1 arg', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "quote the query") {
			t.Errorf("expected shell-splitting tip, got: %s", err.Error())
		}
	})

	t.Run("classifies as usage error", func(t *testing.T) {
		err := RequireQuery(cmd, []string{})
		if got := oaipmh.ExitCodeForError(err); got != oaipmh.ExitUsageError {
			t.Errorf("ExitCodeForError() = %d, want %d", got, oaipmh.ExitUsageError)
		}
	})
}
