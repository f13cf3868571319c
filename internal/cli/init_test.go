package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pslits/oai-pmh-sub003/internal/config"
)

func TestRunInit_WritesStarter(t *testing.T) {
	targetDir := t.TempDir()

	err := runInit(initCmd, []string{targetDir})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	configPath := filepath.Join(targetDir, config.ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatalf("Expected %s to exist", config.ConfigFileName)
	}
}

func TestRunInit_StarterBuilds(t *testing.T) {
	targetDir := t.TempDir()

	if err := runInit(initCmd, []string{targetDir}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	f, err := config.Load(targetDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	store, err := f.Build(nil)
	if err != nil {
		t.Fatalf("The starter repository must build cleanly, got: %v", err)
	}

	if store.Len() != 3 {
		t.Errorf("Expected 3 starter records, got %d", store.Len())
	}
	if len(store.Formats()) != 1 {
		t.Errorf("Expected 1 starter format, got %d", len(store.Formats()))
	}
	if !store.HasSets() {
		t.Error("Expected the starter repository to declare sets")
	}
}

func TestRunInit_RefusesOverwrite(t *testing.T) {
	targetDir := t.TempDir()

	if err := runInit(initCmd, []string{targetDir}); err != nil {
		t.Fatalf("First init failed: %v", err)
	}

	err := runInit(initCmd, []string{targetDir})
	if err == nil {
		t.Fatal("Expected error when repository.yaml already exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected 'already exists' error, got: %v", err)
	}
}

func TestInitCmd_ArgsValidation_TooMany(t *testing.T) {
	err := initCmd.Args(initCmd, []string{"a", "b"})
	if err == nil {
		t.Fatal("Expected error for too many args")
	}
}
