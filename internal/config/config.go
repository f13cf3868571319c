// Package config loads and validates the repository.yaml file that seeds
// a repository: its identity, metadata formats, set hierarchy and
// records.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is the file Load looks for inside the config directory.
const ConfigFileName = "repository.yaml"

// EnvConfigDir names the environment variable that overrides the config
// directory.
const EnvConfigDir = "OAIPMH_CONFIG"

// File is the raw shape of repository.yaml. Load only unmarshals; all
// semantic validation happens in Build.
type File struct {
	Repository RepositorySection `yaml:"repository"`
	Formats    []FormatSection   `yaml:"formats"`
	Sets       []SetSection      `yaml:"sets"`
	Records    []RecordSection   `yaml:"records"`
}

// RepositorySection describes the repository itself.
type RepositorySection struct {
	Name              string   `yaml:"name"`
	BaseURL           string   `yaml:"base_url"`
	AdminEmails       []string `yaml:"admin_emails"`
	NamespaceID       string   `yaml:"namespace_identifier"`
	EarliestDatestamp string   `yaml:"earliest_datestamp"`
	DeletedRecord     string   `yaml:"deleted_record"`
	Granularity       string   `yaml:"granularity"`
}

// FormatSection declares one disseminable metadata format.
type FormatSection struct {
	Prefix     string             `yaml:"prefix"`
	Schema     string             `yaml:"schema"`
	RootTag    string             `yaml:"root_tag"`
	Namespaces []NamespaceSection `yaml:"namespaces"`
}

// NamespaceSection binds one XML prefix to a namespace URI.
type NamespaceSection struct {
	Prefix string `yaml:"prefix"`
	URI    string `yaml:"uri"`
}

// SetSection declares one node of the set hierarchy.
type SetSection struct {
	Spec        string `yaml:"spec"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// RecordSection declares one item. Identifier may be omitted when
// SourceKey is given; the identifier is then minted deterministically.
type RecordSection struct {
	Identifier string            `yaml:"identifier,omitempty"`
	SourceKey  string            `yaml:"source_key,omitempty"`
	Datestamp  string            `yaml:"datestamp"`
	Deleted    bool              `yaml:"deleted,omitempty"`
	Sets       []string          `yaml:"sets,omitempty"`
	Format     string            `yaml:"format,omitempty"`
	Fields     map[string]string `yaml:"fields,omitempty"`
}

// Load reads repository.yaml from dir. It returns ErrConfigNotFound when
// the file is missing and the raw unmarshaled file otherwise; semantic
// checks are Build's job.
func Load(dir string) (*File, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
