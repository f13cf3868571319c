package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// StarterYAML is the repository.yaml written by the init command: a
// small but complete repository that validates as-is, meant to be edited
// into a real one.
const StarterYAML = `# OAI-PMH repository definition.
# Try it with: oaipmh respond 'verb=Identify'

repository:
  name: Example Repository
  base_url: http://repo.example.org/oai
  admin_emails:
    - admin@example.org
  namespace_identifier: example.org
  earliest_datestamp: "2020-01-01"
  deleted_record: transient
  granularity: YYYY-MM-DD

formats:
  - prefix: oai_dc
    schema: http://www.openarchives.org/OAI/2.0/oai_dc.xsd
    root_tag: oai_dc:dc
    namespaces:
      - prefix: oai_dc
        uri: http://www.openarchives.org/OAI/2.0/oai_dc/
      - prefix: dc
        uri: http://purl.org/dc/elements/1.1/

sets:
  - spec: articles
    name: Journal Articles
    description: Peer-reviewed journal articles.
  - spec: articles:open
    name: Open Access Articles

records:
  - identifier: oai:example.org:article-1
    datestamp: "2024-01-15"
    sets: [articles, articles:open]
    format: oai_dc
    fields:
      dc:title: An Example Article
      dc:creator: Doe, J.
      dc:date: "2024-01-15"

  # Items without an identifier of their own get one minted from
  # source_key, deterministically.
  - source_key: catalog/2024/0042
    datestamp: "2024-02-01"
    sets: [articles]
    format: oai_dc
    fields:
      dc:title: A Second Article

  - identifier: oai:example.org:article-withdrawn
    datestamp: "2024-03-01"
    deleted: true
    sets: [articles]
    format: oai_dc
`

// WriteStarter writes StarterYAML into dir. It refuses to overwrite an
// existing config.
func WriteStarter(dir string) (string, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(StarterYAML), 0o644); err != nil {
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
