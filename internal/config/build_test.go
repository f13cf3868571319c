package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pslits/oai-pmh-sub003/pkg/oaipmh"
)

func validFile() *File {
	return &File{
		Repository: RepositorySection{
			Name:              "Example Repository",
			BaseURL:           "http://repo.example.org/oai",
			AdminEmails:       []string{"admin@example.org"},
			NamespaceID:       "example.org",
			EarliestDatestamp: "2020-01-01",
			DeletedRecord:     "persistent",
			Granularity:       "YYYY-MM-DD",
		},
		Formats: []FormatSection{{
			Prefix:  "oai_dc",
			Schema:  "http://www.openarchives.org/OAI/2.0/oai_dc.xsd",
			RootTag: "oai_dc:dc",
			Namespaces: []NamespaceSection{
				{Prefix: "oai_dc", URI: "http://www.openarchives.org/OAI/2.0/oai_dc/"},
				{Prefix: "dc", URI: "http://purl.org/dc/elements/1.1/"},
			},
		}},
		Sets: []SetSection{
			{Spec: "articles", Name: "Journal Articles"},
			{Spec: "articles:open", Name: "Open Access"},
		},
		Records: []RecordSection{
			{
				Identifier: "oai:example.org:1",
				Datestamp:  "2024-01-15",
				Sets:       []string{"articles"},
				Format:     "oai_dc",
				Fields:     map[string]string{"dc:title": "First"},
			},
			{
				SourceKey: "catalog/42",
				Datestamp: "2024-02-01",
				Format:    "oai_dc",
				Fields:    map[string]string{"dc:title": "Second"},
			},
			{
				Identifier: "oai:example.org:3",
				Datestamp:  "2024-03-01",
				Deleted:    true,
				Format:     "oai_dc",
			},
		},
	}
}

func TestBuild_Valid(t *testing.T) {
	store, err := validFile().Build(nil)
	require.NoError(t, err)
	require.NotNil(t, store)

	identity := store.Identity()
	assert.Equal(t, "Example Repository", identity.Name)
	assert.Equal(t, "http://repo.example.org/oai", identity.BaseURL.String())
	assert.Equal(t, "example.org", identity.NamespaceID)
	assert.Equal(t, oaipmh.GranularityDay, identity.Granularity)
	assert.Equal(t, "2020-01-01", identity.Earliest.String())

	assert.Equal(t, 3, store.Len())
	assert.Len(t, store.Formats(), 1)
	assert.Len(t, store.Sets(), 2)

	// The minted record is addressable under its deterministic id.
	minted := store.Items()[1].Record.Header().Identifier()
	assert.Contains(t, minted.String(), "oai:example.org:")
	_, ok := store.Get(minted)
	assert.True(t, ok)
}

func TestBuild_DefaultsApplied(t *testing.T) {
	f := validFile()
	f.Repository.DeletedRecord = ""
	f.Repository.Granularity = ""

	store, err := f.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, "no", store.Identity().DeletedRecord)
	assert.Equal(t, oaipmh.GranularityDay, store.Identity().Granularity)
}

func TestBuild_AggregatesAllErrors(t *testing.T) {
	f := validFile()
	f.Repository.Name = ""
	f.Repository.BaseURL = "http://bad url"
	f.Formats[0].Prefix = "oai dc"
	f.Sets[0].Spec = "bad set"
	f.Records[0].Datestamp = "15/01/2024"

	_, err := f.Build(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaipmh.ErrConfigInvalid)

	msg := err.Error()
	for _, want := range []string{
		"repository: name is required",
		"base_url",
		"formats[0]",
		"sets[0]",
		"records[0]",
	} {
		assert.Contains(t, msg, want, "every invalid section should be reported at once")
	}
}

func TestBuild_RequiresIdentifierOrSourceKey(t *testing.T) {
	f := validFile()
	f.Records[0].Identifier = ""
	f.Records[0].SourceKey = ""

	_, err := f.Build(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either identifier or source_key is required")
}

func TestBuild_RejectsDeletedRecordWithFields(t *testing.T) {
	f := validFile()
	f.Records[2].Fields = map[string]string{"dc:title": "Ghost"}

	_, err := f.Build(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaipmh.ErrConfigInvalid)
	assert.Contains(t, err.Error(), "deleted record cannot carry metadata")
}

func TestBuild_RejectsFieldsWithoutFormat(t *testing.T) {
	f := validFile()
	f.Records[0].Format = ""

	_, err := f.Build(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format is required when fields are given")
}

func TestBuild_RejectsUndeclaredReferences(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		f := validFile()
		f.Records[0].Format = "marc21"
		_, err := f.Build(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "undeclared format")
	})

	t.Run("unknown set", func(t *testing.T) {
		f := validFile()
		f.Records[0].Sets = []string{"nonexistent"}
		_, err := f.Build(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "undeclared set")
	})

	t.Run("duplicate identifier", func(t *testing.T) {
		f := validFile()
		f.Records[1].SourceKey = ""
		f.Records[1].Identifier = "oai:example.org:1"
		_, err := f.Build(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, oaipmh.ErrConfigInvalid)
	})
}

func TestBuild_GranularityConsistency(t *testing.T) {
	t.Run("earliest must match granularity", func(t *testing.T) {
		f := validFile()
		f.Repository.EarliestDatestamp = "2020-01-01T00:00:00Z"
		_, err := f.Build(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "earliest_datestamp")
	})

	t.Run("record datestamps must match granularity", func(t *testing.T) {
		f := validFile()
		f.Records[0].Datestamp = "2024-01-15T10:00:00Z"
		_, err := f.Build(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "granularity")
	})

	t.Run("seconds granularity throughout", func(t *testing.T) {
		f := validFile()
		f.Repository.Granularity = "YYYY-MM-DDThh:mm:ssZ"
		f.Repository.EarliestDatestamp = "2020-01-01T00:00:00Z"
		f.Records[0].Datestamp = "2024-01-15T10:30:00Z"
		f.Records[1].Datestamp = "2024-02-01T08:00:00Z"
		f.Records[2].Datestamp = "2024-03-01T12:00:00Z"
		store, err := f.Build(nil)
		require.NoError(t, err)
		assert.Equal(t, oaipmh.GranularitySeconds, store.Identity().Granularity)
	})
}

func TestBuild_EmptyRepositoryIsInvalid(t *testing.T) {
	_, err := (&File{}).Build(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaipmh.ErrConfigInvalid)
}
