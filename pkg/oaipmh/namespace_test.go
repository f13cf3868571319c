package oaipmh

import (
	"errors"
	"testing"
)

func mustNamespace(t *testing.T, prefix, uri string) Namespace {
	t.Helper()
	p, err := NewNamespacePrefix(prefix)
	if err != nil {
		t.Fatalf("prefix %q: %v", prefix, err)
	}
	u, err := NewAnyURI(uri)
	if err != nil {
		t.Fatalf("uri %q: %v", uri, err)
	}
	return NewNamespace(p, u)
}

func TestNewNamespaces(t *testing.T) {
	dc := mustNamespace(t, "dc", "http://purl.org/dc/elements/1.1/")
	oaiDC := mustNamespace(t, "oai_dc", "http://www.openarchives.org/OAI/2.0/oai_dc/")

	ns, err := NewNamespaces(dc, oaiDC)
	if err != nil {
		t.Fatalf("NewNamespaces() error = %v", err)
	}
	if ns.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ns.Len())
	}

	all := ns.All()
	if !all[0].Equal(dc) || !all[1].Equal(oaiDC) {
		t.Error("All() should preserve insertion order")
	}

	got, ok := ns.ByPrefix(dc.Prefix())
	if !ok || !got.Equal(dc) {
		t.Errorf("ByPrefix(dc) = %v, %v", got, ok)
	}
	if _, ok := ns.ByPrefix(mustNamespace(t, "marc", "http://www.loc.gov/MARC21/slim").Prefix()); ok {
		t.Error("ByPrefix should miss for an unbound prefix")
	}
}

func TestNewNamespacesRejectsEmpty(t *testing.T) {
	_, err := NewNamespaces()
	if !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("error = %v, want ErrEmptyCollection", err)
	}
}

func TestNewNamespacesRejectsDuplicates(t *testing.T) {
	dc := mustNamespace(t, "dc", "http://purl.org/dc/elements/1.1/")
	samePrefix := mustNamespace(t, "dc", "http://example.org/other")
	sameURI := mustNamespace(t, "dc2", "http://purl.org/dc/elements/1.1/")

	if _, err := NewNamespaces(dc, samePrefix); !errors.Is(err, ErrDuplicateValue) {
		t.Errorf("duplicate prefix error = %v, want ErrDuplicateValue", err)
	}
	if _, err := NewNamespaces(dc, sameURI); !errors.Is(err, ErrDuplicateValue) {
		t.Errorf("duplicate URI error = %v, want ErrDuplicateValue", err)
	}
}

func TestNamespacesEqualIgnoresOrder(t *testing.T) {
	dc := mustNamespace(t, "dc", "http://purl.org/dc/elements/1.1/")
	oaiDC := mustNamespace(t, "oai_dc", "http://www.openarchives.org/OAI/2.0/oai_dc/")
	xsi := mustNamespace(t, "xsi", "http://www.w3.org/2001/XMLSchema-instance")

	a, err := NewNamespaces(dc, oaiDC, xsi)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewNamespaces(xsi, dc, oaiDC)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("collections with the same bindings must be equal regardless of order")
	}

	c, err := NewNamespaces(dc, oaiDC)
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Error("collections of different size must not be equal")
	}

	rebound := mustNamespace(t, "xsi", "http://example.org/elsewhere")
	d, err := NewNamespaces(dc, oaiDC, rebound)
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(d) {
		t.Error("same prefixes bound to different URIs must not be equal")
	}
}

func TestNamespacesAllReturnsCopy(t *testing.T) {
	dc := mustNamespace(t, "dc", "http://purl.org/dc/elements/1.1/")
	ns, err := NewNamespaces(dc)
	if err != nil {
		t.Fatal(err)
	}
	all := ns.All()
	all[0] = mustNamespace(t, "hacked", "http://example.org/")
	if got := ns.All()[0]; !got.Equal(dc) {
		t.Error("mutating the returned slice must not affect the collection")
	}
}
