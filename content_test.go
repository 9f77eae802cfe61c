package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultContent(t *testing.T) {
	c, files, err := loadContent("")
	if err != nil {
		t.Fatalf("loadContent: %v", err)
	}
	if files != nil {
		t.Errorf("built-in content should have no files to watch, got %v", files)
	}
	if len(c.Projects) != 4 {
		t.Errorf("projects = %d, want 4", len(c.Projects))
	}
	if len(c.Certificates) == 0 {
		t.Error("expected certificates")
	}
	if c.Owner.Email == "" {
		t.Error("expected an owner email")
	}
	if got := c.categories(); strings.Join(got, ",") != "web,iot,website" {
		t.Errorf("categories = %v, want [web iot website]", got)
	}
}

func TestContentProjectLookup(t *testing.T) {
	c, _, err := loadContent("")
	if err != nil {
		t.Fatal(err)
	}
	p, ok := c.Project("3")
	if !ok || p.Category != "iot" {
		t.Fatalf("Project(3) = %+v (%v), want the iot project", p, ok)
	}
	if _, ok := c.Project("99"); ok {
		t.Error("unknown id should not be found")
	}
}

func TestParseContentRequiresIDs(t *testing.T) {
	_, err := parseContent([]byte("projects:\n  - title: No id\n"))
	if err == nil || !strings.Contains(err.Error(), "no id") {
		t.Fatalf("err = %v, want missing id error", err)
	}
}

func TestLoadContentGlobMerges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), `
owner:
  name: Ada
about: first
projects:
  - id: one
    title: One
    category: web
`)
	writeFile(t, filepath.Join(dir, "sub", "b.yaml"), "")
	writeFile(t, filepath.Join(dir, "b.yaml"), `
about: second
projects:
  - id: two
    title: Two
    category: cli
certificates:
  - title: Go
    provider: acme
`)
	c, files, err := loadContent(filepath.Join(dir, "*.yaml"))
	if err != nil {
		t.Fatalf("loadContent: %v", err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.yaml" {
		t.Fatalf("files = %v, want a.yaml then b.yaml", files)
	}
	if len(c.Projects) != 2 || c.Projects[1].ID != "two" {
		t.Fatalf("projects = %+v", c.Projects)
	}
	if c.Owner.Name != "Ada" || c.About != "second" {
		t.Errorf("owner %q about %q, want Ada/second", c.Owner.Name, c.About)
	}
	if got := c.providers(); len(got) != 1 || got[0] != "acme" {
		t.Errorf("providers = %v, want [acme]", got)
	}
}

func TestLoadContentRecursiveGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.yaml"), "projects:\n  - id: top\n    title: Top\n")
	writeFile(t, filepath.Join(dir, "nested", "deep.yaml"), "projects:\n  - id: deep\n    title: Deep\n")

	c, files, err := loadContent(filepath.Join(dir, "**", "*.yaml"))
	if err != nil {
		t.Fatalf("loadContent: %v", err)
	}
	if len(files) != 2 || len(c.Projects) != 2 {
		t.Fatalf("files %v projects %d, want 2/2", files, len(c.Projects))
	}
}

func TestLoadContentErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "projects:\n  - id: x\n    title: A\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "projects:\n  - id: x\n    title: B\n")
	writeFile(t, filepath.Join(dir, "empty.yaml"), "owner:\n  name: Nobody\n")
	writeFile(t, filepath.Join(dir, "certs.yaml"), "certificates:\n  - title: Go\n    provider: dicoding\n  - title: Go\n    provider: dicoding\n")

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"duplicate ids", filepath.Join(dir, "[ab].yaml"), "duplicate project id"},
		{"no matches", filepath.Join(dir, "*.json"), "no content files"},
		{"missing file", filepath.Join(dir, "missing.yaml"), "missing.yaml"},
		{"empty content", filepath.Join(dir, "empty.yaml"), "content is empty"},
		{"duplicate certificates", filepath.Join(dir, "certs.yaml"), "duplicate certificate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loadContent(tt.pattern)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestSameCertificateTitleFromDifferentProviders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "certs.yaml")
	writeFile(t, path, "certificates:\n  - title: Go\n    provider: dicoding\n  - title: Go\n    provider: coursera\n")
	c, _, err := loadContent(path)
	if err != nil {
		t.Fatalf("loadContent: %v", err)
	}
	if len(c.Certificates) != 2 || c.Certificates[0].key() == c.Certificates[1].key() {
		t.Fatalf("certificates = %+v, want two with distinct keys", c.Certificates)
	}
}

func TestDefaultCertificateKeysUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, cert := range testContent(t).Certificates {
		if seen[cert.key()] {
			t.Fatalf("duplicate certificate key %q in the built-in content", cert.key())
		}
		seen[cert.key()] = true
	}
}
