package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// ─── Content ─────────────────────────────────────────────────────────────────

type owner struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Tagline string `yaml:"tagline"`
}

type project struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Summary  string   `yaml:"summary"`
	Problem  string   `yaml:"problem"`
	Solution string   `yaml:"solution"`
	Tech     []string `yaml:"tech"`
	Features []string `yaml:"features"`
	Demo     string   `yaml:"demo"`
	Repo     string   `yaml:"repo"`
	Status   string   `yaml:"status"`
}

type certificate struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Provider    string `yaml:"provider"`
	Issued      string `yaml:"issued"`
}

type content struct {
	Owner        owner         `yaml:"owner"`
	About        string        `yaml:"about"`
	Projects     []project     `yaml:"projects"`
	Certificates []certificate `yaml:"certificates"`
}

// projectSource resolves project ids to their details.
type projectSource interface {
	Project(id string) (project, bool)
}

func (c *content) Project(id string) (project, bool) {
	for _, p := range c.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return project{}, false
}

// key identifies a certificate card; merge keeps it unique.
func (c certificate) key() string { return c.Provider + "/" + c.Title }

func (c *content) hasCertificate(key string) bool {
	return slices.ContainsFunc(c.Certificates, func(cert certificate) bool { return cert.key() == key })
}

// categories returns the distinct project categories in content order.
func (c *content) categories() []string {
	var out []string
	for _, p := range c.Projects {
		if p.Category != "" && !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}

// providers returns the distinct certificate providers in content order.
func (c *content) providers() []string {
	var out []string
	for _, cert := range c.Certificates {
		if cert.Provider != "" && !slices.Contains(out, cert.Provider) {
			out = append(out, cert.Provider)
		}
	}
	return out
}

func parseContent(data []byte) (content, error) {
	var c content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return content{}, fmt.Errorf("parse content: %w", err)
	}
	for i, p := range c.Projects {
		if strings.TrimSpace(p.ID) == "" {
			return content{}, fmt.Errorf("project %d (%q) has no id", i, p.Title)
		}
	}
	return c, nil
}

// merge appends other's projects and certificates. Owner fields and about
// are taken from other when it defines them.
func (c *content) merge(other content) error {
	for _, p := range other.Projects {
		if _, dup := c.Project(p.ID); dup {
			return fmt.Errorf("duplicate project id %q", p.ID)
		}
		c.Projects = append(c.Projects, p)
	}
	for _, cert := range other.Certificates {
		if c.hasCertificate(cert.key()) {
			return fmt.Errorf("duplicate certificate %q from %q", cert.Title, cert.Provider)
		}
		c.Certificates = append(c.Certificates, cert)
	}
	if other.Owner.Name != "" {
		c.Owner.Name = other.Owner.Name
	}
	if other.Owner.Email != "" {
		c.Owner.Email = other.Owner.Email
	}
	if other.Owner.Tagline != "" {
		c.Owner.Tagline = other.Owner.Tagline
	}
	if other.About != "" {
		c.About = other.About
	}
	return nil
}

// contentFiles expands pattern (a path or a doublestar glob) to the files it
// names, sorted.
func contentFiles(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, nil
	}
	pattern = expandHome(pattern)
	if !strings.ContainsAny(pattern, "*?[{") {
		if _, err := os.Stat(pattern); err != nil {
			return nil, err
		}
		return []string{pattern}, nil
	}
	files, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("bad content pattern %q: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no content files match %q", pattern)
	}
	slices.Sort(files)
	return files, nil
}

// loadContent reads and merges the content files named by pattern. An empty
// pattern yields the embedded default content.
func loadContent(pattern string) (content, []string, error) {
	if pattern == "" {
		c, err := parseContent(defaultContent)
		return c, nil, err
	}
	files, err := contentFiles(pattern)
	if err != nil {
		return content{}, nil, err
	}
	var merged content
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return content{}, nil, err
		}
		c, err := parseContent(data)
		if err != nil {
			return content{}, nil, fmt.Errorf("%s: %w", f, err)
		}
		if err := merged.merge(c); err != nil {
			return content{}, nil, fmt.Errorf("%s: %w", f, err)
		}
	}
	if len(merged.Projects) == 0 && len(merged.Certificates) == 0 && merged.About == "" {
		return content{}, nil, errors.New("content is empty")
	}
	return merged, files, nil
}
