package assets

import (
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type manifestFile struct {
	Name     string                     `yaml:"name"`
	Version  string                     `yaml:"version"`
	Tokens   map[string]string          `yaml:"tokens"`
	Variants map[string]manifestVariant `yaml:"variants"`
}

type manifestVariant struct {
	Tokens map[string]string `yaml:"tokens"`
}

// ParseManifest reads a theme manifest holding design tokens and optional
// variants:
//
//	name: acme
//	tokens:
//	  primary: "#1fa3ec"
//	variants:
//	  dark:
//	    tokens:
//	      background: "#111"
func ParseManifest(data []byte) (*theme.Manifest, error) {
	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("assets: parse theme manifest: %w", err)
	}
	name := strings.TrimSpace(file.Name)
	if name == "" {
		return nil, fmt.Errorf("assets: theme manifest has no name")
	}

	manifest := &theme.Manifest{
		Name:    name,
		Version: file.Version,
		Tokens:  file.Tokens,
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for key, variant := range file.Variants {
			manifest.Variants[key] = theme.Variant{Tokens: variant.Tokens}
		}
	}
	return manifest, nil
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read theme manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}
