// Package catalog holds the organisation catalogue and builds the source
// adapter registry from it. The built-in catalogue is embedded; users may
// replace it with their own TOML or YAML file.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/siria/internal/core/domain"
)

//go:embed organizations.toml
var builtin []byte

var validate = validator.New()

// Format identifies a catalogue encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Catalog is an ordered list of source configurations.
type Catalog struct {
	Sources []domain.SourceConfig `toml:"sources" yaml:"sources"`
}

// Default returns the embedded catalogue.
func Default() (*Catalog, error) {
	return Parse(builtin, FormatTOML)
}

// Load reads a catalogue file. The format follows the file extension.
func Load(path string) (*Catalog, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		format = FormatTOML
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		return nil, fmt.Errorf("catalog %s: %w", path, domain.ErrUnsupportedType)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes and validates a catalogue.
func Parse(data []byte, format Format) (*Catalog, error) {
	var c Catalog
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &c)
	case FormatYAML:
		err = yaml.Unmarshal(data, &c)
	default:
		return nil, fmt.Errorf("catalog format %q: %w", format, domain.ErrUnsupportedType)
	}
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks every entry and reports all problems at once.
func (c *Catalog) Validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(c.Sources))
	for i, s := range c.Sources {
		if err := validate.Struct(s); err != nil {
			errs = append(errs, fmt.Errorf("source %d (%s): %w: %v", i, s.OrganizationName, domain.ErrInvalidInput, err))
			continue
		}
		if s.Kind != "" && !s.Kind.IsValid() {
			errs = append(errs, fmt.Errorf("source %d (%s): kind %q: %w", i, s.OrganizationName, s.Kind, domain.ErrUnsupportedType))
		}
		key := strings.ToLower(s.OrganizationName)
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("source %d: duplicate organization %q: %w", i, s.OrganizationName, domain.ErrInvalidInput))
		}
		seen[key] = struct{}{}
	}
	return errors.Join(errs...)
}

// Enabled returns the entries that are not disabled, defaults applied.
func (c *Catalog) Enabled() []domain.SourceConfig {
	out := make([]domain.SourceConfig, 0, len(c.Sources))
	for _, s := range c.Sources {
		if !s.Disabled {
			out = append(out, s.WithDefaults())
		}
	}
	return out
}

// Find returns the entry for an organisation name, case-insensitively.
func (c *Catalog) Find(organization string) (domain.SourceConfig, bool) {
	for _, s := range c.Sources {
		if strings.EqualFold(s.OrganizationName, organization) {
			return s.WithDefaults(), true
		}
	}
	return domain.SourceConfig{}, false
}
