package components

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sha1n/mcp-widget-catalog/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultSource is the source name reported when the embedded catalog is used.
const DefaultSource = "embedded default catalog"

//go:embed default_catalog.json
var defaultCatalogJSON []byte

// Format is a catalog file encoding.
type Format string

// Supported catalog formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the catalog format from a file extension. Unknown extensions are JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Document is the on-disk catalog layout.
type Document struct {
	Components []domain.Component `json:"components" yaml:"components" toml:"components"`
}

// Catalog is a loaded list of components together with where it came from.
type Catalog struct {
	Components []domain.Component

	// Source is the catalog file path, or DefaultSource.
	Source string

	// Fallback is the reason the default catalog replaced the configured file.
	// It is nil when the file was used or when no file was configured.
	Fallback error
}

// IsDefault reports whether the embedded catalog is in use.
func (c *Catalog) IsDefault() bool {
	return c.Source == DefaultSource
}

// DefaultCatalog returns a fresh copy of the embedded catalog.
func DefaultCatalog() []domain.Component {
	components, err := decodeCatalog(defaultCatalogJSON, FormatJSON)
	if err != nil {
		// The embedded file is part of the binary; failing to parse it is a build defect.
		panic(fmt.Sprintf("invalid embedded catalog: %v", err))
	}
	return components
}

// ReadCatalogFile reads and decodes a catalog file, choosing the format by extension.
func ReadCatalogFile(path string) ([]domain.Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	components, err := decodeCatalog(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return components, nil
}

// LoadCatalog loads the catalog at path, falling back to the embedded default
// when the path is empty, unreadable, malformed, or lists no components.
func LoadCatalog(path string) *Catalog {
	if path == "" {
		return &Catalog{Components: DefaultCatalog(), Source: DefaultSource}
	}

	components, err := ReadCatalogFile(path)
	if err == nil && len(components) == 0 {
		err = fmt.Errorf("catalog %s has no components", path)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("Catalog file not found, using default catalog", "path", path)
		} else {
			slog.Warn("Failed to load catalog file, using default catalog", "path", path, "error", err)
		}
		return &Catalog{Components: DefaultCatalog(), Source: DefaultSource, Fallback: err}
	}

	return &Catalog{Components: components, Source: path}
}

// SaveCatalog writes components to path atomically, choosing the format by extension.
// Uses write-to-temp + rename so readers never observe a partial file.
func SaveCatalog(path string, components []domain.Component) error {
	return SaveCatalogContext(context.Background(), path, components)
}

// SaveCatalogContext is SaveCatalog with cancellation. Writers to the same path
// are serialised through a sidecar lock file, across processes too.
func SaveCatalogContext(ctx context.Context, path string, components []domain.Component) error {
	data, err := encodeCatalog(components, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	lock, err := acquireCatalogLock(ctx, path, catalogLockTimeout)
	if err != nil {
		return err
	}
	defer func() { _ = lock.release() }()

	// Write to temporary file first
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, path); err != nil {
		// Clean up temp file on error
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename catalog file: %w", err)
	}

	return nil
}

func decodeCatalog(data []byte, format Format) ([]domain.Component, error) {
	var doc Document

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}

	return doc.Components, nil
}

func encodeCatalog(components []domain.Component, format Format) ([]byte, error) {
	doc := Document{Components: components}
	if doc.Components == nil {
		doc.Components = []domain.Component{}
	}

	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		return toml.Marshal(doc)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}
