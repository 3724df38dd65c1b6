package components

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"catalog.json", FormatJSON},
		{"catalog.yaml", FormatYAML},
		{"catalog.YML", FormatYAML},
		{"/etc/widgets/catalog.toml", FormatTOML},
		{"catalog", FormatJSON},
		{"catalog.txt", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatForPath(tt.path))
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	components := DefaultCatalog()

	require.Len(t, components, 20)
	assert.Equal(t, "text_input", components[0].ID)
	assert.Equal(t, "st.text_input", components[0].Name)
	assert.Equal(t, "tabs", components[len(components)-1].ID)

	ids := make(map[string]bool)
	for _, c := range components {
		assert.NotEmpty(t, c.ID)
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
	}
}

func TestDefaultCatalog_ReturnsCopy(t *testing.T) {
	first := DefaultCatalog()
	first[0].Name = "changed"
	first[0].Tags[0] = "changed"

	second := DefaultCatalog()
	assert.Equal(t, "st.text_input", second[0].Name)
	assert.Equal(t, "input", second[0].Tags[0])
}

func TestLoadCatalog_EmptyPathUsesDefault(t *testing.T) {
	catalog := LoadCatalog("")

	assert.True(t, catalog.IsDefault())
	assert.Equal(t, DefaultSource, catalog.Source)
	assert.NoError(t, catalog.Fallback)
	assert.Len(t, catalog.Components, 20)
}

func TestLoadCatalog_MissingFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	catalog := LoadCatalog(path)

	assert.True(t, catalog.IsDefault())
	assert.Len(t, catalog.Components, 20)
	assert.True(t, errors.Is(catalog.Fallback, os.ErrNotExist))
}

func TestLoadCatalog_MalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	catalog := LoadCatalog(path)

	assert.True(t, catalog.IsDefault())
	assert.Error(t, catalog.Fallback)
}

func TestLoadCatalog_EmptyListFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"components": []}`), 0644))

	catalog := LoadCatalog(path)

	assert.True(t, catalog.IsDefault())
	assert.ErrorContains(t, catalog.Fallback, "no components")
}

func TestLoadCatalog_File(t *testing.T) {
	path := WriteTestCatalog(t, t.TempDir(), "catalog.json", TestComponents())

	catalog := LoadCatalog(path)

	assert.False(t, catalog.IsDefault())
	assert.Equal(t, path, catalog.Source)
	assert.NoError(t, catalog.Fallback)
	assert.Equal(t, TestComponents(), catalog.Components)
}

func TestReadCatalogFile_IgnoresUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{
  "version": "1.0.0",
  "generated_at": "2024-01-01",
  "components": [
    {"id": "metric", "name": "st.metric", "category": "data_widgets", "description": "KPI", "unknown": true}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	components, err := ReadCatalogFile(path)

	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, "metric", components[0].ID)
	assert.Equal(t, "KPI", components[0].Description)
}

func TestReadCatalogFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadCatalogFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("components = [[["), 0644))
	_, err = ReadCatalogFile(bad)
	assert.ErrorContains(t, err, "failed to parse catalog")
}

func TestSaveCatalog_AllFormats(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"catalog.json", "catalog.yaml", "catalog.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			require.NoError(t, SaveCatalog(path, TestComponents()))

			_, err := os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err), "temp file should not remain")

			components, err := ReadCatalogFile(path)
			require.NoError(t, err)
			assert.Equal(t, TestComponents(), components)
		})
	}
}

func TestSaveCatalog_JSONKeepsJapaneseText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, SaveCatalog(path, TestComponents()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "テキスト")
	assert.Contains(t, string(data), "\n  \"components\"")
}

func TestSaveCatalog_NilWritesEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, SaveCatalog(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"components": []}`, string(data))
}
