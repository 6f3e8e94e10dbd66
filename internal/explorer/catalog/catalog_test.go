package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()

	tests := []struct {
		name     string
		menuID   string
		known    bool
		keywords bool
	}{
		{"TIG", "TIG", true, true},
		{"MIG", "MIG", true, true},
		{"SAW", "SAW", true, true},
		{"SMAW", "SMAW", true, true},
		{"ResistanceSpotWelding", "RSW", true, true},
		{"AllIsAlwaysKnown", "ALL", true, false},
		{"UnknownMenu", "LASER", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.known, cat.IsKnown(tt.menuID))
			if tt.keywords {
				assert.NotEmpty(t, cat.Keywords(tt.menuID))
			} else {
				assert.Empty(t, cat.Keywords(tt.menuID))
			}
		})
	}
}

func TestDefaultCatalogKeywordsDeduplicated(t *testing.T) {
	cat := Default()
	for _, m := range cat.Menus() {
		seen := map[string]struct{}{}
		for _, kw := range cat.Keywords(m.ID) {
			_, dup := seen[kw]
			assert.Falsef(t, dup, "menu %s repeats keyword %s", m.ID, kw)
			seen[kw] = struct{}{}
		}
	}
}

func TestDisplayNameFallback(t *testing.T) {
	cat := Default()

	assert.Equal(t, "TIG Welding Equipment", cat.DisplayName("TIG"))
	// Unknown menus fall back to their id.
	assert.Equal(t, "LASER", cat.DisplayName("LASER"))
}

func TestFilterFieldsRequireValue(t *testing.T) {
	cat := Default()

	ff, ok := cat.FilterField("ratedoutputcurrent")
	require.True(t, ok)
	assert.True(t, ff.RequiresValue)

	_, ok = cat.FilterField("nosuchfield")
	assert.False(t, ok)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cat, err := Load("")
	require.NoError(t, err)
	assert.True(t, cat.IsKnown("TIG"))
}

func TestLoadFromYAML(t *testing.T) {
	content := `
menus:
  - id: LASER
    group: equipment
    displayName: Laser Welding Machine
    keywords:
      - LaserBeamWelding
  - id: INFO
    group: management
    displayName: Info Only
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cat, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cat.IsKnown("LASER"))
	assert.Equal(t, []string{"LaserBeamWelding"}, cat.Keywords("LASER"))
	assert.Empty(t, cat.Keywords("INFO"))
	// Defaults are replaced, not merged.
	assert.False(t, cat.IsKnown("TIG"))
	// ALL stays known even when the file does not define it.
	assert.True(t, cat.IsKnown(MenuAll))
	// Filter fields fall back to the defaults when the file omits them.
	assert.NotEmpty(t, cat.FilterFields())
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("menus: []\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestMenusPreserveDefinitionOrder(t *testing.T) {
	cat := New([]Menu{
		{ID: "B", DisplayName: "Second"},
		{ID: "A", DisplayName: "First"},
	}, nil)

	menus := cat.Menus()
	require.Len(t, menus, 2)
	assert.Equal(t, "B", menus[0].ID)
	assert.Equal(t, "A", menus[1].ID)
}
