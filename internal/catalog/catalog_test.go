package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versus-rank/versus/internal/common"
	"github.com/versus-rank/versus/internal/model"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeTestFile(t, "elements.json", `[
		{"title": "Element A", "description": "This is element A", "image": "images/element_a.png"},
		{"title": "Element B", "description": "This is element B", "image": "images/element_b.png"}
	]`)

	cat, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "elements", cat.Name())
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, "Element A", cat.Item(0).Title)
	assert.Equal(t, "images/element_b.png", cat.Item(1).Image)
}

func TestLoad_YAML(t *testing.T) {
	path := writeTestFile(t, "movies.yaml", `
- title: Alien
  description: In space no one can hear you scream.
- title: Blade Runner
  image: posters/bladerunner.jpg
`)

	cat, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "movies", cat.Name())
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, "Alien", cat.Item(0).Title)
	assert.Equal(t, "posters/bladerunner.jpg", cat.Item(1).Image)
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantErr  error
	}{
		{
			name:     "unsupported extension",
			filename: "elements.txt",
			content:  "whatever",
			wantErr:  common.ErrInvalidCatalog,
		},
		{
			name:     "malformed JSON",
			filename: "broken.json",
			content:  `[{"title": "A"`,
		},
		{
			name:     "empty list",
			filename: "empty.json",
			content:  `[]`,
			wantErr:  common.ErrEmptyCatalog,
		},
		{
			name:     "item without title",
			filename: "missing.json",
			content:  `[{"description": "no title here"}]`,
			wantErr:  common.ErrInvalidCatalog,
		},
		{
			name:     "duplicate titles",
			filename: "dupes.json",
			content:  `[{"title": "Same"}, {"title": "Same"}]`,
			wantErr:  common.ErrInvalidCatalog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, tt.filename, tt.content)

			_, err := Load(path)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestCatalog_ItemsIsACopy(t *testing.T) {
	cat, err := New("test", []model.Item{{Title: "A"}, {Title: "B"}})
	require.NoError(t, err)

	items := cat.Items()
	items[0].Title = "mutated"

	assert.Equal(t, "A", cat.Item(0).Title)
}

func TestClosestName(t *testing.T) {
	names := []string{"movies", "restaurants", "board games"}

	tests := []struct {
		name      string
		query     string
		wantIndex int
		wantOK    bool
	}{
		{name: "exact match", query: "movies", wantIndex: 0, wantOK: true},
		{name: "case insensitive", query: "MOVIES", wantIndex: 0, wantOK: true},
		{name: "small typo", query: "restaurnts", wantIndex: 1, wantOK: true},
		{name: "nothing close", query: "zzzzzzzzzz", wantOK: false},
		{name: "empty query", query: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := ClosestName(tt.query, names)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIndex, idx)
			}
		})
	}
}

func TestCatalog_Closest(t *testing.T) {
	cat, err := New("test", []model.Item{
		{Title: "Element A"},
		{Title: "Element B"},
	})
	require.NoError(t, err)

	idx, ok := cat.Closest("element b")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}
