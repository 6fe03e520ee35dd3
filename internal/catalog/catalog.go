// Package catalog loads and holds the ordered set of items being ranked.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/versus-rank/versus/internal/common"
	"github.com/versus-rank/versus/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Catalog is an ordered, immutable-after-load collection of items. Items
// are addressed by index; the order is exactly the order of the source
// file and never changes for the lifetime of a session.
type Catalog struct {
	name  string
	items []model.Item
}

// Load reads a catalog from a JSON or YAML file, chosen by extension.
// The expected shape is a sequence of objects with string fields title,
// description, and image.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var items []model.Item
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported catalog format %q (supported: .json, .yaml)", common.ErrInvalidCatalog, ext)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	slog.Debug("Loaded catalog", "path", path, "items", len(items))

	return New(name, items)
}

// New builds a catalog from already-materialized items, validating each
// one. Titles must be unique so that results and fuzzy lookups stay
// unambiguous.
func New(name string, items []model.Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, common.ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(items))
	for i := range items {
		if err := validate.Struct(&items[i]); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", common.ErrInvalidCatalog, i, err)
		}
		if seen[items[i].Title] {
			return nil, fmt.Errorf("%w: duplicate title %q", common.ErrInvalidCatalog, items[i].Title)
		}
		seen[items[i].Title] = true
	}

	// Copy so later mutation of the caller's slice cannot reach the catalog.
	owned := make([]model.Item, len(items))
	copy(owned, items)

	return &Catalog{name: name, items: owned}, nil
}

// Name returns the catalog's display name, derived from the source file.
func (c *Catalog) Name() string {
	return c.name
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Item returns the item at index i.
func (c *Catalog) Item(i int) model.Item {
	return c.items[i]
}

// Items returns a copy of the full item sequence in catalog order.
func (c *Catalog) Items() []model.Item {
	items := make([]model.Item, len(c.items))
	copy(items, c.items)
	return items
}

// Closest returns the index of the item whose title is nearest to the
// query. See ClosestName.
func (c *Catalog) Closest(title string) (int, bool) {
	titles := make([]string, len(c.items))
	for i, item := range c.items {
		titles[i] = item.Title
	}
	return ClosestName(title, titles)
}

// ClosestName returns the index of the name nearest to the query by edit
// distance, case-insensitively. The second return is false when nothing
// comes within half the query's length, which filters out matches a user
// would consider nonsense.
func ClosestName(query string, names []string) (int, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(names) == 0 {
		return 0, false
	}

	best := -1
	bestDist := 0
	for i, name := range names {
		dist := levenshtein.ComputeDistance(query, strings.ToLower(name))
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}

	maxDist := len(query)/2 + 1
	if bestDist > maxDist {
		return 0, false
	}
	return best, true
}
