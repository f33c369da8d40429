// Package catalog provides the static content catalog of the feed.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/iudanet/civicvote/internal/models"
	"github.com/iudanet/civicvote/internal/validation"
)

//go:embed catalog.toml
var defaultCatalog []byte

// ErrNotFound возвращается для неизвестного id
var ErrNotFound = errors.New("content item not found")

type catalogFile struct {
	Items []models.ContentItem `toml:"items"`
}

// Catalog is an immutable, ordered set of content items.
type Catalog struct {
	byID  map[string]int
	items []models.ContentItem
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a TOML catalog and checks ids and types.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := &Catalog{
		byID:  make(map[string]int, len(f.Items)),
		items: f.Items,
	}

	for i, item := range f.Items {
		if err := validation.ValidateContentID(item.ID); err != nil {
			return nil, fmt.Errorf("catalog item %d: %w", i, err)
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("catalog item %d: duplicate id %q", i, item.ID)
		}
		switch item.Type {
		case models.ContentTypeVideo, models.ContentTypeImage:
		default:
			return nil, fmt.Errorf("catalog item %q: unknown type %q", item.ID, item.Type)
		}
		c.byID[item.ID] = i
	}

	return c, nil
}

// All returns a copy of every item in catalog order
func (c *Catalog) All() []models.ContentItem {
	out := make([]models.ContentItem, len(c.items))
	copy(out, c.items)
	return out
}

// ByCategory returns items of category (case-insensitive). Empty category returns All.
func (c *Catalog) ByCategory(category string) []models.ContentItem {
	if category == "" {
		return c.All()
	}
	var out []models.ContentItem
	for _, item := range c.items {
		if strings.EqualFold(item.Category, category) {
			out = append(out, item)
		}
	}
	return out
}

// Get returns the item with id
func (c *Catalog) Get(id string) (models.ContentItem, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.ContentItem{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.items[i], nil
}

// Categories returns distinct categories in first-seen order
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range c.items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

// IDs returns the ids of items, preserving order
func IDs(items []models.ContentItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
