// Package catalog lists the statement line items the dashboard displays.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/hjson/hjson-go/v4"
)

// Ratios is the catalog key for the financial ratio table.
const Ratios = "ratios"

//go:embed catalog.hjson
var defaultCatalog []byte

// Item is one displayed line item.
type Item struct {
	Field    string `json:"field"`
	Label    string `json:"label"`
	Section  string `json:"section"`
	Fraction bool   `json:"fraction"` // ratio stored as a fraction (0.18 = 18%)
}

// Catalog maps a statement kind (or Ratios) to its ordered items.
type Catalog struct {
	items  map[string][]Item
	labels map[string]map[string]string
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse builds a catalog from an Hjson document.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string][]Item
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{items: raw, labels: make(map[string]map[string]string, len(raw))}
	for kind, items := range raw {
		m := make(map[string]string, len(items))
		for _, it := range items {
			if it.Field == "" {
				return nil, fmt.Errorf("catalog %s: item without field", kind)
			}
			m[it.Field] = it.Label
		}
		c.labels[kind] = m
	}
	return c, nil
}

// Items returns the items of kind in display order.
func (c *Catalog) Items(kind string) []Item {
	return c.items[kind]
}

// Fields returns the field names of kind in display order.
func (c *Catalog) Fields(kind string) []string {
	items := c.items[kind]
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Field)
	}
	return out
}

// Label returns the caption of field, or the field name itself when unknown.
func (c *Catalog) Label(kind, field string) string {
	if l, ok := c.labels[kind][field]; ok && l != "" {
		return l
	}
	return field
}

// Item returns the catalog entry of field.
func (c *Catalog) Item(kind, field string) (Item, bool) {
	for _, it := range c.items[kind] {
		if it.Field == field {
			return it, true
		}
	}
	return Item{}, false
}
