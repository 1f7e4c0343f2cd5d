package triage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Band is one step of a threshold rule. Bands are declared from most to
// least severe and evaluated top-down; the first comparison that holds wins.
type Band struct {
	Op       string   `json:"op"` // one of < > <= >=
	Bound    float64  `json:"bound"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Token is one step of a categorical rule. Matching is case-insensitive;
// substring containment by default, whole-value equality when Exact is set.
// Exact guards tokens like "reactive" and "seen" against matching their
// negations ("non-reactive", "not seen").
type Token struct {
	Value    string   `json:"value"`
	Exact    bool     `json:"exact,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// FieldRule holds the checks for one field of a panel. A field carries
// either threshold bands or categorical tokens, never both.
type FieldRule struct {
	Field  string  `json:"field"`
	Bands  []Band  `json:"bands,omitempty"`
	Tokens []Token `json:"tokens,omitempty"`
}

// ComboCondition is one leg of a combination rule: the named field's value
// must contain the given text (case-insensitive).
type ComboCondition struct {
	Field    string `json:"field"`
	Contains string `json:"contains"`
}

// ComboRule cross-references multiple fields of one panel. It fires only
// when every condition holds, and is evaluated after the panel's simple
// field rules so its finding never replaces theirs.
type ComboRule struct {
	When     []ComboCondition `json:"when"`
	Field    string           `json:"field"` // attribution for the emitted finding
	Severity Severity         `json:"severity"`
	Message  string           `json:"message"`
}

// PanelRule groups the rules for one named lab panel.
type PanelRule struct {
	Panel  string      `json:"panel"`
	Fields []FieldRule `json:"fields"`
	Combos []ComboRule `json:"combos,omitempty"`
}

// Catalog is the frozen rule table the evaluator walks. It is pure data,
// read-only after construction and safe for concurrent use. Panels and
// fields keep their declaration order; lookups are case-insensitive so
// free-form payload keys still match.
type Catalog struct {
	panels []PanelRule
	index  map[string]int
}

// NewCatalog builds a catalog from panel rules, preserving their order.
// A later panel with the same name as an earlier one is ignored.
func NewCatalog(panels []PanelRule) *Catalog {
	c := &Catalog{
		panels: panels,
		index:  make(map[string]int, len(panels)),
	}
	for i, p := range panels {
		key := normalizeKey(p.Panel)
		if _, dup := c.index[key]; !dup {
			c.index[key] = i
		}
	}
	return c
}

// LoadCatalog reads a JSON catalog file (an array of panel rules). Clinics
// override the built-in catalog by pointing TRIAGE_CATALOG_PATH at a file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("triage: read catalog: %w", err)
	}
	var panels []PanelRule
	if err := json.Unmarshal(raw, &panels); err != nil {
		return nil, fmt.Errorf("triage: parse catalog: %w", err)
	}
	if len(panels) == 0 {
		return nil, fmt.Errorf("triage: catalog %s contains no panels", path)
	}
	return NewCatalog(panels), nil
}

// Panels returns the catalog's panel rules in declaration order.
func (c *Catalog) Panels() []PanelRule {
	return c.panels
}

// Lookup finds the rules for a panel name, matching case-insensitively.
func (c *Catalog) Lookup(panel string) (PanelRule, bool) {
	i, ok := c.index[normalizeKey(panel)]
	if !ok {
		return PanelRule{}, false
	}
	return c.panels[i], true
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
