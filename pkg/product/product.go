// Package product provides the composite result assembled by builders
package product

import (
	"encoding/json"
	"strings"
)

const (
	describePrefix = "Product parts: "
	emptyParts     = "(none)"
	partSeparator  = ", "
)

// Product accumulates part labels in the order they were added.
// A Product is not safe for concurrent use.
type Product struct {
	parts []string
}

// New creates an empty product
func New() *Product {
	return &Product{}
}

// AddPart appends a part label. Duplicates are kept.
func (p *Product) AddPart(label string) {
	p.parts = append(p.parts, label)
}

// Parts returns a copy of the part labels
func (p *Product) Parts() []string {
	out := make([]string, len(p.parts))
	copy(out, p.parts)
	return out
}

// Len returns the number of parts
func (p *Product) Len() int {
	return len(p.parts)
}

// IsEmpty reports whether no parts have been added
func (p *Product) IsEmpty() bool {
	return len(p.parts) == 0
}

// Describe renders the parts as a comma-separated summary.
// An empty product is described as "Product parts: (none)".
func (p *Product) Describe() string {
	if p.IsEmpty() {
		return describePrefix + emptyParts
	}
	return describePrefix + strings.Join(p.parts, partSeparator)
}

// String implements fmt.Stringer
func (p *Product) String() string {
	return p.Describe()
}

// MarshalJSON renders the product as {"parts": [...]}
func (p *Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Parts []string `json:"parts"`
	}{
		Parts: p.Parts(),
	})
}
