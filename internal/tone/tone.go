// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tone holds the catalog of rhetorical tone variants.
//
// The catalog is built once from a fixed table and never mutated. Adding a
// tone means adding a table entry; no other code changes.
package tone

import (
	"fmt"
	"strings"

	"github.com/jeranaias/corptranslate/internal/model"
)

// DefaultToneID is the tone selected when nothing else is configured.
const DefaultToneID = "passive-aggressive"

// Variant is one rhetorical style. Immutable once built.
type Variant struct {
	// ID is the stable identifier used in config, CLI flags and requests.
	ID string
	// Label is the human-readable name shown in the UI.
	Label string
	// Instruction is the template prepended to every prompt for this tone.
	Instruction string
}

// builtins is the fixed tone table. Order is display order.
var builtins = []Variant{
	{
		ID:    "passive-aggressive",
		Label: "Passive Aggressive",
		Instruction: "Rewrite the following message as a professional corporate email " +
			"with a passive-aggressive tone: polite on the surface, pointed underneath, " +
			"full of phrases like \"per my last email\" and \"thanks in advance\". " +
			"Begin the email with a line of the form \"Subject: <subject>\". " +
			"Preserve the original meaning of the message.",
	},
	{
		ID:    "cold",
		Label: "Ice Cold",
		Instruction: "Rewrite the following message as a professional corporate email " +
			"with an ice-cold tone: terse, formal, emotionless and final. " +
			"Begin the email with a line of the form \"Subject: <subject>\". " +
			"Preserve the original meaning of the message.",
	},
	{
		ID:    "gaslight",
		Label: "Gaslight Boss",
		Instruction: "Rewrite the following message as a professional corporate email " +
			"with a gaslighting tone: a manager who calmly implies the recipient " +
			"misremembered or misunderstood everything, while sounding supportive. " +
			"Begin the email with a line of the form \"Subject: <subject>\". " +
			"Preserve the original meaning of the message.",
	},
	{
		ID:    "condescending",
		Label: "Condescending",
		Instruction: "Rewrite the following message as a professional corporate email " +
			"with a condescending tone: patient, over-explained and faintly pitying, " +
			"as if addressing someone new to the concept of work. " +
			"Begin the email with a line of the form \"Subject: <subject>\". " +
			"Preserve the original meaning of the message.",
	},
}

var defaultCatalog = mustNew(builtins...)

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is an ordered, read-only set of tone variants.
type Catalog struct {
	order []Variant
	byID  map[string]int
}

// Default returns the process-wide built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// New builds a catalog from variants in the given order.
// IDs must be non-empty and unique; instructions must be non-empty.
func New(variants ...Variant) (*Catalog, error) {
	if len(variants) == 0 {
		return nil, fmt.Errorf("tone catalog: no variants")
	}
	c := &Catalog{
		order: make([]Variant, 0, len(variants)),
		byID:  make(map[string]int, len(variants)),
	}
	for _, v := range variants {
		id := strings.TrimSpace(v.ID)
		if id == "" {
			return nil, fmt.Errorf("tone catalog: empty id")
		}
		if strings.TrimSpace(v.Instruction) == "" {
			return nil, fmt.Errorf("tone catalog: %q has no instruction", id)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("tone catalog: duplicate id %q", id)
		}
		v.ID = id
		if v.Label == "" {
			v.Label = id
		}
		c.byID[id] = len(c.order)
		c.order = append(c.order, v)
	}
	return c, nil
}

func mustNew(variants ...Variant) *Catalog {
	c, err := New(variants...)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns the variants in display order. The slice is a copy.
func (c *Catalog) List() []Variant {
	out := make([]Variant, len(c.order))
	copy(out, c.order)
	return out
}

// IDs returns the variant identifiers in display order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.order))
	for i, v := range c.order {
		ids[i] = v.ID
	}
	return ids
}

// Get returns the variant with the given id.
func (c *Catalog) Get(id string) (Variant, error) {
	i, ok := c.byID[id]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", model.ErrUnknownTone, id)
	}
	return c.order[i], nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of variants.
func (c *Catalog) Len() int {
	return len(c.order)
}

// At returns the variant at display position i, wrapping around in both
// directions. Used by tone cycling in the UI.
func (c *Catalog) At(i int) Variant {
	n := len(c.order)
	return c.order[((i%n)+n)%n]
}

// Index returns the display position of id, or -1.
func (c *Catalog) Index(id string) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

// Next returns the variant after id in display order, wrapping at the end.
// Unknown ids return the first variant.
func (c *Catalog) Next(id string) Variant {
	i := c.Index(id)
	if i < 0 {
		return c.order[0]
	}
	return c.At(i + 1)
}

// List returns the built-in variants in display order.
func List() []Variant {
	return defaultCatalog.List()
}

// Get returns the built-in variant with the given id.
func Get(id string) (Variant, error) {
	return defaultCatalog.Get(id)
}
