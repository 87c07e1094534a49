// Package deckreg loads the short-name -> ordered-triple deck registry
// consumed by the CLI (spec.md §6, Deck registry: "external; maps short
// deck names to ordered lists of three card identifiers. Consumed only
// by the front-end"). pkg/search and pkg/solver never import this
// package.
package deckreg

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownDeck is returned by Get for a name absent from the registry.
var ErrUnknownDeck = errors.New("unknown deck")

// ErrMalformedDeck is returned when a deck entry doesn't name exactly
// three cards (spec.md §3's fixed three-card hand).
var ErrMalformedDeck = errors.New("deck must name exactly three cards")

// Registry is a read-only short-name -> ordered-triple lookup.
type Registry struct {
	decks map[string][]string
	names []string
}

// Load reads a YAML document of the form `name: [card_a, card_b,
// card_c]` from path.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck registry %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a deck registry document from raw YAML bytes.
func Parse(raw []byte) (*Registry, error) {
	var document map[string][]string
	if err := yaml.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("parsing deck registry: %w", err)
	}

	reg := &Registry{decks: make(map[string][]string, len(document))}
	for name, cards := range document {
		if len(cards) != 3 {
			return nil, fmt.Errorf("%w: deck %q names %d cards", ErrMalformedDeck, name, len(cards))
		}
		reg.decks[name] = append([]string(nil), cards...)
		reg.names = append(reg.names, name)
	}
	return reg, nil
}

// Get returns the ordered triple of card identifiers for name.
func (r *Registry) Get(name string) ([]string, error) {
	cards, ok := r.decks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeck, name)
	}
	return append([]string(nil), cards...), nil
}

// Names returns every deck short name the registry holds, in no
// particular order (the YAML document is decoded into a map).
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// All returns the full short-name -> ordered-triple mapping, suitable
// for feeding directly into solver.PayoffMatrix.
func (r *Registry) All() map[string][]string {
	out := make(map[string][]string, len(r.decks))
	for name, cards := range r.decks {
		out[name] = append([]string(nil), cards...)
	}
	return out
}
