// Package catalog loads the external card catalog: the fixed set of card
// identifiers and their static attributes a solve run is parameterized
// over (spec.md §6, Card catalog).
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/3cbsolver/solver/pkg/card"
)

// ErrUnknownCard is returned when a deck or scenario names a card
// identifier the loaded catalog doesn't define.
var ErrUnknownCard = errors.New("unknown card id")

// entry is the YAML shape of a single catalog record; Catalog converts it
// into a card.Static at load time.
type entry struct {
	Name         string   `yaml:"name"`
	Cost         costYAML `yaml:"cost"`
	Types        []string `yaml:"types"`
	Subtypes     []string `yaml:"subtypes"`
	Power        int      `yaml:"power"`
	Toughness    int      `yaml:"toughness"`
	Keywords     []string `yaml:"keywords"`
	ManaProduced []string `yaml:"mana_produced"`
	Behavior     string   `yaml:"behavior"`
}

type costYAML struct {
	Generic int `yaml:"generic"`
	W       int `yaml:"w"`
	U       int `yaml:"u"`
	B       int `yaml:"b"`
	R       int `yaml:"r"`
	G       int `yaml:"g"`
	C       int `yaml:"c"`
}

// document is the top-level YAML shape: a flat map of card id to entry.
type document map[string]entry

// Catalog is an immutable, loaded set of card definitions, keyed by
// identifier.
type Catalog struct {
	cards map[string]card.Static
	raw   []byte
}

// Load reads and parses a catalog YAML document from path.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse builds a Catalog from already-read YAML bytes, used by Load and
// directly by tests that embed a catalog document inline.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	cards := make(map[string]card.Static, len(doc))
	for id, e := range doc {
		static, err := toStatic(id, e)
		if err != nil {
			return nil, err
		}
		cards[id] = static
	}
	return &Catalog{cards: cards, raw: raw}, nil
}

func toStatic(id string, e entry) (card.Static, error) {
	types := make([]card.Type, 0, len(e.Types))
	for _, t := range e.Types {
		ct, err := parseType(t)
		if err != nil {
			return card.Static{}, fmt.Errorf("card %s: %w", id, err)
		}
		types = append(types, ct)
	}

	keywords := make(map[card.Keyword]bool, len(e.Keywords))
	for _, k := range e.Keywords {
		keywords[card.Keyword(k)] = true
	}

	mana := make([]card.Color, 0, len(e.ManaProduced))
	for _, c := range e.ManaProduced {
		mana = append(mana, card.Color(c))
	}

	return card.Static{
		ID:   id,
		Name: e.Name,
		Cost: card.ManaCost{
			Generic: e.Cost.Generic, W: e.Cost.W, U: e.Cost.U,
			B: e.Cost.B, R: e.Cost.R, G: e.Cost.G, C: e.Cost.C,
		},
		Types:        types,
		Subtypes:     e.Subtypes,
		Power:        e.Power,
		Toughness:    e.Toughness,
		Keywords:     keywords,
		ManaProduced: mana,
		Behavior:     e.Behavior,
	}, nil
}

func parseType(t string) (card.Type, error) {
	switch t {
	case "land":
		return card.Land, nil
	case "creature":
		return card.Creature, nil
	case "other":
		return card.Other, nil
	default:
		return 0, fmt.Errorf("unrecognized card type %q", t)
	}
}

// Get returns the static attributes for a card id.
func (c *Catalog) Get(id string) (card.Static, error) {
	s, ok := c.cards[id]
	if !ok {
		return card.Static{}, fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	return s, nil
}

// Hash returns an xxhash digest of the catalog's source bytes, used to
// detect a persisted transposition snapshot taken against a different
// catalog version (spec.md §6.4).
func (c *Catalog) Hash() uint64 {
	return xxhash.Sum64(c.raw)
}

// Len returns the number of cards defined in the catalog.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// IDs returns every card identifier the catalog defines, in no
// particular order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.cards))
	for id := range c.cards {
		ids = append(ids, id)
	}
	return ids
}
