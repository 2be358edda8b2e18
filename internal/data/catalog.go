package data

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/dungeonrun/internal/model"
)

// Catalog: справочные данные и стартовые персонажи из одного YAML файла.
type Catalog struct {
	Enemies       []model.EnemyTemplate `yaml:"enemies"`
	Dungeons      []model.Dungeon       `yaml:"dungeons"`
	ItemTemplates []model.ItemTemplate  `yaml:"item_templates"`
	Characters    []CharacterEntry      `yaml:"characters"`
	Progress      []model.Progress      `yaml:"progress"`
}

// CharacterEntry is a character with its items.
type CharacterEntry struct {
	model.Character `yaml:",inline"`
	Items           []ItemEntry `yaml:"items"`
}

// ItemEntry is an owned item referencing a template by id.
type ItemEntry struct {
	ID        string         `yaml:"id"`
	Template  string         `yaml:"template"`
	Equipped  bool           `yaml:"equipped"`
	Hand      model.Hand     `yaml:"hand"`
	TwoHanded bool           `yaml:"two_handed"`
	Bonuses   map[string]any `yaml:"bonuses"`
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	slog.Info("loaded catalog",
		"path", path,
		"enemies", len(c.Enemies),
		"dungeons", len(c.Dungeons),
		"itemTemplates", len(c.ItemTemplates),
		"characters", len(c.Characters))
	return c, nil
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ids are unique and every reference resolves.
func (c *Catalog) Validate() error {
	var errs []error

	enemies := make(map[string]struct{}, len(c.Enemies))
	for _, e := range c.Enemies {
		if _, dup := enemies[e.ID]; dup || e.ID == "" {
			errs = append(errs, fmt.Errorf("enemy %q: empty or duplicate id", e.ID))
		}
		enemies[e.ID] = struct{}{}
	}

	dungeons := make(map[string]struct{}, len(c.Dungeons))
	for _, d := range c.Dungeons {
		if _, dup := dungeons[d.ID]; dup || d.ID == "" {
			errs = append(errs, fmt.Errorf("dungeon %q: empty or duplicate id", d.ID))
		}
		dungeons[d.ID] = struct{}{}
		for _, id := range d.EnemyIDs() {
			if _, ok := enemies[id]; !ok {
				errs = append(errs, fmt.Errorf("dungeon %q: unknown enemy %q", d.ID, id))
			}
		}
	}

	templates := make(map[string]struct{}, len(c.ItemTemplates))
	for _, t := range c.ItemTemplates {
		if _, dup := templates[t.ID]; dup || t.ID == "" {
			errs = append(errs, fmt.Errorf("item template %q: empty or duplicate id", t.ID))
		}
		templates[t.ID] = struct{}{}
	}

	for _, d := range c.Dungeons {
		if d.Rewards == nil || d.Rewards.Drops == nil {
			continue
		}
		for _, e := range d.Rewards.Drops.Items {
			if _, ok := templates[e.ItemID]; !ok {
				errs = append(errs, fmt.Errorf("dungeon %q drops: unknown item template %q", d.ID, e.ItemID))
			}
			if e.Weight < 0 || math.IsNaN(e.Weight) {
				errs = append(errs, fmt.Errorf("dungeon %q drops: item %q has invalid weight %v", d.ID, e.ItemID, e.Weight))
			}
		}
	}

	chars := make(map[string]struct{}, len(c.Characters))
	for _, ch := range c.Characters {
		if _, dup := chars[ch.ID]; dup || ch.ID == "" {
			errs = append(errs, fmt.Errorf("character %q: empty or duplicate id", ch.ID))
		}
		chars[ch.ID] = struct{}{}
		for _, it := range ch.Items {
			if _, ok := templates[it.Template]; !ok {
				errs = append(errs, fmt.Errorf("character %q item %q: unknown template %q", ch.ID, it.ID, it.Template))
			}
		}
	}

	for _, p := range c.Progress {
		if _, ok := chars[p.CharacterID]; !ok {
			errs = append(errs, fmt.Errorf("progress: unknown character %q", p.CharacterID))
		}
		if _, ok := dungeons[p.DungeonID]; !ok {
			errs = append(errs, fmt.Errorf("progress: unknown dungeon %q", p.DungeonID))
		}
	}

	return errors.Join(errs...)
}
