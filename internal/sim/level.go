package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/suderio/grim-delver/internal/scenario"
	"github.com/suderio/grim-delver/internal/world"
)

const defaultMonsterHP = 30

// Level is the authored YAML description of one dungeon floor: a textual
// map plus a placement script.
type Level struct {
	Name      string   `yaml:"name"`
	Map       []string `yaml:"map"`
	Place     string   `yaml:"place"`
	MonsterHP int      `yaml:"monster_hp"`
}

// LoadLevel reads and parses one level YAML file.
func LoadLevel(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level %s: %w", path, err)
	}
	defer f.Close()

	var l Level
	if err := yaml.NewDecoder(f).Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to decode level %s: %w", path, err)
	}
	return &l, nil
}

// LoadLevels reads a sequence of level files in play order.
func LoadLevels(paths []string) ([]*Level, error) {
	levels := make([]*Level, 0, len(paths))
	for _, p := range paths {
		l, err := LoadLevel(p)
		if err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, nil
}

// builtLevel is a level resolved into a field plus initial entities.
type builtLevel struct {
	field    *world.Field
	start    world.Location
	monsters []world.Monster
	items    []world.Item
	packs    []world.HealthPack
}

// Build parses the map and the placement script and cross-checks them.
func (l *Level) Build() (*builtLevel, error) {
	field, err := world.ParseField(l.Map)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.Name, err)
	}
	starts := field.CellsOf(world.PlayerStart)
	if len(starts) != 1 {
		return nil, fmt.Errorf("level %s: expected exactly one start cell, found %d", l.Name, len(starts))
	}

	built := &builtLevel{field: field, start: starts[0]}
	if l.Place != "" {
		script, err := scenario.Parse(l.Place)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", l.Name, err)
		}
		if err := script.Validate(field); err != nil {
			return nil, fmt.Errorf("level %s: %w", l.Name, err)
		}
		hp := l.MonsterHP
		if hp <= 0 {
			hp = defaultMonsterHP
		}
		placed := script.Collect(hp)
		built.monsters = placed.Monsters
		built.items = placed.Items
		built.packs = placed.Packs
	}
	return built, nil
}
