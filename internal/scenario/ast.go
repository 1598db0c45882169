package scenario

import (
	"fmt"

	"github.com/suderio/grim-delver/internal/world"
)

// Script is a whole placement program: one or more placements joined by
// "and".
type Script struct {
	Placements []*Placement `parser:"@@ ( \"and\" @@ )*"`
}

// Placement declares a single entity.
type Placement struct {
	Monster *MonsterDecl `parser:"( @@"`
	Item    *ItemDecl    `parser:"| @@"`
	Pack    *PackDecl    `parser:"| @@ )"`
}

// MonsterDecl places a monster, optionally with explicit hit points.
type MonsterDecl struct {
	Keyword string   `parser:"@\"monster\""`
	At      *PosExpr `parser:"\"at\" @@"`
	HP      *int     `parser:"( \"hp\" \":\" @Int )?"`
}

// ItemDecl places a piece of gear, optionally named, with bonuses.
type ItemDecl struct {
	Keyword string   `parser:"@\"item\""`
	Name    string   `parser:"@Ident?"`
	At      *PosExpr `parser:"\"at\" @@"`
	Attack  *int     `parser:"( \"atk\" \":\" @Int )?"`
	Defence *int     `parser:"( \"def\" \":\" @Int )?"`
}

// PackDecl places a health pack.
type PackDecl struct {
	Keyword string   `parser:"@\"pack\""`
	At      *PosExpr `parser:"\"at\" @@"`
}

// PosExpr is an "x, y" coordinate pair.
type PosExpr struct {
	X int `parser:"@Int"`
	Y int `parser:"\",\" @Int"`
}

// Location converts the parsed pair into a grid location.
func (p *PosExpr) Location() world.Location {
	return world.Location{X: p.X, Y: p.Y}
}

// Placements is the flattened result of a script.
type Placements struct {
	Monsters []world.Monster
	Items    []world.Item
	Packs    []world.HealthPack
}

// Parse runs the script through the grammar, mapping raw participle
// errors into something a level author can act on.
func Parse(input string) (*Script, error) {
	script, err := Build().ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", input, err)
	}
	return script, nil
}

// Collect flattens the script into entity lists. Monsters without an
// explicit hp clause receive defaultHP.
func (s *Script) Collect(defaultHP int) Placements {
	var out Placements
	for _, p := range s.Placements {
		switch {
		case p.Monster != nil:
			hp := defaultHP
			if p.Monster.HP != nil {
				hp = *p.Monster.HP
			}
			out.Monsters = append(out.Monsters, world.Monster{
				Location: p.Monster.At.Location(),
				Health:   hp,
			})
		case p.Item != nil:
			it := world.Item{Location: p.Item.At.Location(), Name: p.Item.Name}
			if p.Item.Attack != nil {
				it.Attack = *p.Item.Attack
			}
			if p.Item.Defence != nil {
				it.Defence = *p.Item.Defence
			}
			out.Items = append(out.Items, it)
		case p.Pack != nil:
			out.Packs = append(out.Packs, world.HealthPack{Location: p.Pack.At.Location()})
		}
	}
	return out
}

// Validate checks every placement against the field: in bounds and not
// inside a wall.
func (s *Script) Validate(f *world.Field) error {
	check := func(loc world.Location, what string) error {
		if !f.InBounds(loc) {
			return fmt.Errorf("%s at %d, %d is outside the %dx%d field", what, loc.X, loc.Y, f.Width(), f.Height())
		}
		if f.At(loc) == world.Wall {
			return fmt.Errorf("%s at %d, %d is inside a wall", what, loc.X, loc.Y)
		}
		return nil
	}
	for _, p := range s.Placements {
		switch {
		case p.Monster != nil:
			if err := check(p.Monster.At.Location(), "monster"); err != nil {
				return err
			}
		case p.Item != nil:
			if err := check(p.Item.At.Location(), "item"); err != nil {
				return err
			}
		case p.Pack != nil:
			if err := check(p.Pack.At.Location(), "pack"); err != nil {
				return err
			}
		}
	}
	return nil
}
