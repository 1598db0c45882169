package world

// Equipment describes the item a player currently wields.
type Equipment struct {
	Name    string `json:"name" yaml:"name"`
	Attack  int    `json:"attack" yaml:"attack"`
	Defence int    `json:"defence" yaml:"defence"`
}

// Power is the combined bonus used when comparing gear.
func (e Equipment) Power() int { return e.Attack + e.Defence }

// Player is the agent's own entity as seen this turn.
type Player struct {
	Location Location   `json:"location"`
	Health   int        `json:"health"` // 0..100
	Equipped *Equipment `json:"equipped,omitempty"`
}

// Monster is a hostile entity visible this turn.
type Monster struct {
	Location Location `json:"location"`
	Health   int      `json:"health"`
}

// Item is an unclaimed piece of gear lying on a cell.
type Item struct {
	Location Location `json:"location"`
	Name     string   `json:"name,omitempty"`
	Attack   int      `json:"attack"`
	Defence  int      `json:"defence"`
}

// Power is the combined bonus used when comparing gear.
func (i Item) Power() int { return i.Attack + i.Defence }

// HealthPack restores the player to full health when stepped on.
type HealthPack struct {
	Location Location `json:"location"`
}

// Snapshot is the read-only world view produced fresh every turn. Entity
// collections are unordered; nothing persists identity across turns
// except by re-matching location. The agent must never mutate a snapshot.
type Snapshot struct {
	Field    *Field
	Player   Player
	Monsters []Monster
	Items    []Item
	Packs    []HealthPack
}

// MonsterAt resolves the monster occupying loc, if any.
func (s *Snapshot) MonsterAt(loc Location) (Monster, bool) {
	for _, m := range s.Monsters {
		if m.Location == loc {
			return m, true
		}
	}
	return Monster{}, false
}

// ItemAt resolves the item lying on loc, if any.
func (s *Snapshot) ItemAt(loc Location) (Item, bool) {
	for _, it := range s.Items {
		if it.Location == loc {
			return it, true
		}
	}
	return Item{}, false
}

// PackAt resolves the health pack on loc, if any.
func (s *Snapshot) PackAt(loc Location) (HealthPack, bool) {
	for _, p := range s.Packs {
		if p.Location == loc {
			return p, true
		}
	}
	return HealthPack{}, false
}

// Occupied reports whether any entity (monster, item or health pack)
// currently sits on loc.
func (s *Snapshot) Occupied(loc Location) bool {
	if _, ok := s.MonsterAt(loc); ok {
		return true
	}
	if _, ok := s.ItemAt(loc); ok {
		return true
	}
	_, ok := s.PackAt(loc)
	return ok
}
