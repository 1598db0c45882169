package scenario_test

import (
	"testing"

	"github.com/suderio/grim-delver/internal/scenario"
	"github.com/suderio/grim-delver/internal/world"
)

func TestParseFullScript(t *testing.T) {
	script, err := scenario.Parse("monster at 3, 2 hp: 12 and item sword at 1, 2 atk: 2 def: 1 and pack at 2, 1")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if len(script.Placements) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(script.Placements))
	}

	placed := script.Collect(30)

	if len(placed.Monsters) != 1 {
		t.Fatalf("expected 1 monster, got %d", len(placed.Monsters))
	}
	m := placed.Monsters[0]
	if m.Location != (world.Location{X: 3, Y: 2}) || m.Health != 12 {
		t.Errorf("unexpected monster: %+v", m)
	}

	if len(placed.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(placed.Items))
	}
	it := placed.Items[0]
	if it.Name != "sword" || it.Attack != 2 || it.Defence != 1 {
		t.Errorf("unexpected item: %+v", it)
	}
	if it.Location != (world.Location{X: 1, Y: 2}) {
		t.Errorf("unexpected item location: %v", it.Location)
	}

	if len(placed.Packs) != 1 || placed.Packs[0].Location != (world.Location{X: 2, Y: 1}) {
		t.Errorf("unexpected packs: %+v", placed.Packs)
	}
}

func TestParseMonsterDefaultHP(t *testing.T) {
	script, err := scenario.Parse("monster at 1, 1")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	placed := script.Collect(30)
	if len(placed.Monsters) != 1 || placed.Monsters[0].Health != 30 {
		t.Errorf("expected the default hit points, got %+v", placed.Monsters)
	}
}

func TestParseAnonymousItem(t *testing.T) {
	script, err := scenario.Parse("item at 1, 1 atk: 3")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	placed := script.Collect(30)
	if len(placed.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(placed.Items))
	}
	it := placed.Items[0]
	if it.Name != "" || it.Attack != 3 || it.Defence != 0 {
		t.Errorf("unexpected item: %+v", it)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"monster 3, 4",        // missing "at"
		"monster at 3",        // missing y coordinate
		"dragon at 1, 1",      // unknown entity
		"monster at 1, 1 and", // dangling conjunction
	} {
		if _, err := scenario.Parse(input); err == nil {
			t.Errorf("expected %q to fail", input)
		}
	}
}

func TestValidateAgainstField(t *testing.T) {
	field, err := world.ParseField([]string{
		"#####",
		"#@..#",
		"#####",
	})
	if err != nil {
		t.Fatalf("failed to parse field: %v", err)
	}

	script, err := scenario.Parse("monster at 2, 1")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if err := script.Validate(field); err != nil {
		t.Errorf("expected in-bounds placement to validate, got: %v", err)
	}

	script, err = scenario.Parse("monster at 0, 0")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if err := script.Validate(field); err == nil {
		t.Errorf("expected in-wall placement to fail validation")
	}

	script, err = scenario.Parse("pack at 9, 9")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if err := script.Validate(field); err == nil {
		t.Errorf("expected out-of-bounds placement to fail validation")
	}
}
