package catalog

import "testing"

const testDoc = `
plains:
  name: Plains
  types: [land]
  mana_produced: [W]
  behavior: basic_land

student_of_warfare:
  name: Student of Warfare
  cost: { w: 1 }
  types: [creature]
  power: 1
  toughness: 1
  behavior: level_up_creature
`

func TestParseLoadsEntries(t *testing.T) {
	c, err := Parse([]byte(testDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	plains, err := c.Get("plains")
	if err != nil {
		t.Fatalf("Get(plains) failed: %v", err)
	}
	if !plains.IsLand() {
		t.Error("plains should be a land")
	}
	if len(plains.ManaProduced) != 1 || plains.ManaProduced[0] != "W" {
		t.Errorf("plains.ManaProduced = %v, want [W]", plains.ManaProduced)
	}

	student, err := c.Get("student_of_warfare")
	if err != nil {
		t.Fatalf("Get(student_of_warfare) failed: %v", err)
	}
	if student.Cost.W != 1 || student.Cost.CMC() != 1 {
		t.Errorf("student cost = %+v, want W:1 CMC 1", student.Cost)
	}
	if student.Power != 1 || student.Toughness != 1 {
		t.Errorf("student P/T = %d/%d, want 1/1", student.Power, student.Toughness)
	}
}

func TestGetUnknownCard(t *testing.T) {
	c, err := Parse([]byte(testDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := c.Get("nonexistent"); err == nil {
		t.Error("expected an error for an unknown card id")
	}
}

func TestHashIsDeterministic(t *testing.T) {
	c1, _ := Parse([]byte(testDoc))
	c2, _ := Parse([]byte(testDoc))
	if c1.Hash() != c2.Hash() {
		t.Error("hashing identical catalog bytes should produce the same digest")
	}
}

func TestHashDiffersOnChange(t *testing.T) {
	c1, _ := Parse([]byte(testDoc))
	c2, _ := Parse([]byte(testDoc + "\n"))
	if c1.Hash() == c2.Hash() {
		t.Error("hashing different catalog bytes should produce different digests")
	}
}

func TestParseRejectsUnknownType(t *testing.T) {
	_, err := Parse([]byte(`
bad_card:
  name: Bad Card
  types: [artifact_creature_typo]
`))
	if err == nil {
		t.Error("expected an error for an unrecognized card type")
	}
}
