package domain

import "fmt"

// Level is the depth of a node in the functional-scope tree. The functional
// scope itself is level 0; level 4 is the leaf.
type Level int

const (
	LevelScope Level = iota
	Level1
	Level2
	Level3
	Level4
)

// MaxLevel is the depth of the leaf level.
const MaxLevel = Level4

// LevelSpec describes how a level is persisted.
type LevelSpec struct {
	Level        Level
	Name         string
	Table        string
	ParentColumn string
	// Typed levels reference the Level1 type catalog.
	Typed bool
	// Hours levels carry estimated and worked hours.
	Hours bool
}

var levelSpecs = [...]LevelSpec{
	{Level: LevelScope, Name: "escopo funcional", Table: "escopos_funcionais", ParentColumn: "projeto_id"},
	{Level: Level1, Name: "nivel1", Table: "nivel1", ParentColumn: "escopo_funcional_id", Typed: true},
	{Level: Level2, Name: "nivel2", Table: "nivel2", ParentColumn: "nivel1_id"},
	{Level: Level3, Name: "nivel3", Table: "nivel3", ParentColumn: "nivel2_id"},
	{Level: Level4, Name: "nivel4", Table: "nivel4", ParentColumn: "nivel3_id", Hours: true},
}

// Spec returns the persistence metadata for the level.
func (l Level) Spec() LevelSpec {
	return levelSpecs[l]
}

// Valid reports whether l is one of the five known levels.
func (l Level) Valid() bool {
	return l >= LevelScope && l <= MaxLevel
}

// Child returns the level directly below l.
func (l Level) Child() (Level, bool) {
	if l >= MaxLevel {
		return 0, false
	}
	return l + 1, true
}

func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelSpecs[l].Name
}

// AllLevels lists every level from the root down.
func AllLevels() []Level {
	return []Level{LevelScope, Level1, Level2, Level3, Level4}
}

// ParseLevel converts a 0-4 integer into a Level.
func ParseLevel(n int) (Level, error) {
	l := Level(n)
	if !l.Valid() {
		return 0, fmt.Errorf("%w: level must be between 0 and %d, got %d", ErrValidation, int(MaxLevel), n)
	}
	return l, nil
}
