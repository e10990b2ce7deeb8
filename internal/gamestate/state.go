// Package gamestate defines the snapshot of an in-progress playthrough and
// the rules for creating a well-formed one.
package gamestate

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/samdwyer/mazecrawl/internal/entity"
)

// Scene identifies the screen the player is currently on.
type Scene int

const (
	// SceneTitle is the title screen shown at startup.
	SceneTitle Scene = iota
	// SceneTown is the hub between expeditions.
	SceneTown
	// SceneTraining is where new adventurers are recruited.
	SceneTraining
	// SceneTavern is where the party is assembled.
	SceneTavern
	// SceneDungeon is maze exploration.
	SceneDungeon
	// SceneCamp is the in-maze rest menu.
	SceneCamp
	// SceneCombat is an active encounter.
	SceneCombat
)

var sceneNames = map[Scene]string{
	SceneTitle:    "title",
	SceneTown:     "town",
	SceneTraining: "training",
	SceneTavern:   "tavern",
	SceneDungeon:  "dungeon",
	SceneCamp:     "camp",
	SceneCombat:   "combat",
}

// String returns the scene identifier.
func (s Scene) String() string {
	if name, ok := sceneNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the scene identifier.
func (s Scene) MarshalText() ([]byte, error) {
	name, ok := sceneNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown scene %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a scene identifier, rejecting unknown scenes.
func (s *Scene) UnmarshalText(text []byte) error {
	for scene, name := range sceneNames {
		if name == string(text) {
			*s = scene
			return nil
		}
	}
	return fmt.Errorf("unknown scene %q", string(text))
}

// Difficulty is the player's chosen difficulty.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

var difficultyNames = map[Difficulty]string{
	DifficultyEasy:   "easy",
	DifficultyNormal: "normal",
	DifficultyHard:   "hard",
}

// String returns the difficulty identifier.
func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the difficulty identifier.
func (d Difficulty) MarshalText() ([]byte, error) {
	name, ok := difficultyNames[d]
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %d", int(d))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a difficulty identifier.
func (d *Difficulty) UnmarshalText(text []byte) error {
	for difficulty, name := range difficultyNames {
		if name == string(text) {
			*d = difficulty
			return nil
		}
	}
	return fmt.Errorf("unknown difficulty %q", string(text))
}

// Direction is the way the party faces inside the maze.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var directionNames = map[Direction]string{
	North: "north",
	East:  "east",
	South: "south",
	West:  "west",
}

// String returns the direction identifier.
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the direction identifier.
func (d Direction) MarshalText() ([]byte, error) {
	name, ok := directionNames[d]
	if !ok {
		return nil, fmt.Errorf("unknown direction %d", int(d))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a direction identifier.
func (d *Direction) UnmarshalText(text []byte) error {
	for direction, name := range directionNames {
		if name == string(text) {
			*d = direction
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", string(text))
}

// Delta returns the grid offset of one step in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// GameState is the root snapshot of a playthrough.
type GameState struct {
	CurrentScene Scene                       `json:"currentScene"`
	Roster       map[string]entity.Character `json:"roster"`
	Party        Party                       `json:"party"`
	Dungeon      Dungeon                     `json:"dungeon"`
	Settings     Settings                    `json:"settings"`
}

// Party is the group of roster characters currently adventuring together.
// Members lists character ids; every member sits in exactly one formation row.
type Party struct {
	InMaze    bool      `json:"inMaze"`
	Members   []string  `json:"members"`
	Formation Formation `json:"formation"`
}

// Formation splits party members between melee and rear positions.
type Formation struct {
	FrontRow []string `json:"frontRow"`
	BackRow  []string `json:"backRow"`
}

// Dungeon tracks the party's position in the maze.
type Dungeon struct {
	CurrentLevel int       `json:"currentLevel"`
	DeepestLevel int       `json:"deepestLevel"`
	X            int       `json:"x"`
	Y            int       `json:"y"`
	Facing       Direction `json:"facing"`
}

// Settings holds user preferences.
type Settings struct {
	Difficulty   Difficulty `json:"difficulty"`
	SoundEnabled bool       `json:"soundEnabled"`
	MessageSpeed int        `json:"messageSpeed"`
}

// Bounds for Settings.MessageSpeed.
const (
	MinMessageSpeed = 1
	MaxMessageSpeed = 5
)

// Validate reports whether s has a well-formed shape. It does not check
// gameplay rules such as formation membership.
func (s *GameState) Validate() error {
	if s == nil {
		return errors.New("game state is nil")
	}
	if _, ok := sceneNames[s.CurrentScene]; !ok {
		return fmt.Errorf("unknown scene %d", int(s.CurrentScene))
	}
	for key, c := range s.Roster {
		if c.ID == "" {
			return fmt.Errorf("roster entry %q has no id", key)
		}
		if key != c.ID {
			return fmt.Errorf("roster key %q does not match character id %q", key, c.ID)
		}
		if !utf8.ValidString(c.ID) || !utf8.ValidString(c.Name) {
			return fmt.Errorf("roster entry %q is not valid UTF-8", key)
		}
		if err := validUTF8("abilities", c.AbilityIDs); err != nil {
			return err
		}
	}
	for _, group := range []struct {
		name string
		ids  []string
	}{
		{"party members", s.Party.Members},
		{"front row", s.Party.Formation.FrontRow},
		{"back row", s.Party.Formation.BackRow},
	} {
		if err := validUTF8(group.name, group.ids); err != nil {
			return err
		}
	}
	if s.Dungeon.CurrentLevel < 1 {
		return fmt.Errorf("dungeon level %d is below 1", s.Dungeon.CurrentLevel)
	}
	if _, ok := directionNames[s.Dungeon.Facing]; !ok {
		return fmt.Errorf("unknown direction %d", int(s.Dungeon.Facing))
	}
	if _, ok := difficultyNames[s.Settings.Difficulty]; !ok {
		return fmt.Errorf("unknown difficulty %d", int(s.Settings.Difficulty))
	}
	if s.Settings.MessageSpeed < MinMessageSpeed || s.Settings.MessageSpeed > MaxMessageSpeed {
		return fmt.Errorf("message speed %d out of range", s.Settings.MessageSpeed)
	}
	return nil
}

// validUTF8 rejects strings that would not survive a JSON round trip.
func validUTF8(field string, values []string) error {
	for _, v := range values {
		if !utf8.ValidString(v) {
			return fmt.Errorf("%s entry %q is not valid UTF-8", field, v)
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	clone := *s
	if s.Roster != nil {
		clone.Roster = make(map[string]entity.Character, len(s.Roster))
		for id, c := range s.Roster {
			clone.Roster[id] = c.Clone()
		}
	}
	clone.Party.Members = cloneRefs(s.Party.Members)
	clone.Party.Formation.FrontRow = cloneRefs(s.Party.Formation.FrontRow)
	clone.Party.Formation.BackRow = cloneRefs(s.Party.Formation.BackRow)
	return &clone
}

func cloneRefs(refs []string) []string {
	if refs == nil {
		return nil
	}
	out := make([]string, len(refs))
	copy(out, refs)
	return out
}
