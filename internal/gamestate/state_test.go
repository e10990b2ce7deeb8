package gamestate

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/samdwyer/mazecrawl/internal/entity"
)

func TestNewGame(t *testing.T) {
	s := NewGame()

	if s.CurrentScene != SceneTitle {
		t.Errorf("NewGame().CurrentScene = %v, want %v", s.CurrentScene, SceneTitle)
	}
	if s.Roster == nil || len(s.Roster) != 0 {
		t.Errorf("NewGame().Roster = %v, want empty map", s.Roster)
	}
	if s.Party.InMaze {
		t.Error("NewGame().Party.InMaze = true, want false")
	}
	if s.Party.Members == nil || len(s.Party.Members) != 0 {
		t.Errorf("NewGame().Party.Members = %v, want empty", s.Party.Members)
	}
	if len(s.Party.Formation.FrontRow) != 0 || len(s.Party.Formation.BackRow) != 0 {
		t.Errorf("NewGame().Party.Formation = %+v, want empty rows", s.Party.Formation)
	}
	if s.Dungeon.CurrentLevel != 1 {
		t.Errorf("NewGame().Dungeon.CurrentLevel = %d, want 1", s.Dungeon.CurrentLevel)
	}
	if s.Settings.Difficulty != DifficultyNormal {
		t.Errorf("NewGame().Settings.Difficulty = %v, want %v", s.Settings.Difficulty, DifficultyNormal)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("NewGame().Validate() = %v", err)
	}
}

func TestNewGameIsDeterministic(t *testing.T) {
	a, b := NewGame(), NewGame()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("NewGame() not deterministic: %+v != %+v", a, b)
	}

	// Separate calls must not share collections.
	a.Party.Members = append(a.Party.Members, "x")
	a.Roster["x"] = entity.Character{ID: "x"}
	if len(b.Party.Members) != 0 || len(b.Roster) != 0 {
		t.Error("NewGame() results share state")
	}
}

func TestSceneString(t *testing.T) {
	tests := []struct {
		scene    Scene
		expected string
	}{
		{SceneTitle, "title"},
		{SceneTown, "town"},
		{SceneTraining, "training"},
		{SceneTavern, "tavern"},
		{SceneDungeon, "dungeon"},
		{SceneCamp, "camp"},
		{SceneCombat, "combat"},
		{Scene(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.scene.String(); got != tt.expected {
			t.Errorf("Scene(%d).String() = %q, want %q", tt.scene, got, tt.expected)
		}
	}
}

func TestEnumTextRejectsUnknownValues(t *testing.T) {
	var scene Scene
	if err := json.Unmarshal([]byte(`"castle"`), &scene); err == nil {
		t.Error("expected error for unknown scene")
	}
	var difficulty Difficulty
	if err := json.Unmarshal([]byte(`"nightmare"`), &difficulty); err == nil {
		t.Error("expected error for unknown difficulty")
	}
	var facing Direction
	if err := json.Unmarshal([]byte(`"up"`), &facing); err == nil {
		t.Error("expected error for unknown direction")
	}
	if _, err := json.Marshal(Scene(42)); err == nil {
		t.Error("expected error marshaling unknown scene")
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{North, 0, -1},
		{East, 1, 0},
		{South, 0, 1},
		{West, -1, 0},
		{Direction(7), 0, 0},
	}
	for _, tt := range tests {
		dx, dy := tt.dir.Delta()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%v.Delta() = (%d,%d), want (%d,%d)", tt.dir, dx, dy, tt.dx, tt.dy)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameState)
	}{
		{"unknown scene", func(s *GameState) { s.CurrentScene = Scene(42) }},
		{"level zero", func(s *GameState) { s.Dungeon.CurrentLevel = 0 }},
		{"unknown facing", func(s *GameState) { s.Dungeon.Facing = Direction(9) }},
		{"unknown difficulty", func(s *GameState) { s.Settings.Difficulty = Difficulty(9) }},
		{"message speed", func(s *GameState) { s.Settings.MessageSpeed = 0 }},
		{"roster key mismatch", func(s *GameState) { s.Roster["a"] = entity.Character{ID: "b"} }},
		{"roster missing id", func(s *GameState) { s.Roster["a"] = entity.Character{} }},
		{"invalid utf-8 name", func(s *GameState) { s.Roster["a"] = entity.Character{ID: "a", Name: "bad\xffname"} }},
		{"invalid utf-8 id", func(s *GameState) { s.Roster["\xff"] = entity.Character{ID: "\xff"} }},
		{"invalid utf-8 ability", func(s *GameState) {
			s.Roster["a"] = entity.Character{ID: "a", AbilityIDs: []string{"\xfe"}}
		}},
		{"invalid utf-8 member", func(s *GameState) { s.Party.Members = []string{"\xff"} }},
		{"invalid utf-8 back row", func(s *GameState) { s.Party.Formation.BackRow = []string{"\xff"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewGame()
			tt.mutate(s)
			if err := s.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}

	var nilState *GameState
	if err := nilState.Validate(); err == nil {
		t.Error("Validate() on nil state = nil, want error")
	}
}

func TestClone(t *testing.T) {
	s := NewGame()
	c := entity.NewCharacter("Aldo", entity.ClassWarrior)
	s.Recruit(c)
	if err := s.Join(c.ID); err != nil {
		t.Fatalf("Join() = %v", err)
	}

	clone := s.Clone()
	if !reflect.DeepEqual(s, clone) {
		t.Fatalf("Clone() = %+v, want %+v", clone, s)
	}

	clone.Party.Members[0] = "other"
	clone.Party.Formation.FrontRow[0] = "other"
	clone.Roster[c.ID].AbilityIDs[0] = "other"
	if s.Party.Members[0] != c.ID || s.Party.Formation.FrontRow[0] != c.ID {
		t.Error("Clone() shares party slices")
	}
	if s.Roster[c.ID].AbilityIDs[0] == "other" {
		t.Error("Clone() shares roster records")
	}
}

func TestJoinFillsFrontRowFirst(t *testing.T) {
	s := NewGame()
	var ids []string
	for i := 0; i < MaxPartySize; i++ {
		c := entity.NewCharacter("member", entity.ClassRogue)
		s.Recruit(c)
		if err := s.Join(c.ID); err != nil {
			t.Fatalf("Join(%d) = %v", i, err)
		}
		ids = append(ids, c.ID)
	}

	if !reflect.DeepEqual(s.Party.Formation.FrontRow, ids[:FrontRowSize]) {
		t.Errorf("FrontRow = %v, want %v", s.Party.Formation.FrontRow, ids[:FrontRowSize])
	}
	if !reflect.DeepEqual(s.Party.Formation.BackRow, ids[FrontRowSize:]) {
		t.Errorf("BackRow = %v, want %v", s.Party.Formation.BackRow, ids[FrontRowSize:])
	}

	extra := entity.NewCharacter("extra", entity.ClassWizard)
	s.Recruit(extra)
	if err := s.Join(extra.ID); !errors.Is(err, ErrPartyFull) {
		t.Errorf("Join() on full party = %v, want %v", err, ErrPartyFull)
	}
	if err := s.Join(ids[0]); !errors.Is(err, ErrAlreadyInParty) {
		t.Errorf("Join() twice = %v, want %v", err, ErrAlreadyInParty)
	}
	if err := s.Join("ghost"); !errors.Is(err, ErrNotOnRoster) {
		t.Errorf("Join() unknown = %v, want %v", err, ErrNotOnRoster)
	}
}

func TestLeaveKeepsFormationConsistent(t *testing.T) {
	s := NewGame()
	a := entity.NewCharacter("a", entity.ClassWarrior)
	b := entity.NewCharacter("b", entity.ClassCleric)
	s.Recruit(a)
	s.Recruit(b)
	_ = s.Join(a.ID)
	_ = s.Join(b.ID)

	if !s.Leave(a.ID) {
		t.Fatal("Leave() = false, want true")
	}
	if s.Leave(a.ID) {
		t.Error("Leave() twice = true, want false")
	}
	if s.Party.Size() != 1 || s.Party.Has(a.ID) {
		t.Errorf("Members = %v, want only %q", s.Party.Members, b.ID)
	}
	rows := len(s.Party.Formation.FrontRow) + len(s.Party.Formation.BackRow)
	if rows != s.Party.Size() {
		t.Errorf("formation holds %d members, party has %d", rows, s.Party.Size())
	}
}
