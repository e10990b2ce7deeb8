package gamestate

import "github.com/samdwyer/mazecrawl/internal/entity"

// DefaultMessageSpeed is the message speed of a new game.
const DefaultMessageSpeed = 3

// NewGame returns a fresh game: title screen, empty roster, an empty party
// outside the maze, dungeon level 1 and normal difficulty.
func NewGame() *GameState {
	return &GameState{
		CurrentScene: SceneTitle,
		Roster:       map[string]entity.Character{},
		Party: Party{
			InMaze:  false,
			Members: []string{},
			Formation: Formation{
				FrontRow: []string{},
				BackRow:  []string{},
			},
		},
		Dungeon: Dungeon{
			CurrentLevel: 1,
			DeepestLevel: 1,
			Facing:       North,
		},
		Settings: Settings{
			Difficulty:   DifficultyNormal,
			SoundEnabled: true,
			MessageSpeed: DefaultMessageSpeed,
		},
	}
}
