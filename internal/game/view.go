package game

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/samdwyer/mazecrawl/internal/gamestate"
	"github.com/samdwyer/mazecrawl/internal/ui"
)

// titleCase capitalizes an identifier for display.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

var sceneTitles = map[gamestate.Scene]string{
	gamestate.SceneTitle:    "MAZECRAWL",
	gamestate.SceneTown:     "Town",
	gamestate.SceneTraining: "Training Grounds",
	gamestate.SceneDungeon:  "The Maze",
	gamestate.SceneCamp:     "Camp",
}

// view builds the frame for the current scene.
func (g *Game) view() ui.View {
	s := g.state
	title, ok := sceneTitles[s.CurrentScene]
	if !ok {
		title = titleCase(s.CurrentScene.String())
	}

	v := ui.View{Title: title, Buttons: g.buttons.All(), Status: g.message}
	if g.prompt != nil {
		v.Status = g.prompt.question
	}

	switch s.CurrentScene {
	case gamestate.SceneTitle:
		v.Lines = []string{"A descent into the maze."}
	case gamestate.SceneDungeon:
		v.Lines = append([]string{
			fmt.Sprintf("Level %d (deepest %d)", s.Dungeon.CurrentLevel, s.Dungeon.DeepestLevel),
			fmt.Sprintf("Position %d,%d facing %s", s.Dungeon.X, s.Dungeon.Y, titleCase(s.Dungeon.Facing.String())),
			"",
		}, g.partyLines()...)
	case gamestate.SceneTraining:
		v.Lines = append([]string{fmt.Sprintf("Roster: %d adventurers", len(s.Roster)), ""}, g.partyLines()...)
	default:
		v.Lines = g.partyLines()
	}
	return v
}

// partyLines lists the party by formation row.
func (g *Game) partyLines() []string {
	s := g.state
	if s.Party.Size() == 0 {
		return []string{"No one has joined the party."}
	}

	lines := []string{fmt.Sprintf("Party (%d/%d)", s.Party.Size(), gamestate.MaxPartySize)}
	rows := []struct {
		name string
		ids  []string
	}{
		{"Front", s.Party.Formation.FrontRow},
		{"Back", s.Party.Formation.BackRow},
	}
	for _, row := range rows {
		for _, id := range row.ids {
			c, ok := s.Roster[id]
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %-5s %c %-8s L%d HP %d/%d MP %d/%d",
				row.name, c.Class.Symbol(), c.Name, c.Level, c.HP, c.MaxHP, c.MP, c.MaxMP))
		}
	}
	return lines
}
