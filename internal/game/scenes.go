package game

import (
	"context"
	"errors"
	"fmt"

	petname "github.com/dustinkirkland/golang-petname"

	"github.com/samdwyer/mazecrawl/internal/entity"
	"github.com/samdwyer/mazecrawl/internal/gamestate"
	"github.com/samdwyer/mazecrawl/internal/input"
	"github.com/samdwyer/mazecrawl/internal/save"
	"github.com/samdwyer/mazecrawl/internal/ui"
)

// control is one scene action. Controls with an id get a button; the rest
// are keyboard only.
type control struct {
	id       string
	key      string
	text     string
	disabled bool
	action   func()
}

// Button row layout.
const (
	buttonGap    = 1
	buttonMargin = 1
)

// bindScene replaces every handler and button with the current scene's.
func (g *Game) bindScene(ctx context.Context) {
	g.input.ClearAllHandlers()
	g.buttons.Reset()

	var controls []control
	switch g.state.CurrentScene {
	case gamestate.SceneTitle:
		controls = g.titleControls(ctx)
	case gamestate.SceneTown:
		controls = g.townControls(ctx)
	case gamestate.SceneTraining:
		controls = g.trainingControls(ctx)
	case gamestate.SceneDungeon:
		controls = g.dungeonControls(ctx)
	case gamestate.SceneCamp:
		controls = g.campControls(ctx)
	default:
		// Scenes without their own screen fall back to town.
		g.logger.Warn("scene has no controls", "scene", g.state.CurrentScene.String())
		g.state.CurrentScene = gamestate.SceneTown
		controls = g.townControls(ctx)
	}
	g.bind(controls)
}

func (g *Game) bind(controls []control) {
	_, height := g.display.Size()
	x, y := buttonMargin, max(height-3, 0)

	for _, c := range controls {
		if c.id != "" {
			state := ui.ButtonState{X: x, Y: y, Height: 1, Text: c.text, Key: c.key, Disabled: c.disabled}
			state.Width = ui.ButtonWidth(state.Label())
			g.buttons.Set(c.id, state)
			x += state.Width + buttonGap
		}
		if c.disabled {
			continue
		}

		action := c.action
		g.input.OnKeyPress(c.key, func(input.KeyEvent) { action() })
		if c.id != "" {
			g.input.OnButtonClick(c.id, func(input.ClickEvent) { action() })
		}
	}
}

func (g *Game) titleControls(ctx context.Context) []control {
	hasSave := g.saves.CheckForSaveData(ctx)
	valid := hasSave && g.saves.ValidateSaveData(ctx)

	return []control{
		{id: "title.new", key: "n", text: "New Game", action: func() {
			if !hasSave {
				g.newGame(ctx)
				return
			}
			g.ask("Overwrite the existing save? (y/n)", func() { g.newGame(ctx) })
		}},
		{id: "title.continue", key: "c", text: "Continue", disabled: !valid, action: func() {
			g.continueGame(ctx)
		}},
		{id: "title.delete", key: "d", text: "Delete Save", disabled: !hasSave || valid, action: func() {
			g.deleteSave(ctx)
		}},
		{id: "title.quit", key: "q", text: "Quit", action: g.quit},
	}
}

func (g *Game) townControls(ctx context.Context) []control {
	return []control{
		{id: "town.training", key: "t", text: "Training", action: func() {
			g.enter(ctx, gamestate.SceneTraining)
		}},
		{id: "town.maze", key: "m", text: "Enter Maze", disabled: g.state.Party.Size() == 0, action: func() {
			g.state.Party.InMaze = true
			g.say(fmt.Sprintf("The party descends to level %d.", g.state.Dungeon.CurrentLevel))
			g.enter(ctx, gamestate.SceneDungeon)
		}},
		{id: "town.save", key: "s", text: "Save", action: func() { g.saveGame(ctx) }},
		{id: "town.title", key: "escape", text: "Title", action: func() {
			g.ask("Return to the title screen? Unsaved progress is lost. (y/n)", func() {
				g.state = gamestate.NewGame()
				g.say("")
				g.enter(ctx, gamestate.SceneTitle)
			})
		}},
	}
}

func (g *Game) trainingControls(ctx context.Context) []control {
	return []control{
		{id: "training.recruit", key: "r", text: "Recruit", disabled: g.state.Party.Size() >= gamestate.MaxPartySize, action: func() {
			g.recruit(ctx)
		}},
		{id: "training.back", key: "escape", text: "Back", action: func() {
			g.enter(ctx, gamestate.SceneTown)
		}},
	}
}

func (g *Game) dungeonControls(ctx context.Context) []control {
	controls := make([]control, 0, 7)
	for key, dir := range map[string]gamestate.Direction{
		"arrowup":    gamestate.North,
		"arrowright": gamestate.East,
		"arrowdown":  gamestate.South,
		"arrowleft":  gamestate.West,
	} {
		controls = append(controls, control{key: key, action: func() { g.move(dir) }})
	}
	return append(controls,
		control{id: "dungeon.camp", key: "c", text: "Camp", action: func() {
			g.enter(ctx, gamestate.SceneCamp)
		}},
		control{id: "dungeon.leave", key: "l", text: "Leave", action: func() {
			g.state.Party.InMaze = false
			g.say("The party returns to town.")
			g.enter(ctx, gamestate.SceneTown)
		}},
		control{id: "dungeon.save", key: "s", text: "Save", action: func() { g.saveGame(ctx) }},
	)
}

func (g *Game) campControls(ctx context.Context) []control {
	return []control{
		{id: "camp.back", key: "escape", text: "Break Camp", action: func() {
			g.enter(ctx, gamestate.SceneDungeon)
		}},
		{id: "camp.save", key: "s", text: "Save", action: func() { g.saveGame(ctx) }},
	}
}

func (g *Game) newGame(ctx context.Context) {
	g.state = gamestate.NewGame()
	g.say("A new adventure begins.")
	g.logger.Info("new game")
	g.enter(ctx, gamestate.SceneTown)
}

func (g *Game) continueGame(ctx context.Context) {
	loaded, err := g.saves.LoadGame(ctx)
	if err != nil {
		g.logger.Error("load game", "error", err)
		g.say(loadFailureMessage(err))
		g.bindScene(ctx)
		return
	}

	g.state = loaded
	g.say("Welcome back.")
	scene := loaded.CurrentScene
	switch scene {
	case gamestate.SceneDungeon, gamestate.SceneCamp:
		if !loaded.Party.InMaze {
			scene = gamestate.SceneTown
		}
	case gamestate.SceneTown, gamestate.SceneTraining:
	default:
		scene = gamestate.SceneTown
	}
	g.enter(ctx, scene)
}

func loadFailureMessage(err error) string {
	switch {
	case errors.Is(err, save.ErrNotFound):
		return "There is no saved game."
	case errors.Is(err, save.ErrCorrupted):
		return "The saved game is corrupted."
	default:
		return "The saved game could not be read."
	}
}

func (g *Game) deleteSave(ctx context.Context) {
	if err := g.saves.DeleteSave(ctx); err != nil {
		g.logger.Error("delete save", "error", err)
		g.say("The save could not be deleted.")
	} else {
		g.say("Save deleted.")
	}
	g.bindScene(ctx)
}

func (g *Game) saveGame(ctx context.Context) {
	if err := g.saves.SaveGame(ctx, g.state); err != nil {
		g.logger.Error("save game", "error", err)
		g.say("Saving failed.")
		return
	}
	g.say("Game saved.")
}

func (g *Game) recruit(ctx context.Context) {
	n := len(g.state.Roster)
	class := entity.Classes[n%len(entity.Classes)]
	c := entity.NewCharacter(titleCase(petname.Name()), class)

	g.state.Recruit(c)
	if err := g.state.Join(c.ID); err != nil {
		g.say(fmt.Sprintf("%s waits on the roster: %v.", c.Name, err))
	} else {
		g.say(fmt.Sprintf("%s the %s joins the party.", c.Name, class))
	}
	// Recruiting may fill the party, which disables the button.
	g.bindScene(ctx)
}

func (g *Game) move(dir gamestate.Direction) {
	d := &g.state.Dungeon
	d.Facing = dir
	dx, dy := dir.Delta()
	if d.X+dx < 0 || d.Y+dy < 0 {
		g.say("A wall blocks the way.")
		return
	}
	d.X += dx
	d.Y += dy
	g.say("")
}
