// Package game runs an interactive session: it owns the display, the input
// dispatcher and the live game state, and moves the player between scenes.
package game

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/mazecrawl/internal/gamestate"
	"github.com/samdwyer/mazecrawl/internal/input"
	"github.com/samdwyer/mazecrawl/internal/save"
	"github.com/samdwyer/mazecrawl/internal/telemetry"
	"github.com/samdwyer/mazecrawl/internal/ui"
)

// Display is the terminal the game runs in. *ui.Screen implements it.
type Display interface {
	ui.Surface
	PollEvent() tcell.Event
	Sync()
	Close()
}

// Game holds the entire session.
type Game struct {
	display  Display
	renderer *ui.Renderer
	input    *input.Dispatcher
	buttons  *ui.Buttons
	router   *ui.EventRouter
	saves    *save.Service
	logger   *slog.Logger
	tracer   trace.Tracer

	state   *gamestate.GameState
	prompt  *prompt
	message string
	running bool
}

// prompt is a pending yes/no question.
type prompt struct {
	question string
	wait     *input.Keystroke
	onYes    func()
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithTracer sets the tracer used for session spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(g *Game) {
		if tracer != nil {
			g.tracer = tracer
		}
	}
}

// WithPalette sets the colors the game is drawn with.
func WithPalette(p ui.Palette) Option {
	return func(g *Game) {
		g.renderer = ui.NewRenderer(g.display, p)
	}
}

// New creates a game on display that persists through saves.
func New(display Display, saves *save.Service, opts ...Option) *Game {
	g := &Game{
		display: display,
		buttons: ui.NewButtons(),
		saves:   saves,
		logger:  slog.Default(),
		tracer:  telemetry.Tracer("game"),
		state:   gamestate.NewGame(),
		running: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.renderer == nil {
		g.renderer = ui.NewRenderer(display, ui.DefaultPalette())
	}
	g.input = input.NewDispatcher(g.buttons, input.WithLogger(g.logger))
	g.router = ui.NewEventRouter(g.input, g.buttons)
	return g
}

// State returns the live game state.
func (g *Game) State() *gamestate.GameState {
	return g.state
}

// Run executes the main game loop until the player quits, the display stops
// delivering events or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	ctx, span := g.tracer.Start(ctx, "game.init")
	hasSave := g.saves.CheckForSaveData(ctx)
	span.SetAttributes(attribute.Bool("save.present", hasSave))
	g.enter(ctx, gamestate.SceneTitle)
	span.End()

	for g.running {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.render()

		ev := g.display.PollEvent()
		if ev == nil {
			break
		}
		g.handleEvent(ctx, ev)
	}

	g.input.ClearAllHandlers()
	g.logger.Info("session ended", "scene", g.state.CurrentScene.String())
	return nil
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.display.Sync()
		return
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			g.quit()
			return
		}
	}

	g.router.Handle(ev)
	g.settlePrompt(ctx)
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.cancelPrompt()
	if g.display != nil {
		g.display.Close()
	}
}

func (g *Game) quit() {
	g.cancelPrompt()
	g.running = false
}

// enter switches scene and binds its controls. A pending prompt is dropped.
func (g *Game) enter(ctx context.Context, scene gamestate.Scene) {
	g.cancelPrompt()
	if g.state.CurrentScene != scene {
		g.logger.Debug("scene change", "from", g.state.CurrentScene.String(), "to", scene.String())
	}
	g.state.CurrentScene = scene
	g.bindScene(ctx)
}

// ask shows question and waits for y or n (escape counts as n). The scene's
// controls are suspended meanwhile.
func (g *Game) ask(question string, onYes func()) {
	g.cancelPrompt()
	g.input.ClearAllHandlers()
	g.buttons.Reset()
	g.prompt = &prompt{
		question: question,
		wait:     g.input.WaitForSingleKeystroke("y", "n", "escape"),
		onYes:    onYes,
	}
}

// settlePrompt acts on a prompt that has been answered.
func (g *Game) settlePrompt(ctx context.Context) {
	p := g.prompt
	if p == nil {
		return
	}
	select {
	case <-p.wait.Done():
	default:
		return
	}
	g.prompt = nil

	key, err := p.wait.Result()
	if err == nil && key == "y" {
		p.onYes()
		return
	}
	g.bindScene(ctx)
}

func (g *Game) cancelPrompt() {
	if g.prompt == nil {
		return
	}
	g.prompt.wait.Cancel()
	g.prompt = nil
}

func (g *Game) say(msg string) {
	g.message = msg
}

func (g *Game) render() {
	g.renderer.Render(g.view())
}
