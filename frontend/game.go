package frontend

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"spaceshooter/autopilot"
	"spaceshooter/game"
	"spaceshooter/profile"
)

// Game adapts a Simulation to ebiten.Game. Wall time is converted to fixed
// ticks by a game.Clock.
type Game struct {
	sim      *game.Simulation
	clock    *game.Clock
	input    *KeyboardInput
	pilot    *autopilot.Pilot
	renderer *Renderer
	profiler *profile.Profiler
	logger   *log.Logger

	width, height int
}

// Options configures the window front-end
type Options struct {
	Config game.Config

	// Autopilot replaces keyboard movement and firing when set
	Autopilot *autopilot.Runner

	// ProfileDir enables stall profiling into the directory when non-empty
	ProfileDir string

	Logger *log.Logger
}

// NewGame creates the simulation and its window adapter
func NewGame(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	sim, err := game.NewSimulation(opts.Config, game.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	g := &Game{
		sim:      sim,
		clock:    game.NewClock(opts.Config.TickRate, opts.Config.MaxCatchUpTicks),
		input:    NewKeyboardInput(),
		renderer: NewRenderer(opts.Config),
		logger:   logger,
		width:    opts.Config.CanvasWidth,
		height:   opts.Config.CanvasHeight,
	}
	if opts.Autopilot != nil {
		g.pilot = autopilot.NewPilot(opts.Autopilot)
	}
	if opts.ProfileDir != "" {
		g.profiler, err = profile.New(opts.ProfileDir, 10*time.Second, 5*time.Second, logger)
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Update polls input and runs the ticks owed since the previous frame
func (g *Game) Update() error {
	if g.input.QuitRequested() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.renderer.ToggleGrid()
	}

	g.input.Poll(g.sim)

	ticks, dropped := g.clock.Tick(time.Now())
	if dropped > 0 {
		g.onStall(dropped)
	}
	for i := 0; i < ticks; i++ {
		if g.pilot != nil {
			if err := g.pilot.Apply(g.sim); err != nil {
				return fmt.Errorf("autopilot: %w", err)
			}
		}
		g.sim.Step()
	}
	return nil
}

func (g *Game) onStall(dropped int) {
	g.logger.Printf("simulation fell behind, dropped %d ticks", dropped)
	if g.profiler == nil {
		return
	}
	reason := fmt.Sprintf("dropped%d-entities%d", dropped, g.sim.World().Len())
	if err := g.profiler.CaptureStall(reason); err != nil && !errors.Is(err, profile.ErrCooldown) {
		g.logger.Printf("failed to capture profile: %v", err)
	}
}

// Draw renders the current frame
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.sim.Frame())
}

// Layout returns the fixed canvas size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it is closed
func Run(opts Options) error {
	g, err := NewGame(opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("Space Shooter")
	ebiten.SetTPS(opts.Config.TickRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
