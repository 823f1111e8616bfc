package autopilot

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dop251/goja"

	"spaceshooter/game"
)

// DefaultScript tracks the lowest enemy above the ship, fires constantly and
// buys the first affordable upgrade
//
//go:embed default.js
var DefaultScript string

// DefaultTimeout bounds a single decide call
const DefaultTimeout = 50 * time.Millisecond

// Runner executes a JavaScript autopilot with goja. The script must define
// a function decide(ctx) returning {moveX, moveY, fire, upgrade}.
type Runner struct {
	vm      *goja.Runtime
	decide  goja.Callable
	timeout time.Duration
}

// NewRunner compiles code and looks up its decide function
func NewRunner(code string) (*Runner, error) {
	vm := goja.New()
	if _, err := vm.RunString(code); err != nil {
		return nil, fmt.Errorf("script execution failed: %w", err)
	}

	decideVal := vm.Get("decide")
	if decideVal == nil || goja.IsUndefined(decideVal) {
		return nil, errors.New("script must define a 'decide' function")
	}
	decide, ok := goja.AssertFunction(decideVal)
	if !ok {
		return nil, errors.New("'decide' must be a function")
	}

	return &Runner{vm: vm, decide: decide, timeout: DefaultTimeout}, nil
}

// Load reads a script from path, or returns the default script for ""
func Load(path string) (*Runner, error) {
	if path == "" {
		return NewRunner(DefaultScript)
	}
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return NewRunner(string(code))
}

// SetTimeout changes the per-call time limit (0 disables it)
func (r *Runner) SetTimeout(d time.Duration) {
	r.timeout = d
}

// Decide calls the script's decide function with ctx
func (r *Runner) Decide(ctx Context) (Decision, error) {
	ctxJSON, err := json.Marshal(ctx)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to serialize context: %w", err)
	}
	ctxObj, err := r.vm.RunString(fmt.Sprintf("(%s)", ctxJSON))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to parse context: %w", err)
	}

	if r.timeout > 0 {
		timer := time.AfterFunc(r.timeout, func() {
			r.vm.Interrupt("decide timed out")
		})
		defer func() {
			timer.Stop()
			r.vm.ClearInterrupt()
		}()
	}

	result, err := r.decide(goja.Undefined(), ctxObj)
	if err != nil {
		return Decision{}, fmt.Errorf("decide function failed: %w", err)
	}

	resultJSON, err := json.Marshal(result.Export())
	if err != nil {
		return Decision{}, fmt.Errorf("failed to serialize result: %w", err)
	}
	var d Decision
	if err := json.Unmarshal(resultJSON, &d); err != nil {
		return Decision{}, fmt.Errorf("failed to parse script result: %w (result: %s)", err, resultJSON)
	}
	return d, nil
}

// Pilot is an input collaborator driven by a script
type Pilot struct {
	runner *Runner
	last   Decision
}

// NewPilot wraps a runner
func NewPilot(r *Runner) *Pilot {
	return &Pilot{runner: r}
}

// Last returns the most recent decision
func (p *Pilot) Last() Decision {
	return p.last
}

// Apply asks the script for a decision on the current frame and writes it
// into the simulation's input for the next tick
func (p *Pilot) Apply(s *game.Simulation) error {
	d, err := p.runner.Decide(BuildContext(s.Frame()))
	if err != nil {
		return err
	}
	p.last = d
	s.SetController(d.Controller())
	if d.Upgrade != nil && *d.Upgrade >= 0 {
		s.RequestUpgrade(*d.Upgrade)
	}
	return nil
}
