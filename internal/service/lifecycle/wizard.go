package lifecycle

import (
	"fmt"

	"github.com/Domenick1991/frontdesk/internal/domain"
)

type Step string

// Wizard is a small step machine: named steps, an allowed-edge table and
// optional guards run before a step is entered. The terminal step can only
// be reached by a successful commit.
type Wizard struct {
	current  Step
	terminal Step
	edges    map[Step][]Step
	guards   map[Step]func(from Step) error
	history  []Step
}

func newWizard(start, terminal Step, edges map[Step][]Step) *Wizard {
	return &Wizard{
		current:  start,
		terminal: terminal,
		edges:    edges,
		guards:   make(map[Step]func(from Step) error),
	}
}

func (w *Wizard) Step() Step { return w.current }

func (w *Wizard) Done() bool { return w.current == w.terminal }

func (w *Wizard) allowed(to Step) bool {
	for _, s := range w.edges[w.current] {
		if s == to {
			return true
		}
	}
	return false
}

// CanGo reports whether GoTo(to) would succeed right now.
func (w *Wizard) CanGo(to Step) bool {
	return to != w.terminal && w.check(to) == nil
}

func (w *Wizard) check(to Step) error {
	if !w.allowed(to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStep, w.current, to)
	}
	if g, ok := w.guards[to]; ok {
		return g(w.current)
	}
	return nil
}

func (w *Wizard) GoTo(to Step) error {
	if to == w.terminal {
		return fmt.Errorf("%w: %s is reached by committing", domain.ErrInvalidStep, to)
	}
	return w.move(to)
}

// Back returns to the previous step.
func (w *Wizard) Back() error {
	if len(w.history) == 0 || w.Done() {
		return fmt.Errorf("%w: nothing to go back to from %s", domain.ErrInvalidStep, w.current)
	}
	w.current = w.history[len(w.history)-1]
	w.history = w.history[:len(w.history)-1]
	return nil
}

func (w *Wizard) move(to Step) error {
	if err := w.check(to); err != nil {
		return err
	}
	w.history = append(w.history, w.current)
	w.current = to
	return nil
}

func (w *Wizard) require(step Step) error {
	if w.current != step {
		return fmt.Errorf("%w: expected %s, at %s", domain.ErrInvalidStep, step, w.current)
	}
	return nil
}
