package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/logger"
)

// Orchestrator owns the current state and feeds it clicks and clock ticks.
type Orchestrator struct {
	match   *Match
	current State
	log     *zap.Logger

	// Milliseconds of the first tick after a reset.
	base    int64
	hasBase bool
	now     float64
}

// NewOrchestrator starts in the menu.
func NewOrchestrator(m *Match) *Orchestrator {
	o := &Orchestrator{match: m, log: logger.Named("states")}
	o.change(NewMenu(m))
	return o
}

// Match returns the shared game data.
func (o *Orchestrator) Match() *Match { return o.match }

// Current returns the current state.
func (o *Orchestrator) Current() State { return o.current }

// Now returns the last tick time in seconds since the clock started.
func (o *Orchestrator) Now() float64 { return o.now }

// Click dispatches a picked object to the current state. Objects that are
// not game targets are ignored.
func (o *Orchestrator) Click(target Target) {
	if target == nil {
		return
	}
	o.change(o.current.OnClick(target))
}

// Tick advances the clock to ms and updates the current state. The first
// tick after construction or Reset defines time zero.
func (o *Orchestrator) Tick(ms int64) {
	if !o.hasBase {
		o.base = ms
		o.hasBase = true
	}
	o.now = float64(ms-o.base) / 1000
	o.change(o.current.Update(o.now))
}

// Reset restarts the clock and returns to the menu. The score is kept.
func (o *Orchestrator) Reset() {
	o.hasBase = false
	o.now = 0
	o.change(NewMenu(o.match))
}

// Display asks the current state to draw itself.
func (o *Orchestrator) Display(v View) {
	o.current.Display(v)
}

func (o *Orchestrator) change(next State) {
	if next == nil || next == o.current {
		return
	}
	if o.current != nil {
		o.log.Debug("state change",
			zap.String("from", o.current.Name()),
			zap.String("to", next.Name()))
	}
	o.current = next
	o.current.Enter()
}
