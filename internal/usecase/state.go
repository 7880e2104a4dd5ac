package usecase

import (
	"fmt"
	"log/slog"

	"github.com/fadilmartias/cv-analyzer-pro/internal/errs"
)

type State string

const (
	StateIdle               State = "idle"
	StateValidating         State = "validating"
	StateExtracting         State = "extracting"
	StateAnalyzingAI        State = "analyzing-ai"
	StateAnalyzingHeuristic State = "analyzing-heuristic"
	StateResponding         State = "responding"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

var transitions = map[State][]State{
	StateIdle:               {StateValidating},
	StateValidating:         {StateExtracting, StateFailed},
	StateExtracting:         {StateAnalyzingAI, StateFailed},
	StateAnalyzingAI:        {StateAnalyzingHeuristic, StateResponding},
	StateAnalyzingHeuristic: {StateResponding},
	StateResponding:         {StateDone},
}

// pipeline tracks one request through the analysis states.
type pipeline struct {
	state State
	log   *slog.Logger
}

func newPipeline(log *slog.Logger) *pipeline {
	return &pipeline{state: StateIdle, log: log}
}

// advance moves to next, or reports an unexpected pipeline error for an illegal edge.
func (p *pipeline) advance(next State) error {
	for _, allowed := range transitions[p.state] {
		if allowed == next {
			p.log.Debug("pipeline state", "from", p.state, "to", next)
			p.state = next
			return nil
		}
	}
	return fmt.Errorf("%w: illegal transition %s -> %s", errs.ErrUnexpected, p.state, next)
}

// fail moves to Failed from any non-terminal state.
func (p *pipeline) fail(err error) {
	if p.state == StateDone || p.state == StateFailed {
		return
	}
	p.log.Warn("pipeline failed", "state", p.state, "error", err)
	p.state = StateFailed
}
