// Package alert implements the NORMAL/ALERT threshold state machine
// and its transition log.
package alert

import (
	"github.com/ime-grupo10/vibration-monitor/internal/model"
)

// DefaultThreshold is the ADC level above which the SW-420 board is
// considered to be reporting abnormal vibration.
const DefaultThreshold = 5000

// Evaluator compares readings against a runtime-configurable threshold.
// Single-writer: only the ingestion path calls Evaluate, and the
// monitor Core serializes Evaluate against SetThreshold.
type Evaluator struct {
	threshold  int
	state      model.AlertState
	events     []model.AlertEvent
	enterCount int
}

func NewEvaluator(threshold int) *Evaluator {
	return &Evaluator{
		threshold: threshold,
		state:     model.StateNormal,
	}
}

// Evaluate compares r against the current threshold and returns the
// transition it caused, or TransitionNone. Entering ALERT increments
// the lifetime alert-event counter; exiting does not.
func (e *Evaluator) Evaluate(r model.Reading) model.Transition {
	switch {
	case e.state == model.StateNormal && r.Value >= e.threshold:
		e.state = model.StateAlert
		e.enterCount++
		return e.record(r, model.TransitionEnterAlert)
	case e.state == model.StateAlert && r.Value < e.threshold:
		e.state = model.StateNormal
		return e.record(r, model.TransitionExitAlert)
	}
	return model.TransitionNone
}

func (e *Evaluator) record(r model.Reading, tr model.Transition) model.Transition {
	e.events = append(e.events, model.AlertEvent{
		Timestamp:  r.Timestamp,
		Value:      r.Value,
		Transition: tr,
	})
	return tr
}

// SetThreshold replaces the threshold with immediate effect on the next
// Evaluate call. Past readings are not re-evaluated and no synthetic
// transition is generated.
func (e *Evaluator) SetThreshold(t int) { e.threshold = t }

func (e *Evaluator) Threshold() int { return e.threshold }

func (e *Evaluator) State() model.AlertState { return e.state }

// EnterCount is the lifetime number of ENTER_ALERT transitions.
func (e *Evaluator) EnterCount() int { return e.enterCount }

// Events returns a copy of the transition log in order of occurrence.
func (e *Evaluator) Events() []model.AlertEvent {
	out := make([]model.AlertEvent, len(e.events))
	copy(out, e.events)
	return out
}
