package model

import "time"

// AlertState is the current state of the threshold state machine.
type AlertState string

const (
	StateNormal AlertState = "NORMAL"
	StateAlert  AlertState = "ALERT"
)

// Transition marks a state change produced by evaluating one reading.
type Transition string

const (
	TransitionNone       Transition = ""
	TransitionEnterAlert Transition = "ENTER_ALERT"
	TransitionExitAlert  Transition = "EXIT_ALERT"
)

// AlertEvent is one logged transition into or out of ALERT, with the
// triggering reading's timestamp and value.
type AlertEvent struct {
	Timestamp  time.Time  `json:"timestamp"`
	Value      int        `json:"value"`
	Transition Transition `json:"transition"`
}
