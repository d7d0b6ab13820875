// Package fsm defines the dictation lifecycle state machine.
package fsm

import "fmt"

type State string

type Event string

const (
	StateIdle         State = "idle"
	StateRecording    State = "recording"
	StateTranscribing State = "transcribing"
)

const (
	EventStart  Event = "start"
	EventStop   Event = "stop"
	EventCancel Event = "cancel"
	EventCommit Event = "commit"
	EventAbort  Event = "abort"
)

// transitions is the complete set of legal state changes. Anything absent
// from this table is an invalid transition.
var transitions = map[State]map[Event]State{
	StateIdle: {
		EventStart: StateRecording,
	},
	StateRecording: {
		EventStop:   StateTranscribing,
		EventCancel: StateIdle,
		EventAbort:  StateIdle,
	},
	StateTranscribing: {
		EventCommit: StateIdle,
		EventAbort:  StateIdle,
	},
}

func Transition(current State, event Event) (State, error) {
	edges, ok := transitions[current]
	if !ok {
		return current, fmt.Errorf("unknown state %q", current)
	}
	next, ok := edges[event]
	if !ok {
		return current, fmt.Errorf("invalid transition: %s --(%s)--> ?", current, event)
	}
	return next, nil
}
