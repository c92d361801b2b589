// Package presentation decides what a topic screen may show for each kind
// of material, given what is saved and whether the device is online.
package presentation

import (
	"errors"
	"fmt"

	"github.com/zambezi-learn/zambezi/internal/material"
)

// ErrIllegalTransition is returned for an event the slot cannot accept
// in its current state.
var ErrIllegalTransition = errors.New("illegal slot transition")

// State of one (topic, kind) slot.
type State int

const (
	NoContent State = iota
	Generating
	GeneratedUnsaved
	Saved
)

func (s State) String() string {
	switch s {
	case NoContent:
		return "no-content"
	case Generating:
		return "generating"
	case GeneratedUnsaved:
		return "generated-unsaved"
	case Saved:
		return "saved"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event drives a slot.
type Event int

const (
	EventRequest Event = iota // user asks for new content
	EventSucceed              // generation returned content
	EventFail                 // generation failed or was abandoned
	EventSave                 // user saves generated content
	EventUpload               // user uploads a document
	EventDiscard              // user closes content to start over
)

func (e Event) String() string {
	switch e {
	case EventRequest:
		return "request"
	case EventSucceed:
		return "succeed"
	case EventFail:
		return "fail"
	case EventSave:
		return "save"
	case EventUpload:
		return "upload"
	case EventDiscard:
		return "discard"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

var transitions = map[State]map[Event]State{
	NoContent: {
		EventRequest: Generating,
		EventUpload:  Saved,
	},
	Generating: {
		EventSucceed: GeneratedUnsaved,
		EventFail:    NoContent,
	},
	GeneratedUnsaved: {
		EventSave:    Saved,
		EventDiscard: NoContent,
	},
	Saved: {
		EventUpload:  Saved,
		EventDiscard: NoContent,
	},
}

// Next returns the state after e.
func (s State) Next(e Event) (State, error) {
	if next, ok := transitions[s][e]; ok {
		return next, nil
	}
	return s, fmt.Errorf("%w: %s on %s", ErrIllegalTransition, e, s)
}

// Slot is the screen-side state of one kind of material for a topic.
type Slot struct {
	Kind    material.Kind
	State   State
	Content material.Content // set in GeneratedUnsaved
	Err     error            // last generation failure, cleared on request
}

func (s *Slot) apply(e Event) error {
	next, err := s.State.Next(e)
	if err != nil {
		return err
	}
	s.State = next
	return nil
}
