package session

import (
	"fmt"
	"strings"
)

// State is where a browser sits in the login lifecycle.
type State string

const (
	Anonymous     State = "anonymous"
	Authenticated State = "authenticated"
)

// Event moves a browser between states.
type Event string

const (
	EventLogin  Event = "login"
	EventLogout Event = "logout"
)

// Transition defines a valid state change
type Transition struct {
	From  State
	Event Event
	To    State
}

// transitions is the authoritative session lifecycle
var transitions = []Transition{
	{From: Anonymous, Event: EventLogin, To: Authenticated},
	{From: Authenticated, Event: EventLogout, To: Anonymous},
	// Logging out twice is harmless.
	{From: Anonymous, Event: EventLogout, To: Anonymous},
	// Logging in again replaces the current identity.
	{From: Authenticated, Event: EventLogin, To: Authenticated},
}

type transitionKey struct {
	From  State
	Event Event
}

var transitionMap = func() map[transitionKey]State {
	m := make(map[transitionKey]State, len(transitions))
	for _, t := range transitions {
		m[transitionKey{t.From, t.Event}] = t.To
	}
	return m
}()

// Next returns the state reached from `from` on event, or an error if the
// pair is not part of the lifecycle.
func Next(from State, event Event) (State, error) {
	if to, ok := transitionMap[transitionKey{from, event}]; ok {
		return to, nil
	}
	return "", fmt.Errorf("invalid session transition: %q on %q (known events from %q: %s)",
		from, event, from, describeEventsFrom(from))
}

// Transitions returns the full lifecycle table.
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}

func describeEventsFrom(from State) string {
	var events []string
	for _, t := range transitions {
		if t.From == from {
			events = append(events, string(t.Event))
		}
	}
	if len(events) == 0 {
		return "none"
	}
	return strings.Join(events, ", ")
}
