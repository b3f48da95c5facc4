package services

import (
	"errors"
	"sync"

	"portalempleos/internal/errcodes"
)

// State is the lifecycle position of one request
type State int

const (
	StateIdle State = iota
	StateValidating
	StateRejected
	StateSending
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRejected:
		return "rejected"
	case StateSending:
		return "sending"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether no further transition can follow s
func (s State) Terminal() bool {
	return s == StateRejected || s == StateSuccess || s == StateFailed
}

// Transition is one state change of a request
type Transition struct {
	Endpoint errcodes.Endpoint
	From     State
	To       State
}

// Observer receives every transition of every request
type Observer func(Transition)

type tracker struct {
	endpoint errcodes.Endpoint
	state    State
	observe  Observer
}

func (t *tracker) to(next State) {
	if t.observe != nil {
		t.observe(Transition{Endpoint: t.endpoint, From: t.state, To: next})
	}
	t.state = next
}

var ErrInFlight = errors.New("request already in progress")

// Guard allows at most one in-flight call per logical action
type Guard struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

// NewGuard creates an empty guard
func NewGuard() *Guard {
	return &Guard{inFlight: make(map[string]bool)}
}

// Do runs fn unless another call for action is still running, in which
// case it returns ErrInFlight without calling fn.
func (g *Guard) Do(action string, fn func() error) error {
	g.mu.Lock()
	if g.inFlight[action] {
		g.mu.Unlock()
		return ErrInFlight
	}
	g.inFlight[action] = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.inFlight, action)
		g.mu.Unlock()
	}()
	return fn()
}
