// Package trace provides an append-only, observational record of
// planner steps: the action considered, the fragment state, and the
// outcome. It is pure plumbing — the planner feeds it, nothing in
// package goap or goap/planner reads it back.
package trace

import (
	"sync"
	"time"
)

// Method names the planner procedure that produced an Event.
type Method string

const (
	MethodForward  Method = "forward"
	MethodBackward Method = "backward"
)

// Outcome classifies what happened to the action an Event describes.
type Outcome string

const (
	// OutcomeAccepted: the action extended the fragment successfully.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeRejected: Append/Prepend returned an error; Reason holds
	// the human-readable explanation.
	OutcomeRejected Outcome = "rejected"
	// OutcomePruned: the action would have extended the fragment, but
	// the resulting world was already covered by a visited, stronger
	// world.
	OutcomePruned Outcome = "pruned"
	// OutcomeGoalReached: the search's terminal success condition held.
	OutcomeGoalReached Outcome = "goal-reached"
	// OutcomeDepthLimited: the search backtracked because depth_limit
	// was exhausted before the goal was reached.
	OutcomeDepthLimited Outcome = "depth-limited"
)

// Event is a single planner step, emitted in the program order the
// planner actually executes in.
type Event struct {
	Step     int     // logical step counter within the solve call
	Method   Method  // which search produced this event
	Action   string  // the Action's String(), or "" for terminal events
	Outcome  Outcome // what happened
	Reason   string  // populated on OutcomeRejected
	Fragment string  // optional PlanFragment snapshot (GlobalPre/GlobalCon)

	Start   time.Time
	Latency time.Duration
}

// Handler processes Events as they occur.
type Handler func(Event)

// Collector accumulates Events during a solve call. Thread-safe, though
// a single solve is itself single-threaded — the locking exists so a
// caller may read Events() concurrently with an in-flight search, e.g.
// to stream progress to a UI.
type Collector struct {
	mu      sync.Mutex
	enabled bool
	handler Handler
	events  []Event
}

// NewCollector creates a Collector. A nil handler disables collection
// entirely (Add becomes a no-op) — the common case of solving without
// a trace should cost nothing.
func NewCollector(handler Handler) *Collector {
	return &Collector{enabled: handler != nil, handler: handler, events: make([]Event, 0, 32)}
}

// Add records an Event and forwards it to the handler, if any.
func (c *Collector) Add(e Event) {
	if c == nil || !c.enabled {
		return
	}
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
	if c.handler != nil {
		c.handler(e)
	}
}

// Events returns a copy of every Event recorded so far.
func (c *Collector) Events() []Event {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Reset clears the collector for reuse across solve calls.
func (c *Collector) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
}
