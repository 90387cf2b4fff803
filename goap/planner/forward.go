package planner

import (
	"time"

	"github.com/wbrown/goap-planner/goap"
	"github.com/wbrown/goap-planner/goap/trace"
)

// Options configures a solve call. A nil Collector disables tracing
// entirely — tracing is strictly observational and never changes
// search behavior.
type Options struct {
	Trace *trace.Collector
}

// SolveForward is the forward (state-space) search: depth-first over
// PlanFragments seeded with initial in both global statements,
// extending by Append, until GlobalCon validates goal or
// depth_limit/candidates are exhausted. A child whose GlobalCon is
// validated by any world already seen on the current path is skipped —
// without that pruning, action sets with cyclic effects would never
// terminate.
func SolveForward(initial, goal goap.WorldStatement, actions []*goap.Action, depthLimit int, opts Options) ([]*goap.Action, error) {
	// A nil plan from the search means "not found", so the empty-plan
	// case — the initial world already validates the goal — is handled
	// once, up front, the same way SolveBackward handles it.
	if initial.Validates(goal) {
		opts.Trace.Add(trace.Event{Method: trace.MethodForward, Outcome: trace.OutcomeGoalReached})
		return nil, nil
	}

	sorted := sortedActions(actions)
	start := Seeded(initial)

	fs := forwardSearch{goal: goal, actions: sorted, opts: opts}
	plan, outcome := fs.search(start, depthLimit, visitedSet{}.extended(initial), 0)
	if plan == nil {
		return nil, &NoPlanError{DepthLimit: depthLimit, LastReason: outcome}
	}
	return plan, nil
}

type forwardSearch struct {
	goal    goap.WorldStatement
	actions []*goap.Action
	opts    Options
}

// search returns (plan, "") on success or (nil, lastReason) after
// exhausting this branch. lastReason is best-effort context for the
// eventual NoPlanError, drawn from the last rejection or depth-limit
// event this branch produced; pruned children do not change it.
func (fs *forwardSearch) search(node PlanFragment, depthLeft int, visited visitedSet, step int) ([]*goap.Action, string) {
	if node.GlobalCon.Validates(fs.goal) {
		fs.emit(trace.Event{Step: step, Method: trace.MethodForward, Outcome: trace.OutcomeGoalReached})
		return node.Actions, ""
	}

	if depthLeft <= 0 {
		fs.emit(trace.Event{Step: step, Method: trace.MethodForward, Outcome: trace.OutcomeDepthLimited})
		return nil, "depth limit exhausted"
	}

	lastReason := "no applicable action found"
	any := false
	for _, a := range fs.actions {
		if !a.AllowedIn(node.GlobalCon, goap.Forward) {
			continue
		}
		any = true

		start := time.Now()
		child, err := node.Append(a, true)
		if err != nil {
			reason := err.Error()
			fs.emit(trace.Event{
				Step: step, Method: trace.MethodForward, Action: a.String(),
				Outcome: trace.OutcomeRejected, Reason: reason, Start: start, Latency: time.Since(start),
			})
			lastReason = reason
			continue
		}

		if visited.seenStronger(child.GlobalCon) {
			fs.emit(trace.Event{
				Step: step, Method: trace.MethodForward, Action: a.String(),
				Outcome: trace.OutcomePruned, Start: start, Latency: time.Since(start),
			})
			continue
		}

		fs.emit(trace.Event{
			Step: step, Method: trace.MethodForward, Action: a.String(),
			Outcome: trace.OutcomeAccepted, Fragment: child.GlobalCon.String(),
			Start: start, Latency: time.Since(start),
		})

		if plan, reason := fs.search(child, depthLeft-1, visited.extended(child.GlobalCon), step+1); plan != nil {
			return plan, ""
		} else if reason != "" {
			lastReason = reason
		}
	}

	if !any {
		return nil, "no action applicable from the current world"
	}
	return nil, lastReason
}

func (fs *forwardSearch) emit(e trace.Event) {
	fs.opts.Trace.Add(e)
}

// Enumerate runs forward search to completion, collecting every distinct
// plan found up to max (0 means unbounded) instead of stopping at the
// first. SolveForward/SolveBackward return the first plan, full stop;
// callers who want every plan within the depth bound call this
// instead.
func Enumerate(initial, goal goap.WorldStatement, actions []*goap.Action, depthLimit, max int, opts Options) [][]*goap.Action {
	sorted := sortedActions(actions)
	var plans [][]*goap.Action
	var walk func(node PlanFragment, depthLeft int, visited visitedSet)
	walk = func(node PlanFragment, depthLeft int, visited visitedSet) {
		if max > 0 && len(plans) >= max {
			return
		}
		if node.GlobalCon.Validates(goal) {
			plan := make([]*goap.Action, len(node.Actions))
			copy(plan, node.Actions)
			plans = append(plans, plan)
		}
		if depthLeft <= 0 {
			return
		}
		for _, a := range sorted {
			if max > 0 && len(plans) >= max {
				return
			}
			if !a.AllowedIn(node.GlobalCon, goap.Forward) {
				continue
			}
			child, err := node.Append(a, true)
			if err != nil {
				continue
			}
			if visited.seenStronger(child.GlobalCon) {
				continue
			}
			walk(child, depthLeft-1, visited.extended(child.GlobalCon))
		}
	}
	walk(Seeded(initial), depthLimit, visitedSet{}.extended(initial))
	return plans
}
