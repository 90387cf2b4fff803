package planner

import (
	"time"

	"github.com/wbrown/goap-planner/goap"
	"github.com/wbrown/goap-planner/goap/trace"
)

// SolveBackward is the backward (regression) search: depth-first over
// PlanFragments seeded with GlobalCon = GlobalPre = goal, extending by
// Prepend, until start validates GlobalPre (with a non-empty sequence)
// or depth_limit/candidates are exhausted. The candidate test is
// "not action.con.falsifies(node.global_pre)" — an action whose
// consequences contradict what the regressed state still demands can
// never justify it. This is a falsification test, not a validation
// test: an action need not produce a demanded literal to be worth
// trying, it only must not contradict one.
func SolveBackward(start, goal goap.WorldStatement, actions []*goap.Action, depthLimit int, opts Options) ([]*goap.Action, error) {
	// The per-node success check requires a non-empty sequence, so the
	// trivially-already-satisfied case is handled once, up front,
	// rather than at every node.
	if start.Validates(goal) {
		opts.Trace.Add(trace.Event{Method: trace.MethodBackward, Outcome: trace.OutcomeGoalReached})
		return nil, nil
	}

	sorted := sortedActions(actions)
	seed := Seeded(goal)

	bs := backwardSearch{start: start, actions: sorted, opts: opts}
	plan, outcome := bs.search(seed, depthLimit, visitedSet{}.extended(goal), 0)
	if plan == nil {
		return nil, &NoPlanError{DepthLimit: depthLimit, LastReason: outcome}
	}
	return plan, nil
}

type backwardSearch struct {
	start   goap.WorldStatement
	actions []*goap.Action
	opts    Options
}

func (bs *backwardSearch) search(node PlanFragment, depthLeft int, visited visitedSet, step int) ([]*goap.Action, string) {
	if len(node.Actions) > 0 && bs.start.Validates(node.GlobalPre) {
		bs.emit(trace.Event{Step: step, Method: trace.MethodBackward, Outcome: trace.OutcomeGoalReached})
		return node.Actions, ""
	}

	if depthLeft <= 0 {
		bs.emit(trace.Event{Step: step, Method: trace.MethodBackward, Outcome: trace.OutcomeDepthLimited})
		return nil, "depth limit exhausted"
	}

	lastReason := "no applicable action found"
	any := false
	for _, a := range bs.actions {
		if !a.AllowedIn(node.GlobalPre, goap.Backward) {
			continue
		}
		any = true

		startTime := time.Now()
		child, err := node.Prepend(a, false)
		if err != nil {
			reason := err.Error()
			bs.emit(trace.Event{
				Step: step, Method: trace.MethodBackward, Action: a.String(),
				Outcome: trace.OutcomeRejected, Reason: reason, Start: startTime, Latency: time.Since(startTime),
			})
			lastReason = reason
			continue
		}

		if visited.seenStronger(child.GlobalPre) {
			bs.emit(trace.Event{
				Step: step, Method: trace.MethodBackward, Action: a.String(),
				Outcome: trace.OutcomePruned, Start: startTime, Latency: time.Since(startTime),
			})
			continue
		}

		bs.emit(trace.Event{
			Step: step, Method: trace.MethodBackward, Action: a.String(),
			Outcome: trace.OutcomeAccepted, Fragment: child.GlobalPre.String(),
			Start: startTime, Latency: time.Since(startTime),
		})

		if plan, reason := bs.search(child, depthLeft-1, visited.extended(child.GlobalPre), step+1); plan != nil {
			return plan, ""
		} else if reason != "" {
			lastReason = reason
		}
	}

	if !any {
		return nil, "no action's consequences justify the current regressed world"
	}
	return nil, lastReason
}

func (bs *backwardSearch) emit(e trace.Event) {
	bs.opts.Trace.Add(e)
}
