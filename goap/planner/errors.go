package planner

import (
	"fmt"

	"github.com/wbrown/goap-planner/goap"
)

// NoPlanError is the terminal outcome of a solve call that exhausted its
// search without reaching the goal. It wraps goap.ErrNoPlan so callers
// can still `errors.Is(err, goap.ErrNoPlan)`, and carries the depth at
// which search terminated plus a short reason drawn from the last
// rejection seen along the search.
type NoPlanError struct {
	DepthLimit  int
	LastReason  string
	StepsTraced int
}

func (e *NoPlanError) Error() string {
	if e.LastReason == "" {
		return fmt.Sprintf("goap: no plan found within depth %d", e.DepthLimit)
	}
	return fmt.Sprintf("goap: no plan found within depth %d: %s", e.DepthLimit, e.LastReason)
}

func (e *NoPlanError) Unwrap() error { return goap.ErrNoPlan }
