package planner

import "github.com/wbrown/goap-planner/goap/trace"

func newTestCollector(count *int) *trace.Collector {
	return trace.NewCollector(func(trace.Event) { *count++ })
}
