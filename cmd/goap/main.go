package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/wbrown/goap-planner/goap"
	"github.com/wbrown/goap-planner/goap/planfile"
	"github.com/wbrown/goap-planner/goap/planner"
	"github.com/wbrown/goap-planner/goap/trace"
)

// Exit codes: 0 = plan found, 1 = no plan within depth, 2 = malformed
// input.
const (
	exitOK       = 0
	exitNoPlan   = 1
	exitBadInput = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] != "plan" {
		usage()
		return exitBadInput
	}

	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	var (
		mode       string
		schemaPath string
		actionsPath string
		initialPath string
		goalPath   string
		depth      int
		enableTrace bool
		noColor    bool
	)
	fs.StringVar(&mode, "mode", "forward", "search direction: forward or backward")
	fs.StringVar(&schemaPath, "schema", "", "predicate schema planfile")
	fs.StringVar(&actionsPath, "actions", "", "action library planfile")
	fs.StringVar(&initialPath, "initial", "", "initial world planfile")
	fs.StringVar(&goalPath, "goal", "", "goal world planfile")
	fs.IntVar(&depth, "depth", 10, "maximum search depth")
	fs.BoolVar(&enableTrace, "trace", false, "stream search events to stderr")
	fs.BoolVar(&noColor, "no-color", false, "disable colorized trace output")
	fs.Usage = usage

	if err := fs.Parse(args[1:]); err != nil {
		return exitBadInput
	}

	if schemaPath == "" || actionsPath == "" || initialPath == "" || goalPath == "" {
		fmt.Fprintln(os.Stderr, "goap plan: --schema, --actions, --initial, and --goal are all required")
		usage()
		return exitBadInput
	}

	plan, err := solve(mode, schemaPath, actionsPath, initialPath, goalPath, depth, enableTrace, noColor)
	switch {
	case err == nil:
		printPlan(os.Stdout, plan)
		return exitOK
	case isMalformedInput(err):
		fmt.Fprintf(os.Stderr, "goap plan: %v\n", err)
		return exitBadInput
	default:
		var noPlanErr *planner.NoPlanError
		if errors.As(err, &noPlanErr) {
			fmt.Fprintf(os.Stderr, "goap plan: no plan found (depth limit %d): %s\n", noPlanErr.DepthLimit, noPlanErr.LastReason)
		} else {
			fmt.Fprintf(os.Stderr, "goap plan: %v\n", err)
		}
		return exitNoPlan
	}
}

func isMalformedInput(err error) bool {
	return errors.Is(err, planfile.ErrMalformedDocument) || errors.Is(err, goap.ErrUnknownPredicate) ||
		errors.Is(err, os.ErrNotExist)
}

func solve(mode, schemaPath, actionsPath, initialPath, goalPath string, depth int, enableTrace, noColor bool) ([]*goap.Action, error) {
	r := goap.NewRegistry()

	preds, err := loadPredicates(schemaPath, r)
	if err != nil {
		return nil, fmt.Errorf("loading schema %s: %w", schemaPath, err)
	}

	actionsDoc, err := loadDocument(actionsPath)
	if err != nil {
		return nil, fmt.Errorf("loading actions %s: %w", actionsPath, err)
	}
	if len(actionsDoc.Predicates) > 0 {
		more, err := actionsDoc.BuildPredicates(r)
		if err != nil {
			return nil, fmt.Errorf("loading actions %s: %w", actionsPath, err)
		}
		for name, p := range more {
			preds[name] = p
		}
	}
	actions, err := actionsDoc.BuildActions(preds)
	if err != nil {
		return nil, fmt.Errorf("building actions from %s: %w", actionsPath, err)
	}

	initial, err := loadWorld(initialPath, preds)
	if err != nil {
		return nil, fmt.Errorf("loading initial world %s: %w", initialPath, err)
	}
	goal, err := loadWorld(goalPath, preds)
	if err != nil {
		return nil, fmt.Errorf("loading goal world %s: %w", goalPath, err)
	}

	var opts planner.Options
	if enableTrace {
		if noColor {
			color.NoColor = true
		}
		formatter := trace.NewOutputFormatter(os.Stderr)
		opts.Trace = trace.NewCollector(formatter.Handle)
	}

	if mode == "backward" {
		return planner.SolveBackward(initial, goal, actions, depth, opts)
	}
	return planner.SolveForward(initial, goal, actions, depth, opts)
}

func loadDocument(path string) (*planfile.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return planfile.Load(f)
}

func loadPredicates(path string, r *goap.Registry) (map[string]*goap.Predicate, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.BuildPredicates(r)
}

func loadWorld(path string, preds map[string]*goap.Predicate) (goap.WorldStatement, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return goap.WorldStatement{}, err
	}
	return doc.BuildWorld(preds)
}

// printPlan renders a found plan as a step table (index, action, source,
// target) followed by a pre -> con summary per step.
func printPlan(w *os.File, plan []*goap.Action) {
	if len(plan) == 0 {
		fmt.Fprintln(w, "plan found: goal already satisfied, no actions needed")
		return
	}

	table := tablewriter.NewTable(w)
	table.Header([]string{"#", "action", "source", "target"})
	for i, a := range plan {
		target := ""
		if a.TargetID != nil {
			target = string(*a.TargetID)
		}
		table.Append([]string{fmt.Sprintf("%d", i+1), a.Name, string(a.SourceID), target})
	}
	table.Render()

	fmt.Fprintln(w)
	for i, a := range plan {
		fmt.Fprintf(w, "%d. %s: %s -> %s\n", i+1, a.Name, a.Pre.String(), a.Con.String())
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s plan [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Finds a plan of goap.Action values carrying an initial world to a goal world.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	fmt.Fprintf(os.Stderr, "  --mode forward|backward   search direction (default forward)\n")
	fmt.Fprintf(os.Stderr, "  --schema FILE             predicate schema planfile\n")
	fmt.Fprintf(os.Stderr, "  --actions FILE            action library planfile\n")
	fmt.Fprintf(os.Stderr, "  --initial FILE            initial world planfile\n")
	fmt.Fprintf(os.Stderr, "  --goal FILE               goal world planfile\n")
	fmt.Fprintf(os.Stderr, "  --depth N                 maximum search depth (default 10)\n")
	fmt.Fprintf(os.Stderr, "  --trace                   stream search events to stderr\n")
	fmt.Fprintf(os.Stderr, "  --no-color                disable colorized trace output\n\n")
	fmt.Fprintf(os.Stderr, "Example:\n")
	fmt.Fprintf(os.Stderr, "  %s plan --schema schema.edn --actions actions.edn \\\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "      --initial initial.edn --goal goal.edn --depth 8 --trace\n")
}

