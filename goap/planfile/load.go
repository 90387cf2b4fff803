package planfile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wbrown/goap-planner/goap"
)

// ErrMalformedDocument is returned by Load and the Build* methods when a
// document's shape doesn't match §3.1's format, as opposed to a lex/parse
// error (which Parse reports on its own).
var ErrMalformedDocument = errors.New("planfile: malformed document")

// LiteralSpec is one [name, value] pair from a :pre, :con, or :literals
// list, not yet resolved against a predicate registry.
type LiteralSpec struct {
	Name  string
	Value bool
}

// PredicateSpec is one entry of a document's :predicates list.
type PredicateSpec struct {
	Name        string
	Usage       goap.Usage
	Description string
}

// ActionSpec is one entry of a document's :actions list. Target is nil
// for a source-only action.
type ActionSpec struct {
	Name   string
	Source string
	Target *string
	Pre    []LiteralSpec
	Con    []LiteralSpec
}

// WorldEntrySpec is one entry of a document's :world list.
type WorldEntrySpec struct {
	Usage    goap.Usage
	Source   string
	Target   string
	Literals []LiteralSpec
}

// Document is the parsed, not-yet-materialized contents of a
// `{:predicates [...] :actions [...] :world [...]}` planfile.
type Document struct {
	Predicates []PredicateSpec
	Actions    []ActionSpec
	World      []WorldEntrySpec
}

// Load reads and parses a planfile document from r.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("planfile: reading input: %w", err)
	}

	root, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("planfile: %w", err)
	}
	if root.Type != NodeMap {
		return nil, fmt.Errorf("%w: top-level value must be a map, got %s", ErrMalformedDocument, root)
	}

	doc := &Document{}
	for key, val := range mapEntries(*root) {
		switch key {
		case "predicates":
			doc.Predicates, err = readPredicates(val)
		case "actions":
			doc.Actions, err = readActions(val)
		case "world":
			doc.World, err = readWorld(val)
		default:
			err = fmt.Errorf("%w: unknown top-level key %q", ErrMalformedDocument, key)
		}
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// mapEntries walks a NodeMap's flat [k0 v0 k1 v1 ...] Nodes list,
// yielding each key's keyword text (without the leading colon) paired
// with its value Node.
func mapEntries(n Node) map[string]Node {
	out := make(map[string]Node, len(n.Nodes)/2)
	for i := 0; i+1 < len(n.Nodes); i += 2 {
		if kw, err := n.Nodes[i].AsKeyword(); err == nil {
			out[kw] = n.Nodes[i+1]
		}
	}
	return out
}

func readPredicates(list Node) ([]PredicateSpec, error) {
	if list.Type != NodeVector && list.Type != NodeList {
		return nil, fmt.Errorf("%w: :predicates must be a vector, got %s", ErrMalformedDocument, list)
	}
	specs := make([]PredicateSpec, 0, len(list.Nodes))
	for _, entry := range list.Nodes {
		if entry.Type != NodeMap {
			return nil, fmt.Errorf("%w: predicate entry must be a map, got %s", ErrMalformedDocument, entry)
		}
		fields := mapEntries(entry)

		name, err := requireString(fields, "name")
		if err != nil {
			return nil, err
		}
		usageKw, err := requireKeyword(fields, "usage")
		if err != nil {
			return nil, err
		}
		usage, err := parseUsage(usageKw)
		if err != nil {
			return nil, err
		}

		spec := PredicateSpec{Name: name, Usage: usage}
		if n, ok := fields["description"]; ok {
			if spec.Description, err = n.AsString(); err != nil {
				return nil, fmt.Errorf("%w: predicate %q: description: %v", ErrMalformedDocument, name, err)
			}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func readActions(list Node) ([]ActionSpec, error) {
	if list.Type != NodeVector && list.Type != NodeList {
		return nil, fmt.Errorf("%w: :actions must be a vector, got %s", ErrMalformedDocument, list)
	}
	specs := make([]ActionSpec, 0, len(list.Nodes))
	for _, entry := range list.Nodes {
		if entry.Type != NodeMap {
			return nil, fmt.Errorf("%w: action entry must be a map, got %s", ErrMalformedDocument, entry)
		}
		fields := mapEntries(entry)

		name, err := requireString(fields, "name")
		if err != nil {
			return nil, err
		}
		source, err := requireString(fields, "source")
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", name, err)
		}

		spec := ActionSpec{Name: name, Source: source}
		if n, ok := fields["target"]; ok && !n.IsNil() {
			target, err := n.AsString()
			if err != nil {
				return nil, fmt.Errorf("%w: action %q: target: %v", ErrMalformedDocument, name, err)
			}
			spec.Target = &target
		}
		if n, ok := fields["pre"]; ok {
			if spec.Pre, err = readLiterals(n); err != nil {
				return nil, fmt.Errorf("action %q: pre: %w", name, err)
			}
		}
		if n, ok := fields["con"]; ok {
			if spec.Con, err = readLiterals(n); err != nil {
				return nil, fmt.Errorf("action %q: con: %w", name, err)
			}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func readWorld(list Node) ([]WorldEntrySpec, error) {
	if list.Type != NodeVector && list.Type != NodeList {
		return nil, fmt.Errorf("%w: :world must be a vector, got %s", ErrMalformedDocument, list)
	}
	specs := make([]WorldEntrySpec, 0, len(list.Nodes))
	for _, entry := range list.Nodes {
		if entry.Type != NodeMap {
			return nil, fmt.Errorf("%w: world entry must be a map, got %s", ErrMalformedDocument, entry)
		}
		fields := mapEntries(entry)

		keyNode, ok := fields["key"]
		if !ok || (keyNode.Type != NodeVector && keyNode.Type != NodeList) {
			return nil, fmt.Errorf("%w: world entry missing :key vector", ErrMalformedDocument)
		}
		spec, err := readWorldKey(keyNode)
		if err != nil {
			return nil, err
		}

		litsNode, ok := fields["literals"]
		if !ok {
			return nil, fmt.Errorf("%w: world entry missing :literals", ErrMalformedDocument)
		}
		if spec.Literals, err = readLiterals(litsNode); err != nil {
			return nil, fmt.Errorf("world entry: literals: %w", err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// readWorldKey reads a :key vector of the form [:source "id"],
// [:target "id"], or [:both "src" "tgt"].
func readWorldKey(key Node) (WorldEntrySpec, error) {
	if len(key.Nodes) < 2 {
		return WorldEntrySpec{}, fmt.Errorf("%w: :key vector too short: %s", ErrMalformedDocument, key)
	}
	kw, err := key.Nodes[0].AsKeyword()
	if err != nil {
		return WorldEntrySpec{}, fmt.Errorf("%w: :key[0] must be a keyword: %v", ErrMalformedDocument, err)
	}

	switch kw {
	case "source":
		id, err := key.Nodes[1].AsString()
		if err != nil {
			return WorldEntrySpec{}, fmt.Errorf("%w: :key source id: %v", ErrMalformedDocument, err)
		}
		return WorldEntrySpec{Usage: goap.Source, Source: id}, nil
	case "target":
		id, err := key.Nodes[1].AsString()
		if err != nil {
			return WorldEntrySpec{}, fmt.Errorf("%w: :key target id: %v", ErrMalformedDocument, err)
		}
		return WorldEntrySpec{Usage: goap.Target, Target: id}, nil
	case "both":
		if len(key.Nodes) < 3 {
			return WorldEntrySpec{}, fmt.Errorf("%w: :both key needs source and target ids", ErrMalformedDocument)
		}
		src, err := key.Nodes[1].AsString()
		if err != nil {
			return WorldEntrySpec{}, fmt.Errorf("%w: :key source id: %v", ErrMalformedDocument, err)
		}
		tgt, err := key.Nodes[2].AsString()
		if err != nil {
			return WorldEntrySpec{}, fmt.Errorf("%w: :key target id: %v", ErrMalformedDocument, err)
		}
		return WorldEntrySpec{Usage: goap.Both, Source: src, Target: tgt}, nil
	default:
		return WorldEntrySpec{}, fmt.Errorf("%w: unknown key usage %q", ErrMalformedDocument, kw)
	}
}

// readLiterals reads a [["Name" true] ["Other" false]] vector.
func readLiterals(list Node) ([]LiteralSpec, error) {
	if list.Type != NodeVector && list.Type != NodeList {
		return nil, fmt.Errorf("%w: literal list must be a vector, got %s", ErrMalformedDocument, list)
	}
	out := make([]LiteralSpec, 0, len(list.Nodes))
	for _, pair := range list.Nodes {
		if (pair.Type != NodeVector && pair.Type != NodeList) || len(pair.Nodes) != 2 {
			return nil, fmt.Errorf("%w: literal entry must be a 2-element pair, got %s", ErrMalformedDocument, pair)
		}
		name, err := pair.Nodes[0].AsString()
		if err != nil {
			return nil, fmt.Errorf("%w: literal name: %v", ErrMalformedDocument, err)
		}
		value, err := pair.Nodes[1].AsBool()
		if err != nil {
			return nil, fmt.Errorf("%w: literal value: %v", ErrMalformedDocument, err)
		}
		out = append(out, LiteralSpec{Name: name, Value: value})
	}
	return out, nil
}

func parseUsage(kw string) (goap.Usage, error) {
	switch strings.ToLower(kw) {
	case "source":
		return goap.Source, nil
	case "target":
		return goap.Target, nil
	case "both":
		return goap.Both, nil
	default:
		return 0, fmt.Errorf("%w: unknown usage %q", ErrMalformedDocument, kw)
	}
}

func requireString(fields map[string]Node, key string) (string, error) {
	n, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMalformedDocument, key)
	}
	s, err := n.AsString()
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrMalformedDocument, key, err)
	}
	return s, nil
}

func requireKeyword(fields map[string]Node, key string) (string, error) {
	n, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMalformedDocument, key)
	}
	kw, err := n.AsKeyword()
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrMalformedDocument, key, err)
	}
	return kw, nil
}

// BuildPredicates registers every predicate this document declares into
// r, returning a lookup table keyed by the document's bare Name (not
// FullName) for BuildActions/BuildWorld to resolve literals against.
func (d *Document) BuildPredicates(r *goap.Registry) (map[string]*goap.Predicate, error) {
	out := make(map[string]*goap.Predicate, len(d.Predicates))
	for _, spec := range d.Predicates {
		p, err := r.BuildPredicate(goap.PredicateSpec{
			BaseName:    spec.Name,
			Usage:       spec.Usage,
			Description: spec.Description,
		}, nil)
		if err != nil {
			return nil, fmt.Errorf("planfile: predicate %q: %w", spec.Name, err)
		}
		out[spec.Name] = p
	}
	return out, nil
}

// BuildActions resolves every action this document declares into
// *goap.Action values, looking up each literal's predicate in preds
// (the table BuildPredicates returned).
func (d *Document) BuildActions(preds map[string]*goap.Predicate) ([]*goap.Action, error) {
	actions := make([]*goap.Action, 0, len(d.Actions))
	for _, spec := range d.Actions {
		pre, err := resolveLiterals(preds, spec.Pre)
		if err != nil {
			return nil, fmt.Errorf("planfile: action %q: pre: %w", spec.Name, err)
		}
		con, err := resolveLiterals(preds, spec.Con)
		if err != nil {
			return nil, fmt.Errorf("planfile: action %q: con: %w", spec.Name, err)
		}

		var target *goap.EntityID
		if spec.Target != nil {
			t := goap.EntityID(*spec.Target)
			target = &t
		}

		action, err := goap.NewAction(spec.Name, goap.EntityID(spec.Source), target, pre, con)
		if err != nil {
			return nil, fmt.Errorf("planfile: %w", err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// BuildWorld resolves this document's :world entries into a single
// seed WorldStatement.
func (d *Document) BuildWorld(preds map[string]*goap.Predicate) (goap.WorldStatement, error) {
	entries := make([]goap.WorldEntry, 0, len(d.World))
	for _, spec := range d.World {
		lits, err := resolveLiterals(preds, spec.Literals)
		if err != nil {
			return goap.WorldStatement{}, fmt.Errorf("planfile: world entry: %w", err)
		}
		clause, err := goap.ClauseOf(lits...)
		if err != nil {
			return goap.WorldStatement{}, fmt.Errorf("planfile: world entry: %w", err)
		}

		var key goap.WorldKey
		switch spec.Usage {
		case goap.Source:
			key = goap.SourceKey(goap.EntityID(spec.Source))
		case goap.Target:
			key = goap.TargetKey(goap.EntityID(spec.Target))
		case goap.Both:
			key = goap.BothKey(goap.EntityID(spec.Source), goap.EntityID(spec.Target))
		}
		entries = append(entries, goap.WorldEntry{Key: key, Clause: clause})
	}
	return goap.WorldOf(entries...)
}

func resolveLiterals(preds map[string]*goap.Predicate, specs []LiteralSpec) ([]goap.Literal, error) {
	out := make([]goap.Literal, 0, len(specs))
	for _, s := range specs {
		p, ok := preds[s.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", goap.ErrUnknownPredicate, s.Name)
		}
		out = append(out, goap.NewLiteral(p, s.Value))
	}
	return out, nil
}
