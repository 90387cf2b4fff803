package goap

import "sort"

// WorldKey identifies which entity-pair a partition of a WorldStatement
// scopes over. An empty EntityID in a slot means that slot is unset:
// Source-only key is (sid, ""), Target-only is ("", tid), Both-scoped
// is (sid, tid).
type WorldKey struct {
	Source EntityID
	Target EntityID
}

// SourceKey builds the key for a Source-usage partition.
func SourceKey(sid EntityID) WorldKey { return WorldKey{Source: sid} }

// TargetKey builds the key for a Target-usage partition.
func TargetKey(tid EntityID) WorldKey { return WorldKey{Target: tid} }

// BothKey builds the key for a Both-usage partition.
func BothKey(sid, tid EntityID) WorldKey { return WorldKey{Source: sid, Target: tid} }

func (k WorldKey) less(other WorldKey) bool {
	if k.Source != other.Source {
		return k.Source < other.Source
	}
	return k.Target < other.Target
}

// KeyFor returns the WorldKey a Literal belongs under, given the
// source/target entities of the Action contributing it.
func KeyFor(l Literal, sourceID EntityID, targetID *EntityID) (WorldKey, error) {
	switch l.Pred.Usage() {
	case Source:
		return SourceKey(sourceID), nil
	case Target:
		if targetID == nil {
			return WorldKey{}, ErrUsageMismatch
		}
		return TargetKey(*targetID), nil
	case Both:
		if targetID == nil {
			return WorldKey{}, ErrUsageMismatch
		}
		return BothKey(sourceID, *targetID), nil
	default:
		return WorldKey{}, ErrUsageMismatch
	}
}

// WorldStatement is an immutable mapping from WorldKey to Clause. Every
// Clause operation lifts to WorldStatement pointwise, keyed by the
// entity-pair tuple a Literal's Predicate usage scopes it to.
type WorldStatement struct {
	clauses map[WorldKey]Clause
}

// WorldEntry pairs a Clause with the key it should live under; used to
// seed a WorldStatement (an initial world or a goal) from the caller's
// own data rather than from an Action's normalization.
type WorldEntry struct {
	Key    WorldKey
	Clause Clause
}

// WorldOf builds a WorldStatement from explicit (key, clause) entries,
// merging clauses that share a key. It fails with ErrMergeConflict if
// two entries at the same key disagree on some predicate.
func WorldOf(entries ...WorldEntry) (WorldStatement, error) {
	byKey := make(map[WorldKey]Clause, len(entries))
	for _, e := range entries {
		existing, ok := byKey[e.Key]
		if !ok {
			byKey[e.Key] = e.Clause
			continue
		}
		merged, err := existing.Merge(e.Clause)
		if err != nil {
			return WorldStatement{}, err
		}
		byKey[e.Key] = merged
	}
	return WorldStatement{clauses: byKey}, nil
}

func (w WorldStatement) at(k WorldKey) Clause {
	if w.clauses == nil {
		return Clause{}
	}
	c, ok := w.clauses[k]
	if !ok {
		return Clause{}
	}
	return c
}

// Keys returns the statement's keys in deterministic order.
func (w WorldStatement) Keys() []WorldKey {
	out := make([]WorldKey, 0, len(w.clauses))
	for k := range w.clauses {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// At returns the Clause at a key, or the trivially-true clause if the
// key is absent.
func (w WorldStatement) At(k WorldKey) Clause { return w.at(k) }

// IsEmpty reports whether the statement has no non-trivial partitions.
func (w WorldStatement) IsEmpty() bool {
	for _, c := range w.clauses {
		if c.Len() > 0 {
			return false
		}
	}
	return true
}

func unionKeys(a, b WorldStatement) []WorldKey {
	seen := make(map[WorldKey]bool, len(a.clauses)+len(b.clauses))
	for k := range a.clauses {
		seen[k] = true
	}
	for k := range b.clauses {
		seen[k] = true
	}
	out := make([]WorldKey, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// Validates reports whether, for every key present in other, self's
// clause at that key validates other's clause at that key. Keys
// present only in self are ignored.
func (w WorldStatement) Validates(other WorldStatement) bool {
	for k, oc := range other.clauses {
		if !w.at(k).Validates(oc) {
			return false
		}
	}
	return true
}

// Falsifies reports whether some key's clause in self contradicts the
// clause at the same key in other.
func (w WorldStatement) Falsifies(other WorldStatement) bool {
	for _, k := range unionKeys(w, other) {
		if w.at(k).Falsifies(other.at(k)) {
			return true
		}
	}
	return false
}

// Merge is the safe, key-wise union: a key present on only one side is
// taken unchanged; a key present on both sides is merged with
// Clause.Merge, which fails with ErrMergeConflict on a predicate
// disagreement.
func (w WorldStatement) Merge(other WorldStatement) (WorldStatement, error) {
	out := make(map[WorldKey]Clause, len(w.clauses)+len(other.clauses))
	for k, c := range w.clauses {
		out[k] = c
	}
	for k, oc := range other.clauses {
		if existing, ok := out[k]; ok {
			merged, err := existing.Merge(oc)
			if err != nil {
				return WorldStatement{}, err
			}
			out[k] = merged
			continue
		}
		out[k] = oc
	}
	return WorldStatement{clauses: out}, nil
}

// ForceMerge is the biased, key-wise union: never fails. A key present
// on only one side is taken unchanged; a key present on both sides is
// combined with Clause.ForceMerge under the given winner.
func (w WorldStatement) ForceMerge(other WorldStatement, winner Winner) WorldStatement {
	out := make(map[WorldKey]Clause, len(w.clauses)+len(other.clauses))
	for k, c := range w.clauses {
		out[k] = c
	}
	for k, oc := range other.clauses {
		if existing, ok := out[k]; ok {
			out[k] = existing.ForceMerge(oc, winner)
			continue
		}
		out[k] = oc
	}
	return WorldStatement{clauses: out}
}

// RemoveIntersection removes, key by key, the literals self shares
// identically with other. Keys whose clause becomes empty are dropped
// entirely rather than kept as an explicit trivially-true entry.
func (w WorldStatement) RemoveIntersection(other WorldStatement) WorldStatement {
	out := make(map[WorldKey]Clause, len(w.clauses))
	for k, c := range w.clauses {
		remaining := c.RemoveIntersection(other.at(k))
		if remaining.Len() == 0 {
			continue
		}
		out[k] = remaining
	}
	return WorldStatement{clauses: out}
}

// ConflictingPredicates aggregates, across every shared key, the
// predicates bound to contradictory values in self and other. Used to
// build human-readable rejection reasons (see goap/trace).
func (w WorldStatement) ConflictingPredicates(other WorldStatement) []*Predicate {
	seen := make(map[string]*Predicate)
	for _, k := range unionKeys(w, other) {
		if _, preds := w.at(k).ConflictsWith(other.at(k)); len(preds) > 0 {
			for _, p := range preds {
				seen[p.FullName()] = p
			}
		}
	}
	out := make([]*Predicate, 0, len(seen))
	for _, p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out
}

// Equal reports whether two WorldStatements hold the same clauses at
// the same keys (ignoring keys mapped to the trivially-true clause on
// either side, which are equivalent to being absent).
func (w WorldStatement) Equal(other WorldStatement) bool {
	for _, k := range unionKeys(w, other) {
		if !w.at(k).Equal(other.at(k)) {
			return false
		}
	}
	return true
}

func (w WorldStatement) String() string {
	keys := w.Keys()
	if len(keys) == 0 {
		return "{}"
	}
	out := "{"
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += "(" + string(k.Source) + "," + string(k.Target) + "):" + w.clauses[k].String()
	}
	return out + "}"
}
