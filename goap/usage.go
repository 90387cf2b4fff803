package goap

// Usage tags the positional role a Predicate reads: the entity it was
// evaluated against as the "source" of an Action, the "target", or
// both. It determines which partition of a WorldStatement a Literal
// built from the predicate is filed under.
type Usage uint8

const (
	Source Usage = iota
	Target
	Both
)

// String returns the lowercase usage name, also used as the suffix of
// a Predicate's FullName.
func (u Usage) String() string {
	switch u {
	case Source:
		return "source"
	case Target:
		return "target"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}
