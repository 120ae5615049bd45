package resolver

// Result reports the outcome of one Submit call. All three values are
// valid results, not errors.
type Result uint8

const (
	// NoMatch means all pending input resolved without any mapping
	// firing.
	NoMatch Result = iota

	// Done means all pending input resolved and at least one mapping
	// fired during the call.
	Done

	// Ambiguous means the pending prefix could still extend into a
	// longer mapping; the resolver is waiting for more input or for
	// the disambiguation timer.
	Ambiguous
)

// String returns a string representation of the result.
func (r Result) String() string {
	switch r {
	case NoMatch:
		return "nomatch"
	case Done:
		return "done"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}
