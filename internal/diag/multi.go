package diag

import "go.uber.org/multierr"

// Candidates accumulates one failure per attempted alternative during a
// search (overload resolution, generic-instantiation unification,
// formula_match) so that if every alternative fails, the caller can
// report all of them at once instead of only the last. Mirrors the
// Result/error-based search design recorded in DESIGN.md's Open
// Questions (spec §9: exception-as-control-flow is rejected).
type Candidates struct {
	err error
}

// Try records alt's outcome; ok reports whether it succeeded so the
// caller can stop the search early.
func (c *Candidates) Try(alt error) (ok bool) {
	if alt == nil {
		return true
	}
	c.err = multierr.Append(c.err, alt)
	return false
}

// Err returns the combined failure of every alternative that has failed
// so far; it is nil only if no alternative has failed. A successful Try
// does not clear earlier failures.
func (c *Candidates) Err() error { return c.err }

// Errors returns every attempted alternative's individual failure.
func (c *Candidates) Errors() []error { return multierr.Errors(c.err) }
