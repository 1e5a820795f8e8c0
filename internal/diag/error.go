package diag

import "deduce/internal/ast"

// Suggestion is a proposed fix attached to an Error.
type Suggestion struct {
	Message     string
	Replacement string
}

// Error is the structured diagnostic every checker stage returns instead
// of panicking (spec §9: candidate search and hard failures alike funnel
// through this one type). It implements error so it composes with
// go.uber.org/multierr for compound diagnostics.
type Error struct {
	Kind        Kind
	Message     string
	Position    ast.Position
	Length      int
	Notes       []string
	Suggestions []Suggestion
	HelpText    string

	// IsIncomplete marks a PHole/PSorry diagnostic: recorded and
	// surfaced, but never turns CheckModule's overall result into a
	// failure the way a genuine proof error does.
	IsIncomplete bool
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Code()
	}
	return e.Kind.Code() + ": " + e.Message
}

func (e *Error) Level() Level { return e.Kind.level() }

// New builds an Error of the given kind at pos with message.
func New(kind Kind, pos ast.Position, message string) *Error {
	return &Error{Kind: kind, Message: message, Position: pos, Length: 1}
}

func (e *Error) WithNote(note string) *Error {
	e.Notes = append(e.Notes, note)
	return e
}

func (e *Error) WithHelp(help string) *Error {
	e.HelpText = help
	return e
}

func (e *Error) WithSuggestion(s Suggestion) *Error {
	e.Suggestions = append(e.Suggestions, s)
	return e
}
