// Package diag holds the diagnostic vocabulary every other component
// reports through: a Kind/Code table (spec §7), a structured Error type,
// and a Rust-style renderer. Grounded on kanso's
// internal/errors/{codes,reporter}.go.
package diag

// Kind classifies a diagnostic independent of its rendered message.
type Kind int

const (
	UndefinedName Kind = iota
	TypeMismatch
	ArityMismatch
	OverloadNoMatch
	OverloadAmbiguous
	PatternNonExhaustive
	PatternBadConstructor
	EntailmentFailure
	RewriteNoMatch
	DefinitionNoMatch
	RecursionNotStructural
	AssertionFailed
	IncompleteProof // warning-shaped: a PHole
	UnfinishedProof // warning-shaped: a PSorry
)

// Code is this Kind's stable E####/W#### identifier.
func (k Kind) Code() string {
	if c, ok := codes[k]; ok {
		return c
	}
	return "E0000"
}

var codes = map[Kind]string{
	UndefinedName:          "E0001",
	TypeMismatch:           "E0002",
	ArityMismatch:          "E0003",
	OverloadNoMatch:        "E0004",
	OverloadAmbiguous:      "E0005",
	PatternNonExhaustive:   "E0006",
	PatternBadConstructor:  "E0007",
	EntailmentFailure:      "E0008",
	RewriteNoMatch:         "E0009",
	DefinitionNoMatch:      "E0010",
	RecursionNotStructural: "E0011",
	AssertionFailed:        "E0012",
	IncompleteProof:        "W0001",
	UnfinishedProof:        "W0002",
}

// Level is a diagnostic's severity.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

func (k Kind) level() Level {
	if k == IncompleteProof || k == UnfinishedProof {
		return LevelWarning
	}
	return LevelError
}
