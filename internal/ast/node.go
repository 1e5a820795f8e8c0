// Package ast defines the tagged term/type/formula/proof/pattern/statement
// model the checker operates on (component C1) together with the
// substitution and De Bruijn shifting operations that act on it (C2).
//
// Every node is produced once by a (not-implemented-here) parser and is
// thereafter immutable except for two in-place rewrites the checker
// performs: overload resolution narrows a Var's ResolvedNames to one entry,
// and type checking fills in a node's Typeof field. No other mutation
// happens after a node is built.
package ast

// Position is the opaque source-location token nodes carry. Its internal
// shape is out of scope for this checker (non-goal: source-location
// machinery beyond opaque tokens); lookup and reduction never inspect it.
type Position struct {
	Filename string
	Line     int
	Column   int
}

// Node is implemented by every term, type, formula, proof, pattern, and
// statement node.
type Node interface {
	Pos() Position
	Kind() Kind
}

// base is embedded by every node to carry its source position.
type base struct {
	At Position
}

func (b base) Pos() Position { return b.At }
