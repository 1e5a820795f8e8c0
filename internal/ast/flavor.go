package ast

// Flavor identifies which of the environment's three binding spaces a
// resolved Var's Index is drawn from (component C3 keeps type, term, and
// proof bindings in separate De Bruijn spaces within one persistent list;
// see env.Env). A Var's Flavor is set by whichever checker rule resolved
// its name, at the same time as its Index.
type Flavor int

const (
	// FlavorNone marks a Var not yet resolved against any binding space.
	FlavorNone Flavor = iota
	FlavorType
	FlavorTerm
	FlavorProof
)

func (f Flavor) String() string {
	switch f {
	case FlavorType:
		return "type"
	case FlavorTerm:
		return "term"
	case FlavorProof:
		return "proof"
	default:
		return "none"
	}
}
