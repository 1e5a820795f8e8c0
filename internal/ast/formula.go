package ast

// Formula is Term restricted, by convention, to nodes whose Typeof() is
// BoolType — the type system never distinguishes them at the Go type
// level (spec §3: formulas reuse the term sum), so this alias exists only
// to make checker/proof-checker signatures self-documenting.
type Formula = Term

// And is n-ary logical conjunction.
type And struct {
	termBase
	Args []Term
}

func (*And) isTerm()    {}
func (*And) Kind() Kind { return KindAnd }

// Or is n-ary logical disjunction.
type Or struct {
	termBase
	Args []Term
}

func (*Or) isTerm()    {}
func (*Or) Kind() Kind { return KindOr }

// IfThen is logical implication, Premise ⇒ Conclusion.
type IfThen struct {
	termBase
	Premise    Term
	Conclusion Term
}

func (*IfThen) isTerm()    {}
func (*IfThen) Kind() Kind { return KindIfThen }

// QuantVar is a quantified variable with its type. Several quantified
// variables are represented by nesting All nodes, one variable each.
type QuantVar struct {
	Name string
	Type Term
}

// All is universal quantification, binding one variable (term- or
// type-sorted, per Var.Type == TypeType{}) over Body.
type All struct {
	termBase
	Var  QuantVar
	Body Term
}

func (*All) isTerm()    {}
func (*All) Kind() Kind { return KindAll }

// Some is existential quantification over one or more variables.
type Some struct {
	termBase
	Vars []QuantVar
	Body Term
}

func (*Some) isTerm()    {}
func (*Some) Kind() Kind { return KindSome }
