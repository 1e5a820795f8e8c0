package ast

// Pattern is implemented by the two pattern forms a switch/induction/RecFun
// case can match: a union constructor application or a boolean literal.
type Pattern interface {
	Node
	isPattern()
}

type patternBase struct{ base }

// PatternCons matches a union constructor, binding Params to its fields.
type PatternCons struct {
	patternBase
	Constructor string
	Params      []string
}

func (*PatternCons) isPattern() {}
func (*PatternCons) Kind() Kind { return KindPatternCons }

// PatternBool matches a boolean literal.
type PatternBool struct {
	patternBase
	Value bool
}

func (*PatternBool) isPattern() {}
func (*PatternBool) Kind() Kind { return KindPatternBool }

// PatternTerm reconstructs the term a pattern denotes (e.g. for instantiating
// an induction hypothesis's goal at `C(params)`), mirroring
// proof_checker.py's pattern_to_term.
func PatternTerm(pos Position, p Pattern) Term {
	switch pat := p.(type) {
	case *PatternCons:
		if len(pat.Params) == 0 {
			return NewVar(pos, pat.Constructor, pat.Constructor)
		}
		args := make([]Term, len(pat.Params))
		for i, name := range pat.Params {
			args[i] = NewVar(pos, name, name)
		}
		return &Call{termBase: termBase{base: base{At: pos}}, Rator: NewVar(pos, pat.Constructor, pat.Constructor), Args: args}
	case *PatternBool:
		return &Bool{termBase: termBase{base: base{At: pos}}, Value: pat.Value}
	default:
		panic("ast: unknown pattern variant")
	}
}
