package ast

import (
	"fmt"
	"strings"
)

// String renders term in the surface syntax it would have come from,
// used by internal/diag to show goals and mismatched subterms in
// diagnostics.
func (v *Var) String() string { return v.Name }

func (n *Int) String() string  { return fmt.Sprintf("%d", n.Value) }
func (b *Bool) String() string { return fmt.Sprintf("%t", b.Value) }

func (l *Lambda) String() string {
	return fmt.Sprintf("fn(%s) => %s", joinParams(l.Params), l.Body)
}

func (g *Generic) String() string {
	return fmt.Sprintf("<%s>%s", strings.Join(g.TypeParams, ", "), g.Body)
}

func (c *Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Rator, joinTerms(c.Args))
}

func (ti *TermInst) String() string {
	return fmt.Sprintf("%s<%s>", ti.Subject, joinTerms(ti.TypeArgs))
}

func (c *Conditional) String() string {
	return fmt.Sprintf("if %s then %s else %s", c.Cond, c.Then, c.Else)
}

func (l *TLet) String() string {
	return fmt.Sprintf("let %s = %s in %s", l.Name, l.Rhs, l.Body)
}

func (s *Switch) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "switch %s { ", s.Subject)
	for _, c := range s.Cases {
		fmt.Fprintf(&b, "%s => %s; ", c.Pattern, c.Body)
	}
	b.WriteString("}")
	return b.String()
}

func (a *MakeArray) String() string { return fmt.Sprintf("[%s]", joinTerms(a.Elems)) }
func (a *ArrayGet) String() string  { return fmt.Sprintf("%s[%s]", a.Array, a.Index) }
func (*Hole) String() string        { return "?" }
func (*Omitted) String() string     { return "_" }
func (m *Mark) String() string      { return fmt.Sprintf("[%s]", m.Subject) }

func (f *RecFun) String() string { return f.Name }

func (*IntType) String() string  { return "Int" }
func (*BoolType) String() string { return "Bool" }
func (*TypeType) String() string { return "Type" }

func (f *FunctionType) String() string {
	return fmt.Sprintf("fn(%s) -> %s", joinTerms(f.Params), f.Return)
}

func (t *TypeInst) String() string {
	return fmt.Sprintf("%s<%s>", t.Head, joinTerms(t.Args))
}

func (g *GenericUnknownInst) String() string { return g.Head.String() }
func (a *ArrayType) String() string          { return fmt.Sprintf("[%s]", a.Elem) }

func (o *OverloadType) String() string {
	names := make([]string, len(o.Overloads))
	for i, c := range o.Overloads {
		names[i] = c.Name
	}
	return fmt.Sprintf("overload{%s}", strings.Join(names, ", "))
}

func (a *And) String() string { return fmt.Sprintf("(%s)", strings.Join(termStrings(a.Args), " and ")) }
func (o *Or) String() string  { return fmt.Sprintf("(%s)", strings.Join(termStrings(o.Args), " or ")) }

func (i *IfThen) String() string {
	return fmt.Sprintf("(%s implies %s)", i.Premise, i.Conclusion)
}

func (a *All) String() string {
	return fmt.Sprintf("all %s:%s. %s", a.Var.Name, a.Var.Type, a.Body)
}

func (s *Some) String() string {
	names := make([]string, len(s.Vars))
	for i, v := range s.Vars {
		names[i] = fmt.Sprintf("%s:%s", v.Name, v.Type)
	}
	return fmt.Sprintf("some %s. %s", strings.Join(names, ", "), s.Body)
}

func (p *PatternCons) String() string {
	if len(p.Params) == 0 {
		return p.Constructor
	}
	return fmt.Sprintf("%s(%s)", p.Constructor, strings.Join(p.Params, ", "))
}

func (p *PatternBool) String() string { return fmt.Sprintf("%t", p.Value) }

func joinParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Type != nil {
			parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
		} else {
			parts[i] = p.Name
		}
	}
	return strings.Join(parts, ", ")
}

func joinTerms(terms []Term) string { return strings.Join(termStrings(terms), ", ") }

func termStrings(terms []Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = fmt.Sprintf("%s", t)
	}
	return out
}
