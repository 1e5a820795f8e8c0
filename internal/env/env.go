// Package env implements the persistent, De Bruijn-indexed binding
// environment (component C3): three independent binding spaces — type,
// term, and proof — threaded through a single cons list, mirroring
// original_source/env.py's Env/TypeBinding/TermBinding/ProofBinding.
//
// The surface ast package keeps names on every binder for diagnostics;
// Env is what actually resolves a Var to a De Bruijn index and, on
// lookup, shifts whatever it returns so its free variables stay correct
// relative to the caller's (shallower) context. See shiftResult below
// and ast.ShiftFlavor for the precise rule.
package env

import (
	"fmt"

	"deduce/internal/ast"
)

// Env is an immutable persistent list of bindings, extended by consing a
// new cell onto the front; sharing the tail is what makes every
// declare/define method cheap and side-effect-free.
type Env struct {
	head *cell
}

type cell struct {
	name    string
	binding binding
	rest    *Env
}

// Empty is the environment with no bindings.
var Empty = Env{}

func (e Env) cons(name string, b binding) Env {
	return Env{head: &cell{name: name, binding: b, rest: &e}}
}

// binding is implemented by typeBinding, termBinding, and proofBinding.
type binding interface {
	flavor() ast.Flavor
}

type typeBinding struct {
	Defn ast.Term // nil: declared, not yet defined
}

func (typeBinding) flavor() ast.Flavor { return ast.FlavorType }

type termBinding struct {
	Typ  ast.Term
	Defn ast.Term // nil: declared, not yet defined
}

func (termBinding) flavor() ast.Flavor { return ast.FlavorTerm }

type proofBinding struct {
	Formula ast.Term
}

func (proofBinding) flavor() ast.Flavor { return ast.FlavorProof }

// DeclareType introduces an abstract (undefined) type variable.
func (e Env) DeclareType(name string) Env { return e.cons(name, typeBinding{}) }

// DeclareTypeVars introduces several abstract type variables, outermost
// first.
func (e Env) DeclareTypeVars(names []string) Env {
	for _, n := range names {
		e = e.DeclareType(n)
	}
	return e
}

// DefineType introduces a type alias bound to defn.
func (e Env) DefineType(name string, defn ast.Term) Env {
	return e.cons(name, typeBinding{Defn: defn})
}

// DeclareTermVar introduces a term variable with a known type but no
// value (a lambda or case parameter).
func (e Env) DeclareTermVar(name string, typ ast.Term) Env {
	return e.cons(name, termBinding{Typ: typ})
}

// TermVarPair is one (name, type) pair for DeclareTermVars.
type TermVarPair struct {
	Name string
	Type ast.Term
}

// DeclareTermVars introduces several term variables at once, outermost
// first.
func (e Env) DeclareTermVars(pairs []TermVarPair) Env {
	for _, p := range pairs {
		e = e.DeclareTermVar(p.Name, p.Type)
	}
	return e
}

// DefineTermVar introduces a top-level or let-bound term variable with
// both a type and a value.
func (e Env) DefineTermVar(name string, typ, val ast.Term) Env {
	return e.cons(name, termBinding{Typ: typ, Defn: val})
}

// DeclareProofVar introduces a named hypothesis.
func (e Env) DeclareProofVar(name string, formula ast.Term) Env {
	return e.cons(name, proofBinding{Formula: formula})
}

// TypeVarDefined reports whether v resolves to a type binding (defined or
// not) in e.
func (e Env) TypeVarDefined(name string) bool {
	_, ok := e.indexOf(name, ast.FlavorType)
	return ok
}

// TermVarDefined reports whether name resolves to a term binding in e.
func (e Env) TermVarDefined(name string) bool {
	_, ok := e.indexOf(name, ast.FlavorTerm)
	return ok
}

// ProofVarDefined reports whether name resolves to a proof binding in e.
func (e Env) ProofVarDefined(name string) bool {
	_, ok := e.indexOf(name, ast.FlavorProof)
	return ok
}

// indexOf finds the nearest binding of the given flavor named name and
// returns its De Bruijn index within that flavor's space, mirroring
// env.py's index_of_type_var/index_of_term_var/index_of_proof_var.
func (e Env) indexOf(name string, flavor ast.Flavor) (int, bool) {
	index := 0
	for c := e.head; c != nil; c = c.rest.head {
		if c.name == name && c.binding.flavor() == flavor {
			return index, true
		}
		if c.binding.flavor() == flavor {
			index++
		}
	}
	return 0, false
}

// ResolveVar fills in v.Index and v.Flavor by looking up v.Name in the
// given flavor's binding space. It returns an error if the name isn't
// bound in that space at all — candidate overload names are tried one at
// a time by the caller (internal/check), so a miss here is an ordinary
// control-flow outcome, not necessarily fatal.
func (e Env) ResolveVar(v *ast.Var, flavor ast.Flavor) error {
	index, ok := e.indexOf(v.Name, flavor)
	if !ok {
		return fmt.Errorf("env: %q is not bound as a %s variable", v.Name, flavor)
	}
	v.Index = index
	v.Flavor = flavor
	return nil
}

// lookup walks e from the front, decrementing index once per binding of
// targetFlavor, and accumulates shift counts per flavor for every
// binding walked past regardless of its own flavor — the generalized
// form of env.py's four lookup helpers (get_binding_of_type_var,
// get_binding_of_proof_var, _type_of_term_var, _value_of_term_var). It
// returns the matching cell and the accumulated shift counts to apply
// (by flavor) to whatever field of that cell's binding the caller reads.
func (e Env) lookup(name string, index int, targetFlavor ast.Flavor) (*cell, shiftCounts, error) {
	var counts shiftCounts
	c := e.head
	for c != nil {
		if c.binding.flavor() == targetFlavor {
			if index == 0 {
				break
			}
			index--
		}
		counts.add(c.binding.flavor())
		c = c.rest.head
	}
	if c == nil {
		return nil, counts, fmt.Errorf("env: De Bruijn index out of range looking up %q", name)
	}
	if c.name != name {
		return nil, counts, fmt.Errorf("env: index mismatch for %q, found %q", name, c.name)
	}
	return c, counts, nil
}

type shiftCounts struct {
	typeCount, termCount, proofCount int
}

func (s *shiftCounts) add(f ast.Flavor) {
	switch f {
	case ast.FlavorType:
		s.typeCount++
	case ast.FlavorTerm:
		s.termCount++
	case ast.FlavorProof:
		s.proofCount++
	}
}

// shiftResult applies the accumulated per-flavor shift to term, touching
// only the flavors the domain of term can actually contain: type-level
// terms carry no term- or proof-flavor free variables, so only their
// FlavorType component is ever shifted.
func shiftResult(term ast.Term, counts shiftCounts, carriesTermVars bool) ast.Term {
	if term == nil {
		return nil
	}
	if counts.typeCount != 0 {
		term = ast.ShiftFlavor(term, ast.FlavorType, 0, counts.typeCount)
	}
	if carriesTermVars && counts.termCount != 0 {
		term = ast.ShiftFlavor(term, ast.FlavorTerm, 0, counts.termCount)
	}
	return term
}

// GetBindingOfTypeVar resolves a resolved type Var to its (possibly nil,
// if only declared) definition.
func (e Env) GetBindingOfTypeVar(v *ast.Var) (ast.Term, error) {
	c, counts, err := e.lookup(v.Name, v.Index, ast.FlavorType)
	if err != nil {
		return nil, err
	}
	tb := c.binding.(typeBinding)
	return shiftResult(tb.Defn, counts, false), nil
}

// GetBindingOfProofVar resolves a resolved proof Var to the formula it
// names.
func (e Env) GetBindingOfProofVar(v *ast.Var) (ast.Term, error) {
	c, counts, err := e.lookup(v.Name, v.Index, ast.FlavorProof)
	if err != nil {
		return nil, err
	}
	pb := c.binding.(proofBinding)
	return shiftResult(pb.Formula, counts, true), nil
}

// GetTypeOfTermVar resolves a resolved term Var to its declared/checked
// type.
func (e Env) GetTypeOfTermVar(v *ast.Var) (ast.Term, error) {
	c, counts, err := e.lookup(v.Name, v.Index, ast.FlavorTerm)
	if err != nil {
		return nil, err
	}
	tb := c.binding.(termBinding)
	return shiftResult(tb.Typ, counts, false), nil
}

// GetValueOfTermVar resolves a resolved term Var to its bound value, or
// nil if it was only declared (a lambda parameter, not a let-binding).
func (e Env) GetValueOfTermVar(v *ast.Var) (ast.Term, error) {
	c, counts, err := e.lookup(v.Name, v.Index, ast.FlavorTerm)
	if err != nil {
		return nil, err
	}
	tb := c.binding.(termBinding)
	if tb.Defn == nil {
		return nil, nil
	}
	return shiftResult(tb.Defn, counts, true), nil
}

// Extend splices imported's bindings onto e, oldest first, so the result
// resolves every name imported bound while keeping e's own bindings as
// the (now more deeply nested) tail. Used by the driver to attach an
// already fully processed import's environment to a different module's
// base environment without re-running any of its declarations: since
// lookup walks by name and De Bruijn index is just "how many bindings of
// this flavor since here", re-consing the same bindings onto a new base
// reproduces the same name resolution with indices correct for the new
// context.
func (e Env) Extend(imported Env) Env {
	var cells []*cell
	for c := imported.head; c != nil; c = c.rest.head {
		cells = append(cells, c)
	}
	for i := len(cells) - 1; i >= 0; i-- {
		e = e.cons(cells[i].name, cells[i].binding)
	}
	return e
}

func (e Env) String() string {
	names := make([]string, 0)
	for c := e.head; c != nil; c = c.rest.head {
		names = append(names, fmt.Sprintf("%s:%s", c.name, c.binding.flavor()))
	}
	return fmt.Sprintf("env%v", names)
}
