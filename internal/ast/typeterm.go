package ast

// Type variants share the Term sum (spec §3: "Types share the sum"). A
// Var with Typeof() == TypeType{} is a type variable reference; the
// concrete type constructors below are the rest of the type-level
// vocabulary.

// IntType is the type of Int literals.
type IntType struct{ termBase }

func (*IntType) isTerm()    {}
func (*IntType) Kind() Kind { return KindIntType }

// BoolType is the type of Bool literals and of every formula.
type BoolType struct{ termBase }

func (*BoolType) isTerm()    {}
func (*BoolType) Kind() Kind { return KindBoolType }

// TypeType classifies type-level variables (used as the "type of a type
// parameter" when a quantifier ranges over types rather than terms).
type TypeType struct{ termBase }

func (*TypeType) isTerm()    {}
func (*TypeType) Kind() Kind { return KindTypeType }

// FunctionType is the type of Lambda/RecFun/constructor terms.
type FunctionType struct {
	termBase
	TypeParams []string
	Params     []Term
	Return     Term
}

func (*FunctionType) isTerm()    {}
func (*FunctionType) Kind() Kind { return KindFunctionType }

// TypeInst applies a type constructor (a union's name) to type arguments,
// e.g. List<Nat>.
type TypeInst struct {
	termBase
	Head Term
	Args []Term
}

func (*TypeInst) isTerm()    {}
func (*TypeInst) Kind() Kind { return KindTypeInst }

// GenericUnknownInst is the type of a generic constructor mentioned without
// its type arguments yet applied (e.g. naming `empty` before `empty<Nat>`).
type GenericUnknownInst struct {
	termBase
	Head Term
}

func (*GenericUnknownInst) isTerm()    {}
func (*GenericUnknownInst) Kind() Kind { return KindGenericUnknownInst }

// ArrayType is the type of MakeArray terms.
type ArrayType struct {
	termBase
	Elem Term
}

func (*ArrayType) isTerm()    {}
func (*ArrayType) Kind() Kind { return KindArrayType }

// Overload pairs one overload candidate's fully-resolved name with its type.
type Overload struct {
	Name string
	Type Term
}

// OverloadType is the type synthesized for a Var with more than one
// resolved-name candidate; C5's call checker picks exactly one alternative.
type OverloadType struct {
	termBase
	Overloads []Overload
}

func (*OverloadType) isTerm()    {}
func (*OverloadType) Kind() Kind { return KindOverloadType }
