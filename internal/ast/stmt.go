package ast

// Stmt is implemented by every top-level module form. RecFun (in term.go)
// also implements Stmt, since the original checker reuses the same node
// for a recursive function's declaration and its runtime value.
type Stmt interface {
	Node
	isStmt()
}

type stmtBase struct{ base }

// Define binds Name to Value at the top level, with an optional declared
// type (nil when the checker must infer it from Value).
type Define struct {
	stmtBase
	Name  string
	Type  Term
	Value Term
}

func (*Define) isStmt()   {}
func (*Define) Kind() Kind { return KindDefine }

// Theorem states Formula under Name, with Proof discharging it. Proof is
// nil for a forward-declared theorem with a later standalone proof block
// (not supported by this checker; always non-nil here). IsLemma marks a
// theorem stated purely as a stepping stone for later proofs (no effect
// on checking; carried through for diagnostics/tooling, mirroring
// proof_checker.py's distinction between `theorem` and `lemma`).
type Theorem struct {
	stmtBase
	Name    string
	Formula Term
	Proof   Proof
	IsLemma bool
}

func (*Theorem) isStmt()   {}
func (*Theorem) Kind() Kind { return KindTheorem }

// Constructor is one case of a Union: a name and the types of the fields
// it carries (empty for a nullary constructor).
type Constructor struct {
	Name       string
	FieldTypes []Term
}

// Union declares an algebraic data type: a name, its type parameters, and
// its constructors.
type Union struct {
	stmtBase
	Name         string
	TypeParams   []string
	Constructors []Constructor
}

func (*Union) isStmt()   {}
func (*Union) Kind() Kind { return KindUnion }

// Import pulls in another module's top-level bindings by path. Resolving
// Path to a module's statements is outside this checker's scope (non-goal:
// module file resolution); the driver takes pre-parsed statements per
// import and only tracks which ones it has already processed.
type Import struct {
	stmtBase
	Path string
}

func (*Import) isStmt()   {}
func (*Import) Kind() Kind { return KindImport }

// Assert runs Proof against Formula as a standalone top-level check,
// independent of any named theorem (used for scratch goals and the
// scenario-test style of module).
type Assert struct {
	stmtBase
	Formula Term
	Proof   Proof
}

func (*Assert) isStmt()   {}
func (*Assert) Kind() Kind { return KindAssert }

// Print evaluates Subject and reports its normal form; a diagnostic aid
// with no effect on the checked module's validity.
type Print struct {
	stmtBase
	Subject Term
}

func (*Print) isStmt()   {}
func (*Print) Kind() Kind { return KindPrint }
