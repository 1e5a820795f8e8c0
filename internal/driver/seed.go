package driver

import (
	"io"

	"deduce/internal/ast"
	"deduce/internal/builtins"
	"deduce/internal/env"
	"deduce/internal/prelude"
)

// Seed returns a fresh Context together with the environment a top-level
// module should use as its baseEnv: the builtin operators (C9's
// internal/builtins) plus the prelude's Nat/List/Option unions (C9's
// internal/prelude), declared, type-checked, and collected the same way
// any other module's statements are — bootstrapping the standard
// library through the regular three pass pipeline instead of a
// special-cased seeding path. The prelude has no theorems, so there is
// nothing for checkProofsPass to do here.
func Seed(opts Options, modules map[string][]ast.Stmt, out io.Writer) (*Context, env.Env, error) {
	dc := NewContext(opts, modules, out)
	base := builtins.Declare(env.Empty)
	stmts := prelude.Stmts()

	e1, err := dc.declarePass(stmts, base, false)
	if err != nil {
		return dc, env.Empty, err
	}
	e2, err := dc.typeCheckPass(stmts, e1, false)
	if err != nil {
		return dc, env.Empty, err
	}
	e3, err := dc.collectPass(stmts, e2, false)
	if err != nil {
		return dc, env.Empty, err
	}
	return dc, e3, nil
}
