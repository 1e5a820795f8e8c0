package ast

// Kind discriminates node variants for diagnostics and the occasional
// switch that reads more clearly tagged than type-asserted. Logic in this
// module type-switches on the concrete Go type; Kind exists for error
// messages and the String() implementations.
type Kind int

const (
	KindVar Kind = iota
	KindInt
	KindBool
	KindLambda
	KindGeneric
	KindCall
	KindTermInst
	KindConditional
	KindTLet
	KindSwitch
	KindSwitchCase
	KindMakeArray
	KindArrayGet
	KindHole
	KindOmitted
	KindMark
	KindRecFun

	KindIntType
	KindBoolType
	KindTypeType
	KindFunctionType
	KindTypeInst
	KindGenericUnknownInst
	KindArrayType
	KindOverloadType

	KindAnd
	KindOr
	KindIfThen
	KindAll
	KindSome

	KindPatternCons
	KindPatternBool

	KindPVar
	KindPTrue
	KindPHole
	KindPSorry
	KindPTuple
	KindPAndElim
	KindImpIntro
	KindAllIntro
	KindAllElim
	KindAllElimTypes
	KindModusPonens
	KindPReflexive
	KindPSymmetric
	KindPTransitive
	KindPInjective
	KindPExtensionality
	KindSomeIntro
	KindSomeElim
	KindCases
	KindInduction
	KindSwitchProof
	KindRewriteGoal
	KindRewrite
	KindApplyDefs
	KindApplyDefsGoal
	KindEvaluateGoal
	KindEvaluateFact
	KindSuffices
	KindPLet
	KindPTLetNew
	KindPAnnot
	KindPTerm
	KindPRecall
	KindEnableDefs
	KindPHelpUse

	KindDefine
	KindTheorem
	KindUnion
	KindImport
	KindAssert
	KindPrint
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "<unknown-kind>"
}

var kindNames = map[Kind]string{
	KindVar: "Var", KindInt: "Int", KindBool: "Bool", KindLambda: "Lambda",
	KindGeneric: "Generic", KindCall: "Call", KindTermInst: "TermInst",
	KindConditional: "Conditional", KindTLet: "TLet", KindSwitch: "Switch",
	KindSwitchCase: "SwitchCase", KindMakeArray: "MakeArray", KindArrayGet: "ArrayGet",
	KindHole: "Hole", KindOmitted: "Omitted", KindMark: "Mark", KindRecFun: "RecFun",
	KindIntType: "IntType", KindBoolType: "BoolType", KindTypeType: "TypeType",
	KindFunctionType: "FunctionType", KindTypeInst: "TypeInst",
	KindGenericUnknownInst: "GenericUnknownInst", KindArrayType: "ArrayType",
	KindOverloadType: "OverloadType",
	KindAnd:          "And", KindOr: "Or", KindIfThen: "IfThen", KindAll: "All", KindSome: "Some",
	KindPatternCons: "PatternCons", KindPatternBool: "PatternBool",

	KindPVar: "PVar", KindPTrue: "PTrue", KindPHole: "PHole", KindPSorry: "PSorry",
	KindPTuple: "PTuple", KindPAndElim: "PAndElim", KindImpIntro: "ImpIntro",
	KindAllIntro: "AllIntro", KindAllElim: "AllElim", KindAllElimTypes: "AllElimTypes",
	KindModusPonens: "ModusPonens", KindPReflexive: "PReflexive", KindPSymmetric: "PSymmetric",
	KindPTransitive: "PTransitive", KindPInjective: "PInjective", KindPExtensionality: "PExtensionality",
	KindSomeIntro: "SomeIntro", KindSomeElim: "SomeElim", KindCases: "Cases",
	KindInduction: "Induction", KindSwitchProof: "SwitchProof", KindRewriteGoal: "RewriteGoal",
	KindRewrite: "Rewrite", KindApplyDefs: "ApplyDefs", KindApplyDefsGoal: "ApplyDefsGoal",
	KindEvaluateGoal: "EvaluateGoal", KindEvaluateFact: "EvaluateFact", KindSuffices: "Suffices",
	KindPLet: "PLet", KindPTLetNew: "PTLetNew", KindPAnnot: "PAnnot", KindPTerm: "PTerm",
	KindPRecall: "PRecall", KindEnableDefs: "EnableDefs", KindPHelpUse: "PHelpUse",

	KindDefine: "Define", KindTheorem: "Theorem", KindUnion: "Union",
	KindImport: "Import", KindAssert: "Assert", KindPrint: "Print",
}
