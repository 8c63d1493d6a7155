package fourth

// The core word set. The compiler and verifier consume only the declared
// effects and param kinds recorded here; the opcodes name the runtime
// implementations in run.go.

var (
	wordReturn  = nativeWord("RETURN", opReturn, Effect(0, 0), paramNone)
	wordLiteral = nativeWord("LITERAL", opLiteral, Effect(0, 1), paramLiteral)
	wordCall    = nativeWord("CALL", opCall, Effect(0, 0), paramCallee)
	wordBranch  = nativeWord("BRANCH", opBranch, Effect(0, 0), paramOffset)
	wordZBranch = nativeWord("0BRANCH", opZBranch, Effect(1, 0), paramOffset)

	wordDrop = nativeWord("DROP", opDrop, Effect(1, 0), paramNone)
	wordDup  = nativeWord("DUP", opDup, Effect(1, 2), paramNone)
	wordOver = nativeWord("OVER", opOver, Effect(2, 3), paramNone)
	wordRot  = nativeWord("ROT", opRot, Effect(3, 3), paramNone)
	wordSwap = nativeWord("SWAP", opSwap, Effect(2, 2), paramNone)

	wordPlus   = nativeWord("+", opAdd, Effect(2, 1), paramNone)
	wordMinus  = nativeWord("-", opSub, Effect(2, 1), paramNone)
	wordMult   = nativeWord("*", opMul, Effect(2, 1), paramNone)
	wordDiv    = nativeWord("/", opDiv, Effect(2, 1), paramNone)
	wordMod    = nativeWord("MOD", opMod, Effect(2, 1), paramNone)
	wordAbs    = nativeWord("ABS", opAbs, Effect(1, 1), paramNone)
	wordMin    = nativeWord("MIN", opMin, Effect(2, 1), paramNone)
	wordMax    = nativeWord("MAX", opMax, Effect(2, 1), paramNone)
	wordSquare = nativeWord("SQUARE", opSquare, Effect(1, 1), paramNone)

	wordEq     = nativeWord("=", opEq, Effect(2, 1), paramNone)
	wordNe     = nativeWord("<>", opNe, Effect(2, 1), paramNone)
	wordLt     = nativeWord("<", opLt, Effect(2, 1), paramNone)
	wordGt     = nativeWord(">", opGt, Effect(2, 1), paramNone)
	wordLe     = nativeWord("<=", opLe, Effect(2, 1), paramNone)
	wordGe     = nativeWord(">=", opGe, Effect(2, 1), paramNone)
	wordEqZero = nativeWord("0=", opEqZero, Effect(1, 1), paramNone)
	wordNeZero = nativeWord("0<>", opNeZero, Effect(1, 1), paramNone)
	wordLtZero = nativeWord("0<", opLtZero, Effect(1, 1), paramNone)
	wordGtZero = nativeWord("0>", opGtZero, Effect(1, 1), paramNone)

	wordZero = nativeWord("ZERO", opZero, Effect(0, 1), paramNone)
	wordOne  = nativeWord("ONE", opOne, Effect(0, 1), paramNone)
)

func nativeWord(name string, code opcode, effect StackEffect, param paramKind) *Word {
	return &Word{name: name, effect: effect, native: true, param: param, code: code}
}

// coreWords lists every primitive installed into a fresh vocabulary.
var coreWords = []*Word{
	wordReturn, wordLiteral, wordCall, wordBranch, wordZBranch,
	wordDrop, wordDup, wordOver, wordRot, wordSwap,
	wordPlus, wordMinus, wordMult, wordDiv, wordMod,
	wordAbs, wordMin, wordMax, wordSquare,
	wordEq, wordNe, wordLt, wordGt, wordLe, wordGe,
	wordEqZero, wordNeZero, wordLtZero, wordGtZero,
	wordZero, wordOne,
}

// primitiveWords maps an opcode back to its Word, for the disassembler
// and for runtime tracing.
var primitiveWords [numOpcodes]*Word

func init() {
	for _, w := range coreWords {
		primitiveWords[w.code] = w
	}
}
