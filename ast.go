// ast.go — runtime values and the expression tree.
//
// Value is a tagged scalar (string, boolean or 64-bit integer), immutable
// once constructed. Expr is the closed variant set produced by the renaming
// parser and consumed by the evaluator: literals, unary and binary operator
// nodes, conditionals, lambdas and variable references. Each non-leaf node
// exclusively owns its children; the tree is acyclic by construction and no
// node is ever mutated after it is built — the evaluator produces new nodes
// at each reduction step.
//
// Binder ids are plain integers, not pointers: they are keys into the
// evaluator's environment. Raw source-level ids are non-negative; the parser
// rewrites every bound id to a strictly negative, globally unique one (see
// parser.go), so the two id spaces never collide.

package icfp

// ValueTag discriminates the Value union.
type ValueTag int

const (
	VTStr ValueTag = iota
	VTBool
	VTInt
)

func (t ValueTag) String() string {
	switch t {
	case VTStr:
		return "string"
	case VTBool:
		return "boolean"
	case VTInt:
		return "integer"
	default:
		return "unknown"
	}
}

// Value is a terminal scalar: a string, boolean, or int64.
type Value struct {
	Tag  ValueTag
	Data any
}

func Str(s string) Value { return Value{Tag: VTStr, Data: s} }
func Bool(b bool) Value  { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value  { return Value{Tag: VTInt, Data: n} }

func (v Value) AsStr() string { return v.Data.(string) }
func (v Value) AsBool() bool  { return v.Data.(bool) }
func (v Value) AsInt() int64  { return v.Data.(int64) }

// Equal compares two values of the same variant. Callers must check tags
// first; the Equal operator treats a tag mismatch as a type error.
func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		return false
	}
	return v.Data == o.Data
}

// --- Operators -------------------------------------------------------------

type UnaryOp int

const (
	Negate UnaryOp = iota
	LogicalNot
	StringToInt
	IntToString
)

var unaryNames = [...]string{"negate", "not", "str-to-int", "int-to-str"}
var unaryCodes = [...]byte{'-', '!', '#', '$'}

func (op UnaryOp) String() string { return unaryNames[op] }

// Code is the single-character wire opcode following the 'U' indicator.
func (op UnaryOp) Code() byte { return unaryCodes[op] }

func unaryOpFromCode(c byte) (UnaryOp, bool) {
	for op, code := range unaryCodes {
		if code == c {
			return UnaryOp(op), true
		}
	}
	return 0, false
}

type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Less
	Greater
	Equal
	Or
	And
	Concat
	Take
	Drop
	Apply
)

var binaryNames = [...]string{
	"add", "sub", "mul", "div", "mod", "less", "greater", "equal",
	"or", "and", "concat", "take", "drop", "apply",
}
var binaryCodes = [...]byte{'+', '-', '*', '/', '%', '<', '>', '=', '|', '&', '.', 'T', 'D', '$'}

func (op BinaryOp) String() string { return binaryNames[op] }

// Code is the single-character wire opcode following the 'B' indicator.
func (op BinaryOp) Code() byte { return binaryCodes[op] }

func binaryOpFromCode(c byte) (BinaryOp, bool) {
	for op, code := range binaryCodes {
		if code == c {
			return BinaryOp(op), true
		}
	}
	return 0, false
}

// --- Expression tree -------------------------------------------------------

// Expr is a node of the expression tree. The variant set is closed: Lit,
// Unary, Binary, If, Lambda and Var are the only implementations.
type Expr interface {
	isExpr()
}

// Lit wraps a terminal Value.
type Lit struct {
	Val Value
}

// Unary applies a UnaryOp to a single operand.
type Unary struct {
	Op      UnaryOp
	Operand Expr
}

// Binary applies a BinaryOp to two operands. Apply is call-by-name; every
// other operator is strict in both operands.
type Binary struct {
	Op          BinaryOp
	Left, Right Expr
}

// If chooses between two unevaluated branches on a boolean guard.
type If struct {
	Cond, Then, Else Expr
}

// Lambda binds Binder inside Body. After renaming, Binder is unique across
// the whole program.
type Lambda struct {
	Binder int64
	Body   Expr
}

// Var references a binder by id.
type Var struct {
	ID int64
}

func (*Lit) isExpr()    {}
func (*Unary) isExpr()  {}
func (*Binary) isExpr() {}
func (*If) isExpr()     {}
func (*Lambda) isExpr() {}
func (*Var) isExpr()    {}
