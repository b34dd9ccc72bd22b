// eval.go — small-step call-by-name evaluator.
//
// The evaluator reduces a renamed Expr to a terminal Value. Its state is one
// flat environment mapping renamed binder id -> the unevaluated argument
// bound at that application. Entries are never removed; each binder id is
// globally unique (parser.go) and used by at most one lambda, so the map only
// grows for the duration of one program run. A fresh Evaluator must be
// created per independent program.
//
// Reduction discipline:
//   - Apply is call-by-name: the function position is forced to weak head
//     normal form, the argument is bound unevaluated, and the body is
//     returned unevaluated.
//   - Every other binary operator, and the conditional guard, is strict:
//     operands are fully evaluated to literals before the scalar operator
//     runs. The untaken conditional branch is never reduced.
//
// Expr nodes are immutable after construction, so bound expressions are
// shared rather than copied; reduction always builds new nodes.
//
// Termination is bounded by Budget: FullyEvaluate and MaximallyEvaluate give
// up with NonTerminationError once the step budget is spent, converting an
// infinite reduction into a reported failure instead of a hang. Callers
// needing interactive cancellation must wrap the call in their own timeout;
// the evaluator performs no internal time checks.

package icfp

// DefaultBudget bounds the number of reduction steps in one strict
// evaluation. It is a resource limit, externally configurable via
// Evaluator.Budget.
const DefaultBudget = 1_000_000

// Evaluator holds the binding environment and step budget for one program
// run. Single-threaded; never share one across concurrent evaluations.
type Evaluator struct {
	Budget   int
	bindings map[int64]Expr
}

// NewEvaluator returns an evaluator with an empty environment and the
// default step budget.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		Budget:   DefaultBudget,
		bindings: make(map[int64]Expr),
	}
}

// Run parses text and fully evaluates it with a fresh evaluator.
func Run(text string) (Value, error) {
	expr, err := Parse(text)
	if err != nil {
		return Value{}, err
	}
	return NewEvaluator().FullyEvaluate(expr)
}

// Step performs exactly one reduction. Literals and lambdas are terminal and
// returned unchanged.
func (ev *Evaluator) Step(expr Expr) (Expr, error) {
	switch e := expr.(type) {
	case *Lit, *Lambda:
		return expr, nil

	case *Var:
		bound, ok := ev.bindings[e.ID]
		if !ok {
			return nil, &UnboundVariableError{ID: e.ID}
		}
		return bound, nil

	case *Unary:
		if lit, ok := e.Operand.(*Lit); ok {
			return ev.applyUnary(e.Op, lit.Val)
		}
		operand, err := ev.Step(e.Operand)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: e.Op, Operand: operand}, nil

	case *If:
		cond, err := ev.FullyEvaluate(e.Cond)
		if err != nil {
			return nil, err
		}
		if cond.Tag != VTBool {
			return nil, &NonBooleanConditionError{Actual: cond.Tag.String()}
		}
		if cond.AsBool() {
			return e.Then, nil
		}
		return e.Else, nil

	case *Binary:
		if e.Op == Apply {
			return ev.stepApply(e)
		}
		left, err := ev.FullyEvaluate(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := ev.FullyEvaluate(e.Right)
		if err != nil {
			return nil, err
		}
		return ev.applyBinary(e.Op, left, right)

	default:
		panic("icfp: unknown expression variant") // closed set, unreachable
	}
}

// stepApply forces the function position to weak head normal form. A lambda
// result binds the argument unevaluated and hands back the body; a literal is
// not applicable; an unresolved variable leaves a partially-reduced
// application for the caller to step again.
func (ev *Evaluator) stepApply(app *Binary) (Expr, error) {
	fn, err := ev.MaximallyEvaluate(app.Left)
	if err != nil {
		return nil, err
	}
	switch f := fn.(type) {
	case *Lambda:
		ev.bindings[f.Binder] = app.Right
		return f.Body, nil
	case *Lit:
		return nil, &ApplyNonFunctionError{Value: f.Val}
	default:
		// WHNF here means an unresolved variable; step it once so the
		// partially-reduced application can make progress next round.
		next, err := ev.Step(fn)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: Apply, Left: next, Right: app.Right}, nil
	}
}

// MaximallyEvaluate steps expr until it reaches weak head normal form: a
// literal, a lambda, or an unresolved variable.
func (ev *Evaluator) MaximallyEvaluate(expr Expr) (Expr, error) {
	budget := ev.Budget
	for i := 0; i < budget; i++ {
		switch expr.(type) {
		case *Lit, *Lambda, *Var:
			return expr, nil
		}
		next, err := ev.Step(expr)
		if err != nil {
			return nil, err
		}
		expr = next
	}
	return nil, &NonTerminationError{Budget: budget}
}

// FullyEvaluate steps expr until it is a literal, then unwraps the value.
func (ev *Evaluator) FullyEvaluate(expr Expr) (Value, error) {
	budget := ev.Budget
	for i := 0; i < budget; i++ {
		if lit, ok := expr.(*Lit); ok {
			return lit.Val, nil
		}
		next, err := ev.Step(expr)
		if err != nil {
			return Value{}, err
		}
		expr = next
	}
	return Value{}, &NonTerminationError{Budget: budget}
}

// --- scalar operators ------------------------------------------------------

func (ev *Evaluator) applyUnary(op UnaryOp, v Value) (Expr, error) {
	switch op {
	case Negate:
		if v.Tag != VTInt {
			return nil, &TypeMismatchError{Op: op.String(), Expected: "integer", Actual: v.Tag.String()}
		}
		return &Lit{Val: Int(-v.AsInt())}, nil

	case LogicalNot:
		if v.Tag != VTBool {
			return nil, &TypeMismatchError{Op: op.String(), Expected: "boolean", Actual: v.Tag.String()}
		}
		return &Lit{Val: Bool(!v.AsBool())}, nil

	case StringToInt:
		// Integer value of the string's codec-encoded form.
		if v.Tag != VTStr {
			return nil, &TypeMismatchError{Op: op.String(), Expected: "string", Actual: v.Tag.String()}
		}
		n, err := DecodeIntegerBody(EncodeString(v.AsStr()))
		if err != nil {
			return nil, err
		}
		return &Lit{Val: Int(n)}, nil

	case IntToString:
		// Codec string of the integer's base-94 body.
		if v.Tag != VTInt {
			return nil, &TypeMismatchError{Op: op.String(), Expected: "integer", Actual: v.Tag.String()}
		}
		return &Lit{Val: DecodeString(EncodeIntegerBody(v.AsInt()))}, nil

	default:
		return nil, &TypeMismatchError{Op: op.String(), Expected: "known operator", Actual: v.Tag.String()}
	}
}

func (ev *Evaluator) applyBinary(op BinaryOp, a, b Value) (Expr, error) {
	switch op {
	case Add, Sub, Mul, Div, Mod:
		if a.Tag != VTInt || b.Tag != VTInt {
			return nil, &TypeMismatchError{Op: op.String(), Expected: "integer,integer", Actual: a.Tag.String() + "," + b.Tag.String()}
		}
		x, y := a.AsInt(), b.AsInt()
		switch op {
		case Add:
			return &Lit{Val: Int(x + y)}, nil
		case Sub:
			return &Lit{Val: Int(x - y)}, nil
		case Mul:
			return &Lit{Val: Int(x * y)}, nil
		case Div:
			if y == 0 {
				return nil, &DivisionByZeroError{Op: op.String()}
			}
			return &Lit{Val: Int(x / y)}, nil // truncates toward zero
		default:
			if y == 0 {
				return nil, &DivisionByZeroError{Op: op.String()}
			}
			return &Lit{Val: Int(x % y)}, nil
		}

	case Less, Greater:
		if a.Tag != VTInt || b.Tag != VTInt {
			return nil, &TypeMismatchError{Op: op.String(), Expected: "integer,integer", Actual: a.Tag.String() + "," + b.Tag.String()}
		}
		if op == Less {
			return &Lit{Val: Bool(a.AsInt() < b.AsInt())}, nil
		}
		return &Lit{Val: Bool(a.AsInt() > b.AsInt())}, nil

	case Equal:
		if a.Tag != b.Tag {
			return nil, &TypeMismatchError{Op: op.String(), Expected: "matching variants", Actual: a.Tag.String() + "," + b.Tag.String()}
		}
		return &Lit{Val: Bool(a.Equal(b))}, nil

	case Or, And:
		if a.Tag != VTBool || b.Tag != VTBool {
			return nil, &TypeMismatchError{Op: op.String(), Expected: "boolean,boolean", Actual: a.Tag.String() + "," + b.Tag.String()}
		}
		if op == Or {
			return &Lit{Val: Bool(a.AsBool() || b.AsBool())}, nil
		}
		return &Lit{Val: Bool(a.AsBool() && b.AsBool())}, nil

	case Concat:
		if a.Tag != VTStr || b.Tag != VTStr {
			return nil, &TypeMismatchError{Op: op.String(), Expected: "string,string", Actual: a.Tag.String() + "," + b.Tag.String()}
		}
		return &Lit{Val: Str(a.AsStr() + b.AsStr())}, nil

	case Take, Drop:
		if a.Tag != VTInt || b.Tag != VTStr {
			return nil, &TypeMismatchError{Op: op.String(), Expected: "integer,string", Actual: a.Tag.String() + "," + b.Tag.String()}
		}
		n, s := a.AsInt(), b.AsStr()
		if n < 0 || n > int64(len(s)) {
			return nil, &IndexOutOfRangeError{Op: op.String(), N: n, Len: len(s)}
		}
		if op == Take {
			return &Lit{Val: Str(s[:n])}, nil
		}
		return &Lit{Val: Str(s[n:])}, nil

	default: // Apply handled in stepApply
		return nil, &TypeMismatchError{Op: op.String(), Expected: "non-apply operator", Actual: a.Tag.String() + "," + b.Tag.String()}
	}
}
