package icfp

import (
	"errors"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func wantInt(t *testing.T, v Value, n int64) {
	t.Helper()
	if v.Tag != VTInt || v.AsInt() != n {
		t.Fatalf("want int %d, got %#v", n, v)
	}
}

func wantStr(t *testing.T, v Value, s string) {
	t.Helper()
	if v.Tag != VTStr || v.AsStr() != s {
		t.Fatalf("want str %q, got %#v", s, v)
	}
}

func wantBool(t *testing.T, v Value, b bool) {
	t.Helper()
	if v.Tag != VTBool || v.AsBool() != b {
		t.Fatalf("want bool %v, got %#v", b, v)
	}
}

func mustRun(t *testing.T, src string) Value {
	t.Helper()
	v, err := Run(src)
	if err != nil {
		t.Fatalf("run %q: %v", src, err)
	}
	return v
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	_, err := Run(src)
	if err == nil {
		t.Fatalf("run %q: want error, got success", src)
	}
	return err
}

// --- scenarios -------------------------------------------------------------

func TestRunIntegerLiteral(t *testing.T) {
	wantInt(t, mustRun(t, "I/6"), 1337)
}

func TestRunApplyIdentity(t *testing.T) {
	wantInt(t, mustRun(t, "B$ L# v# I#"), 2)
}

// The contest's language-test warmup: ternary plus unary and binary ops.
func TestRunOperators(t *testing.T) {
	wantInt(t, mustRun(t, "B+ I# I$"), 5)
	wantInt(t, mustRun(t, "B- I$ I#"), 1)
	wantInt(t, mustRun(t, "B* I$ I#"), 6)
	wantInt(t, mustRun(t, "B/ U- I( I#"), -3) // truncates toward zero
	wantInt(t, mustRun(t, "B% U- I( I#"), -1) // remainder keeps dividend sign
	wantBool(t, mustRun(t, "B< I$ I#"), false)
	wantBool(t, mustRun(t, "B> I$ I#"), true)
	wantBool(t, mustRun(t, "B= I$ I#"), false)
	wantBool(t, mustRun(t, "B| T F"), true)
	wantBool(t, mustRun(t, "B& T F"), false)
	wantStr(t, mustRun(t, "B. S4% S34"), "test")
	wantInt(t, mustRun(t, "U- I$"), -3)
	wantBool(t, mustRun(t, "U! T"), false)
	wantInt(t, mustRun(t, "U# S4%34"), 15818151)
	wantStr(t, mustRun(t, "U$ I4%34"), "test")
}

func TestRunConditional(t *testing.T) {
	wantStr(t, mustRun(t, "? B> I# I$ S9%3 S./"), "no")
}

func TestTakeDrop(t *testing.T) {
	// "hello" encodes as "(%,,/" through the cipher.
	wantStr(t, mustRun(t, "BT I$ S(%,,/"), "hel")
	wantStr(t, mustRun(t, "BD I$ S(%,,/"), "lo")

	err := runErr(t, "BT I' S(%,,/") // take 6 of a 5-char string
	var ioor *IndexOutOfRangeError
	if !errors.As(err, &ioor) {
		t.Fatalf("want IndexOutOfRangeError, got %v", err)
	}
	if ioor.N != 6 || ioor.Len != 5 {
		t.Fatalf("index error context = %+v", ioor)
	}
}

// --- laziness and strictness ----------------------------------------------

// The untaken conditional branch must never be reduced: a division by zero
// on the false side cannot surface when the guard is true.
func TestConditionalLaziness(t *testing.T) {
	wantInt(t, mustRun(t, "? T I! B/ I! I!"), 0)
	wantInt(t, mustRun(t, "? F B/ I! I! I!"), 0)
}

// Apply's argument is bound unevaluated; a diverging argument that the body
// never demands must not count against the program.
func TestApplyArgumentLazy(t *testing.T) {
	// (λx. 42) applied to a division by zero.
	wantInt(t, mustRun(t, "B$ L# IK B/ I! I!"), 42)
}

// Strict operators force both operands before acting: the apply below must
// reduce to 3 before the addition happens.
func TestBinaryStrictness(t *testing.T) {
	wantInt(t, mustRun(t, "B+ B$ L# v# I$ I%"), 7)
}

// Sibling scopes reusing raw binder 2 must not leak bindings into each other
// when both applications run in one evaluation.
func TestRenamedScopesDoNotCollide(t *testing.T) {
	wantStr(t, mustRun(t, "B. B$ L# v# S(%,,/ B$ L# v# S7/2,$"), "helloworld")
}

// Higher-order self-shadowing: ((λx. λx. x) 1) 2 must yield the inner
// binding.
func TestShadowedApplication(t *testing.T) {
	wantInt(t, mustRun(t, "B$ B$ L# L# v# I\" I#"), 2)
}

// --- failure modes ---------------------------------------------------------

func TestDivisionByZero(t *testing.T) {
	err := runErr(t, "B/ I$ I!")
	var dbz *DivisionByZeroError
	if !errors.As(err, &dbz) {
		t.Fatalf("want DivisionByZeroError, got %v", err)
	}
	err = runErr(t, "B% I$ I!")
	if !errors.As(err, &dbz) {
		t.Fatalf("want DivisionByZeroError for mod, got %v", err)
	}
}

func TestTypeMismatch(t *testing.T) {
	var tme *TypeMismatchError
	if err := runErr(t, "B+ I# T"); !errors.As(err, &tme) {
		t.Fatalf("want TypeMismatchError, got %v", err)
	}
	if err := runErr(t, "B= I# T"); !errors.As(err, &tme) {
		t.Fatalf("equal across variants: want TypeMismatchError, got %v", err)
	}
	if err := runErr(t, "U- T"); !errors.As(err, &tme) {
		t.Fatalf("negate boolean: want TypeMismatchError, got %v", err)
	}
	if err := runErr(t, "B& I! I!"); !errors.As(err, &tme) {
		t.Fatalf("and on integers: want TypeMismatchError, got %v", err)
	}
}

func TestNonBooleanCondition(t *testing.T) {
	err := runErr(t, "? I! I! I!")
	var nbc *NonBooleanConditionError
	if !errors.As(err, &nbc) {
		t.Fatalf("want NonBooleanConditionError, got %v", err)
	}
}

func TestApplyNonFunction(t *testing.T) {
	err := runErr(t, "B$ I! I!")
	var anf *ApplyNonFunctionError
	if !errors.As(err, &anf) {
		t.Fatalf("want ApplyNonFunctionError, got %v", err)
	}
}

func TestUnboundVariable(t *testing.T) {
	err := runErr(t, "B+ v! I!")
	var uv *UnboundVariableError
	if !errors.As(err, &uv) {
		t.Fatalf("want UnboundVariableError, got %v", err)
	}
	if uv.ID != 0 {
		t.Fatalf("unbound id = %d, want raw 0", uv.ID)
	}
}

// Infinite self-application (λx. x x)(λx. x x) must exhaust the budget, not
// hang.
func TestNonTermination(t *testing.T) {
	expr := mustParse(t, "B$ L! B$ v! v! L! B$ v! v!")
	ev := NewEvaluator()
	ev.Budget = 10_000
	_, err := ev.FullyEvaluate(expr)
	var nt *NonTerminationError
	if !errors.As(err, &nt) {
		t.Fatalf("want NonTerminationError, got %v", err)
	}
	if nt.Budget != 10_000 {
		t.Fatalf("budget in error = %d, want 10000", nt.Budget)
	}
}

// Step leaves terminal forms untouched.
func TestStepTerminal(t *testing.T) {
	ev := NewEvaluator()
	lit := &Lit{Val: Int(7)}
	got, err := ev.Step(lit)
	if err != nil || got != Expr(lit) {
		t.Fatalf("step literal = (%v, %v), want unchanged", got, err)
	}
	lam := &Lambda{Binder: -1, Body: &Var{ID: -1}}
	got, err = ev.Step(lam)
	if err != nil || got != Expr(lam) {
		t.Fatalf("step lambda = (%v, %v), want unchanged", got, err)
	}
}

// A higher-order chain: a function argument is itself applied inside the
// body.
func TestHigherOrderApplication(t *testing.T) {
	// ((λf. f 3) (λx. x + x)) = 6
	wantInt(t, mustRun(t, "B$ L% B$ v% I$ L# B+ v# v#"), 6)
}
