package icfp

import "testing"

func TestFormatValue(t *testing.T) {
	if got := FormatValue(Int(-42)); got != "-42" {
		t.Fatalf("format int = %q", got)
	}
	if got := FormatValue(Bool(true)); got != "true" {
		t.Fatalf("format bool = %q", got)
	}
	if got := FormatValue(Str("get index")); got != `"get index"` {
		t.Fatalf("format str = %q", got)
	}
}

func TestFormatExpr(t *testing.T) {
	expr := mustParse(t, "B$ L# v# I#")
	if got := FormatExpr(expr); got != "(apply (lam v-1 v-1) 2)" {
		t.Fatalf("format = %q", got)
	}

	expr = mustParse(t, "? T U- I# S(%,,/")
	if got := FormatExpr(expr); got != `(if true (negate 2) "hello")` {
		t.Fatalf("format = %q", got)
	}
}

// Wire round trip: encoding a parsed tree and parsing it again must yield an
// alpha-equivalent program with identical evaluation results.
func TestEncodeExprRoundTrip(t *testing.T) {
	sources := []string{
		"I/6",
		"T",
		"S'%4}).$%8",
		"U- I$",
		"B+ I# I$",
		"? B> I# I$ S9%3 S./",
		"B$ L# v# I#",
		"B. B$ L# v# S(%,,/ B$ L# v# S7/2,$",
	}
	for _, src := range sources {
		wire, err := EncodeExpr(mustParse(t, src))
		if err != nil {
			t.Fatalf("encode %q: %v", src, err)
		}
		want := mustRun(t, src)
		got := mustRun(t, wire)
		if want.Tag != got.Tag || want.Data != got.Data {
			t.Fatalf("round trip %q -> %q: %v != %v", src, wire, got, want)
		}
	}
}

// Literal-only trees encode to the exact original wire text.
func TestEncodeExprLiteralsExact(t *testing.T) {
	for _, src := range []string{"I/6", "T", "F", "S'%4}).$%8", "U- I$", "B+ I# I$"} {
		wire, err := EncodeExpr(mustParse(t, src))
		if err != nil {
			t.Fatalf("encode %q: %v", src, err)
		}
		if wire != src {
			t.Fatalf("encode %q = %q", src, wire)
		}
	}
}

// Negative integer literals have no wire form of their own; the encoder must
// reintroduce the Negate operator.
func TestEncodeNegativeLiteral(t *testing.T) {
	wire, err := EncodeExpr(&Lit{Val: Int(-1337)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if wire != "U- I/6" {
		t.Fatalf("encode -1337 = %q", wire)
	}
	wantInt(t, mustRun(t, wire), -1337)
}
