package icfp

import "testing"

func TestMarshalExprRoundTrip(t *testing.T) {
	for _, src := range []string{
		"I/6",
		"S'%4}).$%8",
		"? B> I# I$ S9%3 S./",
		"B$ L# v# I#",
	} {
		expr := mustParse(t, src)
		data, err := MarshalExpr(expr)
		if err != nil {
			t.Fatalf("marshal %q: %v", src, err)
		}
		back, err := UnmarshalExpr(data)
		if err != nil {
			t.Fatalf("unmarshal %q (%s): %v", src, data, err)
		}
		want := mustRun(t, src)
		ev := NewEvaluator()
		got, err := ev.FullyEvaluate(back)
		if err != nil {
			t.Fatalf("evaluate unmarshaled %q: %v", src, err)
		}
		if want.Tag != got.Tag || want.Data != got.Data {
			t.Fatalf("json round trip of %q changed result: %v != %v", src, got, want)
		}
	}
}

func TestMarshalExprShape(t *testing.T) {
	data, err := MarshalExpr(mustParse(t, "B+ I# I$"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"tag":"binary","op":"add","left":{"tag":"integer","value":2},"right":{"tag":"integer","value":3}}`
	if string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}
}

func TestUnmarshalExprRejectsUnknownTag(t *testing.T) {
	if _, err := UnmarshalExpr([]byte(`{"tag":"loop"}`)); err == nil {
		t.Fatalf("want error for unknown tag")
	}
	if _, err := UnmarshalExpr([]byte(`{"tag":"unary","op":"sqrt","operand":{"tag":"integer","value":4}}`)); err == nil {
		t.Fatalf("want error for unknown op")
	}
}
