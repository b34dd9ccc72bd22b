// printer.go — human-readable rendering of values and expressions, plus the
// wire encoder.
//
// FormatValue/FormatExpr produce a debugging form, not the wire form:
// strings are quoted, operators appear by name, lambdas as (lam vN body).
// Renamed (negative) binder ids print with their sign so the two id spaces
// stay visibly distinct. EncodeExpr is the exact inverse of parsing back to
// wire text, modulo renaming: ids are re-encoded as their current numeric
// value, which round-trips through Parse to an alpha-equivalent tree.

package icfp

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatValue renders a terminal value for humans.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTStr:
		return strconv.Quote(v.AsStr())
	case VTBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case VTInt:
		return strconv.FormatInt(v.AsInt(), 10)
	default:
		return fmt.Sprintf("<value %v>", v.Data)
	}
}

// FormatExpr renders an expression tree on one line.
func FormatExpr(expr Expr) string {
	var b strings.Builder
	writeExpr(&b, expr)
	return b.String()
}

func writeExpr(b *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *Lit:
		b.WriteString(FormatValue(e.Val))
	case *Unary:
		b.WriteByte('(')
		b.WriteString(e.Op.String())
		b.WriteByte(' ')
		writeExpr(b, e.Operand)
		b.WriteByte(')')
	case *Binary:
		b.WriteByte('(')
		b.WriteString(e.Op.String())
		b.WriteByte(' ')
		writeExpr(b, e.Left)
		b.WriteByte(' ')
		writeExpr(b, e.Right)
		b.WriteByte(')')
	case *If:
		b.WriteString("(if ")
		writeExpr(b, e.Cond)
		b.WriteByte(' ')
		writeExpr(b, e.Then)
		b.WriteByte(' ')
		writeExpr(b, e.Else)
		b.WriteByte(')')
	case *Lambda:
		fmt.Fprintf(b, "(lam v%d ", e.Binder)
		writeExpr(b, e.Body)
		b.WriteByte(')')
	case *Var:
		fmt.Fprintf(b, "v%d", e.ID)
	}
}

// EncodeExpr renders an expression back to wire text. Negative (renamed)
// binder ids are re-encoded by magnitude; renaming made them unique
// program-wide, so no capture is reintroduced among bound variables. A free
// variable whose raw id equals some renamed magnitude would collide, but
// well-formed programs have no free variables.
func EncodeExpr(expr Expr) (string, error) {
	var toks []string
	if err := encodeExpr(&toks, expr); err != nil {
		return "", err
	}
	return strings.Join(toks, " "), nil
}

func encodeExpr(toks *[]string, expr Expr) error {
	switch e := expr.(type) {
	case *Lit:
		switch e.Val.Tag {
		case VTBool:
			if e.Val.AsBool() {
				*toks = append(*toks, "T")
			} else {
				*toks = append(*toks, "F")
			}
		case VTInt:
			n := e.Val.AsInt()
			if n < 0 {
				// Sign is carried by the Negate operator on the wire.
				*toks = append(*toks, "U-", "I"+EncodeIntegerBody(-n))
			} else {
				*toks = append(*toks, "I"+EncodeIntegerBody(n))
			}
		case VTStr:
			*toks = append(*toks, "S"+EncodeString(e.Val.AsStr()))
		}
		return nil
	case *Unary:
		*toks = append(*toks, "U"+string(e.Op.Code()))
		return encodeExpr(toks, e.Operand)
	case *Binary:
		*toks = append(*toks, "B"+string(e.Op.Code()))
		if err := encodeExpr(toks, e.Left); err != nil {
			return err
		}
		return encodeExpr(toks, e.Right)
	case *If:
		*toks = append(*toks, "?")
		if err := encodeExpr(toks, e.Cond); err != nil {
			return err
		}
		if err := encodeExpr(toks, e.Then); err != nil {
			return err
		}
		return encodeExpr(toks, e.Else)
	case *Lambda:
		*toks = append(*toks, "L"+EncodeIntegerBody(absID(e.Binder)))
		return encodeExpr(toks, e.Body)
	case *Var:
		*toks = append(*toks, "v"+EncodeIntegerBody(absID(e.ID)))
		return nil
	default:
		return fmt.Errorf("encode: unknown expression variant %T", expr)
	}
}

func absID(id int64) int64 {
	if id < 0 {
		return -id
	}
	return id
}
