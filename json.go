// json.go — JSON (de)serialization of expression trees.
//
// Debug/interop surface only: the wire format stays the canonical exchange
// form. Nodes serialize as tagged objects, e.g.
//
//	{"tag":"binary","op":"add","left":{"tag":"integer","value":1},
//	 "right":{"tag":"integer","value":2}}
//
// Operator names match the String() forms in ast.go. Integer values ride as
// JSON numbers; int64 survives encode exactly and decodes into a typed
// field, so no float rounding occurs.

package icfp

import (
	"encoding/json"
	"fmt"
)

type jsonExpr struct {
	Tag     string          `json:"tag"`
	Value   json.RawMessage `json:"value,omitempty"`
	Op      string          `json:"op,omitempty"`
	Operand *jsonExpr       `json:"operand,omitempty"`
	Left    *jsonExpr       `json:"left,omitempty"`
	Right   *jsonExpr       `json:"right,omitempty"`
	Cond    *jsonExpr       `json:"cond,omitempty"`
	Then    *jsonExpr       `json:"then,omitempty"`
	Else    *jsonExpr       `json:"else,omitempty"`
	Binder  int64           `json:"binder,omitempty"`
	Body    *jsonExpr       `json:"body,omitempty"`
	ID      *int64          `json:"id,omitempty"`
}

// MarshalExpr renders an expression tree as JSON.
func MarshalExpr(expr Expr) ([]byte, error) {
	node, err := toJSONExpr(expr)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

// UnmarshalExpr rebuilds an expression tree from MarshalExpr output.
func UnmarshalExpr(data []byte) (Expr, error) {
	var node jsonExpr
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return fromJSONExpr(&node)
}

func toJSONExpr(expr Expr) (*jsonExpr, error) {
	switch e := expr.(type) {
	case *Lit:
		raw, err := json.Marshal(e.Val.Data)
		if err != nil {
			return nil, err
		}
		return &jsonExpr{Tag: e.Val.Tag.String(), Value: raw}, nil
	case *Unary:
		operand, err := toJSONExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return &jsonExpr{Tag: "unary", Op: e.Op.String(), Operand: operand}, nil
	case *Binary:
		left, err := toJSONExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := toJSONExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return &jsonExpr{Tag: "binary", Op: e.Op.String(), Left: left, Right: right}, nil
	case *If:
		cond, err := toJSONExpr(e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := toJSONExpr(e.Then)
		if err != nil {
			return nil, err
		}
		els, err := toJSONExpr(e.Else)
		if err != nil {
			return nil, err
		}
		return &jsonExpr{Tag: "if", Cond: cond, Then: then, Else: els}, nil
	case *Lambda:
		body, err := toJSONExpr(e.Body)
		if err != nil {
			return nil, err
		}
		return &jsonExpr{Tag: "lambda", Binder: e.Binder, Body: body}, nil
	case *Var:
		id := e.ID
		return &jsonExpr{Tag: "var", ID: &id}, nil
	default:
		return nil, fmt.Errorf("marshal: unknown expression variant %T", expr)
	}
}

func fromJSONExpr(node *jsonExpr) (Expr, error) {
	switch node.Tag {
	case "string":
		var s string
		if err := json.Unmarshal(node.Value, &s); err != nil {
			return nil, err
		}
		return &Lit{Val: Str(s)}, nil
	case "boolean":
		var b bool
		if err := json.Unmarshal(node.Value, &b); err != nil {
			return nil, err
		}
		return &Lit{Val: Bool(b)}, nil
	case "integer":
		var n int64
		if err := json.Unmarshal(node.Value, &n); err != nil {
			return nil, err
		}
		return &Lit{Val: Int(n)}, nil

	case "unary":
		op, ok := unaryOpByName(node.Op)
		if !ok {
			return nil, fmt.Errorf("unmarshal: unknown unary op %q", node.Op)
		}
		operand, err := fromJSONExpr(node.Operand)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Operand: operand}, nil

	case "binary":
		op, ok := binaryOpByName(node.Op)
		if !ok {
			return nil, fmt.Errorf("unmarshal: unknown binary op %q", node.Op)
		}
		left, err := fromJSONExpr(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := fromJSONExpr(node.Right)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: op, Left: left, Right: right}, nil

	case "if":
		cond, err := fromJSONExpr(node.Cond)
		if err != nil {
			return nil, err
		}
		then, err := fromJSONExpr(node.Then)
		if err != nil {
			return nil, err
		}
		els, err := fromJSONExpr(node.Else)
		if err != nil {
			return nil, err
		}
		return &If{Cond: cond, Then: then, Else: els}, nil

	case "lambda":
		body, err := fromJSONExpr(node.Body)
		if err != nil {
			return nil, err
		}
		return &Lambda{Binder: node.Binder, Body: body}, nil

	case "var":
		if node.ID == nil {
			return nil, fmt.Errorf("unmarshal: var node without id")
		}
		return &Var{ID: *node.ID}, nil

	default:
		return nil, fmt.Errorf("unmarshal: unknown node tag %q", node.Tag)
	}
}

func unaryOpByName(name string) (UnaryOp, bool) {
	for op, n := range unaryNames {
		if n == name {
			return UnaryOp(op), true
		}
	}
	return 0, false
}

func binaryOpByName(name string) (BinaryOp, bool) {
	for op, n := range binaryNames {
		if n == name {
			return BinaryOp(op), true
		}
	}
	return 0, false
}
