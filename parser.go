// parser.go — renaming parser: raw parse tree -> Expr.
//
// Besides decoding token bodies through the value codec, the parser performs
// capture-avoiding renaming of bound variables. The evaluator stores bindings
// in one flat, global environment with no scope stack (see eval.go), so two
// lambdas binding the same source-level numeral would collide and corrupt
// unrelated bindings whenever both are live, as happens inside recursive or
// higher-order applications. Renaming every binder to a globally unique id at
// parse time removes that entire class of capture bugs.
//
// Raw ids are the programmer-facing non-negative integers from the wire.
// Renamed ids are strictly negative, drawn from a single decreasing counter
// seeded at -1 and shared across the whole parse. The disjoint ranges keep
// the two id spaces trivially distinguishable when debugging.

package icfp

// Parse tokenizes text, builds the raw tree, and lowers it to a renamed Expr.
func Parse(text string) (Expr, error) {
	raw, err := BuildRawTree(Tokenize(text))
	if err != nil {
		return nil, err
	}
	return ParseRaw(raw)
}

// ParseRaw lowers a raw parse tree to an Expr with globally unique binder
// ids. A fresh rename counter is used per call, so independent programs get
// independent id spaces.
func ParseRaw(raw *RawNode) (Expr, error) {
	counter := int64(-1)
	return parseNode(raw, nil, &counter)
}

// parseNode recurses over the raw tree. renames maps raw id -> renamed id for
// every binder in scope; it is treated as immutable, so sibling subtrees see
// an identical snapshot and none can observe another's bindings. counter is
// the shared rename allocator.
func parseNode(n *RawNode, renames map[int64]int64, counter *int64) (Expr, error) {
	tok := n.Tok
	switch tok.Indicator {
	case 'T':
		return &Lit{Val: Bool(true)}, nil
	case 'F':
		return &Lit{Val: Bool(false)}, nil

	case 'I':
		v, err := DecodeInteger(tok.Body)
		if err != nil {
			return nil, err
		}
		return &Lit{Val: v}, nil

	case 'S':
		return &Lit{Val: DecodeString(tok.Body)}, nil

	case 'U':
		op, ok := unaryOpFromCode(opCode(tok))
		if !ok {
			return nil, &ParseError{Pos: tok.Pos, Msg: "unknown unary opcode " + tok.Body}
		}
		operand, err := parseNode(n.Kids[0], renames, counter)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Operand: operand}, nil

	case 'B':
		op, ok := binaryOpFromCode(opCode(tok))
		if !ok {
			return nil, &ParseError{Pos: tok.Pos, Msg: "unknown binary opcode " + tok.Body}
		}
		left, err := parseNode(n.Kids[0], renames, counter)
		if err != nil {
			return nil, err
		}
		right, err := parseNode(n.Kids[1], renames, counter)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: op, Left: left, Right: right}, nil

	case '?':
		cond, err := parseNode(n.Kids[0], renames, counter)
		if err != nil {
			return nil, err
		}
		then, err := parseNode(n.Kids[1], renames, counter)
		if err != nil {
			return nil, err
		}
		els, err := parseNode(n.Kids[2], renames, counter)
		if err != nil {
			return nil, err
		}
		return &If{Cond: cond, Then: then, Else: els}, nil

	case 'L':
		rawID, err := DecodeIntegerBody(tok.Body)
		if err != nil {
			return nil, err
		}
		fresh := *counter
		*counter--
		// Overlay the new binding on a copy; the caller's snapshot must not
		// observe it.
		overlay := make(map[int64]int64, len(renames)+1)
		for k, v := range renames {
			overlay[k] = v
		}
		overlay[rawID] = fresh
		body, err := parseNode(n.Kids[0], overlay, counter)
		if err != nil {
			return nil, err
		}
		return &Lambda{Binder: fresh, Body: body}, nil

	case 'v':
		rawID, err := DecodeIntegerBody(tok.Body)
		if err != nil {
			return nil, err
		}
		if renamed, ok := renames[rawID]; ok {
			return &Var{ID: renamed}, nil
		}
		// Free variable: keep the raw id. Well-formed programs never do
		// this, but it is not rejected statically; the evaluator reports
		// UnboundVariableError if the reference is ever reached.
		return &Var{ID: rawID}, nil

	default:
		return nil, &ParseError{Pos: tok.Pos, Msg: "unrecognized grammar rule " + string(tok.Indicator)}
	}
}

// opCode extracts the single-character opcode body of a U/B token; a zero
// byte never matches any opcode table entry.
func opCode(tok Token) byte {
	if len(tok.Body) != 1 {
		return 0
	}
	return tok.Body[0]
}
