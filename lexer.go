// lexer.go — wire tokenizer and raw-tree grammar layer.
//
// The wire format is a whitespace-separated stream of tokens, each a single
// indicator character followed immediately by a body substring. This file
// slices raw input into typed tokens and groups them into a raw parse tree
// by the fixed arity of each indicator:
//
//	T / F   boolean literal        no children
//	I       integer literal        no children
//	S       string literal         no children
//	U       unary operator         one child
//	B       binary operator        two children
//	?       conditional            three children
//	L       lambda                 one child (body)
//	v       variable reference     no children
//
// The raw tree is deliberately generic: leaves keep their indicator and body
// untouched. Decoding bodies and renaming binders is the parser's job
// (parser.go).

package icfp

import "strings"

// Token is one wire token: indicator byte plus body text. Pos is the token's
// index in the stream, used for error reporting.
type Token struct {
	Indicator byte
	Body      string
	Pos       int
}

// RawNode is one node of the raw parse tree.
type RawNode struct {
	Tok  Token
	Kids []*RawNode
}

// arity returns the child count for an indicator, or -1 if the indicator is
// not part of the grammar.
func arity(indicator byte) int {
	switch indicator {
	case 'T', 'F', 'I', 'S', 'v':
		return 0
	case 'U', 'L':
		return 1
	case 'B':
		return 2
	case '?':
		return 3
	default:
		return -1
	}
}

// Tokenize splits text on whitespace into indicator+body tokens.
func Tokenize(text string) []Token {
	fields := strings.Fields(text)
	toks := make([]Token, 0, len(fields))
	for i, f := range fields {
		toks = append(toks, Token{Indicator: f[0], Body: f[1:], Pos: i})
	}
	return toks
}

// BuildRawTree groups a token stream into a raw parse tree. It fails when an
// indicator is outside the grammar, when the stream ends mid-expression, or
// when tokens remain after the root expression is complete.
func BuildRawTree(toks []Token) (*RawNode, error) {
	c := &cursor{toks: toks}
	node, err := c.next()
	if err != nil {
		return nil, err
	}
	if c.pos != len(c.toks) {
		return nil, &ParseError{Pos: c.pos, Msg: "trailing tokens after expression"}
	}
	return node, nil
}

type cursor struct {
	toks []Token
	pos  int
}

func (c *cursor) next() (*RawNode, error) {
	if c.pos >= len(c.toks) {
		return nil, &ParseError{Pos: c.pos, Msg: "unexpected end of input"}
	}
	tok := c.toks[c.pos]
	c.pos++
	n := arity(tok.Indicator)
	if n < 0 {
		return nil, &ParseError{Pos: tok.Pos, Msg: "unrecognized grammar rule " + string(tok.Indicator)}
	}
	node := &RawNode{Tok: tok}
	for i := 0; i < n; i++ {
		kid, err := c.next()
		if err != nil {
			return nil, err
		}
		node.Kids = append(node.Kids, kid)
	}
	return node, nil
}
