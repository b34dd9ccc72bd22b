// errors.go
//
// Error taxonomy for the lexer, parser and evaluator. Every failure is a
// typed, local, recoverable error returned to the caller; nothing is retried
// internally and the evaluator's environment is never left half-updated on
// failure. The cmd layer owns presentation; each type here carries just the
// kind and the minimal context needed to diagnose it.

package icfp

import "fmt"

// ParseError reports a malformed token stream or an unrecognized grammar
// node. Pos is the zero-based index of the offending token, or the token
// count when input ended early.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at token %d: %s", e.Pos, e.Msg)
}

// InvalidDigitError reports a base-94 body containing a character outside
// ASCII 33..126.
type InvalidDigitError struct {
	Body string
	Char byte
}

func (e *InvalidDigitError) Error() string {
	return fmt.Sprintf("invalid base-94 digit %q in %q", e.Char, e.Body)
}

// UnboundVariableError reports a variable reference with no binding in the
// environment. Renaming guarantees every reachable reference is bound by the
// time it is evaluated, so this is an invariant violation, not bad user input.
type UnboundVariableError struct {
	ID int64
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable v%d", e.ID)
}

// TypeMismatchError reports an operator applied to the wrong Value variant.
type TypeMismatchError struct {
	Op       string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Op, e.Expected, e.Actual)
}

// DivisionByZeroError reports a Div or Mod with a zero right operand.
type DivisionByZeroError struct {
	Op string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s by zero", e.Op)
}

// IndexOutOfRangeError reports a Take/Drop count outside [0, len(s)].
type IndexOutOfRangeError struct {
	Op  string
	N   int64
	Len int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s count %d out of range for string of length %d", e.Op, e.N, e.Len)
}

// ApplyNonFunctionError reports an Apply whose left operand reduced to a
// terminal that is not a lambda.
type ApplyNonFunctionError struct {
	Value Value
}

func (e *ApplyNonFunctionError) Error() string {
	return fmt.Sprintf("apply of non-function value %s", FormatValue(e.Value))
}

// NonBooleanConditionError reports a conditional guard that fully evaluated
// to something other than a boolean.
type NonBooleanConditionError struct {
	Actual string
}

func (e *NonBooleanConditionError) Error() string {
	return fmt.Sprintf("conditional guard evaluated to %s, want boolean", e.Actual)
}

// NonTerminationError reports an exhausted iteration budget. The budget is a
// resource limit standing in for an (undecidable) halting check, not a
// semantic feature.
type NonTerminationError struct {
	Budget int
}

func (e *NonTerminationError) Error() string {
	return fmt.Sprintf("evaluation did not terminate within %d steps", e.Budget)
}
