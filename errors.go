package atri

import (
	"errors"
	"strconv"
)

// LexError indicates a rune that cannot begin any token. It implements
// InputError.
type LexError struct {
	// Col is the 1-based rune column of the rune.
	Col int
	// Char is the rune that was rejected.
	Char rune
}

func (err *LexError) Error() string {
	return errpos(err.Col, "unsupported token "+strconv.QuoteRune(err.Char))
}

func (err *LexError) Pos() int {
	return err.Col
}

// ParseError indicates that no statement production matched the input, or
// that a required subexpression was missing. It implements InputError.
type ParseError struct {
	// Col is the position of the token where parsing failed. If parsing
	// failed at the end of the input, Col is one past the last token.
	Col int
	// Token is the text of the token where parsing failed, or the empty
	// string at the end of the input.
	Token string
	// Msg describes what was expected.
	Msg string
}

func (err *ParseError) Error() string {
	if err.Token == "" {
		return errpos(err.Col, err.Msg+" at end of input")
	}
	return errpos(err.Col, err.Msg+" at "+strconv.Quote(err.Token))
}

func (err *ParseError) Pos() int {
	return err.Col
}

// NumberError indicates a number literal that cannot be represented. It
// implements InputError.
type NumberError struct {
	Col  int
	Text string
	// Err is the conversion error.
	Err error
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text)+": "+err.Err.Error())
}

func (err *NumberError) Pos() int {
	return err.Col
}

func (err *NumberError) Unwrap() error {
	return err.Err
}

// RedeclarationError is an error from declaring a name that is already
// declared in the store.
type RedeclarationError struct {
	Name string
}

func (err *RedeclarationError) Error() string {
	return strconv.Quote(err.Name) + " is already declared"
}

// UndeclaredError is an error from assigning to a name that was never
// declared in the store.
type UndeclaredError struct {
	Name string
}

func (err *UndeclaredError) Error() string {
	return "assignment to undeclared variable " + strconv.Quote(err.Name)
}

// TypeError is an error from applying an operator to operands of types it
// does not support.
type TypeError struct {
	// Op is the operator.
	Op string
	// Left and Right are the operand expressions, and LVal and RVal are
	// their values.
	Left, Right string
	LVal, RVal  Value
}

func (err *TypeError) Error() string {
	return "operator " + strconv.Quote(err.Op) + " cannot be used for " +
		err.Left + "(" + err.LVal.String() + ") and " +
		err.Right + "(" + err.RVal.String() + ")"
}

// ErrNoStatement is the error for a line that contains no statements.
var ErrNoStatement = errors.New("no statement")

// StatementError wraps an error from executing a statement.
type StatementError struct {
	// Index is the 0-based index of the failed statement in its program.
	Index int
	// Stmt is the formatted statement.
	Stmt string
	Err  error
}

func (err *StatementError) Error() string {
	return "statement " + strconv.Itoa(err.Index+1) + " (" + err.Stmt + "): " + err.Err.Error()
}

func (err *StatementError) Unwrap() error {
	return err.Err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// malformed input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the start of the token that
	// caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*NumberError)(nil)
)
