package atri

import (
	"errors"
	"reflect"
	"testing"
)

func TestScan(t *testing.T) {
	cases := []struct {
		src    string
		tokens []Token
		err    bool
	}{
		// spaces
		{"", nil, false},
		{"   ", nil, false},
		{"1   2", []Token{{"1", TokenNum, 1}, {"2", TokenNum, 5}}, false},
		{"\t", nil, true},
		// numbers
		{"0", []Token{{"0", TokenNum, 1}}, false},
		{"9876543210", []Token{{"9876543210", TokenNum, 1}}, false},
		{"1.5", []Token{{"1.5", TokenNum, 1}}, false},
		{"1.", []Token{{"1.", TokenNum, 1}}, false},
		{"1.5.2", []Token{{"1.5", TokenNum, 1}}, true},
		{"12a", []Token{{"12", TokenNum, 1}, {"a", TokenIdent, 3}}, false},
		{".5", nil, true},
		// identifiers and keywords
		{"x", []Token{{"x", TokenIdent, 1}}, false},
		{"_x1", []Token{{"_x1", TokenIdent, 1}}, false},
		{"var", []Token{{"var", TokenVar, 1}}, false},
		{"variable", []Token{{"variable", TokenIdent, 1}}, false},
		{"va", []Token{{"va", TokenIdent, 1}}, false},
		{"true", []Token{{"true", TokenTrue, 1}}, false},
		{"false", []Token{{"false", TokenFalse, 1}}, false},
		{"trueish", []Token{{"trueish", TokenIdent, 1}}, false},
		{"var x", []Token{{"var", TokenVar, 1}, {"x", TokenIdent, 5}}, false},
		// single-rune operators
		{"+-*/%", []Token{{"+", TokenPlus, 1}, {"-", TokenMinus, 2}, {"*", TokenMul, 3}, {"/", TokenDiv, 4}, {"%", TokenMod, 5}}, false},
		{"()", []Token{{"(", TokenLParen, 1}, {")", TokenRParen, 2}}, false},
		{"a;b\nc", []Token{{"a", TokenIdent, 1}, {";", TokenSemicolon, 2}, {"b", TokenIdent, 3}, {"\n", TokenNewline, 4}, {"c", TokenIdent, 5}}, false},
		{"x=1", []Token{{"x", TokenIdent, 1}, {"=", TokenAssign, 2}, {"1", TokenNum, 3}}, false},
		// two-rune operators
		{"==", []Token{{"==", TokenEq, 1}}, false},
		{"===", []Token{{"==", TokenEq, 1}, {"=", TokenAssign, 3}}, false},
		{"!=", []Token{{"!=", TokenNotEq, 1}}, false},
		{">=<=", []Token{{">=", TokenGe, 1}, {"<=", TokenLe, 3}}, false},
		{"> <", []Token{{">", TokenGt, 1}, {"<", TokenLt, 3}}, false},
		{"&&||", []Token{{"&&", TokenAnd, 1}, {"||", TokenOr, 3}}, false},
		{"a & b", []Token{{"a", TokenIdent, 1}, {"&", TokenAmp, 3}, {"b", TokenIdent, 5}}, false},
		{"a | b", []Token{{"a", TokenIdent, 1}, {"|", TokenPipe, 3}, {"b", TokenIdent, 5}}, false},
		// negation
		{"!x", []Token{{"x", TokenNot, 1}}, false},
		{"!done2", []Token{{"done2", TokenNot, 1}}, false},
		{"!true", []Token{{"false", TokenFalse, 1}}, false},
		{"!false", []Token{{"true", TokenTrue, 1}}, false},
		{"!truer", []Token{{"truer", TokenNot, 1}}, false},
		{"! x", []Token{{"!", TokenBang, 1}, {"x", TokenIdent, 3}}, false},
		{"!1", []Token{{"!", TokenBang, 1}, {"1", TokenNum, 2}}, false},
		// statements
		{"1 + 2 * 3", []Token{{"1", TokenNum, 1}, {"+", TokenPlus, 3}, {"2", TokenNum, 5}, {"*", TokenMul, 7}, {"3", TokenNum, 9}}, false},
		{"x>=1&&!y", []Token{{"x", TokenIdent, 1}, {">=", TokenGe, 2}, {"1", TokenNum, 4}, {"&&", TokenAnd, 5}, {"y", TokenNot, 7}}, false},
		// unsupported runes
		{"$", nil, true},
		{"a$", []Token{{"a", TokenIdent, 1}}, true},
		{"1 # 2", []Token{{"1", TokenNum, 1}}, true},
	}
	for _, c := range cases {
		toks, err := Scan(c.src)
		if !reflect.DeepEqual(toks, c.tokens) {
			t.Errorf("scanning %q: want %v, got %v", c.src, c.tokens, toks)
		}
		if (err != nil) != c.err {
			t.Errorf("scanning %q: wrong error %v", c.src, err)
		}
	}
}

func TestScanErrorPos(t *testing.T) {
	_, err := Scan("ab #")
	var le *LexError
	if !errors.As(err, &le) {
		t.Fatalf("%#v is not *LexError", err)
	}
	if le.Col != 4 || le.Char != '#' {
		t.Errorf("wrong error: want '#' at 4, got %q at %d", le.Char, le.Col)
	}
	var ie InputError
	if !errors.As(err, &ie) || ie.Pos() != 4 {
		t.Errorf("%v does not report position 4", err)
	}
}

func TestStatesHaveKinds(t *testing.T) {
	for s := stateIdent; s <= stateLe; s++ {
		if stateKinds[s] == TokenNone {
			t.Errorf("state %d emits no token kind", s)
		}
	}
	for k := TokenNone; k <= TokenBang; k++ {
		if k.String() == "" {
			t.Errorf("token kind %d has no name", k)
		}
	}
}
