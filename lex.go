package atri

import (
	"strconv"
	"strings"
	"unicode"
)

// Token is a single lexical unit of a source line.
type Token struct {
	// Text is the lexeme. For a negated identifier, Text is the identifier
	// without the leading !.
	Text string
	// Kind classifies the token.
	Kind TokenKind
	// Pos is the 1-based rune column at which the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the kind of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is an integer or decimal literal.
	TokenNum
	// TokenIdent is a variable name.
	TokenIdent
	// TokenVar is the declaration keyword var.
	TokenVar
	// TokenAssign is =.
	TokenAssign
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenMod
	TokenGt
	TokenLt
	TokenAnd
	TokenOr
	TokenEq
	TokenNotEq
	TokenGe
	TokenLe
	TokenLParen
	TokenRParen
	TokenTrue
	TokenFalse
	// TokenNot is the negation of the identifier in Text.
	TokenNot
	TokenNewline
	TokenSemicolon
	// TokenAmp, TokenPipe, and TokenBang are a lone &, |, or ! respectively.
	// No production accepts them.
	TokenAmp
	TokenPipe
	TokenBang
)

var tokenNames = [...]string{
	TokenNone:      "None",
	TokenNum:       "Num",
	TokenIdent:     "Ident",
	TokenVar:       "Var",
	TokenAssign:    "Assign",
	TokenPlus:      "Plus",
	TokenMinus:     "Minus",
	TokenMul:       "Mul",
	TokenDiv:       "Div",
	TokenMod:       "Mod",
	TokenGt:        "Gt",
	TokenLt:        "Lt",
	TokenAnd:       "And",
	TokenOr:        "Or",
	TokenEq:        "Eq",
	TokenNotEq:     "NotEq",
	TokenGe:        "Ge",
	TokenLe:        "Le",
	TokenLParen:    "LParen",
	TokenRParen:    "RParen",
	TokenTrue:      "True",
	TokenFalse:     "False",
	TokenNot:       "Not",
	TokenNewline:   "Newline",
	TokenSemicolon: "Semicolon",
	TokenAmp:       "Amp",
	TokenPipe:      "Pipe",
	TokenBang:      "Bang",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// terminates reports whether the token kind ends a statement.
func (k TokenKind) terminates() bool {
	return k == TokenNewline || k == TokenSemicolon
}

// Reserved words.
const (
	keywordVar   = "var"
	keywordTrue  = "true"
	keywordFalse = "false"
)

// lexState is a state of the scanner. Every state other than stateInit has a
// pending lexeme and knows the kind of token to emit for it.
type lexState int8

const (
	stateInit lexState = iota
	stateIdent
	stateVar
	stateTrue
	stateFalse
	stateNum
	stateAssign
	stateEq
	statePlus
	stateMinus
	stateMul
	stateDiv
	stateMod
	stateLParen
	stateRParen
	stateNewline
	stateSemicolon
	stateAmp
	stateAnd
	statePipe
	stateOr
	stateBang
	stateNotEq
	stateNotIdent
	stateNotTrue
	stateNotFalse
	stateGt
	stateGe
	stateLt
	stateLe
)

var stateKinds = [...]TokenKind{
	stateInit:      TokenNone,
	stateIdent:     TokenIdent,
	stateVar:       TokenVar,
	stateTrue:      TokenTrue,
	stateFalse:     TokenFalse,
	stateNum:       TokenNum,
	stateAssign:    TokenAssign,
	stateEq:        TokenEq,
	statePlus:      TokenPlus,
	stateMinus:     TokenMinus,
	stateMul:       TokenMul,
	stateDiv:       TokenDiv,
	stateMod:       TokenMod,
	stateLParen:    TokenLParen,
	stateRParen:    TokenRParen,
	stateNewline:   TokenNewline,
	stateSemicolon: TokenSemicolon,
	stateAmp:       TokenAmp,
	stateAnd:       TokenAnd,
	statePipe:      TokenPipe,
	stateOr:        TokenOr,
	stateBang:      TokenBang,
	stateNotEq:     TokenNotEq,
	stateNotIdent:  TokenNot,
	stateNotTrue:   TokenFalse,
	stateNotFalse:  TokenTrue,
	stateGt:        TokenGt,
	stateGe:        TokenGe,
	stateLt:        TokenLt,
	stateLe:        TokenLe,
}

// single maps runes that begin a token by themselves to their states.
var single = map[rune]lexState{
	'=':  stateAssign,
	'+':  statePlus,
	'-':  stateMinus,
	'*':  stateMul,
	'/':  stateDiv,
	'%':  stateMod,
	'(':  stateLParen,
	')':  stateRParen,
	'\n': stateNewline,
	';':  stateSemicolon,
	'&':  stateAmp,
	'|':  statePipe,
	'!':  stateBang,
	'>':  stateGt,
	'<':  stateLt,
}

// step returns the state reached by extending the lexeme text, scanned in
// state s, with r. The second result is the new lexeme. ok is false if s has
// no transition on r.
func step(s lexState, text string, r rune) (next lexState, lexeme string, ok bool) {
	switch s {
	case stateInit:
		switch {
		case isIdentStart(r):
			return stateIdent, string(r), true
		case isDigit(r):
			return stateNum, string(r), true
		}
		if n, ok := single[r]; ok {
			return n, string(r), true
		}
	case stateIdent, stateVar, stateTrue, stateFalse:
		if isIdentPart(r) {
			t := text + string(r)
			switch t {
			case keywordVar:
				return stateVar, t, true
			case keywordTrue:
				return stateTrue, t, true
			case keywordFalse:
				return stateFalse, t, true
			}
			return stateIdent, t, true
		}
	case stateNum:
		// Whitespace and anything else that is neither a digit nor a first
		// decimal point ends the number.
		if isDigit(r) || r == '.' && !strings.ContainsRune(text, '.') {
			return stateNum, text + string(r), true
		}
	case stateAssign:
		if r == '=' {
			return stateEq, "==", true
		}
	case stateAmp:
		if r == '&' {
			return stateAnd, "&&", true
		}
	case statePipe:
		if r == '|' {
			return stateOr, "||", true
		}
	case stateGt:
		if r == '=' {
			return stateGe, ">=", true
		}
	case stateLt:
		if r == '=' {
			return stateLe, "<=", true
		}
	case stateBang:
		if r == '=' {
			return stateNotEq, "!=", true
		}
		if isIdentStart(r) {
			// The ! is not part of the lexeme.
			return stateNotIdent, string(r), true
		}
	case stateNotIdent, stateNotTrue, stateNotFalse:
		if isIdentPart(r) {
			t := text + string(r)
			switch t {
			case keywordTrue:
				return stateNotTrue, t, true
			case keywordFalse:
				return stateNotFalse, t, true
			}
			return stateNotIdent, t, true
		}
	}
	return stateInit, "", false
}

// emit creates the token for the lexeme scanned in s.
func (s lexState) emit(text string, pos int) Token {
	switch s {
	case stateInit:
		panic("atri: emit from initial lexer state")
	case stateNotTrue:
		// !true folds to false at lex time and vice versa.
		text = keywordFalse
	case stateNotFalse:
		text = keywordTrue
	}
	return Token{Text: text, Kind: stateKinds[s], Pos: pos}
}

// Scan splits a source line into tokens. When a state rejects a rune, the
// pending lexeme becomes a token and scanning restarts from the initial state
// on that rune. Spaces between tokens are skipped. Any rune that cannot begin
// a token is an error; the tokens scanned before it are returned with it.
func Scan(src string) ([]Token, error) {
	var toks []Token
	s, text, start := stateInit, "", 0
	col := 0
	for _, r := range src {
		col++
		if s != stateInit {
			if n, t, ok := step(s, text, r); ok {
				s, text = n, t
				continue
			}
			toks = append(toks, s.emit(text, start))
			s, text = stateInit, ""
		}
		if r == ' ' {
			continue
		}
		n, t, ok := step(stateInit, "", r)
		if !ok {
			return toks, &LexError{Col: col, Char: r}
		}
		s, text, start = n, t, col
	}
	if s != stateInit {
		toks = append(toks, s.emit(text, start))
	}
	return toks, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
