package atri

import (
	"strconv"
	"strings"
)

// statement   = declaration | declAssign | assignment | expr
// declaration = 'var' ident                 (followed by a terminator or the end)
// declAssign  = 'var' ident '=' expr
// assignment  = ident '=' expr
// expr        = (arith | logic) terminator   (arith is tried first)
// logic       = compare { ('&&' | '||') compare }
// compare     = (arith | primary) { ('==' | '>' | '>=' | '<' | '<=') primary }
// arith       = term { ('+' | '-') term }
// term        = operand { ('*' | '/' | '%') operand }
// operand     = num | ident | '(' arith ')'
// primary     = num | ident | 'true' | 'false' | '!'ident | '(' arith ')'
//
// A terminator is a newline, a semicolon, or the end of the input.

// Program is a parsed source line.
type Program struct {
	stmts []*Node
}

// Statements returns the top-level statements of the program in order.
func (p *Program) Statements() []*Node {
	return append(([]*Node)(nil), p.stmts...)
}

// String formats the program's statements separated by semicolons.
func (p *Program) String() string {
	var b strings.Builder
	for i, n := range p.stmts {
		if i > 0 {
			b.WriteString("; ")
		}
		n.fmt(&b)
	}
	return b.String()
}

// Parse scans and parses a source line.
func Parse(src string) (*Program, error) {
	toks, err := Scan(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses a token sequence into statements. Each statement is
// parsed by trying, in order, an assignment, a bare expression, and a
// declaration. The first to succeed is used; if none does, the result is a
// *ParseError.
func ParseTokens(toks []Token) (*Program, error) {
	p := parser{toks: toks}
	var prog Program
	for {
		for !p.eof() && p.toks[p.pos].Kind.terminates() {
			p.pos++
		}
		if p.eof() {
			return &prog, nil
		}
		n, err := p.statement()
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, p.fail("syntactic error")
		}
		prog.stmts = append(prog.stmts, n)
	}
}

// parser is a cursor over a token buffer. Each production method either
// returns a node, or returns nil with the cursor restored to where the
// production began. A non-nil error is fatal to the whole parse.
type parser struct {
	toks []Token
	pos  int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.toks)
}

// accept consumes the next token if it has the given kind.
func (p *parser) accept(k TokenKind) (Token, bool) {
	if p.eof() || p.toks[p.pos].Kind != k {
		return Token{}, false
	}
	p.pos++
	return p.toks[p.pos-1], true
}

// acceptOp consumes the next token if it is a binary operator in ops.
func (p *parser) acceptOp(ops map[TokenKind]NodeKind) (NodeKind, bool) {
	if p.eof() {
		return NodeNone, false
	}
	k, ok := ops[p.toks[p.pos].Kind]
	if ok {
		p.pos++
	}
	return k, ok
}

// terminated consumes a statement terminator, or reports whether the cursor
// is at the end of the input.
func (p *parser) terminated() bool {
	if p.eof() {
		return true
	}
	if p.toks[p.pos].Kind.terminates() {
		p.pos++
		return true
	}
	return false
}

// fail creates a parse error at the cursor.
func (p *parser) fail(msg string) error {
	if p.eof() {
		col := 1
		if len(p.toks) > 0 {
			last := p.toks[len(p.toks)-1]
			col = last.Pos + len([]rune(last.Text))
		}
		return &ParseError{Col: col, Msg: msg}
	}
	tok := p.toks[p.pos]
	return &ParseError{Col: tok.Pos, Token: tok.Text, Msg: msg}
}

func (p *parser) statement() (*Node, error) {
	n, err := p.assignment()
	if n != nil || err != nil {
		return n, err
	}
	n, err = p.expr()
	if n != nil || err != nil {
		return n, err
	}
	return p.declaration()
}

// assignment parses ident '=' expr.
func (p *parser) assignment() (*Node, error) {
	start := p.pos
	name, ok := p.accept(TokenIdent)
	if !ok {
		return nil, nil
	}
	if _, ok := p.accept(TokenAssign); !ok {
		p.pos = start
		return nil, nil
	}
	rhs, err := p.rhs()
	if err != nil {
		return nil, err
	}
	return &Node{kind: NodeSet, name: name.Text, left: rhs}, nil
}

// declaration parses 'var' ident, optionally followed by '=' expr.
func (p *parser) declaration() (*Node, error) {
	start := p.pos
	if _, ok := p.accept(TokenVar); !ok {
		return nil, nil
	}
	name, ok := p.accept(TokenIdent)
	if !ok {
		p.pos = start
		return nil, nil
	}
	if p.terminated() {
		return &Node{kind: NodeDeclare, name: name.Text}, nil
	}
	if _, ok := p.accept(TokenAssign); !ok {
		p.pos = start
		return nil, nil
	}
	rhs, err := p.rhs()
	if err != nil {
		return nil, err
	}
	return &Node{kind: NodeDeclareAssign, name: name.Text, left: rhs}, nil
}

// rhs parses the mandatory expression following an assignment operator.
func (p *parser) rhs() (*Node, error) {
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, p.fail("expected expression after =")
	}
	return &Node{kind: NodeAssign, left: e}, nil
}

// expr parses a complete expression statement including its terminator.
// Arithmetic is tried first; if it does not reach a terminator, the parser
// backtracks and tries a logical expression.
func (p *parser) expr() (*Node, error) {
	start := p.pos
	n, err := p.arith()
	if err != nil {
		return nil, err
	}
	if n != nil && p.terminated() {
		return n, nil
	}
	p.pos = start
	n, err = p.logic()
	if err != nil {
		return nil, err
	}
	if n != nil && p.terminated() {
		return n, nil
	}
	p.pos = start
	return nil, nil
}

var (
	logicOps = map[TokenKind]NodeKind{
		TokenAnd: NodeAnd,
		TokenOr:  NodeOr,
	}
	compareOps = map[TokenKind]NodeKind{
		TokenEq: NodeEq,
		TokenGt: NodeGt,
		TokenGe: NodeGe,
		TokenLt: NodeLt,
		TokenLe: NodeLe,
	}
	addOps = map[TokenKind]NodeKind{
		TokenPlus:  NodeAdd,
		TokenMinus: NodeSub,
	}
	mulOps = map[TokenKind]NodeKind{
		TokenMul: NodeMul,
		TokenDiv: NodeDiv,
		TokenMod: NodeMod,
	}
)

// binary parses a left-associative chain of operands joined by ops. first
// parses the leftmost operand; next parses each operand after an operator,
// which is mandatory.
func (p *parser) binary(ops map[TokenKind]NodeKind, first, next func() (*Node, error)) (*Node, error) {
	start := p.pos
	n, err := first()
	if err != nil {
		return nil, err
	}
	if n == nil {
		p.pos = start
		return nil, nil
	}
	for {
		op, ok := p.acceptOp(ops)
		if !ok {
			return n, nil
		}
		rhs, err := next()
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, p.fail("expected operand after " + op.Operator())
		}
		n = &Node{kind: op, left: n, right: rhs}
	}
}

func (p *parser) logic() (*Node, error) {
	return p.binary(logicOps, p.compare, p.compare)
}

func (p *parser) compare() (*Node, error) {
	return p.binary(compareOps, p.arithOrPrimary, p.primary)
}

func (p *parser) arithOrPrimary() (*Node, error) {
	n, err := p.arith()
	if n != nil || err != nil {
		return n, err
	}
	return p.primary()
}

func (p *parser) arith() (*Node, error) {
	return p.binary(addOps, p.term, p.term)
}

func (p *parser) term() (*Node, error) {
	return p.binary(mulOps, p.operand, p.operand)
}

// operand parses an operand of arithmetic: a number, a name, or a
// parenthesized arithmetic expression.
func (p *parser) operand() (*Node, error) {
	if p.eof() {
		return nil, nil
	}
	tok := p.toks[p.pos]
	switch tok.Kind {
	case TokenNum:
		p.pos++
		return number(tok)
	case TokenIdent:
		p.pos++
		return &Node{kind: NodeName, name: tok.Text}, nil
	case TokenLParen:
		p.pos++
		n, err := p.arith()
		if err != nil {
			return nil, err
		}
		if n == nil {
			p.pos--
			return nil, nil
		}
		if _, ok := p.accept(TokenRParen); !ok {
			return nil, p.fail("expected )")
		}
		return n, nil
	default:
		return nil, nil
	}
}

// primary parses an operand of comparison, which additionally allows boolean
// literals and negated names.
func (p *parser) primary() (*Node, error) {
	if p.eof() {
		return nil, nil
	}
	tok := p.toks[p.pos]
	switch tok.Kind {
	case TokenTrue, TokenFalse:
		p.pos++
		return &Node{kind: NodeBool, b: tok.Kind == TokenTrue}, nil
	case TokenNot:
		p.pos++
		return &Node{kind: NodeNot, left: &Node{kind: NodeName, name: tok.Text}}, nil
	default:
		return p.operand()
	}
}

// number creates a number literal node. Text with a decimal point is a
// floating-point literal; otherwise it is an integer literal.
func number(tok Token) (*Node, error) {
	n := Node{kind: NodeNum, name: tok.Text}
	var err error
	if strings.ContainsRune(tok.Text, '.') {
		n.float = true
		n.num, err = strconv.ParseFloat(tok.Text, 64)
	} else {
		n.i, err = strconv.ParseInt(tok.Text, 10, 64)
	}
	if err != nil {
		return nil, &NumberError{Col: tok.Pos, Text: tok.Text, Err: err}
	}
	return &n, nil
}
