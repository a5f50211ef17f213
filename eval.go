package atri

import (
	"errors"
	"math"
)

// Result is the outcome of executing one statement.
type Result struct {
	// Kind is the kind of the statement.
	Kind NodeKind
	// Name is the declared or assigned variable for declarations and
	// assignments.
	Name string
	// Value is the value of an expression statement or the value stored by
	// an assignment.
	Value Value
}

// String formats the result: an expression as its value, a declaration as
// the declared name, and an assignment as "name = value".
func (r Result) String() string {
	switch r.Kind {
	case NodeDeclare:
		return r.Name
	case NodeDeclareAssign, NodeSet:
		return r.Name + " = " + r.Value.String()
	default:
		return r.Value.String()
	}
}

// exec executes a statement against a store. If redefine is set, declaring
// a name that is already declared is not an error: a plain declaration leaves
// the variable alone, and a declaration with a value assigns it.
func (n *Node) exec(s Store, redefine bool) (Result, error) {
	r := Result{Kind: n.kind, Name: n.name}
	switch n.kind {
	case NodeDeclare:
		err := declarable(s, n.name)
		if redefine && isRedeclaration(err) {
			return r, nil
		}
		if err != nil {
			return r, err
		}
		return r, s.Declare(n.name)
	case NodeDeclareAssign:
		err := declarable(s, n.name)
		if err != nil && !(redefine && isRedeclaration(err)) {
			return r, err
		}
		return n.assign(s, r)
	case NodeSet:
		_, ok, err := s.Lookup(n.name)
		if err != nil {
			return r, err
		}
		if !ok {
			return r, &UndeclaredError{Name: n.name}
		}
		return n.assign(s, r)
	case NodeIdent:
		v, _, err := s.Lookup(n.name)
		r.Value = v
		return r, err
	default:
		v, err := n.eval(s)
		r.Value = v
		return r, err
	}
}

// declarable returns a RedeclarationError if name is declared in s.
func declarable(s Store, name string) error {
	_, ok, err := s.Lookup(name)
	if err != nil {
		return err
	}
	if ok {
		return &RedeclarationError{Name: name}
	}
	return nil
}

func isRedeclaration(err error) bool {
	var re *RedeclarationError
	return errors.As(err, &re)
}

// assign evaluates the assignment child of n and stores it under n's name.
func (n *Node) assign(s Store, r Result) (Result, error) {
	v, err := n.left.eval(s)
	if err != nil {
		return r, err
	}
	r.Value = v
	return r, s.Set(n.name, v)
}

// eval computes the value of an expression.
func (n *Node) eval(s Store) (Value, error) {
	switch n.kind {
	case NodeNum:
		if n.float {
			return Number(n.num), nil
		}
		return Number(float64(n.i)), nil
	case NodeBool:
		return Bool(n.b), nil
	case NodeName:
		// Undeclared and unassigned names are both undefined.
		v, _, err := s.Lookup(n.name)
		return v, err
	case NodeAssign:
		return n.left.eval(s)
	case NodeNot:
		v, err := n.left.eval(s)
		if err != nil {
			return Undefined, err
		}
		return Bool(!v.Truthy()), nil
	case NodeAdd, NodeSub, NodeMul, NodeDiv, NodeMod, NodeEq,
		NodeGt, NodeGe, NodeLt, NodeLe, NodeAnd, NodeOr:
		// Both operands are always evaluated.
		l, err := n.left.eval(s)
		if err != nil {
			return Undefined, err
		}
		r, err := n.right.eval(s)
		if err != nil {
			return Undefined, err
		}
		return n.binary(l, r)
	default:
		panic("atri: eval on " + n.kind.String() + " node")
	}
}

// binary applies a binary operator node to its evaluated operands.
func (n *Node) binary(l, r Value) (Value, error) {
	if n.kind == NodeEq {
		return Bool(l.Equal(r)), nil
	}
	switch {
	case l.kind == ValueNumber && r.kind == ValueNumber:
		x, y := l.num, r.num
		switch n.kind {
		case NodeAdd:
			return Number(x + y), nil
		case NodeSub:
			return Number(x - y), nil
		case NodeMul:
			return Number(x * y), nil
		case NodeDiv:
			return Number(x / y), nil
		case NodeMod:
			return Number(math.Mod(x, y)), nil
		case NodeGt:
			return Bool(x > y), nil
		case NodeGe:
			return Bool(x >= y), nil
		case NodeLt:
			return Bool(x < y), nil
		case NodeLe:
			return Bool(x <= y), nil
		}
	case l.kind == ValueBool && r.kind == ValueBool:
		switch n.kind {
		case NodeAnd:
			return Bool(l.b && r.b), nil
		case NodeOr:
			// Known defect: || computes the same as &&.
			return Bool(l.b && r.b), nil
		}
	}
	return Undefined, &TypeError{
		Op:    n.kind.Operator(),
		Left:  n.left.String(),
		Right: n.right.String(),
		LVal:  l,
		RVal:  r,
	}
}

// Eval scans, parses, and executes a source line against s, returning the
// result of every statement. Execution stops at the first error; statements
// before it have already modified s.
func Eval(src string, s Store) ([]Result, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return prog.Exec(s)
}

// Exec executes the program's statements in order against s.
func (p *Program) Exec(s Store) ([]Result, error) {
	return p.exec(s, false)
}

// Define executes the program like Exec, except that declaring a name that
// is already in s is not an error. A declaration without a value keeps the
// existing variable, and a declaration with a value assigns it. Define suits
// setup code that may run repeatedly against a persistent store.
func (p *Program) Define(s Store) ([]Result, error) {
	return p.exec(s, true)
}

func (p *Program) exec(s Store, redefine bool) ([]Result, error) {
	rs := make([]Result, 0, len(p.stmts))
	for i, n := range p.stmts {
		r, err := n.exec(s, redefine)
		if err != nil {
			return nil, &StatementError{Index: i, Stmt: n.String(), Err: err}
		}
		rs = append(rs, r)
	}
	return rs, nil
}
