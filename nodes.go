package atri

import (
	"strconv"
	"strings"
)

// Node is a node in the abstract syntax tree of a statement.
type Node struct {
	kind NodeKind

	// name is the variable name for names and statements, or the literal
	// text of a number.
	name string
	// A number literal holds i if its text has no decimal point, otherwise
	// num. Evaluation widens i to float64.
	i     int64
	num   float64
	float bool
	// b is a boolean literal's value.
	b bool

	left  *Node
	right *Node
}

// NodeKind is the variant of a node.
type NodeKind int8

const (
	NodeNone NodeKind = iota

	NodeNum  // number literal
	NodeBool // boolean literal
	NodeName // reference to a stored variable

	NodeNot // logical negation of left

	NodeAdd // left + right
	NodeSub // left - right
	NodeMul // left * right
	NodeDiv // left / right
	NodeMod // left % right
	NodeEq  // left == right
	NodeGt  // left > right
	NodeGe  // left >= right
	NodeLt  // left < right
	NodeLe  // left <= right
	NodeAnd // left && right
	NodeOr  // left || right

	NodeAssign        // right-hand side of an assignment; left is the expression
	NodeDeclare       // var name
	NodeDeclareAssign // var name = left, where left is NodeAssign
	NodeSet           // name = left, where left is NodeAssign
	NodeIdent         // bare identifier statement
)

var nodeNames = [...]string{
	NodeNone:          "None",
	NodeNum:           "Num",
	NodeBool:          "Bool",
	NodeName:          "Name",
	NodeNot:           "Not",
	NodeAdd:           "Add",
	NodeSub:           "Sub",
	NodeMul:           "Mul",
	NodeDiv:           "Div",
	NodeMod:           "Mod",
	NodeEq:            "Eq",
	NodeGt:            "Gt",
	NodeGe:            "Ge",
	NodeLt:            "Lt",
	NodeLe:            "Le",
	NodeAnd:           "And",
	NodeOr:            "Or",
	NodeAssign:        "Assign",
	NodeDeclare:       "Declare",
	NodeDeclareAssign: "DeclareAssign",
	NodeSet:           "Set",
	NodeIdent:         "Ident",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeNames) {
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeNames[k]
}

// Operator returns the source operator for a unary or binary operator kind,
// or the empty string for any other kind.
func (k NodeKind) Operator() string {
	switch k {
	case NodeNot:
		return "!"
	case NodeAdd:
		return "+"
	case NodeSub:
		return "-"
	case NodeMul:
		return "*"
	case NodeDiv:
		return "/"
	case NodeMod:
		return "%"
	case NodeEq:
		return "=="
	case NodeGt:
		return ">"
	case NodeGe:
		return ">="
	case NodeLt:
		return "<"
	case NodeLe:
		return "<="
	case NodeAnd:
		return "&&"
	case NodeOr:
		return "||"
	default:
		return ""
	}
}

// IsBinary reports whether the kind is a binary operator.
func (k NodeKind) IsBinary() bool {
	return NodeAdd <= k && k <= NodeOr
}

// IsExpr reports whether nodes of the kind may appear wherever an expression
// is required.
func (k NodeKind) IsExpr() bool {
	return NodeNum <= k && k <= NodeOr
}

// Kind returns the node's variant.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Name returns the variable name of a name or statement, or the literal text
// of a number.
func (n *Node) Name() string {
	return n.name
}

// Children returns the node's direct children in evaluation order.
func (n *Node) Children() []*Node {
	switch {
	case n.kind.IsBinary():
		return []*Node{n.left, n.right}
	case n.kind == NodeNot, n.kind == NodeAssign, n.kind == NodeDeclareAssign, n.kind == NodeSet:
		return []*Node{n.left}
	default:
		return nil
	}
}

func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder) {
	switch n.kind {
	case NodeNum, NodeName, NodeIdent:
		b.WriteString(n.name)
	case NodeBool:
		b.WriteString(strconv.FormatBool(n.b))
	case NodeNot:
		b.WriteByte('!')
		n.left.fmt(b)
	case NodeAssign:
		n.left.fmt(b)
	case NodeDeclare:
		b.WriteString(keywordVar + " ")
		b.WriteString(n.name)
	case NodeDeclareAssign:
		b.WriteString(keywordVar + " ")
		fallthrough
	case NodeSet:
		b.WriteString(n.name)
		b.WriteString(" = ")
		n.left.fmt(b)
	default:
		if !n.kind.IsBinary() {
			panic("atri: invalid node kind " + n.kind.String() + " after writing " + b.String())
		}
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.kind.Operator())
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	}
}
