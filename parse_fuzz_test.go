package atri

import (
	"testing"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("(1 + 2) * 3")
	f.Add("var x; x = !true")
	f.Add("x = 2 * (y - 1) % 3")
	f.Add("a > 1 && !b")
	f.Fuzz(func(t *testing.T, s string) {
		toks, err := Scan(s)
		if err != nil {
			return
		}
		for _, tok := range toks {
			if tok.Kind == TokenNone || tok.Pos < 1 {
				t.Errorf("%q gave invalid token %v", s, tok)
			}
		}
		p, err := ParseTokens(toks)
		if err != nil {
			return
		}
		// Comparisons and logic format with parentheses, which only enclose
		// arithmetic, so only other programs are expected to reparse.
		for _, n := range p.Statements() {
			if !reparses(n) {
				return
			}
		}
		q, err := Parse(p.String())
		if err != nil {
			t.Fatalf("%q formatted as %q, which does not parse: %v", s, p, err)
		}
		if p.String() != q.String() {
			t.Errorf("%q reparsed as %q, not %q", s, q, p)
		}
	})
}

// reparses reports whether the formatted statement parses back to itself.
func reparses(n *Node) bool {
	switch n.kind {
	case NodeDeclare:
		return true
	case NodeDeclareAssign, NodeSet:
		return reparses(n.left.left)
	case NodeNum, NodeName, NodeBool, NodeNot:
		return true
	case NodeAdd, NodeSub, NodeMul, NodeDiv, NodeMod:
		return reparses(n.left) && reparses(n.right)
	default:
		return false
	}
}
