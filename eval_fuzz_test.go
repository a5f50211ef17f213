package atri_test

import (
	"testing"

	"github.com/zephyrtronium/atri"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("var x = 1; x + 2")
	f.Add("5 > 3 && !y")
	f.Fuzz(func(t *testing.T, s string) {
		if r := atri.EvalString(s); r == "" {
			t.Errorf("%q gave an empty result", s)
		}
	})
}
