package atri

import (
	"fmt"
	"log"
)

// Interpreter evaluates source lines against one variable store. It is not
// safe to use an Interpreter concurrently, nor to share its store with
// another Interpreter that is evaluating at the same time.
type Interpreter struct {
	store  Store
	log    *log.Logger
	prefix string
}

// Option is an option used when creating an interpreter.
type Option interface {
	interpOption(*Interpreter)
}

type (
	storeopt  struct{ s Store }
	logopt    struct{ l *log.Logger }
	prefixopt string
)

func (o storeopt) interpOption(ip *Interpreter)  { ip.store = o.s }
func (o logopt) interpOption(ip *Interpreter)    { ip.log = o.l }
func (o prefixopt) interpOption(ip *Interpreter) { ip.prefix = string(o) }

// WithStore sets the store that holds the interpreter's variables. Reusing a
// store across interpreters makes variables from one visible to the others.
// By default, each interpreter has its own Memory.
func WithStore(s Store) Option {
	return storeopt{s}
}

// WithLogger sets a logger that receives a line for every failed evaluation.
// By default, nothing is logged.
func WithLogger(l *log.Logger) Option {
	return logopt{l}
}

// WithErrorPrefix sets the text preceding error messages returned from Eval.
// The default is "error: ".
func WithErrorPrefix(prefix string) Option {
	return prefixopt(prefix)
}

// DefaultErrorPrefix is the error prefix of interpreters that do not set one.
const DefaultErrorPrefix = "error: "

// New creates an interpreter.
func New(opts ...Option) *Interpreter {
	ip := Interpreter{prefix: DefaultErrorPrefix}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.interpOption(&ip)
	}
	if ip.store == nil {
		ip.store = NewMemory()
	}
	return &ip
}

// Store returns the interpreter's variable store.
func (ip *Interpreter) Store() Store {
	return ip.store
}

// Run evaluates a source line and returns the result of each statement.
func (ip *Interpreter) Run(src string) ([]Result, error) {
	return Eval(src, ip.store)
}

// Define evaluates a source line like Run, except that declarations of
// names already in the store assign or keep them instead of failing. See
// Program.Define.
func (ip *Interpreter) Define(src string) ([]Result, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return prog.Define(ip.store)
}

// Eval evaluates a source line and formats the result of its last statement.
// Earlier statements run only for their effects on the store. If the line has
// no statements or any statement fails, the result is the error message
// following the interpreter's error prefix. Eval never panics.
func (ip *Interpreter) Eval(src string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = ip.fail(src, fmt.Errorf("internal error: %v", r))
		}
	}()
	rs, err := ip.Run(src)
	if err != nil {
		return ip.fail(src, err)
	}
	if len(rs) == 0 {
		return ip.fail(src, ErrNoStatement)
	}
	return rs[len(rs)-1].String()
}

func (ip *Interpreter) fail(src string, err error) string {
	if ip.log != nil {
		ip.log.Printf("eval %q: %v", src, err)
	}
	return ip.prefix + err.Error()
}

// EvalString evaluates a source line with a new interpreter. Unless opts
// include a store, variables do not outlive the call.
func EvalString(src string, opts ...Option) string {
	return New(opts...).Eval(src)
}
