package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/atri"
	"github.com/zephyrtronium/atri/boltstore"
)

func main() {
	log.SetFlags(0)
	var (
		inname, cfgname string
		dbname, prefix  string
		with            [][2]string
		nl, echo, repl  bool
		fresh           bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.StringVar(&dbname, "db", "", "bbolt database holding variables across runs")
	flag.StringVar(&prefix, "prefix", "", "text preceding error results (default \""+atri.DefaultErrorPrefix+"\")")
	flag.Func("given", "name=value variable declaration (any number of times); reassigns the variable if the database already has it", addwith)
	flag.BoolVar(&nl, "n", false, "evaluate separate input lines separately")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&repl, "repl", false, "start an interactive session")
	flag.BoolVar(&fresh, "fresh", false, "use new in-memory variables for every evaluation, repeating given declarations (the database is not used)")
	flag.Parse()

	cfg, err := loadConfig(cfgname)
	if err != nil {
		log.Fatal(err)
	}
	if prefix != "" {
		cfg.Prefix = prefix
	}
	if dbname != "" {
		cfg.DB = dbname
	}

	var store atri.Store
	if cfg.DB != "" {
		db, err := boltstore.Open(cfg.DB, "")
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		store = db
	}
	// Interpreters made for -fresh get opts but never the store.
	opts := []atri.Option{atri.WithLogger(log.New(os.Stderr, "atri: ", 0))}
	if cfg.Prefix != "" {
		opts = append(opts, atri.WithErrorPrefix(cfg.Prefix))
	}

	ipopts := opts
	if store != nil {
		ipopts = append(opts[:len(opts):len(opts)], atri.WithStore(store))
	}
	ip := atri.New(ipopts...)
	pre := append([]string(nil), cfg.Given...)
	for _, d := range with {
		pre = append(pre, "var "+d[0]+" = "+d[1])
	}
	if err := preamble(ip, pre); err != nil {
		log.Fatal(err)
	}

	if repl {
		if err := session(ip, cfg.History); err != nil {
			log.Fatal(err)
		}
		return
	}

	var ins []io.Reader
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	r := runner{ip: ip, opts: opts, pre: pre, fresh: fresh, echo: echo, out: os.Stdout}
	for _, in := range ins {
		if err := r.run(in, nl); err != nil {
			log.Fatal(err)
		}
	}
}

// preamble evaluates setup lines before any input. A persistent store may
// already hold the names they declare; those are assigned again.
func preamble(ip *atri.Interpreter, srcs []string) error {
	for _, src := range srcs {
		if _, err := ip.Define(src); err != nil {
			return fmt.Errorf("evaluating %q: %w", src, err)
		}
	}
	return nil
}

// runner evaluates inputs and prints their results.
type runner struct {
	ip *atri.Interpreter
	// opts and pre create a new interpreter with its own memory per
	// evaluation when fresh is set.
	opts  []atri.Option
	pre   []string
	fresh bool
	echo  bool
	out   io.Writer
}

// run evaluates an input as one source line, or each of its lines in turn if
// lines is set.
func (r *runner) run(in io.Reader, lines bool) error {
	if !lines {
		src, err := io.ReadAll(in)
		if err != nil {
			return err
		}
		return r.eval(strings.TrimSuffix(string(src), "\n"))
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		if err := r.eval(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (r *runner) eval(src string) error {
	ip := r.ip
	if r.fresh {
		ip = atri.New(r.opts...)
		if err := preamble(ip, r.pre); err != nil {
			return err
		}
	}
	if r.echo {
		if p, err := atri.Parse(src); err == nil {
			fmt.Fprintf(r.out, "%v : ", p)
		}
	}
	_, err := fmt.Fprintln(r.out, ip.Eval(src))
	return err
}

func infile(inname string, std bool) (io.Reader, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
