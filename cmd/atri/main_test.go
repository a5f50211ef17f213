package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/zephyrtronium/atri"
	"github.com/zephyrtronium/atri/boltstore"
)

func TestRunner(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		lines bool
		fresh bool
		echo  bool
		out   string
	}{
		{"whole", "var x = 2\nx * 3\n", false, false, false, "6\n"},
		{"lines", "var x = 2\nx * 3\n\nx > 1\n", true, false, false, "x = 2\n6\ntrue\n"},
		{"fresh", "var x = 2\nx\n", true, true, false, "x = 2\nundefined\n"},
		{"echo", "1 + 2 * 3", false, false, true, "(1 + (2 * 3)) : 7\n"},
		{"error", "1 +", false, false, true, "error: 4: expected operand after + at end of input\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			r := runner{ip: atri.New(), fresh: c.fresh, echo: c.echo, out: &out}
			if err := r.run(strings.NewReader(c.in), c.lines); err != nil {
				t.Fatal(err)
			}
			if out.String() != c.out {
				t.Errorf("want %q, got %q", c.out, out.String())
			}
		})
	}
}

func TestPreambleRepeated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.db")
	pre := []string{"var rate = 0.25; var count", "var base = 100"}
	for i := 1; i <= 3; i++ {
		db, err := boltstore.Open(path, "")
		if err != nil {
			t.Fatal(err)
		}
		ip := atri.New(atri.WithStore(db))
		if err := preamble(ip, pre); err != nil {
			db.Close()
			t.Fatalf("run %d: %v", i, err)
		}
		var out bytes.Buffer
		r := runner{ip: ip, out: &out}
		err = r.run(strings.NewReader("base * rate\ncount = base + 1\nrate = 9"), true)
		db.Close()
		if err != nil {
			t.Fatal(err)
		}
		if want := "25\ncount = 101\nrate = 9\n"; out.String() != want {
			t.Errorf("run %d: want %q, got %q", i, want, out.String())
		}
	}
}

func TestRunnerFreshIgnoresStore(t *testing.T) {
	db, err := boltstore.Open(filepath.Join(t.TempDir(), "vars.db"), "")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	pre := []string{"var base = 100"}
	ip := atri.New(atri.WithStore(db))
	if err := preamble(ip, pre); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	r := runner{ip: ip, pre: pre, fresh: true, out: &out}
	if err := r.run(strings.NewReader("var y = 1\ny\nbase + 1\nvar base = 2"), true); err != nil {
		t.Fatal(err)
	}
	if want := "y = 1\nundefined\n101\nerror: statement 1 (var base = 2): \"base\" is already declared\n"; out.String() != want {
		t.Errorf("want %q, got %q", want, out.String())
	}
	if _, ok, err := db.Lookup("y"); ok || err != nil {
		t.Errorf("fresh evaluation wrote y to the database: %t %v", ok, err)
	}
}

func TestHistoryPath(t *testing.T) {
	if p := historyPath(""); p != "" {
		t.Errorf("empty name gave %q", p)
	}
	abs := filepath.Join(t.TempDir(), "hist")
	if p := historyPath(abs); p != abs {
		t.Errorf("absolute name gave %q", p)
	}
	t.Setenv("HOME", "/home/someone")
	if p := historyPath(".atri_history"); p != filepath.Join("/home/someone", ".atri_history") {
		t.Errorf("relative name gave %q", p)
	}
	t.Setenv("HOME", "")
	if p := historyPath(".atri_history"); p != "" {
		t.Errorf("unknown home gave %q", p)
	}
}

func TestCommand(t *testing.T) {
	ip := atri.New()
	ip.Eval("var b = 2; var a = b > 1; var u")
	var out bytes.Buffer
	quit, err := command(ip, ":vars", &out)
	if quit || err != nil {
		t.Fatalf(":vars gave %t %v", quit, err)
	}
	if want := "a = true\nb = 2\nu = undefined\n"; out.String() != want {
		t.Errorf(":vars: want %q, got %q", want, out.String())
	}
	if _, err := command(ip, ":clear", &out); err != nil {
		t.Fatal(err)
	}
	if r := ip.Eval("b"); r != "undefined" {
		t.Errorf("b after :clear is %s", r)
	}
	if quit, _ := command(ip, ":QUIT", &out); !quit {
		t.Error(":QUIT does not quit")
	}
	out.Reset()
	command(ip, ":nope", &out)
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("unknown command printed %q", out.String())
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}

	cfg, err := loadConfig("")
	if err != nil || cfg.History != defaultHistory {
		t.Errorf("default config: %+v %v", cfg, err)
	}

	p := write("ok.yaml", "prefix: \"! \"\ndb: vars.db\ngiven:\n  - var rate = 0.2\n  - var base = 100\n")
	cfg, err = loadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	want := config{
		Prefix:  "! ",
		History: defaultHistory,
		DB:      "vars.db",
		Given:   []string{"var rate = 0.2", "var base = 100"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("want %+v, got %+v", want, cfg)
	}

	if _, err := loadConfig(write("empty.yaml", "")); err != nil {
		t.Errorf("empty config: %v", err)
	}
	if _, err := loadConfig(write("unknown.yaml", "colour: red\n")); err == nil {
		t.Error("unknown field accepted")
	}
	if _, err := loadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}
