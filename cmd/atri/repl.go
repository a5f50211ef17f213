package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/atri"
)

const (
	prompt = "atri> "
	banner = "atri REPL. Ctrl+C cancels input, Ctrl+D exits. Type :help for commands."
	help   = `REPL commands:
  :vars    List declared variables
  :clear   Remove all variables
  :quit    Exit the REPL`
)

// session runs an interactive session on ip until EOF or :quit.
func session(ip *atri.Interpreter, history string) error {
	fmt.Println(banner)
	history = historyPath(history)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if history != "" {
		if f, err := os.Open(history); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(history); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		if _, ok := <-sigc; ok {
			ln.Close()
			os.Exit(130)
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Println()
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			return err
		}
		src := strings.TrimSpace(line)
		if src == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(src, ":") {
			quit, err := command(ip, src, os.Stdout)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			if quit {
				return nil
			}
			continue
		}
		fmt.Println(ip.Eval(line))
	}
}

// historyPath resolves the history file name. Relative names are under the
// home directory. The result is empty, meaning no history file, if the name
// is empty or the home directory is unknown.
func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("not saving history: %v", err)
		return ""
	}
	return filepath.Join(home, name)
}

// command runs a REPL command. quit is true if the session should end.
func command(ip *atri.Interpreter, cmd string, out io.Writer) (quit bool, err error) {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true, nil
	case ":help":
		fmt.Fprintln(out, help)
	case ":clear":
		return false, ip.Store().Clear()
	case ":vars":
		s := ip.Store()
		names, err := s.Names()
		if err != nil {
			return false, err
		}
		for _, name := range names {
			v, _, err := s.Lookup(name)
			if err != nil {
				return false, err
			}
			fmt.Fprintf(out, "%s = %v\n", name, v)
		}
	default:
		fmt.Fprintf(out, "unknown command %s. Type :help for commands.\n", cmd)
	}
	return false, nil
}
