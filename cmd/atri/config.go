package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the contents of a configuration file.
type config struct {
	// Prefix precedes error results.
	Prefix string `yaml:"prefix"`
	// History is the REPL history file. Relative paths are under the home
	// directory.
	History string `yaml:"history"`
	// DB is a bbolt database holding variables.
	DB string `yaml:"db"`
	// Given is source lines to evaluate before any input.
	Given []string `yaml:"given"`
}

const defaultHistory = ".atri_history"

// loadConfig reads a configuration file. An empty name gives the default
// configuration.
func loadConfig(name string) (config, error) {
	cfg := config{History: defaultHistory}
	if name == "" {
		return cfg, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", name, err)
	}
	if cfg.History == "" {
		cfg.History = defaultHistory
	}
	return cfg, nil
}
