// Package bots ships the built-in programs the CLI can field: reference
// opponents for trying maps, benchmarking, and engine tests. They are
// deliberately simple; each one is a single loop that switches on the
// robot's type and ends every turn with Yield.
package bots

import (
	"fmt"
	"sort"

	"github.com/asciima/battlecode-server-2017/engine"
)

// ValidBots maps bot names to program factories. Each match gets a fresh
// program instance per team.
var ValidBots = map[string]func() engine.Program{
	"idle":   func() engine.Program { return engine.ProgramFunc(Idle) },
	"random": func() engine.Program { return engine.ProgramFunc(Random) },
	"miner":  func() engine.Program { return engine.ProgramFunc(Miner) },
	"rusher": func() engine.Program { return engine.ProgramFunc(Rusher) },
}

// New returns a fresh program for a registered bot name.
func New(name string) (engine.Program, error) {
	factory, ok := ValidBots[name]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (valid: %v)", name, Names())
	}
	return factory(), nil
}

// Names returns the registered bot names in sorted order.
func Names() []string {
	names := make([]string, 0, len(ValidBots))
	for name := range ValidBots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
