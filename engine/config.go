package engine

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fault policy names: what a trapped AgentRuntimeFault does to the
// offending robot and team.
const (
	FaultPolicySilence   = "silence"
	FaultPolicyTerminate = "terminate"
)

// ValidFaultPolicies is the set of recognized fault policy names. Shared by
// Validate() and the scheduler to avoid duplication.
var ValidFaultPolicies = map[string]bool{FaultPolicySilence: true, FaultPolicyTerminate: true}

// Config holds the engine options a match resolves at construction. The
// kernel depends only on these values, never on where they were parsed
// from.
type Config struct {
	Rounds              int32  `yaml:"rounds"`                // round cap when the map sets none (must be > 0)
	Budget              int64  `yaml:"budget"`                // per-round operation budget (must be > 0)
	FaultPolicy         string `yaml:"fault_policy"`          // "silence" or "terminate"
	FaultLimit          int32  `yaml:"fault_limit"`           // team auto-resigns at this many faults (0 = unlimited)
	BudgetFaultSilences bool   `yaml:"budget_fault_silences"` // treat budget exhaustion like an agent fault
	Upkeep              bool   `yaml:"upkeep"`                // charge per-unit ore upkeep each round
	OreAccrual          int64  `yaml:"ore_accrual"`           // ore granted to each team per round
	OreUpkeep           int64  `yaml:"ore_upkeep"`            // ore charged per mobile unit per round
	StartingSupply      int32  `yaml:"starting_supply"`       // supply each spawned robot starts with
	Breakpoints         bool   `yaml:"breakpoints"`           // honor agent breakpoint requests
	BytecodesUsed       bool   `yaml:"bytecodes_used"`        // record per-turn budget consumption signals
	Channels            int    `yaml:"channels"`              // broadcast channels per team (must be > 0)
	Seed                int64  `yaml:"seed"`                  // master seed for all derived generators
	SilenceA            bool   `yaml:"silence_a"`             // start with team A silenced
	SilenceB            bool   `yaml:"silence_b"`             // start with team B silenced
	MapPath             string `yaml:"map_path"`              // search path for map files
}

// DefaultConfig returns the options a match runs with when nothing is
// overridden.
func DefaultConfig() Config {
	return Config{
		Rounds:         2000,
		Budget:         10000,
		FaultPolicy:    FaultPolicySilence,
		FaultLimit:     0,
		Upkeep:         true,
		OreAccrual:     5,
		OreUpkeep:      1,
		StartingSupply: 50,
		Channels:       65536,
		Seed:           42,
	}
}

// LoadConfig reads a YAML options file over the defaults. Unknown keys are
// errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading engine config: %w", err)
	}
	dec := newStrictYAMLDecoder(data)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing engine config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating engine config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks option ranges and names.
func (c Config) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.Budget <= 0 {
		return fmt.Errorf("budget must be positive, got %d", c.Budget)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("channels must be positive, got %d", c.Channels)
	}
	if !ValidFaultPolicies[c.FaultPolicy] {
		return fmt.Errorf("unknown fault policy %q", c.FaultPolicy)
	}
	if c.FaultLimit < 0 {
		return fmt.Errorf("fault_limit must be non-negative, got %d", c.FaultLimit)
	}
	if c.OreAccrual < 0 {
		return fmt.Errorf("ore_accrual must be non-negative, got %d", c.OreAccrual)
	}
	if c.OreUpkeep < 0 {
		return fmt.Errorf("ore_upkeep must be non-negative, got %d", c.OreUpkeep)
	}
	if c.StartingSupply < 0 {
		return fmt.Errorf("starting_supply must be non-negative, got %d", c.StartingSupply)
	}
	return nil
}

// newStrictYAMLDecoder wraps data in a decoder that rejects unknown fields,
// so typos in config and map files fail loudly.
func newStrictYAMLDecoder(data []byte) *yaml.Decoder {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec
}
