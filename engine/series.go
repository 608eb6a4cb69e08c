package engine

import (
	"fmt"

	"github.com/asciima/battlecode-server-2017/engine/replay"
)

// RoundObserver receives every round result as a series produces it.
// Observers must not retain res.Delta past the call if they mutate it.
type RoundObserver func(match int32, res *RoundResult)

// SeriesResult aggregates a finished series.
type SeriesResult struct {
	Headers []replay.MatchHeader
	Footers []replay.MatchFooter
	Stats   []replay.GameStats
	Wins    [2]int32
	// Winner holds the team with the majority of match wins, or
	// TeamNeutral when the series split evenly.
	Winner Team
}

// Series runs the same two programs over a list of maps, one match per
// map, carrying each match's final team memory into the next. Every match
// gets a fresh world and a seed derived from the series seed, so a series
// replays identically from its config alone.
type Series struct {
	cfg      Config
	maps     []*GameMap
	programs [2]Program
}

// NewSeries validates the map list up front; per-match validation happens
// as each match is built.
func NewSeries(cfg Config, maps []*GameMap, programs [2]Program) (*Series, error) {
	if len(maps) == 0 {
		return nil, InitializationError{Reason: "series needs at least one map"}
	}
	for i, gm := range maps {
		if gm == nil {
			return nil, InitializationError{Reason: fmt.Sprintf("map %d is nil", i)}
		}
	}
	return &Series{cfg: cfg, maps: maps, programs: programs}, nil
}

// Run plays every match to its decision. A nil observer is allowed.
func (s *Series) Run(observer RoundObserver) (*SeriesResult, error) {
	result := &SeriesResult{Winner: TeamNeutral}
	var carried replay.TeamMemory
	count := int32(len(s.maps))
	for i, gm := range s.maps {
		index := int32(i)
		cfg := s.cfg
		cfg.Seed = DeriveMatchSeed(s.cfg.Seed, index)
		m, err := NewMatch(cfg, gm, s.programs, carried, index, count)
		if err != nil {
			return nil, err
		}
		footer, err := runMatch(m, index, observer)
		if err != nil {
			return nil, err
		}
		stats, err := m.Stats()
		if err != nil {
			return nil, err
		}
		carried = m.Memory()
		result.Headers = append(result.Headers, m.Header())
		result.Footers = append(result.Footers, footer)
		result.Stats = append(result.Stats, stats)
		if footer.Winner >= 0 {
			result.Wins[footer.Winner]++
		}
	}
	switch {
	case result.Wins[TeamA] > result.Wins[TeamB]:
		result.Winner = TeamA
	case result.Wins[TeamB] > result.Wins[TeamA]:
		result.Winner = TeamB
	}
	return result, nil
}

// runMatch drives one match to its terminal round and tears it down.
// Breakpoint pauses are reported to the observer and played through.
func runMatch(m *Match, index int32, observer RoundObserver) (replay.MatchFooter, error) {
	defer m.Finish()
	for {
		res, err := m.RunRound()
		if err != nil {
			return replay.MatchFooter{}, err
		}
		if observer != nil {
			observer(index, res)
		}
		if res.Status == StatusDone {
			break
		}
	}
	return m.Footer()
}

// DeriveMatchSeed derives match index's seed from a series seed the same
// way the world derives its named rng streams, so adding matches never
// perturbs earlier ones.
func DeriveMatchSeed(base int64, index int32) int64 {
	return base ^ fnv1a64(fmt.Sprintf("match_%d", index))
}
