package cmd

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/asciima/battlecode-server-2017/engine"
	"github.com/asciima/battlecode-server-2017/engine/bots"
	"github.com/asciima/battlecode-server-2017/engine/replay"
)

// matchOutcome bundles everything the CLI reports or saves about one match.
type matchOutcome struct {
	header replay.MatchHeader
	rounds []replay.RoundDelta
	footer replay.MatchFooter
	stats  replay.GameStats
}

// newPrograms builds fresh program instances for both teams.
func newPrograms() ([2]engine.Program, error) {
	a, err := bots.New(teamABot)
	if err != nil {
		return [2]engine.Program{}, err
	}
	b, err := bots.New(teamBBot)
	if err != nil {
		return [2]engine.Program{}, err
	}
	return [2]engine.Program{engine.TeamA: a, engine.TeamB: b}, nil
}

// runSeries plays the maps in order as one series, carrying team memory
// from match to match.
func runSeries(cfg engine.Config, gms []*engine.GameMap) ([]matchOutcome, error) {
	programs, err := newPrograms()
	if err != nil {
		return nil, err
	}
	series, err := engine.NewSeries(cfg, gms, programs)
	if err != nil {
		return nil, err
	}
	outcomes := make([]matchOutcome, len(gms))
	var observer engine.RoundObserver
	if savePath != "" {
		observer = func(match int32, res *engine.RoundResult) {
			if res.Delta != nil {
				outcomes[match].rounds = append(outcomes[match].rounds, *res.Delta)
			}
		}
	}
	result, err := series.Run(observer)
	if err != nil {
		return nil, err
	}
	for i := range outcomes {
		outcomes[i].header = result.Headers[i]
		outcomes[i].footer = result.Footers[i]
		outcomes[i].stats = result.Stats[i]
	}
	return outcomes, nil
}

// runParallel plays the maps as independent matches, at most parallel at a
// time. Matches share nothing, so team memory does not carry.
func runParallel(cfg engine.Config, gms []*engine.GameMap) ([]matchOutcome, error) {
	outcomes := make([]matchOutcome, len(gms))
	count := int32(len(gms))
	var g errgroup.Group
	g.SetLimit(parallel)
	for i, gm := range gms {
		i, gm := i, gm
		g.Go(func() error {
			programs, err := newPrograms()
			if err != nil {
				return err
			}
			matchCfg := cfg
			matchCfg.Seed = engine.DeriveMatchSeed(cfg.Seed, int32(i))
			m, err := engine.NewMatch(matchCfg, gm, programs, replay.TeamMemory{}, int32(i), count)
			if err != nil {
				return err
			}
			defer m.Finish()
			keep := savePath != ""
			var rounds []replay.RoundDelta
			for {
				res, err := m.RunRound()
				if err != nil {
					return err
				}
				if keep && res.Delta != nil {
					rounds = append(rounds, *res.Delta)
				}
				if res.Status == engine.StatusDone {
					break
				}
			}
			footer, err := m.Footer()
			if err != nil {
				return err
			}
			stats, err := m.Stats()
			if err != nil {
				return err
			}
			outcomes[i] = matchOutcome{header: m.Header(), rounds: rounds, footer: footer, stats: stats}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// printOutcomes prints the per-match results and, for a series, the tally.
func printOutcomes(outcomes []matchOutcome) {
	var wins [2]int32
	for i, o := range outcomes {
		result := "no result"
		if o.footer.Winner >= 0 {
			team := engine.Team(o.footer.Winner)
			wins[team]++
			result = fmt.Sprintf("team %v wins (%v)", team, o.footer.Factor)
		}
		fmt.Printf("match %d/%d on %q: %s after %d rounds\n",
			i+1, len(outcomes), o.header.MapName, result, o.footer.Rounds)
		for _, team := range []engine.Team{engine.TeamA, engine.TeamB} {
			fmt.Printf("  team %v: ore mined %d, final ore %d, spawned %d, killed %d, attacks %d, faults %d\n",
				team, o.stats.OreMined[team], o.stats.FinalOre[team], o.stats.UnitsSpawned[team],
				o.stats.UnitsKilled[team], o.stats.AttacksMade[team], o.stats.Faults[team])
		}
	}
	if len(outcomes) > 1 {
		switch {
		case wins[engine.TeamA] > wins[engine.TeamB]:
			fmt.Printf("series: team A wins %d-%d\n", wins[engine.TeamA], wins[engine.TeamB])
		case wins[engine.TeamB] > wins[engine.TeamA]:
			fmt.Printf("series: team B wins %d-%d\n", wins[engine.TeamB], wins[engine.TeamA])
		default:
			fmt.Printf("series: tied %d-%d\n", wins[engine.TeamA], wins[engine.TeamB])
		}
	}
}
