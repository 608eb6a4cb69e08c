package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/asciima/battlecode-server-2017/engine/replay"
)

// MatchStatus is the caller-visible state of a match after a round.
type MatchStatus uint8

const (
	// StatusRunning: the round completed and play continues.
	StatusRunning MatchStatus = iota
	// StatusPaused: a breakpoint fired at the round boundary; the next
	// RunRound call resumes play.
	StatusPaused
	// StatusDone: the match reached a terminal condition this round.
	StatusDone
)

var matchStatusNames = [...]string{"RUNNING", "PAUSED", "DONE"}

func (s MatchStatus) String() string {
	if int(s) < len(matchStatusNames) {
		return matchStatusNames[s]
	}
	return "?"
}

// RoundResult is what one RunRound call produced. Delta always carries the
// round's signals while the match runs; on the terminal round it includes
// the MatchWonSignal, and on calls after that it is nil. Winner and Factor
// are meaningful only when Status is StatusDone.
type RoundResult struct {
	Delta  *replay.RoundDelta
	Status MatchStatus
	Winner Team
	Factor replay.DominationFactor
}

// Match drives one contest between two programs on one map from seeding to
// a decided outcome. Rounds advance only through RunRound, so the caller
// (a series, the CLI, a test) controls pacing and observes every delta.
type Match struct {
	cfg      Config
	gm       *GameMap
	w        *World
	sched    *TurnScheduler
	header   replay.MatchHeader
	roundCap int32

	done     bool
	finished bool
	out      outcome
}

// NewMatch validates its inputs, builds the world, seeds the map's initial
// bodies, and installs the memory carried from the previous match in the
// series. The returned match has run no rounds yet.
func NewMatch(cfg Config, gm *GameMap, programs [2]Program, carried replay.TeamMemory, matchIndex, matchCount int32) (*Match, error) {
	if gm == nil {
		return nil, InitializationError{Reason: "map must not be nil"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, InitializationError{Reason: "invalid config", Err: err}
	}
	if programs[TeamA] == nil || programs[TeamB] == nil {
		return nil, InitializationError{Reason: "both teams need a program"}
	}
	w := NewWorld(cfg, gm)
	w.SetCarriedMemory(carried)
	seeded, err := w.SeedBodies()
	if err != nil {
		return nil, InitializationError{Reason: "seed initial bodies", Err: err}
	}
	roundCap := gm.MaxRounds
	if roundCap <= 0 {
		roundCap = cfg.Rounds
	}
	m := &Match{
		cfg:      cfg,
		gm:       gm,
		w:        w,
		sched:    NewTurnScheduler(w, cfg, programs),
		roundCap: roundCap,
		header: replay.MatchHeader{
			MapName:    gm.Name,
			MapWidth:   int32(gm.Width),
			MapHeight:  int32(gm.Height),
			MapHash:    gm.Checksum(),
			MatchIndex: matchIndex,
			MatchCount: matchCount,
			TeamMemory: carried,
			Bodies:     seeded,
		},
	}
	logrus.Infof("match %d/%d on %q: %d rounds max, seed %d",
		matchIndex+1, matchCount, gm.Name, roundCap, cfg.Seed)
	return m, nil
}

// Header returns the replay header, valid from construction.
func (m *Match) Header() replay.MatchHeader { return m.header }

// RunRound executes one full round: every robot's turn, end-of-round
// upkeep, the termination check, and the delta drain. After the terminal
// round it keeps returning the terminal marker; after Finish it fails
// with MatchFinishedError.
func (m *Match) RunRound() (*RoundResult, error) {
	if m.finished {
		return nil, MatchFinishedError{}
	}
	if m.done {
		return &RoundResult{Status: StatusDone, Winner: m.out.winner, Factor: m.out.factor}, nil
	}

	m.sched.RunRound()
	m.w.EndRound()
	paused := m.w.TakeBreakpoint()

	res := &RoundResult{Status: StatusRunning}
	if out, done := resolveTermination(m.w, m.roundCap); done {
		m.done = true
		m.out = out
		m.w.AppendMatchWon(out.winner)
		m.sched.Shutdown()
		res.Status = StatusDone
		res.Winner = out.winner
		res.Factor = out.factor
		logrus.Infof("[round %04d] team %v wins: %v", m.w.Round(), out.winner, out.factor)
	} else if paused {
		res.Status = StatusPaused
		logrus.Infof("[round %04d] breakpoint", m.w.Round())
	}

	res.Delta = &replay.RoundDelta{Round: m.w.Round(), Signals: m.w.Log().Drain()}
	m.w.AdvanceRound()
	return res, nil
}

// Finish tears the match down: unwinds any live sandboxes and freezes the
// final team memory. Safe to call at any point, including mid-match;
// idempotent.
func (m *Match) Finish() {
	if m.finished {
		return
	}
	m.finished = true
	m.sched.Shutdown()
	logrus.Infof("match on %q finished after %d rounds", m.gm.Name, m.w.Round())
}

// Memory returns the team memory to carry into the next match of the
// series.
func (m *Match) Memory() replay.TeamMemory { return m.w.Memory() }

// Footer returns the replay footer. It errors while the match is still in
// progress; a match finished without a decision reports Winner -1.
func (m *Match) Footer() (replay.MatchFooter, error) {
	if !m.done && !m.finished {
		return replay.MatchFooter{}, fmt.Errorf("match still in progress")
	}
	footer := replay.MatchFooter{
		Winner:     -1,
		Rounds:     m.w.Round(),
		TeamMemory: m.w.Memory(),
	}
	if m.done {
		footer.Winner = int8(m.out.winner)
		footer.Factor = m.out.factor
	}
	return footer, nil
}

// Stats returns the end-of-match statistics. Like Footer, it errors while
// the match is still in progress.
func (m *Match) Stats() (replay.GameStats, error) {
	if !m.done && !m.finished {
		return replay.GameStats{}, fmt.Errorf("match still in progress")
	}
	stats := m.w.StatsSnapshot()
	stats.Winner = -1
	stats.EndRound = m.w.Round() - 1
	if m.done {
		stats.Winner = int8(m.out.winner)
		stats.Factor = m.out.factor
	}
	return stats, nil
}

// BodyStream returns every spawned-body record the match has emitted, in
// spawn order.
func (m *Match) BodyStream() []replay.SpawnedBody { return m.w.BodyStream() }
