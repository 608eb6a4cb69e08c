package engine

import "github.com/asciima/battlecode-server-2017/engine/replay"

// outcome is a decided match result.
type outcome struct {
	winner Team
	factor replay.DominationFactor
}

// resolveTermination checks the terminal conditions at a round boundary,
// in priority order: elimination, resignation, victory research, round
// cap. It reports done=false while the match should continue.
//
// A condition both teams meet at once falls through to the tie-break
// ladder rather than picking a side.
func resolveTermination(w *World, roundCap int32) (outcome, bool) {
	aDead := w.CountTeam(TeamA) == 0
	bDead := w.CountTeam(TeamB) == 0
	switch {
	case aDead && bDead:
		return tieBreak(w), true
	case aDead:
		return eliminated(w, TeamB), true
	case bDead:
		return eliminated(w, TeamA), true
	}

	aOut := w.Resigned(TeamA)
	bOut := w.Resigned(TeamB)
	switch {
	case aOut && bOut:
		return tieBreak(w), true
	case aOut:
		return outcome{winner: TeamB, factor: replay.WonByDubiousReasons}, true
	case bOut:
		return outcome{winner: TeamA, factor: replay.WonByDubiousReasons}, true
	}

	aNuke := w.NukeComplete(TeamA)
	bNuke := w.NukeComplete(TeamB)
	switch {
	case aNuke && bNuke:
		return tieBreak(w), true
	case aNuke:
		return outcome{winner: TeamA, factor: replay.WonByResearch}, true
	case bNuke:
		return outcome{winner: TeamB, factor: replay.WonByResearch}, true
	}

	if w.Round() >= roundCap-1 {
		return tieBreak(w), true
	}
	return outcome{}, false
}

// eliminated grades a win by wiping out the opponent.
func eliminated(w *World, winner Team) outcome {
	if w.HQUntouched(winner) {
		return outcome{winner: winner, factor: replay.Destroyed}
	}
	return outcome{winner: winner, factor: replay.Pwned}
}

// tieBreak resolves a match neither side won outright. Each criterion
// applies only on an exact tie of the one before it: economic score,
// surviving structures, aggregate health, then Team A by default.
func tieBreak(w *World) outcome {
	if winner, ok := higher(w.Score(TeamA), w.Score(TeamB)); ok {
		return outcome{winner: winner, factor: replay.Owned}
	}
	if winner, ok := higher(int64(w.Structures(TeamA)), int64(w.Structures(TeamB))); ok {
		return outcome{winner: winner, factor: replay.Beat}
	}
	if winner, ok := higher(w.AggregateHealth(TeamA), w.AggregateHealth(TeamB)); ok {
		return outcome{winner: winner, factor: replay.BarelyBeat}
	}
	return outcome{winner: TeamA, factor: replay.WonByDubiousReasons}
}

func higher(a, b int64) (Team, bool) {
	switch {
	case a > b:
		return TeamA, true
	case b > a:
		return TeamB, true
	default:
		return TeamNeutral, false
	}
}
