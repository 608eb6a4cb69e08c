package engine

// Team identifies a side of the contest. TeamA and TeamB field robots;
// TeamNeutral owns map-seeded obstacles and never acts.
type Team int8

const (
	TeamA Team = iota
	TeamB
	TeamNeutral
)

var teamNames = [...]string{"A", "B", "NEUTRAL"}

func (t Team) String() string {
	if int(t) < len(teamNames) {
		return teamNames[t]
	}
	return "?"
}

// Opponent returns the other playing team. Neutral has no opponent and
// returns itself.
func (t Team) Opponent() Team {
	switch t {
	case TeamA:
		return TeamB
	case TeamB:
		return TeamA
	}
	return t
}

// IsPlayer reports whether t is one of the two competing teams.
func (t Team) IsPlayer() bool {
	return t == TeamA || t == TeamB
}

// ValidTeams maps map-file team names to Team values.
var ValidTeams = map[string]Team{
	"A":       TeamA,
	"B":       TeamB,
	"NEUTRAL": TeamNeutral,
}
