// Package replay defines the record shapes drained out of a running match:
// per-round signals, round deltas, and the match header/footer bracketing
// them. It has no dependencies on engine/ and stores pure data types,
// referencing robots by id only, leaving persistence to external
// serializers.
package replay

import "encoding/json"

// TeamMemoryLength is the number of int64 slots each team carries between
// matches in a series.
const TeamMemoryLength = 32

// TeamMemory is the per-team cross-match memory, indexed by team ordinal.
type TeamMemory [2][TeamMemoryLength]int64

// SignalKind discriminates the closed set of signal variants.
type SignalKind uint8

const (
	KindSpawn SignalKind = iota
	KindBuild
	KindMove
	KindAttack
	KindDeath
	KindBroadcast
	KindMine
	KindSupply
	KindResearch
	KindTeamOre
	KindIndicator
	KindObservation
	KindBytecode
	KindMatchWon
)

var kindNames = [...]string{
	KindSpawn:       "spawn",
	KindBuild:       "build",
	KindMove:        "move",
	KindAttack:      "attack",
	KindDeath:       "death",
	KindBroadcast:   "broadcast",
	KindMine:        "mine",
	KindSupply:      "supply",
	KindResearch:    "research",
	KindTeamOre:     "teamOre",
	KindIndicator:   "indicator",
	KindObservation: "observation",
	KindBytecode:    "bytecode",
	KindMatchWon:    "matchWon",
}

func (k SignalKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Signal is one immutable state transition. Every variant carries enough to
// reconstruct the transition without touching live engine objects.
type Signal interface {
	Kind() SignalKind
}

// SpawnSignal records a robot entering the world, either seeded from the map
// (Parent == 0) or produced by another robot.
type SpawnSignal struct {
	ID     int32 `json:"id"`
	Parent int32 `json:"parent"`
	Team   int8  `json:"team"`
	Type   uint8 `json:"type"`
	X      int16 `json:"x"`
	Y      int16 `json:"y"`
	Height uint8 `json:"height"`
}

// BuildSignal records a builder constructing a structure.
type BuildSignal struct {
	ID      int32 `json:"id"`
	Builder int32 `json:"builder"`
	Team    int8  `json:"team"`
	Type    uint8 `json:"type"`
	X       int16 `json:"x"`
	Y       int16 `json:"y"`
}

// MoveSignal records one step of movement.
type MoveSignal struct {
	ID    int32 `json:"id"`
	FromX int16 `json:"fromX"`
	FromY int16 `json:"fromY"`
	ToX   int16 `json:"toX"`
	ToY   int16 `json:"toY"`
}

// AttackSignal records damage dealt to the robot at a target square.
type AttackSignal struct {
	ID     int32 `json:"id"`
	Target int32 `json:"target"`
	X      int16 `json:"x"`
	Y      int16 `json:"y"`
	Damage int32 `json:"damage"`
}

// DeathSignal records a robot leaving the world for any reason.
type DeathSignal struct {
	ID int32 `json:"id"`
}

// BroadcastSignal records one channel committed at a round boundary.
type BroadcastSignal struct {
	Team    int8  `json:"team"`
	Channel int32 `json:"channel"`
	Value   int64 `json:"value"`
}

// MineSignal records ore moved from a map square to a team total.
type MineSignal struct {
	ID     int32 `json:"id"`
	Team   int8  `json:"team"`
	X      int16 `json:"x"`
	Y      int16 `json:"y"`
	Amount int32 `json:"amount"`
}

// SupplySignal records supply transferred between adjacent robots.
type SupplySignal struct {
	From   int32 `json:"from"`
	To     int32 `json:"to"`
	Amount int32 `json:"amount"`
}

// ResearchSignal records one unit of research progress.
type ResearchSignal struct {
	Team     int8  `json:"team"`
	Upgrade  uint8 `json:"upgrade"`
	Progress int32 `json:"progress"`
	Complete bool  `json:"complete"`
}

// TeamOreSignal records a team's ore total after end-of-round accrual and
// upkeep. Emitted once per team per round.
type TeamOreSignal struct {
	Team int8  `json:"team"`
	Ore  int64 `json:"ore"`
}

// IndicatorSignal records a debug indicator string set by agent code.
type IndicatorSignal struct {
	ID    int32  `json:"id"`
	Slot  uint8  `json:"slot"`
	Value string `json:"value"`
}

// ObservationSignal records a free-form match observation from agent code.
type ObservationSignal struct {
	ID          int32  `json:"id"`
	Observation string `json:"observation"`
}

// BytecodeSignal records the operation budget a robot consumed in one turn.
type BytecodeSignal struct {
	ID   int32 `json:"id"`
	Used int64 `json:"used"`
}

// MatchWonSignal records the terminal condition being reached.
type MatchWonSignal struct {
	Team int8 `json:"team"`
}

func (SpawnSignal) Kind() SignalKind       { return KindSpawn }
func (BuildSignal) Kind() SignalKind       { return KindBuild }
func (MoveSignal) Kind() SignalKind        { return KindMove }
func (AttackSignal) Kind() SignalKind      { return KindAttack }
func (DeathSignal) Kind() SignalKind       { return KindDeath }
func (BroadcastSignal) Kind() SignalKind   { return KindBroadcast }
func (MineSignal) Kind() SignalKind        { return KindMine }
func (SupplySignal) Kind() SignalKind      { return KindSupply }
func (ResearchSignal) Kind() SignalKind    { return KindResearch }
func (TeamOreSignal) Kind() SignalKind     { return KindTeamOre }
func (IndicatorSignal) Kind() SignalKind   { return KindIndicator }
func (ObservationSignal) Kind() SignalKind { return KindObservation }
func (BytecodeSignal) Kind() SignalKind    { return KindBytecode }
func (MatchWonSignal) Kind() SignalKind    { return KindMatchWon }

// RoundDelta is the ordered sequence of signals for one round. Order is
// exactly the order the causing mutations were applied.
type RoundDelta struct {
	Round   int32
	Signals []Signal
}

type taggedSignal struct {
	Kind string `json:"kind"`
	Body Signal `json:"body"`
}

// MarshalJSON tags each signal with its kind name so external viewers can
// dispatch without knowing the Go types.
func (d RoundDelta) MarshalJSON() ([]byte, error) {
	tagged := make([]taggedSignal, len(d.Signals))
	for i, s := range d.Signals {
		tagged[i] = taggedSignal{Kind: s.Kind().String(), Body: s}
	}
	return json.Marshal(struct {
		Round   int32          `json:"round"`
		Signals []taggedSignal `json:"signals"`
	}{Round: d.Round, Signals: tagged})
}

// MatchHeader opens a match's replay stream.
type MatchHeader struct {
	MapName    string        `json:"mapName"`
	MapWidth   int32         `json:"mapWidth"`
	MapHeight  int32         `json:"mapHeight"`
	MapHash    uint64        `json:"mapHash"`
	MatchIndex int32         `json:"matchIndex"`
	MatchCount int32         `json:"matchCount"`
	TeamMemory TeamMemory    `json:"teamMemory"`
	Bodies     []SpawnedBody `json:"bodies"`
}

// MatchFooter closes a match's replay stream. Winner is a team ordinal, or
// -1 when the match was aborted without a result.
type MatchFooter struct {
	Winner     int8             `json:"winner"`
	Factor     DominationFactor `json:"factor"`
	Rounds     int32            `json:"rounds"`
	TeamMemory TeamMemory       `json:"teamMemory"`
}

// DominationFactor grades how decisively the match was won.
type DominationFactor uint8

const (
	// Destroyed: opponent eliminated with the winner's HQ at full health.
	Destroyed DominationFactor = iota
	// Pwned: opponent eliminated.
	Pwned
	// Owned: won the score tie-break at the round cap.
	Owned
	// Beat: won the surviving-structures tie-break.
	Beat
	// BarelyBeat: won the aggregate-health tie-break.
	BarelyBeat
	// WonByDubiousReasons: default rule or opponent resignation.
	WonByDubiousReasons
	// WonByResearch: completed the victory research project.
	WonByResearch
)

var factorNames = [...]string{
	Destroyed:           "DESTROYED",
	Pwned:               "PWNED",
	Owned:               "OWNED",
	Beat:                "BEAT",
	BarelyBeat:          "BARELY_BEAT",
	WonByDubiousReasons: "WON_BY_DUBIOUS_REASONS",
	WonByResearch:       "WON_BY_RESEARCH",
}

func (f DominationFactor) String() string {
	if int(f) < len(factorNames) {
		return factorNames[f]
	}
	return "UNKNOWN"
}

// GameStats aggregates per-team totals for the match footer and reporting.
// Slices of two are indexed by team ordinal.
type GameStats struct {
	Winner       int8             `json:"winner"`
	Factor       DominationFactor `json:"factor"`
	EndRound     int32            `json:"endRound"`
	OreMined     [2]int64         `json:"oreMined"`
	FinalOre     [2]int64         `json:"finalOre"`
	UnitsSpawned [2]int32         `json:"unitsSpawned"`
	UnitsKilled  [2]int32         `json:"unitsKilled"`
	AttacksMade  [2]int32         `json:"attacksMade"`
	Faults       [2]int32         `json:"faults"`
	Silenced     [2]bool          `json:"silenced"`
}
