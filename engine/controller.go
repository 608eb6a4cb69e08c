package engine

import (
	"math/rand"

	"github.com/asciima/battlecode-server-2017/engine/replay"
)

// Program is a robot's behavior. Run is called once and is the robot's
// whole life: typically an infinite loop that ends each turn with
// rc.Yield(). Returning from Run disintegrates the robot.
type Program interface {
	Run(rc *RobotController)
}

// ProgramFunc adapts a plain function to the Program interface.
type ProgramFunc func(rc *RobotController)

func (f ProgramFunc) Run(rc *RobotController) { f(rc) }

// Operation costs, debited after the operation executes. Queries are
// cheap, world mutations are not; Yield and the debug surface are free.
const (
	CostQuery     int64 = 1
	CostSense     int64 = 2
	CostTransfer  int64 = 5
	CostBroadcast int64 = 5
	CostMove      int64 = 10
	CostMine      int64 = 10
	CostResearch  int64 = 10
	CostAttack    int64 = 15
	CostSpawn     int64 = 20
	CostBuild     int64 = 20
)

// RobotController is the capability surface agent code sees. Every method
// runs its world operation to completion first and charges its cost
// second, so a turn interrupted by budget exhaustion never leaves a
// half-applied operation; the interrupted call finishes when the robot
// resumes next round. Failed operations still cost their attempt.
//
// Methods report rule violations as typed errors. Programming errors
// (bad indicator slot, non-positive supply amount) panic and surface as
// agent runtime faults.
type RobotController struct {
	w   *World
	r   *InternalRobot
	box *sandbox
}

func newRobotController(w *World, r *InternalRobot, box *sandbox) *RobotController {
	return &RobotController{w: w, r: r, box: box}
}

// pay charges for a completed operation. A robot consumed by its own
// action (a missile's attack) ends its turn here and never resumes.
func (rc *RobotController) pay(cost int64) {
	rc.box.charge(cost)
	if !rc.r.Alive() {
		rc.box.park(turnOutcome{state: TurnEnded, used: rc.box.used})
	}
}

// === identity and budget ===

// Round returns the current round number.
func (rc *RobotController) Round() int32 {
	round := rc.w.Round()
	rc.pay(CostQuery)
	return round
}

// ID returns this robot's id.
func (rc *RobotController) ID() RobotID {
	id := rc.r.ID
	rc.pay(CostQuery)
	return id
}

// Team returns this robot's team.
func (rc *RobotController) Team() Team {
	team := rc.r.Team
	rc.pay(CostQuery)
	return team
}

// Type returns this robot's type.
func (rc *RobotController) Type() RobotType {
	typ := rc.r.Type
	rc.pay(CostQuery)
	return typ
}

// Location returns this robot's current location.
func (rc *RobotController) Location() MapLocation {
	loc := rc.r.Loc
	rc.pay(CostQuery)
	return loc
}

// Health returns this robot's current health.
func (rc *RobotController) Health() int32 {
	health := rc.r.Health
	rc.pay(CostQuery)
	return health
}

// Supply returns this robot's supply level.
func (rc *RobotController) Supply() int32 {
	supply := rc.r.Supply
	rc.pay(CostQuery)
	return supply
}

// BudgetRemaining returns the operation budget left this turn, measured
// before its own charge.
func (rc *RobotController) BudgetRemaining() int64 {
	left := rc.box.budget
	rc.pay(CostQuery)
	return left
}

// MapSize returns the map dimensions.
func (rc *RobotController) MapSize() (width, height int) {
	gm := rc.w.Map()
	rc.pay(CostQuery)
	return gm.Width, gm.Height
}

// OreCount returns the team's current ore.
func (rc *RobotController) OreCount() int64 {
	ore := rc.w.OreCount(rc.r.Team)
	rc.pay(CostQuery)
	return ore
}

// UpgradeProgress returns the team's research counter for an upgrade.
func (rc *RobotController) UpgradeProgress(up Upgrade) int32 {
	progress := rc.w.UpgradeProgress(rc.r.Team, up)
	rc.pay(CostQuery)
	return progress
}

// TeamMemory returns the team's cross-match memory slots.
func (rc *RobotController) TeamMemory() [replay.TeamMemoryLength]int64 {
	mem := rc.w.TeamMemoryOf(rc.r.Team)
	rc.pay(CostQuery)
	return mem
}

// Rand returns this robot's deterministic random stream, derived from the
// match seed and the robot id.
func (rc *RobotController) Rand() *rand.Rand {
	rng := rc.w.RNG().ForRobot(rc.r.ID)
	rc.pay(CostQuery)
	return rng
}

// === sensing ===

// SenseNearbyRobots returns robots within radiusSq of this robot, clamped
// to sensor range. A negative radiusSq means the full sensor range.
func (rc *RobotController) SenseNearbyRobots(radiusSq int, filters ...RobotFilter) []RobotInfo {
	found := rc.w.SenseNearby(rc.r, radiusSq, filters...)
	rc.pay(CostSense)
	return found
}

// SenseRobotAt returns the robot at loc, or nil when the square is empty.
// Squares beyond sensor range fail with OutOfBoundsError.
func (rc *RobotController) SenseRobotAt(loc MapLocation) (*RobotInfo, error) {
	info, err := rc.w.SenseRobotAt(rc.r, loc)
	rc.pay(CostQuery)
	return info, err
}

// SenseOre returns the ore remaining at loc, within sensor range.
func (rc *RobotController) SenseOre(loc MapLocation) (int64, error) {
	ore, err := rc.w.SenseOre(rc.r, loc)
	rc.pay(CostQuery)
	return ore, err
}

// SenseTerrain returns the terrain tile at loc, within sensor range.
func (rc *RobotController) SenseTerrain(loc MapLocation) (TerrainTile, error) {
	tile, err := rc.w.SenseTerrain(rc.r, loc)
	rc.pay(CostQuery)
	return tile, err
}

// CanMove reports whether a move in dir would succeed right now.
func (rc *RobotController) CanMove(dir Direction) bool {
	ok := rc.w.CanMove(rc.r, dir)
	rc.pay(CostQuery)
	return ok
}

// CanSpawn reports whether spawning typ in dir would succeed right now.
func (rc *RobotController) CanSpawn(typ RobotType, dir Direction) bool {
	ok := rc.w.CanSpawn(rc.r, typ, dir)
	rc.pay(CostQuery)
	return ok
}

// CanBuild reports whether building typ in dir would succeed right now.
func (rc *RobotController) CanBuild(typ RobotType, dir Direction) bool {
	ok := rc.w.CanBuild(rc.r, typ, dir)
	rc.pay(CostQuery)
	return ok
}

// ReadBroadcast reads a radio channel as of the previous round boundary.
func (rc *RobotController) ReadBroadcast(channel int) (int64, error) {
	value, err := rc.w.ReadBroadcast(rc.r, channel)
	rc.pay(CostSense)
	return value, err
}

// === actions ===

// Move steps this robot one square in dir.
func (rc *RobotController) Move(dir Direction) error {
	err := rc.w.MoveRobot(rc.r, dir)
	rc.pay(CostMove)
	return err
}

// Attack strikes the target square.
func (rc *RobotController) Attack(target MapLocation) error {
	err := rc.w.Attack(rc.r, target)
	rc.pay(CostAttack)
	return err
}

// Mine extracts ore from this robot's square.
func (rc *RobotController) Mine() error {
	err := rc.w.Mine(rc.r)
	rc.pay(CostMine)
	return err
}

// SpawnUnit produces a new unit adjacent to this robot.
func (rc *RobotController) SpawnUnit(typ RobotType, dir Direction) error {
	_, err := rc.w.SpawnRobot(rc.r, typ, dir)
	rc.pay(CostSpawn)
	return err
}

// Build constructs a structure adjacent to this robot.
func (rc *RobotController) Build(typ RobotType, dir Direction) error {
	_, err := rc.w.BuildRobot(rc.r, typ, dir)
	rc.pay(CostBuild)
	return err
}

// TransferSupply moves supply to the robot on an adjacent square.
func (rc *RobotController) TransferSupply(target MapLocation, amount int32) error {
	err := rc.w.TransferSupply(rc.r, target, amount)
	rc.pay(CostTransfer)
	return err
}

// Research advances one team upgrade by a round of work. HQ only.
func (rc *RobotController) Research(up Upgrade) error {
	err := rc.w.Research(rc.r, up)
	rc.pay(CostResearch)
	return err
}

// Broadcast writes a radio channel, visible to both teams after the round
// boundary.
func (rc *RobotController) Broadcast(channel int, value int64) error {
	err := rc.w.Broadcast(rc.r, channel, value)
	rc.pay(CostBroadcast)
	return err
}

// SetTeamMemory stores one slot of the team's cross-match memory.
func (rc *RobotController) SetTeamMemory(index int, value int64) {
	rc.w.SetTeamMemory(rc.r.Team, index, value)
	rc.pay(CostQuery)
}

// SetTeamMemoryMasked stores only the masked bits of one memory slot.
func (rc *RobotController) SetTeamMemoryMasked(index int, value, mask int64) {
	rc.w.SetTeamMemoryMasked(rc.r.Team, index, value, mask)
	rc.pay(CostQuery)
}

// === debug surface (free) ===

// SetIndicatorString updates one of this robot's debug indicator slots.
func (rc *RobotController) SetIndicatorString(slot int, value string) {
	rc.box.checkKilled()
	rc.w.SetIndicator(rc.r, slot, value)
}

// AddMatchObservation records a free-form observation in the match replay.
func (rc *RobotController) AddMatchObservation(observation string) {
	rc.box.checkKilled()
	rc.w.AddObservation(rc.r, observation)
}

// Breakpoint requests a match pause at the next round boundary. Ignored
// when breakpoints are disabled.
func (rc *RobotController) Breakpoint() {
	rc.box.checkKilled()
	rc.w.RequestBreakpoint()
}

// === turn control ===

// Yield ends this robot's turn voluntarily. The call returns at the start
// of the robot's next turn with a fresh budget.
func (rc *RobotController) Yield() {
	rc.box.checkKilled()
	rc.box.park(turnOutcome{state: TurnYielded, used: rc.box.used})
}

// Resign concedes the match for this robot's team. The match ends at the
// round boundary; play continues until then.
func (rc *RobotController) Resign() {
	rc.box.checkKilled()
	rc.w.ResignTeam(rc.r.Team)
}

// Disintegrate removes this robot at its own request and ends its turn.
// The call never returns.
func (rc *RobotController) Disintegrate() {
	rc.box.checkKilled()
	rc.w.DisintegrateRobot(rc.r)
	rc.box.park(turnOutcome{state: TurnEnded, used: rc.box.used})
}
