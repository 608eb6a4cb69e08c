package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/asciima/battlecode-server-2017/engine/replay"
)

// World composes the object map, signal log, broadcast store, and team
// state, and exposes the mutation surface agent actions call into. Every
// action validates its preconditions, applies its mutations, then appends
// the matching signals; a failed validation changes nothing.
//
// A World is confined to one match and is serialized by the scheduler's
// baton pass; none of its state is shared across matches.
type World struct {
	cfg     Config
	gm      *GameMap
	objects *ObjectMap
	log     *SignalLog
	radio   *BroadcastStore
	rng     *PartitionedRNG

	round    int32
	ore      [2]int64
	oreMap   [][]int64 // live per-match copy of the map's ore grid
	research [2][upgradeCount]int32
	memory   replay.TeamMemory

	resigned   [2]bool
	silenced   [2]bool
	faults     [2]int32
	nukeDone   [2]bool
	breakpoint bool

	oreMined     [2]int64
	unitsSpawned [2]int32
	unitsKilled  [2]int32
	attacksMade  [2]int32

	bodies []replay.SpawnedBody
}

// NewWorld builds an empty world over a validated map. Initial robots are
// seeded separately so the match driver can capture their spawn records
// for the header.
func NewWorld(cfg Config, gm *GameMap) *World {
	if gm == nil {
		panic("NewWorld: map must not be nil")
	}
	w := &World{
		cfg:     cfg,
		gm:      gm,
		objects: NewObjectMap(gm),
		log:     NewSignalLog(),
		radio:   NewBroadcastStore(cfg.Channels),
		rng:     NewPartitionedRNG(MatchSeed(cfg.Seed)),
	}
	w.silenced[TeamA] = cfg.SilenceA
	w.silenced[TeamB] = cfg.SilenceB
	w.oreMap = make([][]int64, gm.Height)
	for y := range w.oreMap {
		w.oreMap[y] = make([]int64, gm.Width)
		for x := range w.oreMap[y] {
			w.oreMap[y][x] = gm.OreAt(MapLocation{X: x, Y: y})
		}
	}
	return w
}

// Round returns the current round number, monotonic from 0.
func (w *World) Round() int32 { return w.round }

// Map returns the static map backing this world.
func (w *World) Map() *GameMap { return w.gm }

// Objects exposes the authoritative robot store.
func (w *World) Objects() *ObjectMap { return w.objects }

// Log exposes the round's signal log.
func (w *World) Log() *SignalLog { return w.log }

// RNG exposes the partitioned generator tree for this match.
func (w *World) RNG() *PartitionedRNG { return w.rng }

// SetCarriedMemory installs the cross-match memory read at match start.
func (w *World) SetCarriedMemory(mem replay.TeamMemory) { w.memory = mem }

// Memory returns a copy of both teams' memory.
func (w *World) Memory() replay.TeamMemory { return w.memory }

// === seeding ===

// SeedBodies spawns the map's initial robots in file order and returns
// their spawned-body records for the match header.
func (w *World) SeedBodies() ([]replay.SpawnedBody, error) {
	start := len(w.bodies)
	for _, b := range w.gm.Bodies() {
		team := ValidTeams[b.Team]
		typ := ValidRobotTypes[b.Type]
		loc := MapLocation{X: b.X, Y: b.Y}
		if _, err := w.spawn(0, team, typ, loc); err != nil {
			return nil, err
		}
	}
	seeded := make([]replay.SpawnedBody, len(w.bodies)-start)
	copy(seeded, w.bodies[start:])
	return seeded, nil
}

// spawn is the shared body-creation path for seeding, SpawnRobot, and
// BuildRobot. It appends the spawn signal and the spawned-body record.
func (w *World) spawn(parent RobotID, team Team, typ RobotType, loc MapLocation) (*InternalRobot, error) {
	r, err := w.objects.Spawn(team, typ, loc, w.round)
	if err != nil {
		return nil, err
	}
	r.Supply = w.cfg.StartingSupply
	if team.IsPlayer() {
		w.unitsSpawned[team]++
	}
	w.log.Append(replay.SpawnSignal{
		ID:     int32(r.ID),
		Parent: int32(parent),
		Team:   int8(team),
		Type:   uint8(typ),
		X:      int16(loc.X),
		Y:      int16(loc.Y),
		Height: uint8(r.Height),
	})
	w.bodies = append(w.bodies, replay.SpawnedBody{
		ID:     int32(r.ID),
		Team:   int8(team),
		Type:   uint8(typ),
		Radius: typ.Info().Radius,
		Loc:    replay.Vec{X: float32(loc.X), Y: float32(loc.Y)},
	})
	logrus.Debugf("[round %04d] spawned %v %v #%d at %v", w.round, team, typ, r.ID, loc)
	return r, nil
}

// removeRobot tears a robot down and appends its death signal. Idempotent
// through the object map's remove semantics.
func (w *World) removeRobot(r *InternalRobot) {
	if !r.Alive() {
		return
	}
	if err := w.objects.Remove(r.ID); err != nil {
		return
	}
	w.log.Append(replay.DeathSignal{ID: int32(r.ID)})
	logrus.Debugf("[round %04d] %v %v #%d died at %v", w.round, r.Team, r.Type, r.ID, r.Loc)
}

// === upgrade-adjusted capabilities ===

// UpgradeComplete reports whether a team finished an upgrade.
func (w *World) UpgradeComplete(team Team, up Upgrade) bool {
	return team.IsPlayer() && w.research[team][up] >= up.Info().RoundsToComplete
}

// UpgradeProgress returns a team's research counter for an upgrade.
func (w *World) UpgradeProgress(team Team, up Upgrade) int32 {
	if !team.IsPlayer() {
		return 0
	}
	return w.research[team][up]
}

func (w *World) sensorRadiusSq(r *InternalRobot) int {
	base := r.Type.Info().SensorRadiusSq
	if w.UpgradeComplete(r.Team, UpgradeVision) {
		base += base / 4
	}
	return base
}

func (w *World) movementDelay(r *InternalRobot) int32 {
	delay := r.Type.Info().MovementDelay
	if r.Type == Drone && w.UpgradeComplete(r.Team, UpgradeFusion) && delay > 1 {
		delay /= 2
	}
	return delay
}

func (w *World) mineMax(r *InternalRobot) int64 {
	max := r.Type.Info().MineMax
	if w.UpgradeComplete(r.Team, UpgradePickaxe) {
		max *= 2
	}
	return max
}

func (w *World) attackDamage(attacker, victim *InternalRobot) int32 {
	dmg := attacker.Type.Info().AttackPower
	if attacker.Type == Missile && w.UpgradeComplete(victim.Team, UpgradeDefusion) {
		dmg /= 2
	}
	return dmg
}

// === actions ===

// MoveRobot steps a robot one square in dir. Immobile types report a
// permanent OnCooldownError; everything else follows the usual cooldown,
// bounds, and occupancy rules.
func (w *World) MoveRobot(r *InternalRobot, dir Direction) error {
	if !r.Type.CanMove() {
		return OnCooldownError{ID: r.ID, Remaining: -1}
	}
	if r.MoveCooldown > 0 {
		return OnCooldownError{ID: r.ID, Remaining: r.MoveCooldown}
	}
	from := r.Loc
	to := from.Add(dir)
	if err := w.objects.Move(r.ID, to); err != nil {
		return err
	}
	r.MoveCooldown = w.movementDelay(r)
	w.log.Append(replay.MoveSignal{
		ID:    int32(r.ID),
		FromX: int16(from.X),
		FromY: int16(from.Y),
		ToX:   int16(to.X),
		ToY:   int16(to.Y),
	})
	return nil
}

// Attack damages the robot at target. Attacks hit the ground tier first,
// the air tier only when the ground cell is empty. A lethal hit removes the
// victim in the same action: one attack signal, then one death signal.
// Missiles are consumed by their own attack.
func (w *World) Attack(r *InternalRobot, target MapLocation) error {
	if !r.Type.CanAttack() {
		return OnCooldownError{ID: r.ID, Remaining: -1}
	}
	if r.AttackCooldown > 0 {
		return OnCooldownError{ID: r.ID, Remaining: r.AttackCooldown}
	}
	if r.Loc.DistanceSquaredTo(target) > r.Type.Info().AttackRadiusSq {
		return OutOfBoundsError{Loc: target}
	}
	victim := w.robotAtAnyHeight(target)
	if victim == nil {
		return UnknownEntityError{ID: 0}
	}
	dmg := w.attackDamage(r, victim)
	died := victim.applyDamage(dmg)
	r.AttackCooldown = r.Type.Info().AttackDelay
	if r.Team.IsPlayer() {
		w.attacksMade[r.Team]++
	}
	w.log.Append(replay.AttackSignal{
		ID:     int32(r.ID),
		Target: int32(victim.ID),
		X:      int16(target.X),
		Y:      int16(target.Y),
		Damage: dmg,
	})
	if died {
		if r.Team.IsPlayer() && victim.Team == r.Team.Opponent() {
			w.unitsKilled[r.Team]++
		}
		w.removeRobot(victim)
	}
	if r.Type == Missile {
		w.removeRobot(r)
	}
	return nil
}

// Mine extracts ore from the robot's square into its team total.
func (w *World) Mine(r *InternalRobot) error {
	if !r.Type.CanMine() {
		return OnCooldownError{ID: r.ID, Remaining: -1}
	}
	if r.MoveCooldown > 0 {
		return OnCooldownError{ID: r.ID, Remaining: r.MoveCooldown}
	}
	available := w.oreMap[r.Loc.Y][r.Loc.X]
	if available <= 0 {
		return InsufficientResourceError{Need: 1, Have: 0}
	}
	amount := w.mineMax(r)
	if amount > available {
		amount = available
	}
	w.oreMap[r.Loc.Y][r.Loc.X] -= amount
	w.ore[r.Team] += amount
	w.oreMined[r.Team] += amount
	r.MoveCooldown = r.Type.Info().MovementDelay
	w.log.Append(replay.MineSignal{
		ID:     int32(r.ID),
		Team:   int8(r.Team),
		X:      int16(r.Loc.X),
		Y:      int16(r.Loc.Y),
		Amount: int32(amount),
	})
	return nil
}

// SpawnRobot produces a new unit adjacent to its parent.
func (w *World) SpawnRobot(parent *InternalRobot, typ RobotType, dir Direction) (*InternalRobot, error) {
	if !parent.Type.CanSpawn(typ) {
		return nil, OnCooldownError{ID: parent.ID, Remaining: -1}
	}
	if parent.MoveCooldown > 0 {
		return nil, OnCooldownError{ID: parent.ID, Remaining: parent.MoveCooldown}
	}
	cost := typ.Info().OreCost
	if w.ore[parent.Team] < cost {
		return nil, InsufficientResourceError{Need: cost, Have: w.ore[parent.Team]}
	}
	r, err := w.spawn(parent.ID, parent.Team, typ, parent.Loc.Add(dir))
	if err != nil {
		return nil, err
	}
	w.ore[parent.Team] -= cost
	parent.MoveCooldown = parent.Type.Info().ProduceDelay
	return r, nil
}

// BuildRobot constructs a structure adjacent to its builder.
func (w *World) BuildRobot(builder *InternalRobot, typ RobotType, dir Direction) (*InternalRobot, error) {
	if !builder.Type.CanBuild(typ) {
		return nil, OnCooldownError{ID: builder.ID, Remaining: -1}
	}
	if builder.MoveCooldown > 0 {
		return nil, OnCooldownError{ID: builder.ID, Remaining: builder.MoveCooldown}
	}
	cost := typ.Info().OreCost
	if w.ore[builder.Team] < cost {
		return nil, InsufficientResourceError{Need: cost, Have: w.ore[builder.Team]}
	}
	loc := builder.Loc.Add(dir)
	r, err := w.objects.Spawn(builder.Team, typ, loc, w.round)
	if err != nil {
		return nil, err
	}
	r.Supply = w.cfg.StartingSupply
	w.ore[builder.Team] -= cost
	w.unitsSpawned[builder.Team]++
	builder.MoveCooldown = builder.Type.Info().ProduceDelay
	w.log.Append(replay.BuildSignal{
		ID:      int32(r.ID),
		Builder: int32(builder.ID),
		Team:    int8(builder.Team),
		Type:    uint8(typ),
		X:       int16(loc.X),
		Y:       int16(loc.Y),
	})
	w.bodies = append(w.bodies, replay.SpawnedBody{
		ID:     int32(r.ID),
		Team:   int8(builder.Team),
		Type:   uint8(typ),
		Radius: typ.Info().Radius,
		Loc:    replay.Vec{X: float32(loc.X), Y: float32(loc.Y)},
	})
	logrus.Debugf("[round %04d] built %v %v #%d at %v", w.round, builder.Team, typ, r.ID, loc)
	return r, nil
}

// TransferSupply moves supply to an adjacent robot. A non-positive amount
// is a caller error and panics (the sandbox reports it as an agent fault).
func (w *World) TransferSupply(r *InternalRobot, target MapLocation, amount int32) error {
	if amount <= 0 {
		panic("TransferSupply: amount must be positive")
	}
	if !r.Loc.IsAdjacentTo(target) {
		return OutOfBoundsError{Loc: target}
	}
	to := w.robotAtAnyHeight(target)
	if to == nil {
		return UnknownEntityError{ID: 0}
	}
	if r.Supply < amount {
		return InsufficientResourceError{Need: int64(amount), Have: int64(r.Supply)}
	}
	r.Supply -= amount
	to.Supply += amount
	w.log.Append(replay.SupplySignal{
		From:   int32(r.ID),
		To:     int32(to.ID),
		Amount: amount,
	})
	return nil
}

// Research advances a team upgrade by one step. Only the HQ researches, and
// it shares its production cooldown with spawning.
func (w *World) Research(r *InternalRobot, up Upgrade) error {
	if r.Type != HQ {
		return OnCooldownError{ID: r.ID, Remaining: -1}
	}
	if w.UpgradeComplete(r.Team, up) {
		return OnCooldownError{ID: r.ID, Remaining: -1}
	}
	if r.MoveCooldown > 0 {
		return OnCooldownError{ID: r.ID, Remaining: r.MoveCooldown}
	}
	w.research[r.Team][up]++
	r.MoveCooldown = 1
	progress := w.research[r.Team][up]
	complete := progress >= up.Info().RoundsToComplete
	w.log.Append(replay.ResearchSignal{
		Team:     int8(r.Team),
		Upgrade:  uint8(up),
		Progress: progress,
		Complete: complete,
	})
	if complete {
		logrus.Infof("[round %04d] team %v completed %v", w.round, r.Team, up)
		if up == UpgradeNuke {
			w.nukeDone[r.Team] = true
		}
	}
	return nil
}

// Broadcast buffers a channel write for commit at the round boundary.
func (w *World) Broadcast(r *InternalRobot, channel int, value int64) error {
	return w.radio.Write(r.Team, channel, value)
}

// ReadBroadcast reads a channel as of the previous round boundary.
func (w *World) ReadBroadcast(r *InternalRobot, channel int) (int64, error) {
	return w.radio.Read(r.Team, channel)
}

// DisintegrateRobot removes a robot at its own request.
func (w *World) DisintegrateRobot(r *InternalRobot) {
	w.removeRobot(r)
}

// ResignTeam marks a team as resigned; the match ends at the round
// boundary.
func (w *World) ResignTeam(team Team) {
	if !team.IsPlayer() || w.resigned[team] {
		return
	}
	w.resigned[team] = true
	logrus.Infof("[round %04d] team %v resigned", w.round, team)
}

// SetTeamMemory stores one slot of a team's cross-match memory. An index
// outside the fixed length is a caller error and panics.
func (w *World) SetTeamMemory(team Team, index int, value int64) {
	w.checkMemoryIndex(team, index)
	w.memory[team][index] = value
}

// SetTeamMemoryMasked stores only the masked bits of one memory slot.
func (w *World) SetTeamMemoryMasked(team Team, index int, value, mask int64) {
	w.checkMemoryIndex(team, index)
	w.memory[team][index] = (w.memory[team][index] &^ mask) | (value & mask)
}

func (w *World) checkMemoryIndex(team Team, index int) {
	if !team.IsPlayer() {
		panic("team memory: team must be a player team")
	}
	if index < 0 || index >= replay.TeamMemoryLength {
		panic("team memory: index out of range")
	}
}

// TeamMemoryOf returns a copy of one team's memory slots.
func (w *World) TeamMemoryOf(team Team) [replay.TeamMemoryLength]int64 {
	if !team.IsPlayer() {
		panic("team memory: team must be a player team")
	}
	return w.memory[team]
}

// SetIndicator updates a robot's debug indicator. Silenced teams keep the
// robot-side state but emit no signal.
func (w *World) SetIndicator(r *InternalRobot, slot int, value string) {
	r.setIndicator(slot, value)
	if w.silenced[r.Team] {
		return
	}
	w.log.Append(replay.IndicatorSignal{
		ID:    int32(r.ID),
		Slot:  uint8(slot),
		Value: value,
	})
}

// AddObservation records a free-form observation from agent code unless the
// team is silenced.
func (w *World) AddObservation(r *InternalRobot, observation string) {
	if w.silenced[r.Team] {
		return
	}
	w.log.Append(replay.ObservationSignal{
		ID:          int32(r.ID),
		Observation: observation,
	})
}

// === queries ===

func (w *World) robotAtAnyHeight(loc MapLocation) *InternalRobot {
	if r := w.objects.RobotAt(loc, HeightGround); r != nil {
		return r
	}
	return w.objects.RobotAt(loc, HeightAir)
}

// SenseNearby returns snapshots of robots within radiusSq of the sensing
// robot, clamped to its (upgrade-adjusted) sensor range. A negative
// radiusSq means the full sensor range.
func (w *World) SenseNearby(r *InternalRobot, radiusSq int, filters ...RobotFilter) []RobotInfo {
	limit := w.sensorRadiusSq(r)
	if radiusSq >= 0 && radiusSq < limit {
		limit = radiusSq
	}
	return w.objects.Query(r.Loc, limit, filters...)
}

// SenseRobotAt returns the robot at loc, ground tier first, or nil when the
// square is empty. Squares beyond sensor range fail with OutOfBoundsError.
func (w *World) SenseRobotAt(r *InternalRobot, loc MapLocation) (*RobotInfo, error) {
	if r.Loc.DistanceSquaredTo(loc) > w.sensorRadiusSq(r) {
		return nil, OutOfBoundsError{Loc: loc}
	}
	target := w.robotAtAnyHeight(loc)
	if target == nil {
		return nil, nil
	}
	info := target.Info()
	return &info, nil
}

// SenseOre returns the ore remaining at loc, within sensor range.
func (w *World) SenseOre(r *InternalRobot, loc MapLocation) (int64, error) {
	if r.Loc.DistanceSquaredTo(loc) > w.sensorRadiusSq(r) {
		return 0, OutOfBoundsError{Loc: loc}
	}
	if !w.gm.OnMap(loc) {
		return 0, nil
	}
	return w.oreMap[loc.Y][loc.X], nil
}

// SenseTerrain returns the tile at loc, within sensor range.
func (w *World) SenseTerrain(r *InternalRobot, loc MapLocation) (TerrainTile, error) {
	if r.Loc.DistanceSquaredTo(loc) > w.sensorRadiusSq(r) {
		return TerrainOffMap, OutOfBoundsError{Loc: loc}
	}
	return w.gm.TerrainAt(loc), nil
}

// CanMove reports whether a move in dir would succeed right now.
func (w *World) CanMove(r *InternalRobot, dir Direction) bool {
	if !r.Type.CanMove() || r.MoveCooldown > 0 {
		return false
	}
	to := r.Loc.Add(dir)
	if w.gm.TerrainAt(to) != TerrainNormal {
		return false
	}
	return w.objects.RobotAt(to, r.Height) == nil
}

// CanSpawn reports whether SpawnRobot would succeed right now.
func (w *World) CanSpawn(r *InternalRobot, typ RobotType, dir Direction) bool {
	if !r.Type.CanSpawn(typ) || r.MoveCooldown > 0 {
		return false
	}
	if w.ore[r.Team] < typ.Info().OreCost {
		return false
	}
	to := r.Loc.Add(dir)
	if w.gm.TerrainAt(to) != TerrainNormal {
		return false
	}
	return w.objects.RobotAt(to, typ.Info().Height) == nil
}

// CanBuild reports whether BuildRobot would succeed right now.
func (w *World) CanBuild(r *InternalRobot, typ RobotType, dir Direction) bool {
	if !r.Type.CanBuild(typ) || r.MoveCooldown > 0 {
		return false
	}
	if w.ore[r.Team] < typ.Info().OreCost {
		return false
	}
	to := r.Loc.Add(dir)
	if w.gm.TerrainAt(to) != TerrainNormal {
		return false
	}
	return w.objects.RobotAt(to, typ.Info().Height) == nil
}

// OreCount returns a team's current ore.
func (w *World) OreCount(team Team) int64 {
	if !team.IsPlayer() {
		return 0
	}
	return w.ore[team]
}

// === scheduler bookkeeping ===

// Silenced reports whether a team's debug stream is suppressed.
func (w *World) Silenced(team Team) bool { return team.IsPlayer() && w.silenced[team] }

// Silence suppresses a team's debug stream for the rest of the match.
func (w *World) Silence(team Team) {
	if team.IsPlayer() {
		w.silenced[team] = true
	}
}

// RecordAgentFault tallies one trapped fault and returns the team's total.
func (w *World) RecordAgentFault(team Team) int32 {
	if !team.IsPlayer() {
		return 0
	}
	w.faults[team]++
	return w.faults[team]
}

// FaultCount returns a team's trapped fault total.
func (w *World) FaultCount(team Team) int32 {
	if !team.IsPlayer() {
		return 0
	}
	return w.faults[team]
}

// Resigned reports whether a team has resigned.
func (w *World) Resigned(team Team) bool { return team.IsPlayer() && w.resigned[team] }

// RequestBreakpoint arms a pause at the next round boundary. Ignored when
// breakpoints are disabled in the config.
func (w *World) RequestBreakpoint() {
	if w.cfg.Breakpoints {
		w.breakpoint = true
	}
}

// TakeBreakpoint consumes a pending breakpoint request.
func (w *World) TakeBreakpoint() bool {
	hit := w.breakpoint
	w.breakpoint = false
	return hit
}

// NukeComplete reports whether a team finished the victory research.
func (w *World) NukeComplete(team Team) bool { return team.IsPlayer() && w.nukeDone[team] }

// === outcome helpers ===

// CountTeam returns a team's live robot count.
func (w *World) CountTeam(team Team) int {
	return w.objects.Count(FilterTeam(team))
}

// Structures returns a team's surviving structure count.
func (w *World) Structures(team Team) int {
	return w.objects.Count(FilterTeam(team), func(r *InternalRobot) bool { return r.Type.IsStructure() })
}

// AggregateHealth sums a team's robot health across the whole map.
func (w *World) AggregateHealth(team Team) int64 {
	var total int64
	corner := MapLocation{X: w.gm.Width - 1, Y: w.gm.Height - 1}
	for _, info := range w.objects.QueryRect(MapLocation{}, corner, FilterTeam(team)) {
		total += int64(info.Health)
	}
	return total
}

// Score is the economic tie-break criterion: current ore plus everything
// mined over the match.
func (w *World) Score(team Team) int64 {
	if !team.IsPlayer() {
		return 0
	}
	return w.ore[team] + w.oreMined[team]
}

// HQUntouched reports whether a team's HQ survives at full health.
func (w *World) HQUntouched(team Team) bool {
	corner := MapLocation{X: w.gm.Width - 1, Y: w.gm.Height - 1}
	for _, info := range w.objects.QueryRect(MapLocation{}, corner, FilterTeam(team), FilterType(HQ)) {
		if info.Health == HQ.Info().MaxHealth {
			return true
		}
	}
	return false
}

// === round boundary ===

// EndRound applies end-of-round upkeep: cooldown decay for every live
// robot, ore accrual and per-unit upkeep with one TeamOreSignal per team,
// then the broadcast flush. The caller runs the termination check and
// drains the log afterwards.
func (w *World) EndRound() {
	for _, id := range w.objects.LiveIDs() {
		w.objects.Get(id).decayCooldowns()
	}
	for _, team := range []Team{TeamA, TeamB} {
		w.ore[team] += w.cfg.OreAccrual
		if w.cfg.Upkeep {
			mobile := w.objects.Count(FilterTeam(team), func(r *InternalRobot) bool { return !r.Type.IsStructure() })
			w.ore[team] -= w.cfg.OreUpkeep * int64(mobile)
			if w.ore[team] < 0 {
				w.ore[team] = 0
			}
		}
		w.log.Append(replay.TeamOreSignal{Team: int8(team), Ore: w.ore[team]})
	}
	w.radio.Flush(w.log)
}

// AdvanceRound steps the round counter after the delta is drained.
func (w *World) AdvanceRound() { w.round++ }

// AppendMatchWon records the terminal signal in the final round's delta.
func (w *World) AppendMatchWon(team Team) {
	w.log.Append(replay.MatchWonSignal{Team: int8(team)})
}

// BodyStream returns every spawned-body record emitted so far, seeds
// included, in spawn order.
func (w *World) BodyStream() []replay.SpawnedBody {
	out := make([]replay.SpawnedBody, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// StatsSnapshot fills the per-team tallies the world accumulates; the match
// driver completes the outcome fields.
func (w *World) StatsSnapshot() replay.GameStats {
	return replay.GameStats{
		OreMined:     w.oreMined,
		FinalOre:     w.ore,
		UnitsSpawned: w.unitsSpawned,
		UnitsKilled:  w.unitsKilled,
		AttacksMade:  w.attacksMade,
		Faults:       w.faults,
		Silenced:     w.silenced,
	}
}
