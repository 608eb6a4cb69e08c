package engine

// RobotID uniquely identifies a robot for the lifetime of a match. IDs are
// minted in ascending order and never reused.
type RobotID int32

// IndicatorSlots is the number of debug indicator strings each robot owns.
const IndicatorSlots = 3

// InternalRobot is the authoritative state of one live body. It is owned by
// the ObjectMap; agent code only ever sees RobotInfo snapshots.
type InternalRobot struct {
	ID     RobotID
	Team   Team
	Type   RobotType
	Loc    MapLocation
	Height Height
	Health int32
	Supply int32

	MoveCooldown   int32
	AttackCooldown int32
	SpawnedRound   int32

	indicators [IndicatorSlots]string
	alive      bool
}

func newInternalRobot(id RobotID, team Team, typ RobotType, loc MapLocation, round int32) *InternalRobot {
	info := typ.Info()
	return &InternalRobot{
		ID:           id,
		Team:         team,
		Type:         typ,
		Loc:          loc,
		Height:       info.Height,
		Health:       info.MaxHealth,
		SpawnedRound: round,
		alive:        true,
	}
}

// Alive reports whether the robot is still in the world.
func (r *InternalRobot) Alive() bool { return r.alive }

// Info returns the immutable sensed snapshot of the robot.
func (r *InternalRobot) Info() RobotInfo {
	return RobotInfo{
		ID:     r.ID,
		Team:   r.Team,
		Type:   r.Type,
		Loc:    r.Loc,
		Height: r.Height,
		Health: r.Health,
		Supply: r.Supply,
	}
}

// applyDamage reduces health, clamped at zero, and reports whether the hit
// was lethal.
func (r *InternalRobot) applyDamage(amount int32) bool {
	r.Health -= amount
	if r.Health < 0 {
		r.Health = 0
	}
	return r.Health == 0
}

// decayCooldowns steps both action cooldowns one round toward zero.
func (r *InternalRobot) decayCooldowns() {
	if r.MoveCooldown > 0 {
		r.MoveCooldown--
	}
	if r.AttackCooldown > 0 {
		r.AttackCooldown--
	}
}

func (r *InternalRobot) setIndicator(slot int, value string) {
	if slot < 0 || slot >= IndicatorSlots {
		panic("setIndicator: slot out of range")
	}
	r.indicators[slot] = value
}

// Indicator returns the debug string in the given slot.
func (r *InternalRobot) Indicator(slot int) string {
	if slot < 0 || slot >= IndicatorSlots {
		panic("Indicator: slot out of range")
	}
	return r.indicators[slot]
}

// RobotInfo is the snapshot of a robot returned by sensing. It references
// the robot by value only; holding one never pins live state.
type RobotInfo struct {
	ID     RobotID
	Team   Team
	Type   RobotType
	Loc    MapLocation
	Height Height
	Health int32
	Supply int32
}
