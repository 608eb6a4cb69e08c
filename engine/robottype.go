package engine

// RobotType is the closed set of body kinds. Behavior differences between
// types are data in the capability table below, not subtypes.
type RobotType uint8

const (
	HQ RobotType = iota
	Tower
	SupplyDepot
	Beaver
	Soldier
	Tank
	Drone
	Launcher
	Missile

	robotTypeCount
)

// RobotTypeInfo is one row of the capability table.
type RobotTypeInfo struct {
	Name           string
	MaxHealth      int32
	OreCost        int64
	AttackPower    int32
	AttackRadiusSq int
	SensorRadiusSq int
	MovementDelay  int32 // rounds of cooldown per move; 0 means immobile
	AttackDelay    int32 // rounds of cooldown per attack; 0 means unarmed
	ProduceDelay   int32 // rounds of cooldown after spawning, building, or researching
	Height         Height
	IsStructure    bool
	MineMax        int64   // ore mined per action; 0 means cannot mine
	BudgetOverride int64   // per-round operation budget; 0 means the configured default
	Radius         float32 // body radius for spawned-body records
	Spawns         []RobotType
	Builds         []RobotType
}

var typeInfos = [robotTypeCount]RobotTypeInfo{
	HQ: {
		Name: "HQ", MaxHealth: 2000, AttackPower: 24, AttackRadiusSq: 24,
		SensorRadiusSq: 35, AttackDelay: 2, ProduceDelay: 10, IsStructure: true, Radius: 2,
		Spawns: []RobotType{Beaver, Soldier, Tank, Drone, Launcher},
	},
	Tower: {
		Name: "TOWER", MaxHealth: 1000, OreCost: 250, AttackPower: 8, AttackRadiusSq: 24,
		SensorRadiusSq: 10, AttackDelay: 1, IsStructure: true, Radius: 1.5,
	},
	SupplyDepot: {
		Name: "SUPPLYDEPOT", MaxHealth: 100, OreCost: 100,
		SensorRadiusSq: 8, IsStructure: true, Radius: 1,
	},
	Beaver: {
		Name: "BEAVER", MaxHealth: 30, OreCost: 100, AttackPower: 4, AttackRadiusSq: 5,
		SensorRadiusSq: 24, MovementDelay: 2, AttackDelay: 2, ProduceDelay: 10, MineMax: 2,
		Radius: 0.5, Builds: []RobotType{SupplyDepot, Tower},
	},
	Soldier: {
		Name: "SOLDIER", MaxHealth: 40, OreCost: 60, AttackPower: 8, AttackRadiusSq: 8,
		SensorRadiusSq: 24, MovementDelay: 2, AttackDelay: 2, Radius: 0.5,
	},
	Tank: {
		Name: "TANK", MaxHealth: 160, OreCost: 250, AttackPower: 20, AttackRadiusSq: 15,
		SensorRadiusSq: 24, MovementDelay: 2, AttackDelay: 3, Radius: 0.5,
	},
	Drone: {
		Name: "DRONE", MaxHealth: 70, OreCost: 125, AttackPower: 8, AttackRadiusSq: 5,
		SensorRadiusSq: 24, MovementDelay: 2, AttackDelay: 3, Height: HeightAir, Radius: 0.5,
	},
	Launcher: {
		Name: "LAUNCHER", MaxHealth: 100, OreCost: 400,
		SensorRadiusSq: 24, MovementDelay: 4, ProduceDelay: 6, Radius: 0.5,
		Spawns: []RobotType{Missile},
	},
	Missile: {
		Name: "MISSILE", MaxHealth: 3, AttackPower: 20, AttackRadiusSq: 2,
		SensorRadiusSq: 2, MovementDelay: 1, AttackDelay: 1, Height: HeightAir,
		BudgetOverride: 500, Radius: 0.25,
	},
}

// ValidRobotTypes maps map-file type names to RobotType values.
var ValidRobotTypes = map[string]RobotType{}

func init() {
	for t := RobotType(0); t < robotTypeCount; t++ {
		ValidRobotTypes[typeInfos[t].Name] = t
	}
}

// Info returns the capability row for t.
func (t RobotType) Info() RobotTypeInfo {
	return typeInfos[t]
}

func (t RobotType) String() string {
	if t < robotTypeCount {
		return typeInfos[t].Name
	}
	return "?"
}

// IsStructure reports whether t is a stationary building.
func (t RobotType) IsStructure() bool { return typeInfos[t].IsStructure }

// CanMove reports whether t is a mobile type.
func (t RobotType) CanMove() bool { return typeInfos[t].MovementDelay > 0 }

// CanAttack reports whether t deals direct damage.
func (t RobotType) CanAttack() bool { return typeInfos[t].AttackPower > 0 }

// CanMine reports whether t can extract ore from the map.
func (t RobotType) CanMine() bool { return typeInfos[t].MineMax > 0 }

// CanSpawn reports whether t can produce a unit of type other.
func (t RobotType) CanSpawn(other RobotType) bool {
	for _, s := range typeInfos[t].Spawns {
		if s == other {
			return true
		}
	}
	return false
}

// CanBuild reports whether t can construct a structure of type other.
func (t RobotType) CanBuild(other RobotType) bool {
	for _, b := range typeInfos[t].Builds {
		if b == other {
			return true
		}
	}
	return false
}
