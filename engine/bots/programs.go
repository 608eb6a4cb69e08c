package bots

import (
	"math/rand"

	"github.com/asciima/battlecode-server-2017/engine"
)

// Radio channels the rusher uses to point its army at the enemy HQ. The
// HQ rebroadcasts its own location every turn; units aim at its mirror
// image, which is where the enemy HQ sits on the symmetric built-in maps.
const (
	chanHQReady = 0
	chanHQX     = 1
	chanHQY     = 2
)

// Idle yields every turn and does nothing else.
func Idle(rc *engine.RobotController) {
	for {
		rc.Yield()
	}
}

// Random wanders. The HQ spawns beavers so there is something to wander.
func Random(rc *engine.RobotController) {
	rng := rc.Rand()
	for {
		switch {
		case rc.Type() == engine.HQ:
			trySpawn(rc, engine.Beaver, rng)
		case rc.Type().CanMove():
			tryMove(rc, randomDir(rng))
		}
		rc.Yield()
	}
}

// Miner plays the economy: the HQ pumps out beavers, beavers chase ore,
// mine it, and turn a rich bank into supply depots.
func Miner(rc *engine.RobotController) {
	rng := rc.Rand()
	for {
		switch {
		case rc.Type() == engine.HQ:
			attackNearest(rc)
			trySpawn(rc, engine.Beaver, rng)
		case rc.Type() == engine.Beaver:
			minerBeaver(rc, rng)
		case rc.Type().CanAttack():
			attackNearest(rc)
		}
		rc.Yield()
	}
}

func minerBeaver(rc *engine.RobotController, rng *rand.Rand) {
	loc := rc.Location()
	if rc.OreCount() >= 400 && rng.Intn(8) == 0 && tryBuild(rc, engine.SupplyDepot, rng) {
		return
	}
	if ore, err := rc.SenseOre(loc); err == nil && ore > 0 {
		_ = rc.Mine()
		return
	}
	if dir, ok := richestNeighbor(rc, loc); ok {
		tryMove(rc, dir)
		return
	}
	tryMove(rc, randomDir(rng))
}

// richestNeighbor points at the adjacent tile holding the most ore; ok is
// false when no neighbor has any ore worth walking toward.
func richestNeighbor(rc *engine.RobotController, loc engine.MapLocation) (engine.Direction, bool) {
	var best int64
	dir := engine.DirNone
	for _, d := range engine.Directions {
		ore, err := rc.SenseOre(loc.Add(d))
		if err != nil || ore <= best {
			continue
		}
		best = ore
		dir = d
	}
	return dir, dir != engine.DirNone
}

// Rusher fights: the HQ calls out its position on the radio and produces
// an army, fighters march on the mirror of that position, launchers shell
// whatever they meet, and missiles burn a short fuse.
func Rusher(rc *engine.RobotController) {
	rng := rc.Rand()
	fuse := 0
	for {
		switch {
		case rc.Type() == engine.HQ:
			rusherHQ(rc, rng)
		case rc.Type() == engine.Launcher:
			rusherLauncher(rc, rng)
		case rc.Type() == engine.Missile:
			fuse++
			rusherMissile(rc, rng, fuse)
		case rc.Type() == engine.Beaver:
			minerBeaver(rc, rng)
		case rc.Type().CanMove() && rc.Type().CanAttack():
			rusherFighter(rc, rng)
		case rc.Type().CanAttack():
			attackNearest(rc)
		}
		rc.Yield()
	}
}

func rusherHQ(rc *engine.RobotController, rng *rand.Rand) {
	loc := rc.Location()
	_ = rc.Broadcast(chanHQX, int64(loc.X))
	_ = rc.Broadcast(chanHQY, int64(loc.Y))
	_ = rc.Broadcast(chanHQReady, 1)
	attackNearest(rc)
	switch {
	case rc.OreCount() >= 500:
		trySpawn(rc, engine.Launcher, rng)
	case rc.Round()%3 == 0:
		trySpawn(rc, engine.Beaver, rng)
	default:
		trySpawn(rc, engine.Soldier, rng)
	}
}

func rusherFighter(rc *engine.RobotController, rng *rand.Rand) {
	loc := rc.Location()
	hostiles := rc.SenseNearbyRobots(-1, engine.FilterNotTeam(rc.Team()))
	if target, ok := nearest(loc, hostiles); ok {
		if loc.DistanceSquaredTo(target.Loc) <= rc.Type().Info().AttackRadiusSq {
			_ = rc.Attack(target.Loc)
			return
		}
		tryMove(rc, loc.DirectionTo(target.Loc))
		return
	}
	tryMove(rc, marchDirection(rc, loc, rng))
}

func rusherLauncher(rc *engine.RobotController, rng *rand.Rand) {
	loc := rc.Location()
	hostiles := rc.SenseNearbyRobots(-1, engine.FilterNotTeam(rc.Team()))
	if target, ok := nearest(loc, hostiles); ok {
		dir := loc.DirectionTo(target.Loc)
		if rc.CanSpawn(engine.Missile, dir) {
			_ = rc.SpawnUnit(engine.Missile, dir)
		} else {
			trySpawn(rc, engine.Missile, rng)
		}
		return
	}
	tryMove(rc, marchDirection(rc, loc, rng))
}

// rusherMissile attacks anything in blast range and otherwise closes in on
// the march target. A missile that finds nothing within its fuse scuttles
// itself rather than drift around the map.
func rusherMissile(rc *engine.RobotController, rng *rand.Rand, fuse int) {
	loc := rc.Location()
	hostiles := rc.SenseNearbyRobots(-1, engine.FilterNotTeam(rc.Team()))
	if target, ok := nearest(loc, hostiles); ok {
		if loc.DistanceSquaredTo(target.Loc) <= rc.Type().Info().AttackRadiusSq {
			_ = rc.Attack(target.Loc)
			return
		}
		tryMove(rc, loc.DirectionTo(target.Loc))
		return
	}
	if fuse > 6 {
		rc.Disintegrate()
		return
	}
	tryMove(rc, marchDirection(rc, loc, rng))
}

// marchDirection aims at the mirror image of our HQ's broadcast position.
// Before the first broadcast commits, wander.
func marchDirection(rc *engine.RobotController, loc engine.MapLocation, rng *rand.Rand) engine.Direction {
	ready, err := rc.ReadBroadcast(chanHQReady)
	if err != nil || ready == 0 {
		return randomDir(rng)
	}
	x, _ := rc.ReadBroadcast(chanHQX)
	y, _ := rc.ReadBroadcast(chanHQY)
	width, height := rc.MapSize()
	target := engine.MapLocation{X: width - 1 - int(x), Y: height - 1 - int(y)}
	if target == loc {
		return randomDir(rng)
	}
	return loc.DirectionTo(target)
}

// attackNearest strikes the closest hostile in attack range, if any.
func attackNearest(rc *engine.RobotController) bool {
	loc := rc.Location()
	radius := rc.Type().Info().AttackRadiusSq
	hostiles := rc.SenseNearbyRobots(radius, engine.FilterNotTeam(rc.Team()))
	target, ok := nearest(loc, hostiles)
	if !ok {
		return false
	}
	return rc.Attack(target.Loc) == nil
}

// nearest picks the hostile closest to from; ties go to the lowest id
// because SenseNearbyRobots returns ascending ids.
func nearest(from engine.MapLocation, infos []engine.RobotInfo) (engine.RobotInfo, bool) {
	best := -1
	var pick engine.RobotInfo
	for _, info := range infos {
		d := from.DistanceSquaredTo(info.Loc)
		if best < 0 || d < best {
			best = d
			pick = info
		}
	}
	return pick, best >= 0
}

func randomDir(rng *rand.Rand) engine.Direction {
	return engine.Directions[rng.Intn(len(engine.Directions))]
}

// tryMove attempts dir, then the nearby rotations, so units slide around
// obstacles instead of stalling.
func tryMove(rc *engine.RobotController, dir engine.Direction) bool {
	if dir == engine.DirNone {
		return false
	}
	candidates := [5]engine.Direction{
		dir,
		dir.RotateLeft(),
		dir.RotateRight(),
		dir.RotateLeft().RotateLeft(),
		dir.RotateRight().RotateRight(),
	}
	for _, d := range candidates {
		if rc.CanMove(d) {
			return rc.Move(d) == nil
		}
	}
	return false
}

// trySpawn scans for an open direction starting from a random one.
func trySpawn(rc *engine.RobotController, typ engine.RobotType, rng *rand.Rand) bool {
	start := rng.Intn(len(engine.Directions))
	for i := range engine.Directions {
		d := engine.Directions[(start+i)%len(engine.Directions)]
		if rc.CanSpawn(typ, d) {
			return rc.SpawnUnit(typ, d) == nil
		}
	}
	return false
}

// tryBuild scans for an open direction starting from a random one.
func tryBuild(rc *engine.RobotController, typ engine.RobotType, rng *rand.Rand) bool {
	start := rng.Intn(len(engine.Directions))
	for i := range engine.Directions {
		d := engine.Directions[(start+i)%len(engine.Directions)]
		if rc.CanBuild(typ, d) {
			return rc.Build(typ, d) == nil
		}
	}
	return false
}
