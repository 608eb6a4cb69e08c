package engine

import "sort"

// RobotFilter is a predicate over live robots, used to narrow spatial
// queries. Filters combine by conjunction.
type RobotFilter func(*InternalRobot) bool

// FilterTeam matches robots owned by team.
func FilterTeam(team Team) RobotFilter {
	return func(r *InternalRobot) bool { return r.Team == team }
}

// FilterNotTeam matches robots not owned by team.
func FilterNotTeam(team Team) RobotFilter {
	return func(r *InternalRobot) bool { return r.Team != team }
}

// FilterType matches robots of one type.
func FilterType(typ RobotType) RobotFilter {
	return func(r *InternalRobot) bool { return r.Type == typ }
}

// ObjectMap is the authoritative store of live robots: the sole id mint,
// the id lookup table, and the per-height occupancy index. It performs no
// rules checks beyond bounds and occupancy and appends no signals; both are
// the World's job.
type ObjectMap struct {
	gm     *GameMap
	robots map[RobotID]*InternalRobot
	byLoc  [heightCount]map[MapLocation]RobotID
	nextID RobotID
}

// NewObjectMap creates an empty store over a validated map.
func NewObjectMap(gm *GameMap) *ObjectMap {
	if gm == nil {
		panic("NewObjectMap: map must not be nil")
	}
	om := &ObjectMap{
		gm:     gm,
		robots: make(map[RobotID]*InternalRobot),
		nextID: 1,
	}
	for h := range om.byLoc {
		om.byLoc[h] = make(map[MapLocation]RobotID)
	}
	return om
}

// minted reports whether id was ever handed out.
func (om *ObjectMap) minted(id RobotID) bool {
	return id > 0 && id < om.nextID
}

// Spawn validates terrain and occupancy, mints the next id, and inserts the
// new robot. Fails with OutOfBoundsError off traversable ground and
// OccupiedLocationError when the (location, height) cell is taken.
func (om *ObjectMap) Spawn(team Team, typ RobotType, loc MapLocation, round int32) (*InternalRobot, error) {
	if om.gm.TerrainAt(loc) != TerrainNormal {
		return nil, OutOfBoundsError{Loc: loc}
	}
	height := typ.Info().Height
	if _, taken := om.byLoc[height][loc]; taken {
		return nil, OccupiedLocationError{Loc: loc, Height: height}
	}
	r := newInternalRobot(om.nextID, team, typ, loc, round)
	om.nextID++
	om.robots[r.ID] = r
	om.byLoc[height][loc] = r.ID
	return r, nil
}

// Remove takes a robot out of the world. Removing an id that was minted but
// is already gone is a no-op, so overlapping kill effects within a round
// tear down cleanly. Ids that were never minted fail with
// UnknownEntityError.
func (om *ObjectMap) Remove(id RobotID) error {
	if !om.minted(id) {
		return UnknownEntityError{ID: id}
	}
	r, ok := om.robots[id]
	if !ok {
		return nil
	}
	delete(om.byLoc[r.Height], r.Loc)
	delete(om.robots, id)
	r.alive = false
	return nil
}

// Move relocates a robot one step. The location write and the occupancy
// re-index happen together; a failed validation changes nothing.
func (om *ObjectMap) Move(id RobotID, to MapLocation) error {
	r, ok := om.robots[id]
	if !ok {
		return UnknownEntityError{ID: id}
	}
	if om.gm.TerrainAt(to) != TerrainNormal {
		return OutOfBoundsError{Loc: to}
	}
	if _, taken := om.byLoc[r.Height][to]; taken {
		return OccupiedLocationError{Loc: to, Height: r.Height}
	}
	delete(om.byLoc[r.Height], r.Loc)
	om.byLoc[r.Height][to] = id
	r.Loc = to
	return nil
}

// Get returns the live robot with the given id, or nil.
func (om *ObjectMap) Get(id RobotID) *InternalRobot {
	return om.robots[id]
}

// RobotAt returns the robot occupying (loc, height), or nil.
func (om *ObjectMap) RobotAt(loc MapLocation, height Height) *InternalRobot {
	id, ok := om.byLoc[height][loc]
	if !ok {
		return nil
	}
	return om.robots[id]
}

// LiveIDs returns the ids of all live robots in ascending order. The
// scheduler snapshots this at round start to fix the turn order.
func (om *ObjectMap) LiveIDs() []RobotID {
	ids := make([]RobotID, 0, len(om.robots))
	for id := range om.robots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Count returns the number of live robots passing all filters.
func (om *ObjectMap) Count(filters ...RobotFilter) int {
	n := 0
	for _, r := range om.robots {
		if matchesAll(r, filters) {
			n++
		}
	}
	return n
}

// Query returns snapshots of robots within radiusSq of center that pass all
// filters, in ascending id order.
func (om *ObjectMap) Query(center MapLocation, radiusSq int, filters ...RobotFilter) []RobotInfo {
	var found []RobotInfo
	for _, r := range om.robots {
		if center.DistanceSquaredTo(r.Loc) > radiusSq {
			continue
		}
		if matchesAll(r, filters) {
			found = append(found, r.Info())
		}
	}
	sortInfos(found)
	return found
}

// QueryRect returns snapshots of robots inside the inclusive rectangle
// spanned by two corners, in ascending id order.
func (om *ObjectMap) QueryRect(a, b MapLocation, filters ...RobotFilter) []RobotInfo {
	xmin, xmax := minmax(a.X, b.X)
	ymin, ymax := minmax(a.Y, b.Y)
	var found []RobotInfo
	for _, r := range om.robots {
		if r.Loc.X < xmin || r.Loc.X > xmax || r.Loc.Y < ymin || r.Loc.Y > ymax {
			continue
		}
		if matchesAll(r, filters) {
			found = append(found, r.Info())
		}
	}
	sortInfos(found)
	return found
}

func matchesAll(r *InternalRobot, filters []RobotFilter) bool {
	for _, f := range filters {
		if !f(r) {
			return false
		}
	}
	return true
}

func sortInfos(infos []RobotInfo) {
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
}

func minmax(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}
