package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// TerrainTile classifies one map square.
type TerrainTile uint8

const (
	TerrainNormal TerrainTile = iota
	TerrainVoid
	TerrainOffMap
)

var terrainNames = [...]string{"NORMAL", "VOID", "OFF_MAP"}

func (t TerrainTile) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return "?"
}

// MapBody is one initial robot listed in a map file.
type MapBody struct {
	Team string `yaml:"team"`
	Type string `yaml:"type"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// GameMap is the static battlefield: terrain, seed ore, initial bodies, and
// an optional per-map round cap. A GameMap is immutable once validated, so
// one instance may back any number of concurrent matches; mutable per-match
// ore lives in the World.
type GameMap struct {
	Name      string
	Width     int
	Height    int
	MaxRounds int32

	terrain [][]TerrainTile // row-major, terrain[y][x]
	ore     [][]int64
	bodies  []MapBody
}

// gameMapYAML is the on-disk map shape. All fields must be listed to
// satisfy KnownFields(true) strict parsing.
type gameMapYAML struct {
	Name    string    `yaml:"name"`
	Rounds  int32     `yaml:"rounds"`
	Terrain []string  `yaml:"terrain"`
	Ore     [][]int64 `yaml:"ore"`
	Bodies  []MapBody `yaml:"bodies"`
}

// LoadGameMap parses and validates a YAML map file. Unknown fields are
// errors so map typos fail loudly instead of silently producing an empty
// battlefield.
func LoadGameMap(path string) (*GameMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	var raw gameMapYAML
	dec := newStrictYAMLDecoder(data)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse map file %s: %w", path, err)
	}
	gm, err := newGameMap(raw)
	if err != nil {
		return nil, fmt.Errorf("validate map file %s: %w", path, err)
	}
	return gm, nil
}

func newGameMap(raw gameMapYAML) (*GameMap, error) {
	gm := &GameMap{
		Name:      raw.Name,
		Height:    len(raw.Terrain),
		MaxRounds: raw.Rounds,
		bodies:    raw.Bodies,
	}
	if gm.Name == "" {
		return nil, fmt.Errorf("map has no name")
	}
	if gm.Height == 0 {
		return nil, fmt.Errorf("map %q has no terrain rows", gm.Name)
	}
	gm.Width = len(raw.Terrain[0])
	if gm.Width == 0 {
		return nil, fmt.Errorf("map %q has empty terrain rows", gm.Name)
	}
	if raw.Rounds < 0 {
		return nil, fmt.Errorf("map %q has negative round cap %d", gm.Name, raw.Rounds)
	}

	gm.terrain = make([][]TerrainTile, gm.Height)
	for y, row := range raw.Terrain {
		if len(row) != gm.Width {
			return nil, fmt.Errorf("terrain row %d is %d wide, want %d", y, len(row), gm.Width)
		}
		gm.terrain[y] = make([]TerrainTile, gm.Width)
		for x, c := range row {
			switch c {
			case '.':
				gm.terrain[y][x] = TerrainNormal
			case '#':
				gm.terrain[y][x] = TerrainVoid
			default:
				return nil, fmt.Errorf("terrain row %d has unknown tile %q", y, string(c))
			}
		}
	}

	gm.ore = make([][]int64, gm.Height)
	for y := range gm.ore {
		gm.ore[y] = make([]int64, gm.Width)
	}
	if raw.Ore != nil {
		if len(raw.Ore) != gm.Height {
			return nil, fmt.Errorf("ore grid has %d rows, want %d", len(raw.Ore), gm.Height)
		}
		for y, row := range raw.Ore {
			if len(row) != gm.Width {
				return nil, fmt.Errorf("ore row %d is %d wide, want %d", y, len(row), gm.Width)
			}
			for x, v := range row {
				if v < 0 {
					return nil, fmt.Errorf("ore at [%d, %d] is negative", x, y)
				}
				gm.ore[y][x] = v
			}
		}
	}

	if err := gm.validateBodies(); err != nil {
		return nil, err
	}
	return gm, nil
}

func (m *GameMap) validateBodies() error {
	hqs := map[Team]int{}
	occupied := map[MapLocation]map[Height]bool{}
	for i, b := range m.bodies {
		team, ok := ValidTeams[b.Team]
		if !ok {
			return fmt.Errorf("body %d has unknown team %q", i, b.Team)
		}
		typ, ok := ValidRobotTypes[b.Type]
		if !ok {
			return fmt.Errorf("body %d has unknown type %q", i, b.Type)
		}
		loc := MapLocation{X: b.X, Y: b.Y}
		if m.TerrainAt(loc) != TerrainNormal {
			return fmt.Errorf("body %d (%s) sits on %v terrain at %v", i, b.Type, m.TerrainAt(loc), loc)
		}
		h := typ.Info().Height
		if occupied[loc] == nil {
			occupied[loc] = map[Height]bool{}
		}
		if occupied[loc][h] {
			return fmt.Errorf("body %d (%s) overlaps another body at %v", i, b.Type, loc)
		}
		occupied[loc][h] = true
		if typ == HQ {
			hqs[team]++
		}
	}
	for _, team := range []Team{TeamA, TeamB} {
		if hqs[team] != 1 {
			return fmt.Errorf("map %q seeds %d HQs for team %v, want exactly 1", m.Name, hqs[team], team)
		}
	}
	return nil
}

// OnMap reports whether loc lies inside the grid.
func (m *GameMap) OnMap(loc MapLocation) bool {
	return loc.X >= 0 && loc.X < m.Width && loc.Y >= 0 && loc.Y < m.Height
}

// TerrainAt returns the tile at loc, TerrainOffMap outside the grid.
func (m *GameMap) TerrainAt(loc MapLocation) TerrainTile {
	if !m.OnMap(loc) {
		return TerrainOffMap
	}
	return m.terrain[loc.Y][loc.X]
}

// OreAt returns the ore seeded at loc by the map. Live matches track
// remaining ore in the World; this is the initial amount.
func (m *GameMap) OreAt(loc MapLocation) int64 {
	if !m.OnMap(loc) {
		return 0
	}
	return m.ore[loc.Y][loc.X]
}

// Bodies returns the initial robots in map-file order. Seeding order
// determines id assignment, so the order is part of the map's identity.
func (m *GameMap) Bodies() []MapBody {
	return m.bodies
}

// Checksum hashes the map layout (dimensions, round cap, terrain, ore,
// bodies) with xxhash64. The name is identity, not layout, and is excluded:
// two identical layouts hash identically regardless of what they are
// called.
func (m *GameMap) Checksum() uint64 {
	d := xxhash.New()
	fmt.Fprintf(d, "%d %d %d\n", m.Width, m.Height, m.MaxRounds)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			fmt.Fprintf(d, "%d:%d ", m.terrain[y][x], m.ore[y][x])
		}
		fmt.Fprintln(d)
	}
	for _, b := range m.bodies {
		fmt.Fprintf(d, "%s %s %d %d\n", b.Team, b.Type, b.X, b.Y)
	}
	return d.Sum64()
}

// DefaultMap builds the built-in 10x10 mirrored map used when no map file
// is given. The layout is symmetric under 180-degree rotation.
func DefaultMap() *GameMap {
	raw := gameMapYAML{
		Name:   "crossroads",
		Rounds: 0,
		Terrain: []string{
			"..........",
			"..........",
			"...##.....",
			"..........",
			"..........",
			"..........",
			"..........",
			".....##...",
			"..........",
			"..........",
		},
		Bodies: []MapBody{
			{Team: "A", Type: "HQ", X: 1, Y: 4},
			{Team: "B", Type: "HQ", X: 8, Y: 5},
			{Team: "NEUTRAL", Type: "TOWER", X: 4, Y: 1},
			{Team: "NEUTRAL", Type: "TOWER", X: 5, Y: 8},
		},
	}
	raw.Ore = make([][]int64, len(raw.Terrain))
	for y := range raw.Ore {
		raw.Ore[y] = make([]int64, len(raw.Terrain[0]))
	}
	for _, spot := range []struct {
		x, y int
		ore  int64
	}{
		{4, 4, 10}, {5, 5, 10}, {4, 5, 10}, {5, 4, 10},
		{2, 7, 20}, {7, 2, 20},
	} {
		raw.Ore[spot.y][spot.x] = spot.ore
	}
	gm, err := newGameMap(raw)
	if err != nil {
		panic("DefaultMap: built-in map invalid: " + err.Error())
	}
	return gm
}

// builtinMaps maps built-in map names to constructors.
var builtinMaps = map[string]func() *GameMap{
	"crossroads": DefaultMap,
}

// BuiltinMapNames lists the maps compiled into the engine, sorted.
func BuiltinMapNames() []string {
	names := make([]string, 0, len(builtinMaps))
	for name := range builtinMaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindMap resolves a map name against the built-ins, then against
// <searchPath>/<name>.yaml. An empty name resolves to the default map.
func FindMap(name, searchPath string) (*GameMap, error) {
	if name == "" {
		return DefaultMap(), nil
	}
	if build, ok := builtinMaps[name]; ok {
		return build(), nil
	}
	gm, err := LoadGameMap(filepath.Join(searchPath, name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("find map %q: %w", name, err)
	}
	return gm, nil
}
