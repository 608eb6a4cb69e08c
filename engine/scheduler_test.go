package engine

import (
	"testing"

	"github.com/asciima/battlecode-server-2017/engine/replay"
)

// === TurnScheduler Tests ===

// endRound mimics the match driver's round boundary for scheduler-level
// tests.
func endRound(w *World) {
	w.EndRound()
	w.Log().Drain()
	w.AdvanceRound()
}

func TestTurnScheduler_RunsTurnsInIDOrder(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg)
	placeRobot(t, w, TeamB, Soldier, MapLocation{X: 3, Y: 3}) // id 3
	placeRobot(t, w, TeamA, Soldier, MapLocation{X: 4, Y: 4}) // id 4

	var order []RobotID
	record := ProgramFunc(func(rc *RobotController) {
		for {
			order = append(order, rc.ID())
			rc.Yield()
		}
	})
	sched := NewTurnScheduler(w, cfg, [2]Program{record, record})
	defer sched.Shutdown()

	sched.RunRound()

	want := []RobotID{1, 2, 3, 4}
	if len(order) != len(want) {
		t.Fatalf("round ran %d turns, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("turn %d went to #%d, want #%d", i, order[i], want[i])
		}
	}
}

func TestTurnScheduler_MidRoundSpawnActsNextRound(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg)
	w.ore[TeamA] = 500

	var order []RobotID
	prog := ProgramFunc(func(rc *RobotController) {
		for {
			order = append(order, rc.ID())
			if rc.Type() == HQ && rc.Team() == TeamA && rc.CanSpawn(Soldier, DirSouthEast) {
				rc.SpawnUnit(Soldier, DirSouthEast)
			}
			rc.Yield()
		}
	})
	sched := NewTurnScheduler(w, cfg, [2]Program{prog, prog})
	defer sched.Shutdown()

	// The soldier spawned during round 0 is outside the round's id
	// snapshot and first acts in round 1.
	sched.RunRound()
	if len(order) != 2 {
		t.Fatalf("round 0 ran %d turns, want 2", len(order))
	}
	if got := w.CountTeam(TeamA); got != 2 {
		t.Fatalf("team A has %d robots after the spawn, want 2", got)
	}

	endRound(w)
	sched.RunRound()
	want := []RobotID{1, 2, 1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("after round 1 the turn log has %d entries, want %d", len(order), len(want))
	}
	if order[4] != 3 {
		t.Errorf("round 1's last turn went to #%d, want the new soldier #3", order[4])
	}
}

func TestTurnScheduler_KilledBeforeTurnIsSkipped(t *testing.T) {
	// GIVEN a 3-health missile that id order places after the enemy HQ
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg)
	missile := placeRobot(t, w, TeamB, Missile, MapLocation{X: 1, Y: 1}) // id 3

	var order []RobotID
	prog := ProgramFunc(func(rc *RobotController) {
		for {
			order = append(order, rc.ID())
			if rc.Type() == HQ && rc.Team() == TeamA {
				rc.Attack(MapLocation{X: 1, Y: 1})
			}
			rc.Yield()
		}
	})
	sched := NewTurnScheduler(w, cfg, [2]Program{prog, prog})
	defer sched.Shutdown()

	// WHEN the HQ's turn kills it before its slot comes up
	sched.RunRound()

	// THEN the missile never acts and never gets a sandbox
	if missile.Alive() {
		t.Fatal("missile survived the HQ attack")
	}
	want := []RobotID{1, 2}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("turn log = %v, want %v", order, want)
	}
	if _, ok := sched.boxes[missile.ID]; ok {
		t.Error("dead robot acquired a sandbox")
	}
}

func TestTurnScheduler_ReapsSandboxOfRobotKilledAfterActing(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg)
	missile := placeRobot(t, w, TeamB, Missile, MapLocation{X: 1, Y: 1}) // id 3

	prog := ProgramFunc(func(rc *RobotController) {
		for {
			// The HQ holds fire until round 1, so the missile gets one
			// turn and a sandbox first.
			if rc.Type() == HQ && rc.Team() == TeamA && rc.Round() == 1 {
				rc.Attack(MapLocation{X: 1, Y: 1})
			}
			rc.Yield()
		}
	})
	sched := NewTurnScheduler(w, cfg, [2]Program{prog, prog})
	defer sched.Shutdown()

	sched.RunRound()
	if _, ok := sched.boxes[missile.ID]; !ok {
		t.Fatal("missile did not get a sandbox in round 0")
	}

	endRound(w)
	sched.RunRound() // HQ kills it mid-round; its slot is skipped
	if missile.Alive() {
		t.Fatal("missile survived round 1")
	}

	endRound(w)
	sched.RunRound() // round start reaps the orphaned sandbox
	if _, ok := sched.boxes[missile.ID]; ok {
		t.Error("dead robot's sandbox not reaped")
	}
}

func TestTurnScheduler_NilProgramLeavesTeamInert(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg)

	var order []RobotID
	record := ProgramFunc(func(rc *RobotController) {
		for {
			order = append(order, rc.ID())
			rc.Yield()
		}
	})
	sched := NewTurnScheduler(w, cfg, [2]Program{record, nil})
	defer sched.Shutdown()

	sched.RunRound()

	if len(order) != 1 || order[0] != 1 {
		t.Errorf("turn log = %v, want only team A's HQ", order)
	}
	if len(sched.boxes) != 1 {
		t.Errorf("scheduler holds %d sandboxes, want 1", len(sched.boxes))
	}
	if hqB := w.Objects().Get(2); hqB == nil || !hqB.Alive() {
		t.Error("inert team's HQ should survive untouched")
	}
}

// === Fault Policy Tests ===

func TestTurnScheduler_FaultPolicySilence(t *testing.T) {
	cfg := DefaultConfig() // silence is the default policy
	w := newTestWorld(t, cfg)

	crash := ProgramFunc(func(rc *RobotController) {
		panic("agent bug")
	})
	sched := NewTurnScheduler(w, cfg, [2]Program{crash, nil})
	defer sched.Shutdown()

	sched.RunRound()

	if got := w.FaultCount(TeamA); got != 1 {
		t.Errorf("fault count = %d, want 1", got)
	}
	if !w.Silenced(TeamA) {
		t.Error("faulting team not silenced")
	}
	hq := w.Objects().Get(1)
	if hq == nil || !hq.Alive() {
		t.Fatal("silence policy removed the robot")
	}

	// The program restarts and faults again every round.
	endRound(w)
	sched.RunRound()
	if got := w.FaultCount(TeamA); got != 2 {
		t.Errorf("fault count after round 1 = %d, want 2", got)
	}
}

func TestTurnScheduler_FaultPolicyTerminate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FaultPolicy = FaultPolicyTerminate
	w := newTestWorld(t, cfg)
	w.Log().Drain()

	crash := ProgramFunc(func(rc *RobotController) {
		panic("agent bug")
	})
	sched := NewTurnScheduler(w, cfg, [2]Program{crash, nil})
	defer sched.Shutdown()

	sched.RunRound()

	if got := w.CountTeam(TeamA); got != 0 {
		t.Errorf("team A still has %d robots, want 0 (terminated)", got)
	}
	if got := w.FaultCount(TeamA); got != 1 {
		t.Errorf("fault count = %d, want 1", got)
	}
	if len(sched.boxes) != 0 {
		t.Errorf("scheduler holds %d sandboxes after termination, want 0", len(sched.boxes))
	}

	var sawDeath bool
	for _, sig := range w.Log().Drain() {
		if _, ok := sig.(replay.DeathSignal); ok {
			sawDeath = true
		}
	}
	if !sawDeath {
		t.Error("termination emitted no death signal")
	}
}

func TestTurnScheduler_FaultLimitAutoResigns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FaultLimit = 3
	w := newTestWorld(t, cfg)

	crash := ProgramFunc(func(rc *RobotController) {
		panic("agent bug")
	})
	sched := NewTurnScheduler(w, cfg, [2]Program{crash, nil})
	defer sched.Shutdown()

	for round := 0; round < 2; round++ {
		sched.RunRound()
		endRound(w)
	}
	if w.Resigned(TeamA) {
		t.Fatal("team resigned before reaching the fault limit")
	}

	sched.RunRound()
	if !w.Resigned(TeamA) {
		t.Error("team not resigned at the fault limit")
	}
}

func TestTurnScheduler_BudgetFaultSilencesWhenConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Budget = 5
	cfg.BudgetFaultSilences = true
	w := newTestWorld(t, cfg)

	hungry := ProgramFunc(func(rc *RobotController) {
		for {
			rc.Mine()
			rc.Yield()
		}
	})
	sched := NewTurnScheduler(w, cfg, [2]Program{hungry, nil})
	defer sched.Shutdown()

	sched.RunRound()

	if !w.Silenced(TeamA) {
		t.Error("budget overrun did not silence the team")
	}
	if got := w.FaultCount(TeamA); got != 0 {
		t.Errorf("budget overrun counted as %d agent faults, want 0", got)
	}
	if hq := w.Objects().Get(1); hq == nil || !hq.Alive() {
		t.Error("budget overrun removed the robot")
	}
}

// === Teardown Tests ===

func TestTurnScheduler_ProgramReturnDisintegrates(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg)
	w.Log().Drain()

	done := ProgramFunc(func(rc *RobotController) {
		// Returning from Run is a request to leave the world.
	})
	sched := NewTurnScheduler(w, cfg, [2]Program{done, nil})
	defer sched.Shutdown()

	sched.RunRound()

	if got := w.CountTeam(TeamA); got != 0 {
		t.Errorf("team A has %d robots after its program returned, want 0", got)
	}
	signals := w.Log().Drain()
	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1 death", len(signals))
	}
	if death, ok := signals[0].(replay.DeathSignal); !ok || death.ID != 1 {
		t.Errorf("signal = %#v, want DeathSignal for #1", signals[0])
	}
	if len(sched.boxes) != 0 {
		t.Error("sandbox survived its robot")
	}
}

func TestTurnScheduler_Shutdown(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg)

	sched := NewTurnScheduler(w, cfg, [2]Program{ProgramFunc(yieldForever), ProgramFunc(yieldForever)})
	sched.RunRound()
	if len(sched.boxes) != 2 {
		t.Fatalf("scheduler holds %d sandboxes, want 2", len(sched.boxes))
	}

	sched.Shutdown()
	if len(sched.boxes) != 0 {
		t.Errorf("scheduler holds %d sandboxes after shutdown, want 0", len(sched.boxes))
	}
}

// === Budget Plumbing Tests ===

func TestTurnScheduler_MissileBudgetOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Budget = 100
	w := newTestWorld(t, cfg)
	placeRobot(t, w, TeamA, Missile, MapLocation{X: 3, Y: 3}) // id 3

	grants := map[RobotID]int64{}
	prog := ProgramFunc(func(rc *RobotController) {
		for {
			left := rc.BudgetRemaining()
			grants[rc.ID()] = left
			rc.Yield()
		}
	})
	sched := NewTurnScheduler(w, cfg, [2]Program{prog, prog})
	defer sched.Shutdown()

	sched.RunRound()

	if got := grants[1]; got != 100 {
		t.Errorf("HQ grant = %d, want the configured 100", got)
	}
	if got := grants[3]; got != 500 {
		t.Errorf("missile grant = %d, want the overridden 500", got)
	}
}

func TestTurnScheduler_BytecodeSignals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BytecodesUsed = true
	w := newTestWorld(t, cfg)
	w.Log().Drain()

	prog := ProgramFunc(func(rc *RobotController) {
		for {
			rc.Round()
			rc.Yield()
		}
	})
	sched := NewTurnScheduler(w, cfg, [2]Program{prog, prog})
	defer sched.Shutdown()

	sched.RunRound()

	signals := w.Log().Drain()
	if len(signals) != 2 {
		t.Fatalf("round appended %d signals, want 2 bytecode records", len(signals))
	}
	for i, want := range []int32{1, 2} {
		bc, ok := signals[i].(replay.BytecodeSignal)
		if !ok || bc.ID != want || bc.Used != 1 {
			t.Errorf("signal %d = %#v, want BytecodeSignal{ID: %d, Used: 1}", i, signals[i], want)
		}
	}
}
