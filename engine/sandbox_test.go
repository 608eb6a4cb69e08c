package engine

import (
	"errors"
	"testing"
)

// === Sandbox Tests ===

func TestSandbox_YieldParksBetweenTurns(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	r := placeRobot(t, w, TeamA, Soldier, MapLocation{X: 3, Y: 3})

	turns := 0
	box := newSandbox(w, r, ProgramFunc(func(rc *RobotController) {
		for {
			turns++
			rc.Yield()
		}
	}))
	defer box.kill()

	if box.state != TurnPending {
		t.Fatalf("fresh sandbox state = %v, want PENDING", box.state)
	}

	out := box.runTurn(100)
	if out.state != TurnYielded || out.used != 0 {
		t.Errorf("first turn = %v used %d, want YIELDED used 0", out.state, out.used)
	}
	if turns != 1 {
		t.Errorf("program body ran %d times, want 1", turns)
	}

	// The next grant resumes inside Yield and runs one more iteration.
	box.runTurn(100)
	if turns != 2 {
		t.Errorf("program body ran %d times after two turns, want 2", turns)
	}
	if box.state != TurnYielded {
		t.Errorf("state after turn = %v, want YIELDED", box.state)
	}
}

func TestSandbox_BudgetExhaustionParksInsideTheCall(t *testing.T) {
	// GIVEN a budget smaller than one operation
	w := newTestWorld(t, DefaultConfig())
	r := placeRobot(t, w, TeamA, Soldier, MapLocation{X: 3, Y: 3})

	iterations := 0
	box := newSandbox(w, r, ProgramFunc(func(rc *RobotController) {
		for {
			iterations++
			rc.Mine() // costs 10 even though soldiers cannot mine
			rc.Yield()
		}
	}))
	defer box.kill()

	// WHEN the turn runs with budget 5
	out := box.runTurn(5)

	// THEN the turn ends inside the Mine call, reporting the overrun
	if out.state != TurnBudgetExhausted {
		t.Fatalf("turn state = %v, want BUDGET_EXHAUSTED", out.state)
	}
	if out.used != 10 {
		t.Errorf("used = %d, want the full operation cost 10", out.used)
	}
	var fault BudgetExhaustedFault
	if !errors.As(out.fault, &fault) || fault.ID != r.ID || fault.Budget != 5 {
		t.Errorf("fault = %v, want BudgetExhaustedFault for #%d budget 5", out.fault, r.ID)
	}

	// The next turn resumes at the interrupted site: the tail of Mine and
	// the free Yield, with no new iteration.
	out = box.runTurn(5)
	if out.state != TurnYielded || out.used != 0 {
		t.Errorf("resumed turn = %v used %d, want YIELDED used 0", out.state, out.used)
	}
	if iterations != 1 {
		t.Errorf("iterations after resume = %d, want still 1", iterations)
	}

	// The following turn starts a fresh iteration and exhausts again.
	out = box.runTurn(5)
	if out.state != TurnBudgetExhausted || iterations != 2 {
		t.Errorf("third turn = %v iterations %d, want BUDGET_EXHAUSTED and 2", out.state, iterations)
	}
}

func TestSandbox_FreshBudgetEveryGrant(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	r := placeRobot(t, w, TeamA, Soldier, MapLocation{X: 3, Y: 3})

	box := newSandbox(w, r, ProgramFunc(func(rc *RobotController) {
		for {
			rc.Mine()
			rc.Mine()
			rc.Mine()
			rc.Yield()
		}
	}))
	defer box.kill()

	for turn := 0; turn < 3; turn++ {
		out := box.runTurn(100)
		if out.state != TurnYielded || out.used != 30 {
			t.Errorf("turn %d = %v used %d, want YIELDED used 30", turn, out.state, out.used)
		}
	}
}

func TestSandbox_AgentPanicRestartsProgram(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	r := placeRobot(t, w, TeamA, Soldier, MapLocation{X: 3, Y: 3})

	starts := 0
	box := newSandbox(w, r, ProgramFunc(func(rc *RobotController) {
		starts++
		rc.Round()
		panic("divide by zero, probably")
	}))
	defer box.kill()

	out := box.runTurn(100)
	if out.state != TurnFaulted {
		t.Fatalf("turn state = %v, want FAULTED", out.state)
	}
	if out.used != 1 {
		t.Errorf("used = %d, want the 1 op spent before the panic", out.used)
	}
	var fault AgentRuntimeFault
	if !errors.As(out.fault, &fault) || fault.ID != r.ID {
		t.Fatalf("fault = %v, want AgentRuntimeFault for #%d", out.fault, r.ID)
	}
	if fault.Panic != "divide by zero, probably" {
		t.Errorf("trapped panic = %v, want the agent's value", fault.Panic)
	}

	// A faulted program restarts from the top on its next turn.
	out = box.runTurn(100)
	if out.state != TurnFaulted || starts != 2 {
		t.Errorf("second turn = %v starts %d, want FAULTED and a restart", out.state, starts)
	}
}

func TestSandbox_ProgramReturnEndsTurn(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	r := placeRobot(t, w, TeamA, Soldier, MapLocation{X: 3, Y: 3})

	box := newSandbox(w, r, ProgramFunc(func(rc *RobotController) {
		rc.Round()
	}))
	defer box.kill()

	out := box.runTurn(100)
	if out.state != TurnEnded {
		t.Errorf("turn state = %v, want ENDED", out.state)
	}
	if out.used != 1 {
		t.Errorf("used = %d, want 1", out.used)
	}
}

func TestSandbox_KillBeforeFirstTurn(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	r := placeRobot(t, w, TeamA, Soldier, MapLocation{X: 3, Y: 3})
	box := newSandbox(w, r, ProgramFunc(yieldForever))

	// No goroutine exists yet; kill must not block.
	box.kill()
	if !box.killed || !box.exited {
		t.Error("unstarted sandbox not marked killed and exited")
	}
	box.kill() // idempotent
}

func TestSandbox_KillWhileParked(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	r := placeRobot(t, w, TeamA, Soldier, MapLocation{X: 3, Y: 3})
	box := newSandbox(w, r, ProgramFunc(yieldForever))

	box.runTurn(100)

	// The goroutine is parked between turns; kill hands it the poison
	// grant and returns.
	box.kill()
	if !box.killed {
		t.Error("sandbox not marked killed")
	}
	box.kill() // idempotent
}

func TestNewSandbox_RejectsNilProgram(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	r := placeRobot(t, w, TeamA, Soldier, MapLocation{X: 3, Y: 3})

	defer func() {
		if recover() == nil {
			t.Error("newSandbox(nil program) did not panic")
		}
	}()
	newSandbox(w, r, nil)
}

func TestTurnState_Names(t *testing.T) {
	tests := []struct {
		state TurnState
		want  string
	}{
		{TurnPending, "PENDING"},
		{TurnYielded, "YIELDED"},
		{TurnBudgetExhausted, "BUDGET_EXHAUSTED"},
		{TurnFaulted, "FAULTED"},
		{TurnEnded, "ENDED"},
		{TurnCommitted, "COMMITTED"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("TurnState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
