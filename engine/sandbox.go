package engine

// TurnState tracks one robot's progress through its turn.
type TurnState uint8

const (
	TurnPending TurnState = iota
	TurnRunning
	TurnYielded
	TurnBudgetExhausted
	TurnFaulted
	TurnEnded // program returned; the robot disintegrates
	TurnCommitted
)

var turnStateNames = [...]string{
	"PENDING", "RUNNING", "YIELDED", "BUDGET_EXHAUSTED", "FAULTED", "ENDED", "COMMITTED",
}

func (s TurnState) String() string {
	if int(s) < len(turnStateNames) {
		return turnStateNames[s]
	}
	return "?"
}

// killSentinel is the reserved panic value used to unwind a sandbox
// goroutine whose robot died or whose match finished. The sandbox wrapper
// swallows it; agent panics are anything else.
type killPanic struct{}

var killSentinel = killPanic{}

// turnOutcome is what a robot goroutine reports back when it parks.
type turnOutcome struct {
	state TurnState
	fault error // BudgetExhaustedFault or AgentRuntimeFault when state says so
	used  int64
}

// sandbox runs one robot's program on its own goroutine under a strict
// baton pass: the scheduler blocks while the robot runs, the robot blocks
// while anything else runs. Exactly one side is runnable at any instant, so
// kernel state needs no locks and execution order is deterministic.
//
// The goroutine parks inside the controller call that ended its turn and
// resumes from that exact point at its next grant; a fresh budget arrives
// with every grant.
type sandbox struct {
	robot   *InternalRobot
	program Program
	rc      *RobotController

	resume chan int64       // scheduler -> robot: budget grant; negative means die
	report chan turnOutcome // robot -> scheduler: turn over

	state   TurnState
	started bool
	killed  bool
	exited  bool

	grant  int64 // budget granted for the current turn
	budget int64 // remaining this turn; touched only while the robot runs
	used   int64
}

func newSandbox(w *World, robot *InternalRobot, program Program) *sandbox {
	if program == nil {
		panic("newSandbox: program must not be nil")
	}
	b := &sandbox{
		robot:   robot,
		program: program,
		resume:  make(chan int64),
		report:  make(chan turnOutcome),
	}
	b.rc = newRobotController(w, robot, b)
	return b
}

// runTurn hands the baton to the robot for one turn and blocks until it
// parks. Called only by the scheduler.
func (b *sandbox) runTurn(budget int64) turnOutcome {
	if b.exited {
		panic("runTurn: sandbox already exited")
	}
	if !b.started {
		b.start()
	}
	b.state = TurnRunning
	b.resume <- budget
	out := <-b.report
	b.state = out.state
	return out
}

// start launches the robot goroutine. The program restarts from the top
// after a trapped fault; a normal return ends the robot for good.
func (b *sandbox) start() {
	b.started = true
	go func() {
		defer func() {
			b.exited = true
			if r := recover(); r != nil {
				if _, killed := r.(killPanic); killed {
					return
				}
				panic(r) // kernel bug: only the kill sentinel may reach here
			}
		}()
		b.awaitTurn()
		for {
			out := b.runProgramOnce()
			b.park(out)
		}
	}()
}

// runProgramOnce executes one full program lifetime, trapping agent panics.
func (b *sandbox) runProgramOnce() (out turnOutcome) {
	defer func() {
		if r := recover(); r != nil {
			if _, killed := r.(killPanic); killed {
				panic(r)
			}
			out = turnOutcome{
				state: TurnFaulted,
				fault: AgentRuntimeFault{ID: b.robot.ID, Panic: r},
				used:  b.used,
			}
		}
	}()
	b.program.Run(b.rc)
	return turnOutcome{state: TurnEnded, used: b.used}
}

// awaitTurn parks until the next grant. A negative grant is the kill
// protocol and unwinds the goroutine.
func (b *sandbox) awaitTurn() {
	budget := <-b.resume
	if budget < 0 {
		panic(killSentinel)
	}
	b.grant = budget
	b.budget = budget
	b.used = 0
}

// park reports the end of this turn and blocks until the next grant.
func (b *sandbox) park(out turnOutcome) {
	b.report <- out
	b.awaitTurn()
}

// charge debits one operation after it executed. Crossing zero force-ends
// the turn; the interrupted call resumes here next round.
func (b *sandbox) charge(cost int64) {
	b.checkKilled()
	b.used += cost
	b.budget -= cost
	if b.budget <= 0 {
		b.park(turnOutcome{
			state: TurnBudgetExhausted,
			fault: BudgetExhaustedFault{ID: b.robot.ID, Budget: b.grant},
			used:  b.used,
		})
	}
}

// checkKilled aborts agent code that kept running after its robot died.
func (b *sandbox) checkKilled() {
	if b.killed {
		panic(killSentinel)
	}
}

// kill unwinds the robot goroutine, which must be parked between turns.
// Safe to call on sandboxes that never started.
func (b *sandbox) kill() {
	if b.killed || b.exited {
		return
	}
	b.killed = true
	if !b.started {
		b.exited = true
		return
	}
	b.resume <- -1
}
