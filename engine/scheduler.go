package engine

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/asciima/battlecode-server-2017/engine/replay"
)

// TurnScheduler drives one turn per live robot per round, in ascending id
// order, under the sandbox baton pass. It owns every sandbox and is the
// only code that grants budgets or kills robot goroutines.
//
// Turn order is fixed by a snapshot of live ids at round start: robots
// spawned mid-round first act next round, and robots killed mid-round
// before their turn are skipped.
type TurnScheduler struct {
	w        *World
	cfg      Config
	programs [2]Program
	boxes    map[RobotID]*sandbox
}

// NewTurnScheduler wires a scheduler to a world. A nil program leaves that
// team's robots inert; tests use that to isolate one side.
func NewTurnScheduler(w *World, cfg Config, programs [2]Program) *TurnScheduler {
	if w == nil {
		panic("NewTurnScheduler: world must not be nil")
	}
	return &TurnScheduler{
		w:        w,
		cfg:      cfg,
		programs: programs,
		boxes:    make(map[RobotID]*sandbox),
	}
}

// RunRound executes one turn for every robot alive at round start.
func (s *TurnScheduler) RunRound() {
	s.reapDead()
	for _, id := range s.w.Objects().LiveIDs() {
		r := s.w.Objects().Get(id)
		if r == nil || !r.Alive() {
			continue
		}
		box := s.attach(r)
		if box == nil {
			continue
		}
		out := box.runTurn(s.turnBudget(r))
		if s.cfg.BytecodesUsed {
			s.w.Log().Append(replay.BytecodeSignal{ID: int32(id), Used: out.used})
		}
		s.settle(r, box, out)
		box.state = TurnCommitted
	}
}

// attach returns the robot's sandbox, creating one on first sight. Neutral
// robots and teams without a program never act.
func (s *TurnScheduler) attach(r *InternalRobot) *sandbox {
	if box, ok := s.boxes[r.ID]; ok {
		return box
	}
	if !r.Team.IsPlayer() {
		return nil
	}
	program := s.programs[r.Team]
	if program == nil {
		return nil
	}
	box := newSandbox(s.w, r, program)
	s.boxes[r.ID] = box
	return box
}

// turnBudget returns the operation budget for one turn of r.
func (s *TurnScheduler) turnBudget(r *InternalRobot) int64 {
	if override := r.Type.Info().BudgetOverride; override > 0 {
		return override
	}
	return s.cfg.Budget
}

// settle applies the consequences of a turn outcome: fault policy, budget
// discipline, and teardown of robots whose program ended.
func (s *TurnScheduler) settle(r *InternalRobot, box *sandbox, out turnOutcome) {
	switch out.state {
	case TurnFaulted:
		logrus.Warnf("[round %04d] %v", s.w.Round(), out.fault)
		total := s.w.RecordAgentFault(r.Team)
		if s.cfg.FaultPolicy == FaultPolicyTerminate {
			s.w.removeRobot(r)
		} else {
			s.w.Silence(r.Team)
		}
		if s.cfg.FaultLimit > 0 && total >= s.cfg.FaultLimit {
			logrus.Warnf("[round %04d] team %v hit the fault limit, auto-resigning", s.w.Round(), r.Team)
			s.w.ResignTeam(r.Team)
		}
	case TurnBudgetExhausted:
		logrus.Debugf("[round %04d] %v", s.w.Round(), out.fault)
		if s.cfg.BudgetFaultSilences {
			s.w.Silence(r.Team)
		}
	case TurnEnded:
		if r.Alive() {
			s.w.DisintegrateRobot(r)
		}
	}
	if !r.Alive() {
		s.detach(r.ID)
	}
}

// reapDead unwinds sandboxes whose robots died since their last turn.
func (s *TurnScheduler) reapDead() {
	var dead []RobotID
	for id, box := range s.boxes {
		if box.robot.Alive() {
			continue
		}
		dead = append(dead, id)
	}
	sort.Slice(dead, func(i, j int) bool { return dead[i] < dead[j] })
	for _, id := range dead {
		s.detach(id)
	}
}

// detach kills and forgets one sandbox.
func (s *TurnScheduler) detach(id RobotID) {
	box, ok := s.boxes[id]
	if !ok {
		return
	}
	box.kill()
	delete(s.boxes, id)
}

// Shutdown unwinds every live sandbox. Called when the match finishes so
// no robot goroutine outlives its world.
func (s *TurnScheduler) Shutdown() {
	ids := make([]RobotID, 0, len(s.boxes))
	for id := range s.boxes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		s.detach(id)
	}
}
