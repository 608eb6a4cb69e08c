package engine

import "fmt"

// Action errors are returned to the calling robot's logic as ordinary
// failures: the robot may react or retry, and the round continues. Faults
// are raised inside agent code and trapped by the scheduler. Initialization
// and finished errors surface to the match driver's caller.

// OutOfBoundsError reports a target square that is off the map or void
// terrain.
type OutOfBoundsError struct {
	Loc MapLocation
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("location %v is not on traversable ground", e.Loc)
}

// OccupiedLocationError reports a square already holding a robot at the
// requested height tier.
type OccupiedLocationError struct {
	Loc    MapLocation
	Height Height
}

func (e OccupiedLocationError) Error() string {
	return fmt.Sprintf("location %v is occupied at %v height", e.Loc, e.Height)
}

// OnCooldownError reports an action attempted before the robot's relevant
// cooldown reached zero. Remaining == -1 means the robot can never perform
// the action (an immobile structure asked to move, an unarmed type asked to
// attack).
type OnCooldownError struct {
	ID        RobotID
	Remaining int32
}

func (e OnCooldownError) Error() string {
	if e.Remaining < 0 {
		return fmt.Sprintf("robot #%d can never perform this action", e.ID)
	}
	return fmt.Sprintf("robot #%d is on cooldown for %d more rounds", e.ID, e.Remaining)
}

// InsufficientResourceError reports a cost the acting team cannot pay.
type InsufficientResourceError struct {
	Need int64
	Have int64
}

func (e InsufficientResourceError) Error() string {
	return fmt.Sprintf("need %d ore, have %d", e.Need, e.Have)
}

// UnknownEntityError reports an id that was never minted.
type UnknownEntityError struct {
	ID RobotID
}

func (e UnknownEntityError) Error() string {
	return fmt.Sprintf("robot #%d does not exist", e.ID)
}

// InvalidChannelError reports a broadcast channel outside the configured
// range.
type InvalidChannelError struct {
	Channel int
}

func (e InvalidChannelError) Error() string {
	return fmt.Sprintf("broadcast channel %d out of range", e.Channel)
}

// BudgetExhaustedFault ends a robot's turn when its per-round operation
// budget runs out. It is fatal to the turn, never to the match.
type BudgetExhaustedFault struct {
	ID     RobotID
	Budget int64
}

func (e BudgetExhaustedFault) Error() string {
	return fmt.Sprintf("robot #%d exhausted its %d-operation budget", e.ID, e.Budget)
}

// AgentRuntimeFault wraps a panic recovered from agent code. It is fatal to
// the turn, never to the match.
type AgentRuntimeFault struct {
	ID    RobotID
	Panic any
}

func (e AgentRuntimeFault) Error() string {
	return fmt.Sprintf("robot #%d faulted: %v", e.ID, e.Panic)
}

// InitializationError reports an invalid map, program, or configuration at
// match construction.
type InitializationError struct {
	Reason string
	Err    error
}

func (e InitializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("initialize match: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("initialize match: %s", e.Reason)
}

func (e InitializationError) Unwrap() error { return e.Err }

// MatchFinishedError reports a round requested after Finish released the
// match.
type MatchFinishedError struct{}

func (MatchFinishedError) Error() string {
	return "match already finished"
}
