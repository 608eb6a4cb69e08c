// Package engine provides the deterministic match kernel for the robot
// contest server.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - world.go: the authoritative game state and every rules-checked mutation
//   - sandbox.go: the coroutine sandbox that runs one robot program per goroutine
//   - match.go: the round loop, termination checks, and replay delta emission
//
// # Architecture
//
// A Match owns a World; the World composes the ObjectMap (robot storage and
// spatial index), the SignalLog (per-round event journal), and the
// BroadcastStore (team radio with round-boundary commit). The TurnScheduler
// hands a per-turn operation budget to each robot's sandbox in ascending id
// order; agent code sees the world only through a RobotController, whose
// every operation runs to completion and then charges its cost.
//
// Exactly one goroutine is runnable at any instant: the scheduler blocks
// while a robot runs, the robot parks while anything else runs. Determinism
// follows from that single-threaded discipline plus the partitioned rng
// (rng.go): same seed, same map, same programs, same signal stream.
//
// Sub-packages:
//   - engine/replay/: pure-data wire records (signals, spawned bodies,
//     headers, footers); no dependencies on the engine package
//   - engine/bots/: built-in reference programs the CLI can field
//
// # Extension Points
//
// Agent behavior is the Program interface: Run(rc) is called once per robot
// and is its whole life. Everything a program can observe or do is a method
// on RobotController; the engine never calls back into agent code except
// through the sandbox baton pass.
package engine
