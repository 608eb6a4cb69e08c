package engine

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// MatchSeed uniquely identifies a reproducible match. Two matches with the
// same MatchSeed, map, and programs MUST produce bit-for-bit identical
// signal streams.
type MatchSeed int64

// StreamRobot returns the generator stream name for one robot. Each robot
// draws from its own stream so adding or removing a robot never perturbs
// the randomness any other robot observes.
func StreamRobot(id RobotID) string {
	return fmt.Sprintf("robot_%d", id)
}

// PartitionedRNG hands out deterministic, isolated generators per named
// stream. Every stream seed derives as masterSeed XOR fnv1a64(streamName),
// and the same name always returns the same cached *rand.Rand.
//
// Thread-safety: NOT thread-safe. The scheduler's baton-pass execution
// already serializes all callers.
type PartitionedRNG struct {
	seed    MatchSeed
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a MatchSeed.
func NewPartitionedRNG(seed MatchSeed) *PartitionedRNG {
	return &PartitionedRNG{
		seed:    seed,
		streams: make(map[string]*rand.Rand),
	}
}

// ForStream returns the deterministically-seeded generator for the named
// stream. Never returns nil.
func (p *PartitionedRNG) ForStream(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.seed) ^ fnv1a64(name)))
	p.streams[name] = rng
	return rng
}

// ForRobot returns the generator stream owned by one robot.
func (p *PartitionedRNG) ForRobot(id RobotID) *rand.Rand {
	return p.ForStream(StreamRobot(id))
}

// Seed returns the MatchSeed this PartitionedRNG was created with.
func (p *PartitionedRNG) Seed() MatchSeed {
	return p.seed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
