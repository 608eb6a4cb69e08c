package engine

import (
	"sort"

	"github.com/asciima/battlecode-server-2017/engine/replay"
)

// BroadcastStore is the per-team, round-deferred channel mailbox. Writes
// during round N buffer separately from the readable table and commit at
// the round boundary, so reads during round N observe only round N-1's
// table and same-round visibility never depends on turn order.
type BroadcastStore struct {
	channels int
	live     [2]map[int]int64
	pending  [2]map[int]int64
}

// NewBroadcastStore creates a store with the given number of channels per
// team.
func NewBroadcastStore(channels int) *BroadcastStore {
	if channels <= 0 {
		panic("NewBroadcastStore: channels must be positive")
	}
	b := &BroadcastStore{channels: channels}
	for t := range b.live {
		b.live[t] = make(map[int]int64)
		b.pending[t] = make(map[int]int64)
	}
	return b
}

func (b *BroadcastStore) checkTeam(team Team) {
	if !team.IsPlayer() {
		panic("BroadcastStore: team must be a player team")
	}
}

// Read returns the value committed to a channel as of the last round
// boundary. Unwritten channels read zero.
func (b *BroadcastStore) Read(team Team, channel int) (int64, error) {
	b.checkTeam(team)
	if channel < 0 || channel >= b.channels {
		return 0, InvalidChannelError{Channel: channel}
	}
	return b.live[team][channel], nil
}

// Write buffers a value for commit at the round boundary. The last write to
// a channel within a round wins.
func (b *BroadcastStore) Write(team Team, channel int, value int64) error {
	b.checkTeam(team)
	if channel < 0 || channel >= b.channels {
		return InvalidChannelError{Channel: channel}
	}
	b.pending[team][channel] = value
	return nil
}

// Flush commits all pending writes into the live tables and appends one
// BroadcastSignal per committed channel, teams in order, channels
// ascending, so the commit stream is deterministic.
func (b *BroadcastStore) Flush(log *SignalLog) {
	for _, team := range []Team{TeamA, TeamB} {
		pending := b.pending[team]
		if len(pending) == 0 {
			continue
		}
		channels := make([]int, 0, len(pending))
		for ch := range pending {
			channels = append(channels, ch)
		}
		sort.Ints(channels)
		for _, ch := range channels {
			b.live[team][ch] = pending[ch]
			log.Append(replay.BroadcastSignal{
				Team:    int8(team),
				Channel: int32(ch),
				Value:   pending[ch],
			})
		}
		b.pending[team] = make(map[int]int64)
	}
}
