package engine

import (
	"testing"

	"github.com/asciima/battlecode-server-2017/engine/replay"
)

func TestSignalLog_PreservesAppendOrder(t *testing.T) {
	// GIVEN a log with three signals appended in a known order
	log := NewSignalLog()
	log.Append(replay.DeathSignal{ID: 1})
	log.Append(replay.DeathSignal{ID: 2})
	log.Append(replay.DeathSignal{ID: 3})

	if got := log.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	// WHEN the log is drained
	drained := log.Drain()

	// THEN the signals come back in exactly append order
	for i, want := range []int32{1, 2, 3} {
		got := drained[i].(replay.DeathSignal).ID
		if got != want {
			t.Errorf("drained[%d].ID = %d, want %d", i, got, want)
		}
	}
}

func TestSignalLog_DrainResets(t *testing.T) {
	log := NewSignalLog()
	log.Append(replay.DeathSignal{ID: 1})

	first := log.Drain()
	if len(first) != 1 {
		t.Fatalf("first drain returned %d signals, want 1", len(first))
	}
	if got := log.Len(); got != 0 {
		t.Errorf("Len() after drain = %d, want 0", got)
	}

	// A second drain yields nothing; the first slice is untouched.
	second := log.Drain()
	if len(second) != 0 {
		t.Errorf("second drain returned %d signals, want 0", len(second))
	}
	if first[0].(replay.DeathSignal).ID != 1 {
		t.Error("drained slice mutated by later drain")
	}
}

func TestSignalLog_AppendAfterDrain(t *testing.T) {
	log := NewSignalLog()
	log.Append(replay.DeathSignal{ID: 1})
	log.Drain()

	log.Append(replay.DeathSignal{ID: 9})
	drained := log.Drain()
	if len(drained) != 1 || drained[0].(replay.DeathSignal).ID != 9 {
		t.Errorf("post-drain append lost: got %v", drained)
	}
}
