package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/asciima/battlecode-server-2017/engine/replay"
)

// === Replay File Tests ===

func TestWriteReplay(t *testing.T) {
	outcomes := []matchOutcome{
		{
			header: replay.MatchHeader{MapName: "duel", MapWidth: 4, MapHeight: 3, MatchCount: 2},
			rounds: []replay.RoundDelta{
				{Round: 0, Signals: []replay.Signal{
					replay.SpawnSignal{ID: 1, Team: 0, X: 0, Y: 0},
					replay.TeamOreSignal{Team: 0, Ore: 5},
				}},
				{Round: 1, Signals: nil},
			},
			footer: replay.MatchFooter{Winner: 1, Rounds: 2},
		},
		{
			// A match aborted before any rounds were kept.
			header: replay.MatchHeader{MapName: "duel", MatchIndex: 1, MatchCount: 2},
			footer: replay.MatchFooter{Winner: -1},
		},
	}

	path := filepath.Join(t.TempDir(), "replay.json")
	if err := writeReplay(path, outcomes); err != nil {
		t.Fatalf("writeReplay: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read replay: %v", err)
	}
	var doc struct {
		Matches []struct {
			Header struct {
				MapName string `json:"mapName"`
			} `json:"header"`
			Rounds []struct {
				Round   int32 `json:"round"`
				Signals []struct {
					Kind string         `json:"kind"`
					Body map[string]any `json:"body"`
				} `json:"signals"`
			} `json:"rounds"`
			Footer struct {
				Winner int8 `json:"winner"`
			} `json:"footer"`
		} `json:"matches"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("replay is not valid JSON: %v", err)
	}

	if len(doc.Matches) != 2 {
		t.Fatalf("replay holds %d matches, want 2", len(doc.Matches))
	}
	first := doc.Matches[0]
	if first.Header.MapName != "duel" {
		t.Errorf("header map = %q, want %q", first.Header.MapName, "duel")
	}
	if len(first.Rounds) != 2 {
		t.Fatalf("match 0 has %d rounds, want 2", len(first.Rounds))
	}
	if got := first.Rounds[0].Signals; len(got) != 2 || got[0].Kind != "spawn" || got[1].Kind != "teamOre" {
		t.Errorf("round 0 signal kinds wrong: %+v", got)
	}
	if first.Footer.Winner != 1 {
		t.Errorf("footer winner = %d, want 1", first.Footer.Winner)
	}
}

func TestWriteReplay_NilRoundsEncodeAsEmptyArray(t *testing.T) {
	outcomes := []matchOutcome{{header: replay.MatchHeader{MapName: "x"}}}

	path := filepath.Join(t.TempDir(), "replay.json")
	if err := writeReplay(path, outcomes); err != nil {
		t.Fatalf("writeReplay: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read replay: %v", err)
	}

	var doc struct {
		Matches []struct {
			Rounds any `json:"rounds"`
		} `json:"matches"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("replay is not valid JSON: %v", err)
	}
	rounds, ok := doc.Matches[0].Rounds.([]any)
	if !ok || rounds == nil {
		t.Errorf("rounds encoded as %v, want an empty array, not null", doc.Matches[0].Rounds)
	}
}

// === Program Wiring Tests ===

func TestNewPrograms(t *testing.T) {
	programs, err := newPrograms()
	if err != nil {
		t.Fatalf("newPrograms with default bots: %v", err)
	}
	if programs[0] == nil || programs[1] == nil {
		t.Error("default bots produced a nil program")
	}
}

func TestNewPrograms_UnknownBot(t *testing.T) {
	old := teamABot
	teamABot = "nope"
	defer func() { teamABot = old }()

	if _, err := newPrograms(); err == nil {
		t.Error("newPrograms accepted an unknown bot name")
	}
}
