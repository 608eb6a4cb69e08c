package cmd

import (
	"encoding/json"
	"os"

	"github.com/asciima/battlecode-server-2017/engine/replay"
)

// replayMatch is the JSON shape of one match in a saved replay.
type replayMatch struct {
	Header replay.MatchHeader  `json:"header"`
	Rounds []replay.RoundDelta `json:"rounds"`
	Footer replay.MatchFooter  `json:"footer"`
}

// replayFile is the top-level document --save writes.
type replayFile struct {
	Matches []replayMatch `json:"matches"`
}

func writeReplay(path string, outcomes []matchOutcome) error {
	doc := replayFile{Matches: make([]replayMatch, len(outcomes))}
	for i, o := range outcomes {
		rounds := o.rounds
		if rounds == nil {
			rounds = []replay.RoundDelta{}
		}
		doc.Matches[i] = replayMatch{Header: o.header, Rounds: rounds, Footer: o.footer}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
