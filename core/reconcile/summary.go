package reconcile

import (
	"math"
	"time"
)

// summarize computes the aggregate statistics of one reconciliation. It only
// reads its inputs.
func summarize(out *outcome, refRows, cmpRows int, mode Mode, keyCols, common []string, elapsed time.Duration) Summary {
	s := Summary{
		TotalReferenceRows: refRows,
		TotalComparandRows: cmpRows,
		MatchedRows:        out.matched,
		TotalDiscrepancies: len(out.entries),
		Mode:               mode,
		PairingSkipped:     out.pairingSkipped,
		KeyColumns:         append([]string{}, keyCols...),
		CommonColumns:      append([]string{}, common...),
		ElapsedSeconds:     math.Round(elapsed.Seconds()*100) / 100,
	}
	for _, e := range out.entries {
		switch e.Status {
		case StatusMismatch:
			s.Mismatches++
		case StatusOnlyInReference:
			s.OnlyInReference++
		case StatusOnlyInComparand:
			s.OnlyInComparand++
		}
	}
	return s
}
