package monitor

import "github.com/ccollicutt/tailwatch/pkg/classifier"

// Evaluate decides the state for one window.
//
// Both comparisons are inclusive, so a threshold of 0 always fires. The error
// check runs first and wins when both thresholds are reached.
func Evaluate(c classifier.Counts, errorThreshold, slowThreshold int) State {
	switch {
	case c.Errors >= errorThreshold:
		return StateErrorAlert
	case c.Slow >= slowThreshold:
		return StateSlowAlert
	default:
		return StateOK
	}
}
