// Package metrics records call outcomes for the connectors.
package metrics

import "time"

type Outcome string

const (
	OutcomeCommitted Outcome = "committed"
	OutcomeViewed    Outcome = "viewed"
	OutcomeRejected  Outcome = "rejected"
	OutcomeFailed    Outcome = "failed"
)

type Recorder interface {
	ObserveCall(kind string, method string, outcome Outcome, duration time.Duration)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObserveCall(string, string, Outcome, time.Duration) {}
