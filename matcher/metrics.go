package matcher

import (
	"github.com/uber-go/tally"

	"github.com/coxswain-io/coxswain/common/scalar"
)

// Metrics tracks various metrics at matching round level.
type Metrics struct {
	Rounds           tally.Counter
	RoundTimeouts    tally.Counter
	Resends          tally.Counter
	NoMatch          tally.Counter
	OpsMatched       tally.Counter
	OpsOvercommitted tally.Counter

	RoundLatency tally.Timer
	InFlight     tally.Gauge

	// MatchedResources reports the scalar resources consumed by the
	// operations of the most recent round.
	MatchedResources scalar.GaugeMaps

	// TotalMatched accumulates the scalar resources consumed across all
	// rounds.
	TotalMatched scalar.CounterMaps
}

// NewMetrics returns a new Metrics struct, with all metrics initialized
// and rooted at the given tally scope.
func NewMetrics(scope tally.Scope) *Metrics {
	roundScope := scope.SubScope("round")
	opsScope := scope.SubScope("ops")
	matchedScope := roundScope.SubScope("matched")

	return &Metrics{
		Rounds:           roundScope.Counter("total"),
		RoundTimeouts:    roundScope.Counter("timeout"),
		Resends:          roundScope.Counter("resend"),
		NoMatch:          roundScope.Counter("no_match"),
		OpsMatched:       opsScope.Counter("matched"),
		OpsOvercommitted: opsScope.Counter("overcommitted"),

		RoundLatency: roundScope.Timer("latency"),
		InFlight:     roundScope.Gauge("in_flight"),

		MatchedResources: scalar.NewGaugeMaps(matchedScope),
		TotalMatched:     scalar.NewCounterMaps(opsScope.SubScope("resources")),
	}
}
