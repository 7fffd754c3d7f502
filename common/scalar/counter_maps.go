package scalar

import (
	"math"

	"github.com/uber-go/tally"
)

// CounterMaps wraps around a group of metrics which can be used for
// reporting scalar resources as a group of counters.
type CounterMaps map[resourceKey]tally.Counter

// NewCounterMaps returns the CounterMaps initialized at given tally
// scope.
func NewCounterMaps(scope tally.Scope) CounterMaps {
	return CounterMaps{
		cpu:  scope.Counter("cpu"),
		mem:  scope.Counter("mem"),
		disk: scope.Counter("disk"),
		gpu:  scope.Counter("gpu"),
	}
}

// Inc increments all counters for given resources. Counters take whole
// numbers only, so quantities are reported in milli-units to keep
// fractional amounts such as half a CPU from vanishing.
func (g CounterMaps) Inc(resources Resources) {
	g[cpu].Inc(toMillis(resources.CPU))
	g[mem].Inc(toMillis(resources.Mem))
	g[disk].Inc(toMillis(resources.Disk))
	g[gpu].Inc(toMillis(resources.GPU))
}

func toMillis(v float64) int64 {
	return int64(math.Round(v * 1000))
}
