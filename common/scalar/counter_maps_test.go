package scalar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally"
)

// Counters only take whole numbers, so quantities are accumulated in
// milli-units and fractional CPUs still register.
func TestCounterMapsIncInMilliUnits(t *testing.T) {
	testScope := tally.NewTestScope("", nil)
	counters := NewCounterMaps(testScope)

	counters.Inc(Resources{CPU: 0.5, Mem: 128.0})
	counters.Inc(Resources{CPU: 0.25, Disk: 1.5})

	snapshot := testScope.Snapshot().Counters()
	assert.EqualValues(t, 750, snapshot["cpu+"].Value())
	assert.EqualValues(t, 128000, snapshot["mem+"].Value())
	assert.EqualValues(t, 1500, snapshot["disk+"].Value())
	assert.EqualValues(t, 0, snapshot["gpu+"].Value())
}
