package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Running", StatusRunning.String())
	assert.Equal(t, "Unreachable", StatusUnreachable.String())
	assert.Equal(t, "Unknown", Status(0).String())
}

func TestIsTerminal(t *testing.T) {
	terminal := []Status{
		StatusError, StatusFailed, StatusFinished,
		StatusKilled, StatusGone, StatusDropped,
	}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "%v", s)
	}

	active := []Status{
		StatusCreated, StatusStaging, StatusStarting,
		StatusRunning, StatusKilling, StatusUnreachable,
	}
	for _, s := range active {
		assert.False(t, s.IsTerminal(), "%v", s)
	}
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 0, severityRank(StatusError))
	assert.Less(t, severityRank(StatusDropped), severityRank(StatusUnreachable))
	assert.Less(t, severityRank(StatusStaging), severityRank(StatusRunning))
	// Finished is not ranked.
	assert.Equal(t, len(statusSeverity), severityRank(StatusFinished))
}
