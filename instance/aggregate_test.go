package instance

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/coxswain-io/coxswain/model"
)

type AggregateTestSuite struct {
	suite.Suite

	t0 time.Time
	t1 time.Time
}

func (suite *AggregateTestSuite) SetupTest() {
	suite.t0 = time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	suite.t1 = suite.t0.Add(30 * time.Second)
}

// tasks builds a task set with one task per given status.
func (suite *AggregateTestSuite) tasks(statuses ...Status) map[model.TaskID]*Task {
	tasks := make(map[model.TaskID]*Task, len(statuses))
	for i, s := range statuses {
		id := model.TaskID(fmt.Sprintf("web.instance-x.ct%d", i))
		tasks[id] = &Task{
			ID:          id,
			Status:      s,
			StatusSince: suite.t0,
		}
	}
	return tasks
}

func (suite *AggregateTestSuite) TestDominantStatusScenarios() {
	testTable := []struct {
		statuses []Status
		want     Status
	}{
		{[]Status{StatusCreated, StatusCreated, StatusCreated}, StatusCreated},
		{[]Status{StatusCreated, StatusCreated, StatusStaging}, StatusStaging},
		{
			[]Status{
				StatusStaging, StatusStarting, StatusRunning,
				StatusKilling, StatusFinished, StatusFailed,
			},
			StatusFailed,
		},
		{
			[]Status{
				StatusStaging, StatusStarting, StatusRunning,
				StatusKilling, StatusFinished, StatusFailed, StatusError,
			},
			StatusError,
		},
		{[]Status{StatusRunning, StatusGone, StatusDropped}, StatusGone},
		{[]Status{StatusUnreachable, StatusDropped}, StatusDropped},
		{[]Status{StatusRunning, StatusFinished}, StatusRunning},
	}

	for _, tt := range testTable {
		got := Aggregate(State{}, suite.tasks(tt.statuses...), suite.t0)
		suite.Equal(tt.want, got.Status, "statuses %v", tt.statuses)
	}
}

func (suite *AggregateTestSuite) TestAllFinishedIsFinished() {
	for _, prev := range []State{
		{},
		{Status: StatusRunning, Since: suite.t0},
		{Status: StatusKilling, Since: suite.t0},
	} {
		got := Aggregate(prev, suite.tasks(StatusFinished, StatusFinished), suite.t1)
		suite.Equal(StatusFinished, got.Status)
	}
}

func (suite *AggregateTestSuite) TestKillingInstanceBecomesKilled() {
	prev := State{Status: StatusKilling, Since: suite.t0}
	got := Aggregate(prev, suite.tasks(StatusKilled, StatusKilled), suite.t1)
	suite.Equal(StatusKilled, got.Status)
	suite.Equal(suite.t1, got.Since)
}

func (suite *AggregateTestSuite) TestSinceOnlyResetsOnStatusChange() {
	tasks := suite.tasks(StatusRunning, StatusRunning)

	first := Aggregate(State{}, tasks, suite.t0)
	suite.Equal(StatusRunning, first.Status)
	suite.Equal(suite.t0, first.Since)

	// Recomputing with an unchanged task set at a later time keeps the
	// original transition time.
	second := Aggregate(first, tasks, suite.t1)
	suite.Equal(first.Status, second.Status)
	suite.Equal(suite.t0, second.Since)
}

func (suite *AggregateTestSuite) TestSeverityIsTotalOverInformativeStatuses() {
	order := []Status{
		StatusError, StatusFailed, StatusGone, StatusDropped,
		StatusUnreachable, StatusKilling, StatusKilled,
		StatusStaging, StatusStarting, StatusRunning, StatusCreated,
	}

	// Any status must dominate every status ranked after it.
	for i, severe := range order {
		for _, calm := range order[i:] {
			got := Aggregate(State{}, suite.tasks(calm, severe), suite.t0)
			suite.Equal(severe, got.Status,
				"%v should dominate %v", severe, calm)
		}
	}
}

func (suite *AggregateTestSuite) TestEmptyTaskSetIsNoOp() {
	prev := State{Status: StatusRunning, Since: suite.t0}
	got := Aggregate(prev, nil, suite.t1)
	suite.Equal(prev, got)
}

func (suite *AggregateTestSuite) TestHealthyClearedWhenLeavingRunning() {
	healthy := true
	prev := State{Status: StatusRunning, Since: suite.t0, Healthy: &healthy}

	still := Aggregate(prev, suite.tasks(StatusRunning), suite.t1)
	suite.NotNil(still.Healthy)
	suite.True(*still.Healthy)

	left := Aggregate(prev, suite.tasks(StatusKilling), suite.t1)
	suite.Nil(left.Healthy)
}

func (suite *AggregateTestSuite) TestActiveSinceIsEarliestTaskStart() {
	tasks := suite.tasks(StatusRunning, StatusRunning)
	later := suite.t1
	earlier := suite.t0
	i := 0
	for _, task := range tasks {
		if i == 0 {
			task.StartedAt = &later
		} else {
			task.StartedAt = &earlier
		}
		i++
	}

	got := Aggregate(State{}, tasks, suite.t1)
	suite.NotNil(got.ActiveSince)
	suite.Equal(suite.t0, *got.ActiveSince)

	// No task started yet.
	got = Aggregate(State{}, suite.tasks(StatusStaging), suite.t1)
	suite.Nil(got.ActiveSince)
}

func (suite *AggregateTestSuite) TestInstanceUpdateState() {
	inst := NewInstance(
		"web.instance-x", "agent-1", suite.t0, suite.t0,
		&Task{ID: "web.instance-x.ct0", Status: StatusStaging, StatusSince: suite.t0},
	)
	suite.Equal(StatusStaging, inst.State.Status)
	suite.True(inst.IsActive())

	inst.Tasks["web.instance-x.ct0"].Status = StatusFailed
	inst.UpdateState(suite.t1)
	suite.Equal(StatusFailed, inst.State.Status)
	suite.Equal(suite.t1, inst.State.Since)
	suite.False(inst.IsActive())
}

func TestAggregateTestSuite(t *testing.T) {
	suite.Run(t, new(AggregateTestSuite))
}
