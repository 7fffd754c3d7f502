package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coxswain-io/coxswain/instance"
	"github.com/coxswain-io/coxswain/model"
	"github.com/coxswain-io/coxswain/operation"
)

func launchFor(t *testing.T, taskID model.TaskID, status instance.Status) operation.Op {
	now := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	instanceID, err := taskID.InstanceIDOf()
	assert.NoError(t, err)

	task := &instance.Task{ID: taskID, Status: status, StatusSince: now}
	inst := instance.NewInstance(instanceID, "agent-1", now, now, task)

	launch, err := operation.NewLaunchTask(
		model.TaskInfo{TaskID: taskID, AgentID: "agent-1"}, inst, nil)
	assert.NoError(t, err)
	return launch
}

func TestTasksOneEntryPerTaskID(t *testing.T) {
	id1 := model.NewTaskID(model.NewInstanceID("web"), "")
	id2 := model.NewTaskID(model.NewInstanceID("web"), "")

	matched := MatchedTaskOps{
		OfferID: "offer-1",
		Ops: []OpWithSource{
			{Op: launchFor(t, id1, instance.StatusCreated)},
			{Op: launchFor(t, id2, instance.StatusCreated)},
		},
	}

	tasks := matched.Tasks()
	assert.Len(t, tasks, 2)
	assert.Equal(t, id1, tasks[id1].ID)
	assert.Equal(t, id2, tasks[id2].ID)
}

func TestTasksLastWriteWinsOnDuplicates(t *testing.T) {
	id := model.NewTaskID(model.NewInstanceID("web"), "")

	// Duplicated task ids should not happen under correct matchers, but
	// the merge is defined to keep the last write.
	matched := MatchedTaskOps{
		OfferID: "offer-1",
		Ops: []OpWithSource{
			{Op: launchFor(t, id, instance.StatusCreated)},
			{Op: launchFor(t, id, instance.StatusStaging)},
		},
	}

	tasks := matched.Tasks()
	assert.Len(t, tasks, 1)
	assert.Equal(t, instance.StatusStaging, tasks[id].Status)
}

func TestTasksEmptyMatch(t *testing.T) {
	matched := MatchedTaskOps{OfferID: "offer-1"}
	assert.Empty(t, matched.Tasks())
}
