package instance

import (
	"time"

	"github.com/coxswain-io/coxswain/model"
)

// Task is the authoritative record of one task owned by an instance.
type Task struct {
	ID model.TaskID

	Status Status
	// StatusSince is when the task entered its current status.
	StatusSince time.Time
	// StartedAt is when the task first reported Running, if ever.
	StartedAt *time.Time
	// Healthy is the latest health check outcome, if health checks are
	// configured and the task is running.
	Healthy *bool
	// RunSpecVersion is the version of the run spec the task was
	// launched for.
	RunSpecVersion time.Time
}

// State is the aggregate lifecycle state of an instance, derived from
// its task statuses by Aggregate. Other components never mutate it
// directly; they request recomputation by supplying updated task sets.
type State struct {
	Status Status
	// Since is when Status last changed.
	Since time.Time
	// ActiveSince is when the oldest still-running task started, unset
	// while no task runs.
	ActiveSince *time.Time
	// Healthy carries the health verdict while the instance is Running,
	// unset otherwise.
	Healthy *bool
}

// Instance is a logical workload unit backed by one or more tasks
// sharing its lifecycle.
type Instance struct {
	ID      model.InstanceID
	AgentID model.AgentID

	State State
	// RunSpecVersion is the version of the run spec this instance was
	// placed for.
	RunSpecVersion time.Time

	Tasks map[model.TaskID]*Task
}

// NewInstance creates an instance owning the given tasks, with its
// state aggregated from their statuses.
func NewInstance(
	id model.InstanceID,
	agentID model.AgentID,
	runSpecVersion time.Time,
	now time.Time,
	tasks ...*Task) *Instance {

	inst := &Instance{
		ID:             id,
		AgentID:        agentID,
		RunSpecVersion: runSpecVersion,
		Tasks:          make(map[model.TaskID]*Task, len(tasks)),
	}
	for _, t := range tasks {
		inst.Tasks[t.ID] = t
	}
	inst.State = Aggregate(inst.State, inst.Tasks, now)
	return inst
}

// UpdateState recomputes the aggregate state from the current task set.
func (i *Instance) UpdateState(now time.Time) {
	i.State = Aggregate(i.State, i.Tasks, now)
}

// IsActive returns whether any task of the instance still expects
// status updates.
func (i *Instance) IsActive() bool {
	for _, t := range i.Tasks {
		if !t.Status.IsTerminal() {
			return true
		}
	}
	return false
}
