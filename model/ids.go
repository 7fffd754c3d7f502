package model

import (
	"fmt"
	"strings"

	"github.com/pborman/uuid"
)

// OfferID identifies a single resource offer from the cluster manager.
type OfferID string

// AgentID identifies the cluster node an offer originates from.
type AgentID string

// FrameworkID identifies this scheduler's registration with the
// cluster manager.
type FrameworkID string

// InstanceID identifies a logical workload unit. An instance owns one
// or more tasks which share its lifecycle. The format is
// "<runSpecID>.instance-<uuid>".
type InstanceID string

// TaskID identifies a single task, scoped to a run spec and globally
// unique. The format is "<instanceID>.<container>".
type TaskID string

// ExecutorID identifies the executor responsible for a task group.
type ExecutorID string

// VolumeID identifies a persistent volume.
type VolumeID string

const (
	instanceIDPrefix = "instance-"
	defaultContainer = "ct"
)

// NewInstanceID generates a fresh instance ID under the given run spec.
func NewInstanceID(runSpecID string) InstanceID {
	return InstanceID(fmt.Sprintf("%s.%s%s", runSpecID, instanceIDPrefix, uuid.New()))
}

// NewTaskID derives a task ID for the named container of an instance.
// An empty container name maps to a default single-container task.
func NewTaskID(instanceID InstanceID, container string) TaskID {
	if container == "" {
		container = defaultContainer
	}
	return TaskID(fmt.Sprintf("%s.%s", instanceID, container))
}

// NewVolumeID generates a fresh persistent volume ID.
func NewVolumeID() VolumeID {
	return VolumeID(uuid.New())
}

// ExecutorIDFor derives the executor ID owning all tasks of an
// instance. Task group launches must use exactly this ID; the
// operation model cross-checks it at construction.
func ExecutorIDFor(instanceID InstanceID) ExecutorID {
	return ExecutorID(instanceIDPrefix + string(instanceID))
}

// InstanceIDOf returns the instance ID a task ID belongs to.
func (t TaskID) InstanceIDOf() (InstanceID, error) {
	i := strings.LastIndex(string(t), ".")
	if i <= 0 {
		return "", fmt.Errorf("malformed task id: %v", t)
	}
	return InstanceID(string(t)[:i]), nil
}

// RunSpecIDOf returns the run spec an instance ID was created under.
func (i InstanceID) RunSpecIDOf() (string, error) {
	idx := strings.LastIndex(string(i), "."+instanceIDPrefix)
	if idx <= 0 {
		return "", fmt.Errorf("malformed instance id: %v", i)
	}
	return string(i)[:idx], nil
}
