// Package operation defines the closed set of task operations a
// matcher can propose against an offer. Every operation pairs a
// cluster-manager-facing payload with the authoritative instance state
// transition it implies, and knows how to (a) report the task it
// affects, (b) compute the residual offer after it is applied, and
// (c) produce the low-level operations submitted to the cluster
// manager.
package operation

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/coxswain-io/coxswain/instance"
	"github.com/coxswain-io/coxswain/model"
)

// Op is one task operation produced by offer matching.
type Op interface {
	// TaskID returns the identifier of the task this operation affects,
	// derived from the embedded authoritative state.
	TaskID() model.TaskID

	// OldState returns the instance state this operation supersedes, or
	// nil for a brand-new instance.
	OldState() *instance.Instance

	// NewState returns the authoritative instance state once this
	// operation is accepted.
	NewState() *instance.Instance

	// ApplyToOffer returns the residual offer after this operation
	// consumed its resources, for chaining further operations against
	// the same offer.
	ApplyToOffer(offer model.Offer) model.Offer

	// LowLevelOps returns the ordered primitive operations to submit to
	// the cluster manager for this operation.
	LowLevelOps() []model.OfferOperation
}

// LaunchTask starts a single task, either on plain offered resources
// or on a prior reservation.
type LaunchTask struct {
	task    model.TaskInfo
	newInst *instance.Instance
	oldInst *instance.Instance
	taskID  model.TaskID
}

// NewLaunchTask builds a launch operation for the given payload and
// resulting instance state. The payload's task ID and the task ID
// embedded in the new state are constructed independently; a mismatch
// means the caller assembled an inconsistent operation, so
// construction fails and nothing reaches the cluster manager.
func NewLaunchTask(
	task model.TaskInfo,
	newInst *instance.Instance,
	oldInst *instance.Instance) (*LaunchTask, error) {

	if newInst == nil {
		return nil, errors.New("launch operation without new instance state")
	}
	if _, ok := newInst.Tasks[task.TaskID]; !ok {
		log.WithFields(log.Fields{
			"task_id":  task.TaskID,
			"instance": newInst.ID,
		}).Error("launch payload task id not in new instance state")
		return nil, errors.New("task id mismatch between payload and new state")
	}

	return &LaunchTask{
		task:    task,
		newInst: newInst,
		oldInst: oldInst,
		taskID:  task.TaskID,
	}, nil
}

// TaskID implements Op.
func (l *LaunchTask) TaskID() model.TaskID { return l.taskID }

// OldState implements Op.
func (l *LaunchTask) OldState() *instance.Instance { return l.oldInst }

// NewState implements Op.
func (l *LaunchTask) NewState() *instance.Instance { return l.newInst }

// ApplyToOffer subtracts the resources named in the launch payload.
func (l *LaunchTask) ApplyToOffer(offer model.Offer) model.Offer {
	return offer.Consume(l.task.Resources)
}

// LowLevelOps implements Op.
func (l *LaunchTask) LowLevelOps() []model.OfferOperation {
	return []model.OfferOperation{
		{
			Type: model.OfferOperationLaunch,
			Launch: &model.LaunchOperation{
				Tasks: []model.TaskInfo{l.task},
			},
		},
	}
}

// LaunchTaskGroup starts a multi-task pod-style instance atomically
// under a single executor.
type LaunchTaskGroup struct {
	executor model.ExecutorInfo
	group    model.TaskGroupInfo
	newInst  *instance.Instance
	oldInst  *instance.Instance
}

// NewLaunchTaskGroup builds an atomic group launch. The executor ID is
// assigned by the caller while the instance ID comes from the
// authoritative state; requiring them to agree catches factory bugs
// before submission.
func NewLaunchTaskGroup(
	executor model.ExecutorInfo,
	group model.TaskGroupInfo,
	newInst *instance.Instance,
	oldInst *instance.Instance) (*LaunchTaskGroup, error) {

	if newInst == nil {
		return nil, errors.New("group launch operation without new instance state")
	}
	if len(group.Tasks) == 0 {
		return nil, errors.New("group launch operation without tasks")
	}
	if want := model.ExecutorIDFor(newInst.ID); executor.ExecutorID != want {
		log.WithFields(log.Fields{
			"executor_id": executor.ExecutorID,
			"expected":    want,
			"instance":    newInst.ID,
		}).Error("executor id does not match instance id")
		return nil, errors.New("executor id mismatch for instance")
	}

	return &LaunchTaskGroup{
		executor: executor,
		group:    group,
		newInst:  newInst,
		oldInst:  oldInst,
	}, nil
}

// TaskID returns the id of the first task in the group, which shares
// the instance identity with its siblings. Construction guarantees the
// group is non-empty.
func (l *LaunchTaskGroup) TaskID() model.TaskID {
	return l.group.Tasks[0].TaskID
}

// OldState implements Op.
func (l *LaunchTaskGroup) OldState() *instance.Instance { return l.oldInst }

// NewState implements Op.
func (l *LaunchTaskGroup) NewState() *instance.Instance { return l.newInst }

// ApplyToOffer subtracts the executor resources plus every task's
// resources.
func (l *LaunchTaskGroup) ApplyToOffer(offer model.Offer) model.Offer {
	result := offer.Consume(l.executor.Resources)
	for _, t := range l.group.Tasks {
		result = result.Consume(t.Resources)
	}
	return result
}

// LowLevelOps implements Op.
func (l *LaunchTaskGroup) LowLevelOps() []model.OfferOperation {
	return []model.OfferOperation{
		{
			Type: model.OfferOperationLaunchGroup,
			LaunchGroup: &model.LaunchGroupOperation{
				Executor:  l.executor,
				TaskGroup: l.group,
			},
		},
	}
}

// ReserveAndCreateVolumes reserves a resource set and declares the
// persistent volumes to create from it, without launching a task in
// the same step. The launch happens in a later round against the
// reservation.
type ReserveAndCreateVolumes struct {
	taskID    model.TaskID
	resources []model.Resource
	volumes   []model.LocalVolume
	newInst   *instance.Instance
	oldInst   *instance.Instance
}

// NewReserveAndCreateVolumes builds a two-phase reservation operation.
func NewReserveAndCreateVolumes(
	taskID model.TaskID,
	resources []model.Resource,
	volumes []model.LocalVolume,
	newInst *instance.Instance,
	oldInst *instance.Instance) (*ReserveAndCreateVolumes, error) {

	if newInst == nil {
		return nil, errors.New("reserve operation without new instance state")
	}
	if len(resources) == 0 {
		return nil, errors.New("reserve operation without resources")
	}

	return &ReserveAndCreateVolumes{
		taskID:    taskID,
		resources: resources,
		volumes:   volumes,
		newInst:   newInst,
		oldInst:   oldInst,
	}, nil
}

// TaskID implements Op.
func (r *ReserveAndCreateVolumes) TaskID() model.TaskID { return r.taskID }

// OldState implements Op.
func (r *ReserveAndCreateVolumes) OldState() *instance.Instance { return r.oldInst }

// NewState implements Op.
func (r *ReserveAndCreateVolumes) NewState() *instance.Instance { return r.newInst }

// ApplyToOffer subtracts the plain reserved resources first, then
// folds over each declared volume subtracting its disk resource. The
// aggregate result is independent of volume ordering.
func (r *ReserveAndCreateVolumes) ApplyToOffer(offer model.Offer) model.Offer {
	result := offer.Consume(r.resources)
	for _, v := range r.volumes {
		result = result.Consume([]model.Resource{v.Resource})
	}
	return result
}

// LowLevelOps returns exactly one reserve operation followed by one
// create-volume operation per declared volume, in declaration order.
// The cluster manager applies them as a single atomic batch; the order
// only aids debuggability.
func (r *ReserveAndCreateVolumes) LowLevelOps() []model.OfferOperation {
	ops := []model.OfferOperation{
		{
			Type: model.OfferOperationReserve,
			Reserve: &model.ReserveOperation{
				Resources: r.resources,
			},
		},
	}
	for _, v := range r.volumes {
		ops = append(ops, model.OfferOperation{
			Type: model.OfferOperationCreate,
			Create: &model.CreateOperation{
				Volume: v.Resource,
			},
		})
	}
	return ops
}
