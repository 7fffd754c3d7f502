// Package factory materializes task operations from resolved placement
// decisions. It owns the framework identity (framework id, principal,
// role) used to tag reservations, passed in explicitly at construction
// rather than read from ambient state.
package factory

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/coxswain-io/coxswain/common/reservation"
	"github.com/coxswain-io/coxswain/instance"
	"github.com/coxswain-io/coxswain/model"
	"github.com/coxswain-io/coxswain/operation"
)

// Identity carries the framework identity stamped onto reservations.
type Identity struct {
	FrameworkID model.FrameworkID `yaml:"framework_id" validate:"nonzero"`
	Principal   string            `yaml:"principal" validate:"nonzero"`
	Role        string            `yaml:"role" validate:"nonzero"`
}

// Factory builds concrete task operations. All methods are pure
// constructors: submission failures are reported back through the
// matcher's source callback, never retried here.
type Factory struct {
	identity Identity
}

// New returns a factory stamping reservations for the given identity.
func New(identity Identity) *Factory {
	return &Factory{identity: identity}
}

// LaunchEphemeral wraps a single-task launch on plain offered
// resources. If inst is nil a fresh instance is derived from the new
// task state; otherwise the returned operation's new state is a copy
// of inst with the task inserted.
func (f *Factory) LaunchEphemeral(
	task model.TaskInfo,
	newTask *instance.Task,
	inst *instance.Instance) (*operation.LaunchTask, error) {

	var oldInst *instance.Instance
	newInst, err := f.instanceWithTask(inst, newTask, task.AgentID)
	if err != nil {
		return nil, err
	}
	if inst != nil {
		oldInst = inst
	}
	return operation.NewLaunchTask(task, newInst, oldInst)
}

// LaunchOnReservation wraps a launch against resources reserved in a
// prior round. The prior instance state is carried forward so the
// authoritative store can compute the full before/after transition.
func (f *Factory) LaunchOnReservation(
	task model.TaskInfo,
	newTask *instance.Task,
	oldInst *instance.Instance) (*operation.LaunchTask, error) {

	if oldInst == nil {
		return nil, errors.New("launch on reservation requires prior instance state")
	}
	newInst, err := f.instanceWithTask(oldInst, newTask, task.AgentID)
	if err != nil {
		return nil, err
	}
	return operation.NewLaunchTask(task, newInst, oldInst)
}

// LaunchTaskGroup wraps an atomic multi-task pod launch.
func (f *Factory) LaunchTaskGroup(
	executor model.ExecutorInfo,
	group model.TaskGroupInfo,
	newInst *instance.Instance,
	oldInst *instance.Instance) (*operation.LaunchTaskGroup, error) {

	return operation.NewLaunchTaskGroup(executor, group, newInst, oldInst)
}

// ReserveAndCreateVolumes builds the reserve plus create-volume
// operations for a two-phase stateful placement. Resources and volume
// disks are stamped with the factory's role, principal and the
// reservation labels recovering the owning instance. Volumes without
// an id get a freshly generated one.
func (f *Factory) ReserveAndCreateVolumes(
	reserveInst *instance.Instance,
	hostname string,
	resources []model.Resource,
	volumes []model.LocalVolume) (*operation.ReserveAndCreateVolumes, error) {

	if reserveInst == nil {
		return nil, errors.New("reserve requires the instance state being reserved for")
	}
	taskID, err := singleTaskID(reserveInst)
	if err != nil {
		return nil, err
	}
	runSpecID, err := reserveInst.ID.RunSpecIDOf()
	if err != nil {
		return nil, errors.Wrap(err, "cannot derive reservation labels")
	}
	labels := reservation.CreateLabels(runSpecID, string(reserveInst.ID), hostname)

	reserved := make([]model.Resource, 0, len(resources))
	for _, res := range resources {
		reserved = append(reserved, f.reserve(res, labels))
	}

	stamped := make([]model.LocalVolume, 0, len(volumes))
	for _, vol := range volumes {
		if vol.ID == "" {
			vol.ID = model.NewVolumeID()
		}
		if vol.Resource.Name != model.ResourceDisk {
			log.WithFields(log.Fields{
				"volume":   vol.ID,
				"resource": vol.Resource.Name,
			}).Error("persistent volume must be backed by disk")
			return nil, errors.Errorf(
				"volume %s backed by %q, want disk", vol.ID, vol.Resource.Name)
		}
		vol.Resource = f.reserve(vol.Resource, labels)
		vol.Resource.Disk = &model.DiskInfo{
			Volume:        vol.ID,
			ContainerPath: vol.ContainerPath,
		}
		stamped = append(stamped, vol)
	}

	return operation.NewReserveAndCreateVolumes(
		taskID, reserved, stamped, reserveInst, nil)
}

// reserve returns a copy of res tagged with the factory identity.
func (f *Factory) reserve(res model.Resource, labels map[string]string) model.Resource {
	res.Role = f.identity.Role
	res.Reservation = &model.ReservationInfo{
		Principal: f.identity.Principal,
		Labels:    labels,
	}
	return res
}

// instanceWithTask returns the authoritative post-launch instance
// state: a copy of inst with the task inserted, or a fresh instance
// derived from the task when inst is nil.
func (f *Factory) instanceWithTask(
	inst *instance.Instance,
	newTask *instance.Task,
	agentID model.AgentID) (*instance.Instance, error) {

	if newTask == nil {
		return nil, errors.New("launch requires the new task state")
	}
	if inst == nil {
		instanceID, err := newTask.ID.InstanceIDOf()
		if err != nil {
			return nil, errors.Wrap(err, "cannot derive instance from task")
		}
		return instance.NewInstance(
			instanceID, agentID, newTask.RunSpecVersion, newTask.StatusSince, newTask), nil
	}

	next := *inst
	next.AgentID = agentID
	next.Tasks = make(map[model.TaskID]*instance.Task, len(inst.Tasks)+1)
	for id, t := range inst.Tasks {
		next.Tasks[id] = t
	}
	next.Tasks[newTask.ID] = newTask
	next.UpdateState(newTask.StatusSince)
	return &next, nil
}

func singleTaskID(inst *instance.Instance) (model.TaskID, error) {
	if len(inst.Tasks) != 1 {
		return "", errors.Errorf(
			"reserve state for %s must carry exactly one task, has %d",
			inst.ID, len(inst.Tasks))
	}
	for id := range inst.Tasks {
		return id, nil
	}
	return "", nil
}
