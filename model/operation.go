package model

// OfferOperationType enumerates the primitive operations the cluster
// manager accepts against an offer.
type OfferOperationType int

const (
	// OfferOperationLaunch starts a single task.
	OfferOperationLaunch OfferOperationType = iota + 1
	// OfferOperationLaunchGroup starts a multi-task group atomically.
	OfferOperationLaunchGroup
	// OfferOperationReserve reserves resources for future use.
	OfferOperationReserve
	// OfferOperationCreate creates a persistent volume from reserved disk.
	OfferOperationCreate
)

// String returns the name of the operation type.
func (t OfferOperationType) String() string {
	switch t {
	case OfferOperationLaunch:
		return "LAUNCH"
	case OfferOperationLaunchGroup:
		return "LAUNCH_GROUP"
	case OfferOperationReserve:
		return "RESERVE"
	case OfferOperationCreate:
		return "CREATE"
	}
	return "UNKNOWN"
}

// TaskInfo is the cluster-manager-facing payload to start one task.
type TaskInfo struct {
	TaskID    TaskID
	Name      string
	AgentID   AgentID
	Resources []Resource
}

// ExecutorInfo describes the executor running a task group, with the
// resources set aside for the executor itself.
type ExecutorInfo struct {
	ExecutorID ExecutorID
	Resources  []Resource
}

// TaskGroupInfo bundles the tasks launched atomically under one
// executor.
type TaskGroupInfo struct {
	Tasks []TaskInfo
}

// LocalVolume declares one persistent volume to create out of a
// reserved disk resource.
type LocalVolume struct {
	ID            VolumeID
	ContainerPath string
	Resource      Resource
}

// OfferOperation is one primitive operation submitted to the cluster
// manager as part of an accept-offer batch. Exactly one of the payload
// fields corresponding to Type is set.
type OfferOperation struct {
	Type        OfferOperationType
	Launch      *LaunchOperation
	LaunchGroup *LaunchGroupOperation
	Reserve     *ReserveOperation
	Create      *CreateOperation
}

// LaunchOperation starts the given tasks on offered resources.
type LaunchOperation struct {
	Tasks []TaskInfo
}

// LaunchGroupOperation starts a task group under one executor.
type LaunchGroupOperation struct {
	Executor  ExecutorInfo
	TaskGroup TaskGroupInfo
}

// ReserveOperation reserves the given resources.
type ReserveOperation struct {
	Resources []Resource
}

// CreateOperation creates a single persistent volume.
type CreateOperation struct {
	Volume Resource
}
