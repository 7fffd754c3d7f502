package instance

// Status is the lifecycle status of a task, and by aggregation of an
// instance.
type Status int

const (
	// StatusCreated means the task exists but has not been submitted yet.
	StatusCreated Status = iota + 1
	// StatusStaging means the task has been submitted and resources are
	// being staged on the node.
	StatusStaging
	// StatusStarting means the executor is starting the task.
	StatusStarting
	// StatusRunning means the task is running.
	StatusRunning
	// StatusKilling means a kill has been issued but not yet confirmed.
	StatusKilling
	// StatusKilled means the task was killed.
	StatusKilled
	// StatusFinished means the task completed successfully.
	StatusFinished
	// StatusFailed means the task terminated with a failure.
	StatusFailed
	// StatusError means the task could not be started at all.
	StatusError
	// StatusGone means the node reported the task as gone for good.
	StatusGone
	// StatusDropped means the cluster manager gave up on the task.
	StatusDropped
	// StatusUnreachable means the node running the task is temporarily
	// unreachable.
	StatusUnreachable
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "Created"
	case StatusStaging:
		return "Staging"
	case StatusStarting:
		return "Starting"
	case StatusRunning:
		return "Running"
	case StatusKilling:
		return "Killing"
	case StatusKilled:
		return "Killed"
	case StatusFinished:
		return "Finished"
	case StatusFailed:
		return "Failed"
	case StatusError:
		return "Error"
	case StatusGone:
		return "Gone"
	case StatusDropped:
		return "Dropped"
	case StatusUnreachable:
		return "Unreachable"
	}
	return "Unknown"
}

// IsTerminal returns whether no further status updates are expected
// for a task in this status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusError, StatusFailed, StatusFinished, StatusKilled,
		StatusGone, StatusDropped:
		return true
	}
	return false
}

// statusSeverity ranks statuses from most to least severe. The rank
// decides which single task status dominates the aggregate status of a
// multi-task instance: transient and lost states outrank steady ones
// so the control loop reacts to work in progress even when sibling
// tasks are already settled. Finished is deliberately absent; it is
// handled as an all-or-nothing terminal case by Aggregate.
//
// The position of Starting between Staging and Running is an assumed
// ordering; no control-loop behavior depends on it today.
var statusSeverity = []Status{
	StatusError,
	StatusFailed,
	StatusGone,
	StatusDropped,
	StatusUnreachable,
	StatusKilling,
	StatusKilled,
	StatusStaging,
	StatusStarting,
	StatusRunning,
	StatusCreated,
}

// severityRank returns the position of s in the severity order, lower
// meaning more severe. Unranked statuses (Finished) sort last.
func severityRank(s Status) int {
	for i, candidate := range statusSeverity {
		if candidate == s {
			return i
		}
	}
	return len(statusSeverity)
}
