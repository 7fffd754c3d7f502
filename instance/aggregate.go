package instance

import (
	"time"

	"github.com/coxswain-io/coxswain/model"
)

// Aggregate derives the authoritative instance state from the statuses
// of its tasks.
//
// Finished tasks are excluded from ranking so they cannot mask the
// liveness of siblings still active; once every task is Finished the
// instance as a whole is Finished. Among the remaining tasks the
// single most severe status wins (see statusSeverity). Since is only
// reset when the aggregate status actually changes, so status churn
// among tasks that does not move the aggregate keeps the transition
// clock intact.
//
// An empty task set is a no-op: prev is returned unchanged. An
// instance owns at least one task in steady state, so there is nothing
// meaningful to derive from an empty set.
func Aggregate(prev State, tasks map[model.TaskID]*Task, now time.Time) State {
	if len(tasks) == 0 {
		return prev
	}

	status := aggregateStatus(tasks)

	next := State{
		Status:      status,
		Since:       prev.Since,
		ActiveSince: activeSince(tasks),
	}
	if status != prev.Status {
		next.Since = now
	}
	// Health is only meaningful while running; leaving Running clears it.
	if status == StatusRunning {
		next.Healthy = prev.Healthy
	}
	return next
}

// aggregateStatus picks the dominant status for a non-empty task set.
func aggregateStatus(tasks map[model.TaskID]*Task) Status {
	allFinished := true
	dominant := StatusFinished
	rank := len(statusSeverity)
	for _, t := range tasks {
		if t.Status == StatusFinished {
			continue
		}
		allFinished = false
		if r := severityRank(t.Status); r < rank {
			rank = r
			dominant = t.Status
		}
	}
	if allFinished {
		return StatusFinished
	}
	return dominant
}

// activeSince returns the earliest start time among the tasks, or nil
// if none started yet.
func activeSince(tasks map[model.TaskID]*Task) *time.Time {
	var earliest *time.Time
	for _, t := range tasks {
		if t.StartedAt == nil {
			continue
		}
		if earliest == nil || t.StartedAt.Before(*earliest) {
			started := *t.StartedAt
			earliest = &started
		}
	}
	return earliest
}
