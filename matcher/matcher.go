// Package matcher defines the contract between the offer stream and
// the scheduling strategies consuming it: a matcher turns one offer
// into a set of task operations, and learns through a source callback
// whether each operation was eventually accepted by the cluster
// manager.
package matcher

import (
	"context"

	"github.com/coxswain-io/coxswain/instance"
	"github.com/coxswain-io/coxswain/model"
	"github.com/coxswain-io/coxswain/operation"
)

// Source is the capability through which a matcher learns the outcome
// of an operation it proposed. Exactly one of the two methods is
// invoked, exactly once per operation, by whichever component submits
// operations to the cluster manager. A matcher must not assume
// acceptance until notified, and must not time out waiting for the
// callback itself.
type Source interface {
	// Accepted tells the originating matcher the operation took effect.
	Accepted(op operation.Op)

	// Rejected tells the originating matcher the operation did not take
	// effect, e.g. because the offer timed out or another matcher
	// consumed the capacity first. Rejection is a normal outcome; the
	// matcher recovers by re-evaluating in a future round.
	Rejected(op operation.Op, reason string)
}

// OpWithSource pairs an operation with the source to report its
// outcome to.
type OpWithSource struct {
	Op     operation.Op
	Source Source
}

// MatchedTaskOps is the result of matching one offer.
type MatchedTaskOps struct {
	OfferID model.OfferID
	Ops     []OpWithSource

	// ResendThisOffer signals the offer could not be fully evaluated,
	// e.g. the matching pass ran out of time, and should be offered
	// again in a later round. No partial progress is retained; a resend
	// starts matching from scratch.
	ResendThisOffer bool
}

// Tasks returns the resulting task state per distinct operation task
// id. Well-formed matcher output never duplicates a task id; if it
// does, the last write wins.
func (m *MatchedTaskOps) Tasks() map[model.TaskID]*instance.Task {
	tasks := make(map[model.TaskID]*instance.Task, len(m.Ops))
	for _, ows := range m.Ops {
		id := ows.Op.TaskID()
		newInst := ows.Op.NewState()
		if newInst == nil {
			continue
		}
		if t, ok := newInst.Tasks[id]; ok {
			tasks[id] = t
		}
	}
	return tasks
}

// Matcher is implemented by scheduling strategies. MatchOffer is
// asynchronous and single-shot per offer: the implementation sends
// exactly one result on the returned channel as soon as it has
// decided, which may be well before the round deadline carried by ctx.
// Producing no operations is a normal "no match" outcome, not an
// error. The caller enforces the deadline and treats a matcher that
// never answers as a match producing no operations.
type Matcher interface {
	MatchOffer(ctx context.Context, offer model.Offer) <-chan MatchedTaskOps
}
