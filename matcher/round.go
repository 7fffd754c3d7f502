package matcher

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/coxswain-io/coxswain/common/async"
	"github.com/coxswain-io/coxswain/common/scalar"
	"github.com/coxswain-io/coxswain/model"
)

// RoundRunner composes a fixed sequence of matchers into one matching
// round per offer. Matchers are evaluated in order against the
// residual offer capacity left by the accepted operations of earlier
// matchers, so one offer is never consumed twice within a round.
// Across offers, rounds run concurrently on a bounded worker pool.
type RoundRunner struct {
	matchers []Matcher
	pool     *async.Pool
	metrics  *Metrics

	roundTimeout time.Duration

	inFlight    atomic.Int32
	lastMatched scalar.AtomicResources
}

// NewRoundRunner returns a runner evaluating the given matchers with
// the per-offer round timeout, fanning out across offers with up to
// maxParallel concurrent rounds.
func NewRoundRunner(
	matchers []Matcher,
	metrics *Metrics,
	roundTimeout time.Duration,
	maxParallel int) *RoundRunner {

	return &RoundRunner{
		matchers:     matchers,
		pool:         async.NewPool(async.PoolOptions{MaxWorkers: maxParallel}),
		metrics:      metrics,
		roundTimeout: roundTimeout,
	}
}

// MatchOffer runs one full matching round for a single offer. Each
// matcher is given the residual offer view; its operations are applied
// to the residual before the next matcher runs. A matcher that does
// not answer before the round deadline ends the round with
// ResendThisOffer set, discarding nothing already matched.
func (r *RoundRunner) MatchOffer(ctx context.Context, offer model.Offer) MatchedTaskOps {
	ctx, cancel := context.WithTimeout(ctx, r.roundTimeout)
	defer cancel()

	r.metrics.Rounds.Inc(1)
	r.metrics.InFlight.Update(float64(r.inFlight.Inc()))
	defer func() {
		r.metrics.InFlight.Update(float64(r.inFlight.Dec()))
	}()
	sw := r.metrics.RoundLatency.Start()
	defer sw.Stop()

	result := MatchedTaskOps{OfferID: offer.ID}
	residual := offer
	var matchedTotal scalar.Resources

loop:
	for _, m := range r.matchers {
		select {
		case matched, ok := <-m.MatchOffer(ctx, residual):
			if !ok {
				continue
			}
			if matched.ResendThisOffer {
				result.ResendThisOffer = true
			}
			for _, ows := range matched.Ops {
				next, used, err := applyToResidual(residual, ows)
				if err != nil {
					// A matcher proposing more than the residual holds is a
					// scheduling defect, not a runtime condition. Surface it
					// and drop the operation instead of submitting it.
					r.metrics.OpsOvercommitted.Inc(1)
					log.WithFields(log.Fields{
						"offer_id": offer.ID,
						"task_id":  ows.Op.TaskID(),
					}).WithError(err).Error("dropping operation overcommitting offer")
					if ows.Source != nil {
						ows.Source.Rejected(ows.Op, "offer overcommitted")
					}
					continue
				}
				residual = next
				matchedTotal = *matchedTotal.Add(&used)
				result.Ops = append(result.Ops, ows)
			}
		case <-ctx.Done():
			r.metrics.RoundTimeouts.Inc(1)
			result.ResendThisOffer = true
			log.WithField("offer_id", offer.ID).
				Debug("matching round deadline expired, offer will be resent")
			break loop
		}
	}

	if len(result.Ops) == 0 {
		r.metrics.NoMatch.Inc(1)
	} else {
		r.metrics.OpsMatched.Inc(int64(len(result.Ops)))
	}
	if result.ResendThisOffer {
		r.metrics.Resends.Inc(1)
	}
	r.lastMatched.Set(matchedTotal)
	r.metrics.MatchedResources.Update(matchedTotal)
	r.metrics.TotalMatched.Inc(matchedTotal)

	return result
}

// MatchOffers runs one round per offer on the worker pool and blocks
// until all rounds finished or timed out.
func (r *RoundRunner) MatchOffers(ctx context.Context, offers []model.Offer) []MatchedTaskOps {
	results := make([]MatchedTaskOps, len(offers))
	for i := range offers {
		i := i
		offer := offers[i]
		r.pool.Enqueue(async.JobFunc(func(context.Context) {
			results[i] = r.MatchOffer(ctx, offer)
		}))
	}
	r.pool.WaitUntilProcessed()
	return results
}

// LastMatched returns the scalar resources consumed by the most recent
// round, for reporting.
func (r *RoundRunner) LastMatched() scalar.Resources {
	return r.lastMatched.Get()
}

// Stop terminates the worker pool.
func (r *RoundRunner) Stop() {
	r.pool.Stop()
}

// applyToResidual applies the operation to the residual offer and
// verifies the residual actually contained the consumed amount.
func applyToResidual(residual model.Offer, ows OpWithSource) (model.Offer, scalar.Resources, error) {
	before := scalar.FromOffer(&residual)
	next := ows.Op.ApplyToOffer(residual)
	after := scalar.FromOffer(&next)
	used := before.Subtract(&after)
	if !before.Contains(used) || after.HasNegativeFields() {
		return residual, scalar.Resources{}, errors.Errorf(
			"operation consumes %v, offer %s has %v left",
			used, residual.ID, before)
	}
	return next, *used, nil
}
