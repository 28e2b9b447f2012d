package keeper

import (
	"strconv"

	"cosmossdk.io/math"

	"github.com/thryx-chain/thryx/x/oracle/types"
	"github.com/thryx-chain/thryx/x/shared/events"
	"github.com/thryx-chain/thryx/x/shared/safemath"
)

// Submit records a reporter's price for the pair. When the submission
// completes a round the new consensus feed is returned; otherwise the feed
// is nil and the submission waits for more reporters.
//
// A submission that strays more than the deviation limit from the current
// consensus is rejected and still scored against the reporter. The very
// first submission for a pair has no consensus to compare against and is
// always accepted.
func (k *Keeper) Submit(reporter, pair string, price math.Int) (*types.PriceFeed, error) {
	if reporter == "" {
		return nil, types.ErrInvalidInput.Wrap("reporter cannot be empty")
	}
	if pair == "" {
		return nil, types.ErrInvalidInput.Wrap("pair cannot be empty")
	}
	if price.IsNil() || !price.IsPositive() {
		return nil, types.ErrInvalidInput.Wrap("price must be positive")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.registry.ValidateAgent(reporter) {
		return nil, types.ErrUnauthorized.Wrapf("agent %s is not registered or inactive", reporter)
	}
	if rep, ok := k.reputations[reporter]; ok && rep.Banned {
		return nil, types.ErrUnauthorized.Wrapf("agent %s is permanently banned", reporter)
	}

	now := k.now()

	r := k.rounds[pair]
	if r != nil && now.Sub(r.openedAt) > k.params.SubmissionWindow {
		k.events.EmitEvent(events.NewEvent(
			types.EventTypeRoundExpired,
			events.NewAttribute(types.AttributeKeyPair, pair),
			events.NewAttribute(types.AttributeKeySubmissions, strconv.Itoa(len(r.submissions))),
		))
		k.logger.Debug("submission round expired", "pair", pair, "discarded", len(r.submissions))
		delete(k.rounds, pair)
		r = nil
	}

	if r != nil && r.hasReporter(reporter) {
		return nil, types.ErrDuplicateSubmission.Wrapf(
			"agent %s already submitted for %s this round", reporter, pair,
		)
	}

	if feed, ok := k.feeds[pair]; ok {
		dev, err := safemath.DeviationBps(price, feed.Price)
		if err != nil {
			return nil, types.ErrInvalidInput.Wrap(err.Error())
		}
		if dev.GT(math.NewInt(k.params.MaxDeviationBps)) {
			k.score(reporter, false)
			k.metrics.SubmissionsRejected.WithLabelValues(pair).Inc()
			return nil, types.ErrExcessiveDeviation.Wrapf(
				"price %s deviates %s bps from consensus %s (limit %d)",
				price, dev, feed.Price, k.params.MaxDeviationBps,
			)
		}
	}

	if r == nil {
		r = &round{openedAt: now}
		k.rounds[pair] = r
	}
	r.submissions = append(r.submissions, types.Submission{
		Reporter:    reporter,
		Price:       price,
		SubmittedAt: now,
	})
	k.metrics.SubmissionsTotal.WithLabelValues(pair).Inc()

	k.events.EmitEvent(events.NewEvent(
		types.EventTypePriceSubmitted,
		events.NewAttribute(types.AttributeKeyPair, pair),
		events.NewAttribute(types.AttributeKeyReporter, reporter),
		events.NewAttribute(types.AttributeKeyPrice, price.String()),
	))

	if len(r.submissions) < k.params.MinSubmissions {
		return nil, nil
	}
	return k.settleRound(pair, r), nil
}

// settleRound computes the median of the round's submissions, publishes it
// as the pair's consensus price, and scores every participant. Caller holds
// the write lock.
func (k *Keeper) settleRound(pair string, r *round) *types.PriceFeed {
	median := medianPrice(r.submissions)
	now := k.now()

	k.roundSeq++
	feed := &types.PriceFeed{
		Pair:      pair,
		Price:     median,
		UpdatedAt: now,
		Round:     k.roundSeq,
	}
	k.feeds[pair] = feed
	delete(k.rounds, pair)

	accuracyLimit := math.NewInt(k.params.AccuracyBps)
	for _, sub := range r.submissions {
		dev, err := safemath.DeviationBps(sub.Price, median)
		accurate := err == nil && dev.LTE(accuracyLimit)
		k.score(sub.Reporter, accurate)
	}

	k.metrics.ConsensusTotal.WithLabelValues(pair).Inc()
	k.events.EmitEvent(events.NewEvent(
		types.EventTypeConsensusReached,
		events.NewAttribute(types.AttributeKeyPair, pair),
		events.NewAttribute(types.AttributeKeyMedian, median.String()),
		events.NewAttribute(types.AttributeKeySubmissions, strconv.Itoa(len(r.submissions))),
		events.NewAttribute(types.AttributeKeyRound, strconv.FormatUint(k.roundSeq, 10)),
	))
	k.logger.Info("consensus reached",
		"pair", pair, "median", median.String(), "submissions", len(r.submissions))

	copied := *feed
	return &copied
}

// score updates the reporter's lifetime record and applies the permanent
// ban once the reporter crosses the threshold. Caller holds the write lock.
func (k *Keeper) score(reporter string, accurate bool) {
	rep, ok := k.reputations[reporter]
	if !ok {
		rep = &types.Reputation{Reporter: reporter}
		k.reputations[reporter] = rep
	}
	rep.Total++
	if accurate {
		rep.Accurate++
	}
	if !rep.Banned && rep.Bannable(k.params.BanMinSubmissions, k.params.BanAccuracyPercent) {
		rep.Banned = true
		k.metrics.ReportersBanned.Inc()
		k.events.EmitEvent(events.NewEvent(
			types.EventTypeReporterBanned,
			events.NewAttribute(types.AttributeKeyReporter, reporter),
			events.NewAttribute(types.AttributeKeyAccuracy,
				strconv.FormatUint(rep.Accurate, 10)+"/"+strconv.FormatUint(rep.Total, 10)),
		))
		k.logger.Info("reporter banned",
			"reporter", reporter, "accurate", rep.Accurate, "total", rep.Total)
	}
}

// medianPrice sorts a copy of the submissions by price and returns the
// middle value, or the floored average of the two middle values for an
// even count.
func medianPrice(subs []types.Submission) math.Int {
	prices := make([]math.Int, len(subs))
	for i, s := range subs {
		prices[i] = s.Price
	}
	for i := 1; i < len(prices); i++ {
		for j := i; j > 0 && prices[j].LT(prices[j-1]); j-- {
			prices[j], prices[j-1] = prices[j-1], prices[j]
		}
	}
	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		return prices[mid]
	}
	return prices[mid-1].Add(prices[mid]).QuoRaw(2)
}
