package keeper

import (
	"sort"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/thryx-chain/thryx/x/oracle/types"
	"github.com/thryx-chain/thryx/x/shared/events"
)

// round collects the submissions for one pair between consensus points.
type round struct {
	openedAt    time.Time
	submissions []types.Submission
}

func (r *round) hasReporter(reporter string) bool {
	for _, s := range r.submissions {
		if s.Reporter == reporter {
			return true
		}
	}
	return false
}

// Keeper owns the price feeds, the in-progress rounds, and every reporter's
// reputation. One RWMutex serializes submissions; price reads take the read
// lock.
type Keeper struct {
	mu          sync.RWMutex
	feeds       map[string]*types.PriceFeed
	rounds      map[string]*round
	reputations map[string]*types.Reputation
	params      types.Params
	roundSeq    uint64

	registry types.RegistryKeeper
	events   *events.Manager
	logger   log.Logger
	metrics  *Metrics
	now      func() time.Time
}

// NewKeeper creates an oracle keeper with no feeds.
func NewKeeper(registry types.RegistryKeeper, em *events.Manager, logger log.Logger) *Keeper {
	return &Keeper{
		feeds:       make(map[string]*types.PriceFeed),
		rounds:      make(map[string]*round),
		reputations: make(map[string]*types.Reputation),
		params:      types.DefaultParams(),
		registry:    registry,
		events:      em,
		logger:      logger.With("module", "x/"+types.ModuleName),
		metrics:     GetMetrics(),
		now:         time.Now,
	}
}

// SetTimeSource overrides the wall clock, for tests.
func (k *Keeper) SetTimeSource(now func() time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.now = now
}

// GetParams returns the current module parameters.
func (k *Keeper) GetParams() types.Params {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.params
}

// SetParams replaces the module parameters.
func (k *Keeper) SetParams(params types.Params) error {
	if err := params.Validate(); err != nil {
		return types.ErrInvalidInput.Wrap(err.Error())
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.params = params
	return nil
}

// GetPrice returns the consensus price and timestamp for the pair. The
// stale flag is set when the feed is older than the max price age; the
// price is still returned so callers can decide what staleness means for
// them.
func (k *Keeper) GetPrice(pair string) (math.Int, time.Time, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	feed, ok := k.feeds[pair]
	if !ok {
		return math.Int{}, time.Time{}, false, types.ErrPriceNotFound.Wrapf("pair %s", pair)
	}
	stale := k.now().Sub(feed.UpdatedAt) > k.params.MaxPriceAge
	return feed.Price, feed.UpdatedAt, stale, nil
}

// GetFeed returns a copy of the stored feed for the pair.
func (k *Keeper) GetFeed(pair string) (*types.PriceFeed, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	feed, ok := k.feeds[pair]
	if !ok {
		return nil, types.ErrPriceNotFound.Wrapf("pair %s", pair)
	}
	copied := *feed
	return &copied, nil
}

// GetAllFeeds returns copies of every feed, ordered by pair.
func (k *Keeper) GetAllFeeds() []types.PriceFeed {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]types.PriceFeed, 0, len(k.feeds))
	for _, f := range k.feeds {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pair < out[j].Pair })
	return out
}

// GetReputation returns the reporter's lifetime accuracy record. Reporters
// that never submitted have a zero record.
func (k *Keeper) GetReputation(reporter string) types.Reputation {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if rep, ok := k.reputations[reporter]; ok {
		return *rep
	}
	return types.Reputation{Reporter: reporter}
}

// PendingSubmissions returns how many submissions the pair's current round
// holds. Expired rounds count as zero.
func (k *Keeper) PendingSubmissions(pair string) int {
	k.mu.RLock()
	defer k.mu.RUnlock()

	r, ok := k.rounds[pair]
	if !ok || k.now().Sub(r.openedAt) > k.params.SubmissionWindow {
		return 0
	}
	return len(r.submissions)
}

// ExportGenesis dumps the feeds and reputations. In-progress rounds are not
// exported.
func (k *Keeper) ExportGenesis() types.GenesisState {
	k.mu.RLock()
	defer k.mu.RUnlock()

	gs := types.GenesisState{Params: k.params}
	for _, f := range k.feeds {
		gs.Feeds = append(gs.Feeds, *f)
	}
	sort.Slice(gs.Feeds, func(i, j int) bool { return gs.Feeds[i].Pair < gs.Feeds[j].Pair })
	for _, rep := range k.reputations {
		gs.Reputations = append(gs.Reputations, *rep)
	}
	sort.Slice(gs.Reputations, func(i, j int) bool {
		return gs.Reputations[i].Reporter < gs.Reputations[j].Reporter
	})
	return gs
}

// ImportGenesis replaces the module state with the given genesis.
func (k *Keeper) ImportGenesis(gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return types.ErrInvalidInput.Wrap(err.Error())
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.params = gs.Params
	k.feeds = make(map[string]*types.PriceFeed, len(gs.Feeds))
	for _, feed := range gs.Feeds {
		copied := feed
		k.feeds[feed.Pair] = &copied
		if feed.Round > k.roundSeq {
			k.roundSeq = feed.Round
		}
	}
	k.rounds = make(map[string]*round)
	k.reputations = make(map[string]*types.Reputation, len(gs.Reputations))
	for _, rep := range gs.Reputations {
		copied := rep
		k.reputations[rep.Reporter] = &copied
	}
	return nil
}
