package keeper

import (
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/thryx-chain/thryx/x/amm/types"
	bankkeeper "github.com/thryx-chain/thryx/x/bank/keeper"
	"github.com/thryx-chain/thryx/x/shared/events"
)

// Keeper owns every constant-product pool. A single RWMutex serializes all
// state-changing entry points, reproducing the serialized-transaction
// guarantee of the host ledger; view calls take the read lock and are safe
// to run concurrently with each other.
type Keeper struct {
	mu          sync.RWMutex
	pools       map[uint64]*types.Pool
	poolsByPair map[string]uint64          // "tokenA/tokenB" (sorted) -> pool id
	shares      map[uint64]map[string]math.Int // pool id -> provider -> shares
	nextPoolID  uint64
	params      types.Params

	bankKeeper types.BankKeeper
	events     *events.Manager
	logger     log.Logger
	metrics    *Metrics
}

// NewKeeper creates an AMM keeper with no pools.
func NewKeeper(bk types.BankKeeper, em *events.Manager, logger log.Logger) *Keeper {
	return &Keeper{
		pools:       make(map[uint64]*types.Pool),
		poolsByPair: make(map[string]uint64),
		shares:      make(map[uint64]map[string]math.Int),
		nextPoolID:  1,
		params:      types.DefaultParams(),
		bankKeeper:  bk,
		events:      em,
		logger:      logger.With("module", "x/"+types.ModuleName),
		metrics:     GetMetrics(),
	}
}

// ModuleAddress returns the escrow account holding all pool reserves.
func (k *Keeper) ModuleAddress() string {
	return bankkeeper.ModuleAddress(types.ModuleName)
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

// pairKey builds the canonical lookup key for an ordered token pair.
// caller must pass lexicographically ordered tokens.
func pairKey(tokenA, tokenB string) string {
	return tokenA + "/" + tokenB
}
