package keeper

import (
	"fmt"
	"sort"

	"cosmossdk.io/math"

	"github.com/thryx-chain/thryx/x/amm/types"
	"github.com/thryx-chain/thryx/x/shared/events"
)

// CreatePool registers a new empty pool for the token pair. Reserves start
// at zero; the first AddLiquidity call seeds them. Tokens are ordered
// lexicographically so each pair maps to exactly one pool.
func (k *Keeper) CreatePool(creator, tokenA, tokenB string) (*types.Pool, error) {
	if creator == "" {
		return nil, types.ErrInvalidInput.Wrap("creator cannot be empty")
	}
	if tokenA == "" || tokenB == "" {
		return nil, types.ErrInvalidTokenPair.Wrap("token denoms cannot be empty")
	}
	if tokenA == tokenB {
		return nil, types.ErrInvalidTokenPair.Wrap("cannot create pool with identical tokens")
	}

	if tokenA > tokenB {
		tokenA, tokenB = tokenB, tokenA
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	key := pairKey(tokenA, tokenB)
	if _, exists := k.poolsByPair[key]; exists {
		return nil, types.ErrPoolAlreadyExists.Wrapf("pool already exists for pair %s", key)
	}

	pool := &types.Pool{
		Id:           k.nextPoolID,
		TokenA:       tokenA,
		TokenB:       tokenB,
		ReserveA:     math.ZeroInt(),
		ReserveB:     math.ZeroInt(),
		TotalShares:  math.ZeroInt(),
		AccruedFeesA: math.ZeroInt(),
		AccruedFeesB: math.ZeroInt(),
		Creator:      creator,
	}
	k.nextPoolID++

	k.pools[pool.Id] = pool
	k.poolsByPair[key] = pool.Id
	k.shares[pool.Id] = make(map[string]math.Int)

	k.events.EmitEvent(events.NewEvent(
		types.EventTypePoolCreated,
		events.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
		events.NewAttribute(types.AttributeKeyCreator, creator),
		events.NewAttribute(types.AttributeKeyTokenA, tokenA),
		events.NewAttribute(types.AttributeKeyTokenB, tokenB),
	))
	k.logger.Info("pool created", "pool_id", pool.Id, "pair", key)

	if k.metrics != nil {
		k.metrics.PoolsTotal.Inc()
	}

	copied := *pool
	return &copied, nil
}

// GetPool returns a copy of the pool with the given id.
func (k *Keeper) GetPool(poolID uint64) (*types.Pool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.getPool(poolID)
}

// GetPoolByTokens returns the pool for a token pair in either order.
func (k *Keeper) GetPoolByTokens(tokenA, tokenB string) (*types.Pool, error) {
	if tokenA > tokenB {
		tokenA, tokenB = tokenB, tokenA
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	id, ok := k.poolsByPair[pairKey(tokenA, tokenB)]
	if !ok {
		return nil, types.ErrPoolNotFound.Wrapf("no pool for pair %s/%s", tokenA, tokenB)
	}
	return k.getPool(id)
}

// GetAllPools returns copies of every pool, ordered by id.
func (k *Keeper) GetAllPools() []types.Pool {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]types.Pool, 0, len(k.pools))
	for _, p := range k.pools {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out
}

// GetLiquidity returns the provider's share balance in the pool.
func (k *Keeper) GetLiquidity(poolID uint64, provider string) (math.Int, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if _, err := k.getPool(poolID); err != nil {
		return math.Int{}, err
	}
	if shares, ok := k.shares[poolID][provider]; ok {
		return shares, nil
	}
	return math.ZeroInt(), nil
}

// caller must hold k.mu
func (k *Keeper) getPool(poolID uint64) (*types.Pool, error) {
	pool, ok := k.pools[poolID]
	if !ok {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	copied := *pool
	return &copied, nil
}
