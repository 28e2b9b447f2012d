package keeper

import (
	"sort"

	"cosmossdk.io/math"

	"github.com/thryx-chain/thryx/x/amm/types"
)

// ExportGenesis dumps the full module state.
func (k *Keeper) ExportGenesis() types.GenesisState {
	k.mu.RLock()
	defer k.mu.RUnlock()

	gs := types.GenesisState{
		Params:     k.params,
		NextPoolId: k.nextPoolID,
	}
	for _, pool := range k.pools {
		gs.Pools = append(gs.Pools, *pool)
	}
	sort.Slice(gs.Pools, func(i, j int) bool { return gs.Pools[i].Id < gs.Pools[j].Id })

	for poolID, positions := range k.shares {
		for provider, shares := range positions {
			gs.Positions = append(gs.Positions, types.SharePosition{
				PoolId:   poolID,
				Provider: provider,
				Shares:   shares,
			})
		}
	}
	sort.Slice(gs.Positions, func(i, j int) bool {
		if gs.Positions[i].PoolId != gs.Positions[j].PoolId {
			return gs.Positions[i].PoolId < gs.Positions[j].PoolId
		}
		return gs.Positions[i].Provider < gs.Positions[j].Provider
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
	k.nextPoolID = gs.NextPoolId
	k.pools = make(map[uint64]*types.Pool, len(gs.Pools))
	k.poolsByPair = make(map[string]uint64, len(gs.Pools))
	k.shares = make(map[uint64]map[string]math.Int)

	for _, pool := range gs.Pools {
		copied := pool
		k.pools[pool.Id] = &copied
		k.poolsByPair[pairKey(pool.TokenA, pool.TokenB)] = pool.Id
		k.shares[pool.Id] = make(map[string]math.Int)
	}
	for _, pos := range gs.Positions {
		k.shares[pos.PoolId][pos.Provider] = pos.Shares
	}
	return nil
}
