package types

import (
	"fmt"
)

// GenesisState holds the full AMM module state for export/import.
type GenesisState struct {
	Params     Params          `json:"params"`
	NextPoolId uint64          `json:"next_pool_id"`
	Pools      []Pool          `json:"pools"`
	Positions  []SharePosition `json:"positions"`
}

// DefaultGenesis returns the empty genesis state.
func DefaultGenesis() GenesisState {
	return GenesisState{
		Params:     DefaultParams(),
		NextPoolId: 1,
	}
}

// Validate checks genesis consistency: unique pool ids, positions referencing
// existing pools, per-pool position totals matching TotalShares.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	seen := make(map[uint64]bool, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("pool %d: %w", pool.Id, err)
		}
		if seen[pool.Id] {
			return fmt.Errorf("duplicate pool id %d", pool.Id)
		}
		if pool.Id >= gs.NextPoolId {
			return fmt.Errorf("pool id %d >= next pool id %d", pool.Id, gs.NextPoolId)
		}
		seen[pool.Id] = true
	}

	for _, pos := range gs.Positions {
		if !seen[pos.PoolId] {
			return fmt.Errorf("position references unknown pool %d", pos.PoolId)
		}
		if pos.Provider == "" {
			return fmt.Errorf("position provider cannot be empty")
		}
		if pos.Shares.IsNil() || !pos.Shares.IsPositive() {
			return fmt.Errorf("position shares must be positive")
		}
	}
	return nil
}
