package types

import (
	"fmt"
)

// GenesisState holds the full curve module state for export/import.
type GenesisState struct {
	Params Params  `json:"params"`
	Assets []Asset `json:"assets"`
}

// DefaultGenesis returns the empty genesis state.
func DefaultGenesis() GenesisState {
	return GenesisState{Params: DefaultParams()}
}

// Validate checks genesis consistency.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(gs.Assets))
	for _, asset := range gs.Assets {
		if err := asset.Validate(); err != nil {
			return fmt.Errorf("asset %s: %w", asset.Denom, err)
		}
		if seen[asset.Denom] {
			return fmt.Errorf("duplicate asset denom %s", asset.Denom)
		}
		seen[asset.Denom] = true
	}
	return nil
}
