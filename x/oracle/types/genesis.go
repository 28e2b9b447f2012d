package types

// GenesisState holds the oracle module's exportable state. Rounds in
// progress are deliberately not exported; they restart empty.
type GenesisState struct {
	Params      Params       `json:"params"`
	Feeds       []PriceFeed  `json:"feeds"`
	Reputations []Reputation `json:"reputations"`
}

// DefaultGenesis returns the default oracle genesis state.
func DefaultGenesis() GenesisState {
	return GenesisState{
		Params: DefaultParams(),
	}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(gs.Feeds))
	for _, feed := range gs.Feeds {
		if err := feed.Validate(); err != nil {
			return err
		}
		if _, ok := seen[feed.Pair]; ok {
			return ErrInvalidInput.Wrapf("duplicate feed for pair %s", feed.Pair)
		}
		seen[feed.Pair] = struct{}{}
	}
	reporters := make(map[string]struct{}, len(gs.Reputations))
	for _, rep := range gs.Reputations {
		if rep.Reporter == "" {
			return ErrInvalidInput.Wrap("reputation reporter cannot be empty")
		}
		if rep.Accurate > rep.Total {
			return ErrInvalidInput.Wrapf(
				"reporter %s has more accurate than total submissions", rep.Reporter,
			)
		}
		if _, ok := reporters[rep.Reporter]; ok {
			return ErrInvalidInput.Wrapf("duplicate reputation for reporter %s", rep.Reporter)
		}
		reporters[rep.Reporter] = struct{}{}
	}
	return nil
}
