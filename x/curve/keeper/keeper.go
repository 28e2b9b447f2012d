package keeper

import (
	"sort"
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	bankkeeper "github.com/thryx-chain/thryx/x/bank/keeper"
	"github.com/thryx-chain/thryx/x/curve/types"
	"github.com/thryx-chain/thryx/x/shared/events"
)

// Keeper owns every bonding-curve asset. One RWMutex serializes all
// state-changing entry points; pricing reads take the read lock.
type Keeper struct {
	mu     sync.RWMutex
	assets map[string]*types.Asset
	params types.Params

	bankKeeper types.BankKeeper
	events     *events.Manager
	logger     log.Logger
	metrics    *Metrics
}

// NewKeeper creates a curve keeper with no assets.
func NewKeeper(bk types.BankKeeper, em *events.Manager, logger log.Logger) *Keeper {
	return &Keeper{
		assets:     make(map[string]*types.Asset),
		params:     types.DefaultParams(),
		bankKeeper: bk,
		events:     em,
		logger:     logger.With("module", "x/"+types.ModuleName),
		metrics:    GetMetrics(),
	}
}

// ModuleAddress returns the escrow account holding every asset's backing
// reserve.
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

// CreateAsset deploys a new curve asset with zero supply and the default
// curve constants. The floor starts at the base price.
func (k *Keeper) CreateAsset(creator, denom string) (*types.Asset, error) {
	if creator == "" {
		return nil, types.ErrInvalidInput.Wrap("creator cannot be empty")
	}
	if denom == "" {
		return nil, types.ErrInvalidInput.Wrap("denom cannot be empty")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if denom == k.params.PaymentDenom {
		return nil, types.ErrInvalidInput.Wrap("asset denom cannot equal the payment denom")
	}
	if _, exists := k.assets[denom]; exists {
		return nil, types.ErrAssetAlreadyExists.Wrapf("asset %s", denom)
	}

	curve := types.DefaultCurveParams()
	asset := &types.Asset{
		Denom:       denom,
		Creator:     creator,
		Supply:      math.ZeroInt(),
		Reserve:     math.ZeroInt(),
		PriceFloor:  curve.BasePrice,
		AllTimeHigh: curve.BasePrice,
		Curve:       curve,
	}
	k.assets[denom] = asset

	k.events.EmitEvent(events.NewEvent(
		types.EventTypeAssetCreated,
		events.NewAttribute(types.AttributeKeyDenom, denom),
		events.NewAttribute(types.AttributeKeyCreator, creator),
	))
	k.logger.Info("curve asset created", "denom", denom, "creator", creator)

	copied := *asset
	return &copied, nil
}

// GetAsset returns a copy of the stored asset.
func (k *Keeper) GetAsset(denom string) (*types.Asset, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	asset, ok := k.assets[denom]
	if !ok {
		return nil, types.ErrAssetNotFound.Wrapf("asset %s", denom)
	}
	copied := *asset
	return &copied, nil
}

// GetAllAssets returns copies of every asset, ordered by denom.
func (k *Keeper) GetAllAssets() []types.Asset {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]types.Asset, 0, len(k.assets))
	for _, a := range k.assets {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Denom < out[j].Denom })
	return out
}

// CurrentPrice returns the asset's unit price at its current supply.
// Pure view.
func (k *Keeper) CurrentPrice(denom string) (math.Int, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	asset, ok := k.assets[denom]
	if !ok {
		return math.Int{}, types.ErrAssetNotFound.Wrapf("asset %s", denom)
	}
	return asset.CurrentPrice(asset.Supply), nil
}

// ExportGenesis dumps the full module state.
func (k *Keeper) ExportGenesis() types.GenesisState {
	k.mu.RLock()
	defer k.mu.RUnlock()

	gs := types.GenesisState{Params: k.params}
	for _, a := range k.assets {
		gs.Assets = append(gs.Assets, *a)
	}
	sort.Slice(gs.Assets, func(i, j int) bool { return gs.Assets[i].Denom < gs.Assets[j].Denom })
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
	k.assets = make(map[string]*types.Asset, len(gs.Assets))
	for _, asset := range gs.Assets {
		copied := asset
		k.assets[asset.Denom] = &copied
	}
	return nil
}
