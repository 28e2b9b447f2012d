package keeper

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/thryx-chain/thryx/x/amm/types"
	banktypes "github.com/thryx-chain/thryx/x/bank/types"
	"github.com/thryx-chain/thryx/x/shared/events"
	"github.com/thryx-chain/thryx/x/shared/safemath"
)

// AddLiquidity deposits both assets and mints liquidity shares. The first
// provision mints sqrt(amountA*amountB); later provisions mint
// min(amountA*T/reserveA, amountB*T/reserveB), floored, so rounding dust
// always favors the pool.
func (k *Keeper) AddLiquidity(provider string, poolID uint64, amountA, amountB math.Int) (math.Int, error) {
	if provider == "" {
		return math.Int{}, types.ErrInvalidInput.Wrap("provider cannot be empty")
	}
	if amountA.IsNil() || !amountA.IsPositive() || amountB.IsNil() || !amountB.IsPositive() {
		return math.Int{}, types.ErrInvalidInput.Wrap("liquidity amounts must be positive")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	pool, ok := k.pools[poolID]
	if !ok {
		return math.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	if err := pool.Validate(); err != nil {
		return math.Int{}, types.ErrInvalidPoolState.Wrap(err.Error())
	}

	var newShares math.Int
	if pool.TotalShares.IsZero() {
		// First provider: geometric mean of the deposit, the Uniswap V2 rule
		// that makes the initial share price manipulation-resistant.
		var err error
		newShares, err = safemath.Sqrt(amountA.Mul(amountB))
		if err != nil {
			return math.Int{}, types.ErrInvalidInput.Wrap(err.Error())
		}
	} else {
		sharesA, err := safemath.MulDiv(amountA, pool.TotalShares, pool.ReserveA)
		if err != nil {
			return math.Int{}, types.ErrInvalidPoolState.Wrap(err.Error())
		}
		sharesB, err := safemath.MulDiv(amountB, pool.TotalShares, pool.ReserveB)
		if err != nil {
			return math.Int{}, types.ErrInvalidPoolState.Wrap(err.Error())
		}
		newShares = safemath.Min(sharesA, sharesB)
	}

	if newShares.IsZero() {
		return math.Int{}, types.ErrInsufficientLiquidityMinted.Wrap("deposit too small for any shares")
	}

	// The transfer is the only fallible side effect; state mutates after it.
	if err := k.bankKeeper.SendCoins(provider, k.ModuleAddress(),
		banktypes.NewCoin(pool.TokenA, amountA),
		banktypes.NewCoin(pool.TokenB, amountB),
	); err != nil {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("deposit transfer failed: %v", err)
	}

	pool.ReserveA = pool.ReserveA.Add(amountA)
	pool.ReserveB = pool.ReserveB.Add(amountB)
	pool.TotalShares = pool.TotalShares.Add(newShares)
	k.addShares(poolID, provider, newShares)

	k.events.EmitEvent(events.NewEvent(
		types.EventTypeLiquidityAdded,
		events.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
		events.NewAttribute(types.AttributeKeyProvider, provider),
		events.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
		events.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
		events.NewAttribute(types.AttributeKeyShares, newShares.String()),
	))

	if k.metrics != nil {
		k.metrics.LiquidityOps.WithLabelValues("add").Inc()
	}

	return newShares, nil
}

// RemoveLiquidity burns shares and pays out the proportional slice of each
// reserve, floored. Fails if either payout would be zero.
func (k *Keeper) RemoveLiquidity(provider string, poolID uint64, shares math.Int) (math.Int, math.Int, error) {
	if provider == "" {
		return math.Int{}, math.Int{}, types.ErrInvalidInput.Wrap("provider cannot be empty")
	}
	if shares.IsNil() || !shares.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrInvalidInput.Wrap("shares must be positive")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	pool, ok := k.pools[poolID]
	if !ok {
		return math.Int{}, math.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}

	held := k.providerShares(poolID, provider)
	if held.LT(shares) {
		return math.Int{}, math.Int{}, types.ErrInsufficientShares.Wrapf(
			"provider holds %s, requested %s", held, shares,
		)
	}

	amountA, err := safemath.MulDiv(shares, pool.ReserveA, pool.TotalShares)
	if err != nil {
		return math.Int{}, math.Int{}, types.ErrInvalidPoolState.Wrap(err.Error())
	}
	amountB, err := safemath.MulDiv(shares, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return math.Int{}, math.Int{}, types.ErrInvalidPoolState.Wrap(err.Error())
	}

	if amountA.IsZero() || amountB.IsZero() {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidityBurned.Wrap(
			"shares too small for any payout",
		)
	}

	if err := k.bankKeeper.SendCoins(k.ModuleAddress(), provider,
		banktypes.NewCoin(pool.TokenA, amountA),
		banktypes.NewCoin(pool.TokenB, amountB),
	); err != nil {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf("payout transfer failed: %v", err)
	}

	pool.ReserveA = pool.ReserveA.Sub(amountA)
	pool.ReserveB = pool.ReserveB.Sub(amountB)
	pool.TotalShares = pool.TotalShares.Sub(shares)
	k.setShares(poolID, provider, held.Sub(shares))

	k.events.EmitEvent(events.NewEvent(
		types.EventTypeLiquidityRemoved,
		events.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
		events.NewAttribute(types.AttributeKeyProvider, provider),
		events.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
		events.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
		events.NewAttribute(types.AttributeKeyShares, shares.String()),
	))

	if k.metrics != nil {
		k.metrics.LiquidityOps.WithLabelValues("remove").Inc()
	}

	return amountA, amountB, nil
}

// caller must hold k.mu
func (k *Keeper) providerShares(poolID uint64, provider string) math.Int {
	if positions, ok := k.shares[poolID]; ok {
		if s, ok := positions[provider]; ok {
			return s
		}
	}
	return math.ZeroInt()
}

// caller must hold k.mu
func (k *Keeper) addShares(poolID uint64, provider string, delta math.Int) {
	k.setShares(poolID, provider, k.providerShares(poolID, provider).Add(delta))
}

// caller must hold k.mu
func (k *Keeper) setShares(poolID uint64, provider string, shares math.Int) {
	if k.shares[poolID] == nil {
		k.shares[poolID] = make(map[string]math.Int)
	}
	if shares.IsZero() {
		delete(k.shares[poolID], provider)
		return
	}
	k.shares[poolID][provider] = shares
}
