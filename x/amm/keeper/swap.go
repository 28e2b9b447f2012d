package keeper

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/thryx-chain/thryx/x/amm/types"
	banktypes "github.com/thryx-chain/thryx/x/bank/types"
	"github.com/thryx-chain/thryx/x/shared/events"
	"github.com/thryx-chain/thryx/x/shared/safemath"
)

// Swap trades amountIn of tokenIn against the pool and pays out the other
// asset. The fee is charged by scaling the input: with a 997/1000 pair the
// effective input is amountIn*997 and the output is
//
//	amountOut = amountIn*997*reserveOut / (reserveIn*1000 + amountIn*997)
//
// All divisions floor, so the constant product strictly increases on every
// swap and rounding dust stays in the pool.
func (k *Keeper) Swap(trader string, poolID uint64, tokenIn string, amountIn, minAmountOut math.Int) (math.Int, error) {
	if trader == "" {
		return math.Int{}, types.ErrInvalidInput.Wrap("trader cannot be empty")
	}
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.Int{}, types.ErrInvalidInput.Wrap("amount in must be positive")
	}
	if minAmountOut.IsNil() || minAmountOut.IsNegative() {
		return math.Int{}, types.ErrInvalidInput.Wrap("min amount out cannot be negative")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	pool, ok := k.pools[poolID]
	if !ok {
		return math.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	if !pool.HasToken(tokenIn) {
		return math.Int{}, types.ErrInvalidTokenPair.Wrapf(
			"token %s not in pool %d (%s/%s)", tokenIn, poolID, pool.TokenA, pool.TokenB,
		)
	}

	tokenOut := pool.OtherToken(tokenIn)
	reserveIn, reserveOut := pool.ReserveA, pool.ReserveB
	if tokenIn == pool.TokenB {
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
	}

	amountOut, feeAmount, err := k.computeSwapOutput(amountIn, reserveIn, reserveOut)
	if err != nil {
		return math.Int{}, err
	}
	// Slippage is checked before the drain guard so a trade failing both
	// always reports the trader-facing error.
	if amountOut.LT(minAmountOut) {
		return math.Int{}, types.ErrSlippageExceeded.Wrapf(
			"output %s below minimum %s", amountOut, minAmountOut,
		)
	}
	if amountOut.GTE(reserveOut) {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"output %s would drain reserve %s", amountOut, reserveOut,
		)
	}

	// Pull the input first; it is the only transfer that can legitimately
	// fail. The outbound leg is covered by reserves (amountOut < reserveOut),
	// but if it fails anyway the input is refunded so the call stays atomic.
	moduleAddr := k.ModuleAddress()
	if err := k.bankKeeper.SendCoins(trader, moduleAddr, banktypes.NewCoin(tokenIn, amountIn)); err != nil {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("input transfer failed: %v", err)
	}
	if err := k.bankKeeper.SendCoins(moduleAddr, trader, banktypes.NewCoin(tokenOut, amountOut)); err != nil {
		if refundErr := k.bankKeeper.SendCoins(moduleAddr, trader, banktypes.NewCoin(tokenIn, amountIn)); refundErr != nil {
			return math.Int{}, types.ErrInvalidPoolState.Wrapf(
				"payout failed (%v) and refund failed (%v)", err, refundErr,
			)
		}
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("payout transfer failed: %v", err)
	}

	if tokenIn == pool.TokenA {
		pool.ReserveA = pool.ReserveA.Add(amountIn)
		pool.ReserveB = pool.ReserveB.Sub(amountOut)
		pool.AccruedFeesA = pool.AccruedFeesA.Add(feeAmount)
	} else {
		pool.ReserveB = pool.ReserveB.Add(amountIn)
		pool.ReserveA = pool.ReserveA.Sub(amountOut)
		pool.AccruedFeesB = pool.AccruedFeesB.Add(feeAmount)
	}

	k.events.EmitEvent(events.NewEvent(
		types.EventTypeSwap,
		events.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
		events.NewAttribute(types.AttributeKeyTrader, trader),
		events.NewAttribute(types.AttributeKeyTokenIn, tokenIn),
		events.NewAttribute(types.AttributeKeyTokenOut, tokenOut),
		events.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
		events.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
		events.NewAttribute(types.AttributeKeyFee, feeAmount.String()),
	))

	if k.metrics != nil {
		k.metrics.SwapsTotal.WithLabelValues(tokenIn, tokenOut).Inc()
	}

	return amountOut, nil
}

// GetAmountOut quotes a swap without executing it. Pure view; uses exactly
// the execution formula.
func (k *Keeper) GetAmountOut(poolID uint64, tokenIn string, amountIn math.Int) (math.Int, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.Int{}, types.ErrInvalidInput.Wrap("amount in must be positive")
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	pool, ok := k.pools[poolID]
	if !ok {
		return math.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	if !pool.HasToken(tokenIn) {
		return math.Int{}, types.ErrInvalidTokenPair.Wrapf("token %s not in pool %d", tokenIn, poolID)
	}

	reserveIn, reserveOut := pool.ReserveA, pool.ReserveB
	if tokenIn == pool.TokenB {
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
	}

	amountOut, _, err := k.computeSwapOutput(amountIn, reserveIn, reserveOut)
	if err != nil {
		return math.Int{}, err
	}
	if amountOut.GTE(reserveOut) {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"output %s would drain reserve %s", amountOut, reserveOut,
		)
	}
	return amountOut, nil
}

// GetSpotPrice returns the instantaneous price of tokenIn in units of the
// other asset, scaled by 1e18: reserveOut * SCALE / reserveIn.
func (k *Keeper) GetSpotPrice(poolID uint64, tokenIn string) (math.Int, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	pool, ok := k.pools[poolID]
	if !ok {
		return math.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	if !pool.HasToken(tokenIn) {
		return math.Int{}, types.ErrInvalidTokenPair.Wrapf("token %s not in pool %d", tokenIn, poolID)
	}

	reserveIn, reserveOut := pool.ReserveA, pool.ReserveB
	if tokenIn == pool.TokenB {
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
	}
	if reserveIn.IsZero() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("pool has no reserves")
	}
	return safemath.MulDiv(reserveOut, safemath.Scale, reserveIn)
}

// caller must hold k.mu (read or write)
func (k *Keeper) computeSwapOutput(amountIn, reserveIn, reserveOut math.Int) (amountOut, fee math.Int, err error) {
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrap("pool has no reserves")
	}

	amountInWithFee := amountIn.Mul(k.params.FeeNumerator)
	numerator := amountInWithFee.Mul(reserveOut)
	denominator := reserveIn.Mul(k.params.FeeDenominator).Add(amountInWithFee)
	amountOut = numerator.Quo(denominator)

	kept, err := safemath.MulDiv(amountIn, k.params.FeeNumerator, k.params.FeeDenominator)
	if err != nil {
		return math.Int{}, math.Int{}, types.ErrInvalidPoolState.Wrap(err.Error())
	}
	fee = amountIn.Sub(kept)
	return amountOut, fee, nil
}
