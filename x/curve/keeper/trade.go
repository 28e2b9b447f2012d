package keeper

import (
	"cosmossdk.io/math"

	banktypes "github.com/thryx-chain/thryx/x/bank/types"
	"github.com/thryx-chain/thryx/x/curve/types"
	"github.com/thryx-chain/thryx/x/shared/events"
	"github.com/thryx-chain/thryx/x/shared/safemath"
)

// QuoteBuy quotes how many tokens a net ETH amount purchases at the current
// supply. The whole trade is priced at the pre-trade spot price; the curve
// is deliberately not integrated over the purchased range, matching the
// contract this reimplements. Pure view.
func (k *Keeper) QuoteBuy(denom string, netEth math.Int) (math.Int, error) {
	if netEth.IsNil() || !netEth.IsPositive() {
		return math.Int{}, types.ErrInvalidInput.Wrap("eth amount must be positive")
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	asset, ok := k.assets[denom]
	if !ok {
		return math.Int{}, types.ErrAssetNotFound.Wrapf("asset %s", denom)
	}
	return k.quoteBuy(asset, netEth)
}

// Buy purchases tokens with ethIn of the payment denom. The creator and
// protocol fees come off the top; only the remainder buys tokens and backs
// the reserve.
func (k *Keeper) Buy(buyer, denom string, ethIn, minTokensOut math.Int) (math.Int, error) {
	if buyer == "" {
		return math.Int{}, types.ErrInvalidInput.Wrap("buyer cannot be empty")
	}
	if ethIn.IsNil() || !ethIn.IsPositive() {
		return math.Int{}, types.ErrInvalidInput.Wrap("eth in must be positive")
	}
	if minTokensOut.IsNil() || minTokensOut.IsNegative() {
		return math.Int{}, types.ErrInvalidInput.Wrap("min tokens out cannot be negative")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	asset, ok := k.assets[denom]
	if !ok {
		return math.Int{}, types.ErrAssetNotFound.Wrapf("asset %s", denom)
	}

	creatorFee, protocolFee, err := k.feeSplit(ethIn)
	if err != nil {
		return math.Int{}, err
	}
	netEth := ethIn.Sub(creatorFee).Sub(protocolFee)
	if !netEth.IsPositive() {
		return math.Int{}, types.ErrInvalidInput.Wrap("eth in too small after fees")
	}

	tokensOut, err := k.quoteBuy(asset, netEth)
	if err != nil {
		return math.Int{}, err
	}
	if tokensOut.LT(minTokensOut) {
		return math.Int{}, types.ErrSlippageExceeded.Wrapf(
			"tokens out %s below minimum %s", tokensOut, minTokensOut,
		)
	}

	// Pull the full payment first (the only legitimately fallible step),
	// then distribute fees from escrow and mint against the curve.
	moduleAddr := k.ModuleAddress()
	pay := k.params.PaymentDenom
	if err := k.bankKeeper.SendCoins(buyer, moduleAddr, banktypes.NewCoin(pay, ethIn)); err != nil {
		return math.Int{}, types.ErrInvalidInput.Wrapf("payment failed: %v", err)
	}
	if err := k.payFees(moduleAddr, asset.Creator, creatorFee, protocolFee); err != nil {
		// Return the payment so the failed call leaves no trace.
		_ = k.bankKeeper.SendCoins(moduleAddr, buyer, banktypes.NewCoin(pay, ethIn))
		return math.Int{}, err
	}
	if err := k.bankKeeper.MintCoins(buyer, banktypes.NewCoin(denom, tokensOut)); err != nil {
		return math.Int{}, types.ErrInvalidInput.Wrapf("mint failed: %v", err)
	}

	asset.Supply = asset.Supply.Add(tokensOut)
	asset.Reserve = asset.Reserve.Add(netEth)

	postPrice := asset.CurrentPrice(asset.Supply)
	if postPrice.GT(asset.AllTimeHigh) {
		asset.AllTimeHigh = postPrice
		k.events.EmitEvent(events.NewEvent(
			types.EventTypeAllTimeHigh,
			events.NewAttribute(types.AttributeKeyDenom, denom),
			events.NewAttribute(types.AttributeKeyPrice, postPrice.String()),
		))
	}

	k.events.EmitEvent(events.NewEvent(
		types.EventTypeBuy,
		events.NewAttribute(types.AttributeKeyDenom, denom),
		events.NewAttribute(types.AttributeKeyBuyer, buyer),
		events.NewAttribute(types.AttributeKeyEthIn, ethIn.String()),
		events.NewAttribute(types.AttributeKeyTokens, tokensOut.String()),
		events.NewAttribute(types.AttributeKeyCreatorFee, creatorFee.String()),
		events.NewAttribute(types.AttributeKeyProtocolFee, protocolFee.String()),
		events.NewAttribute(types.AttributeKeySupply, asset.Supply.String()),
	))

	if k.metrics != nil {
		k.metrics.Trades.WithLabelValues(denom, "buy").Inc()
	}

	return tokensOut, nil
}

// Sell burns tokens and pays out ETH from the backing reserve. The gross
// value is deducted from the reserve; fees come out of the gross, so the
// seller receives the net.
func (k *Keeper) Sell(seller, denom string, tokens, minEthOut math.Int) (math.Int, error) {
	if seller == "" {
		return math.Int{}, types.ErrInvalidInput.Wrap("seller cannot be empty")
	}
	if tokens.IsNil() || !tokens.IsPositive() {
		return math.Int{}, types.ErrInvalidInput.Wrap("token amount must be positive")
	}
	if minEthOut.IsNil() || minEthOut.IsNegative() {
		return math.Int{}, types.ErrInvalidInput.Wrap("min eth out cannot be negative")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	asset, ok := k.assets[denom]
	if !ok {
		return math.Int{}, types.ErrAssetNotFound.Wrapf("asset %s", denom)
	}
	if tokens.GT(asset.Supply) {
		return math.Int{}, types.ErrInvalidInput.Wrapf(
			"sell amount %s exceeds supply %s", tokens, asset.Supply,
		)
	}

	price := asset.CurrentPrice(asset.Supply)
	grossEth, err := safemath.MulDiv(tokens, price, safemath.Scale)
	if err != nil {
		return math.Int{}, types.ErrInvalidInput.Wrap(err.Error())
	}
	if grossEth.GT(asset.Reserve) {
		// Accumulated rounding can leave the reserve short of the quoted
		// value; refuse rather than under-collateralize.
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"quoted %s exceeds backing reserve %s", grossEth, asset.Reserve,
		)
	}

	creatorFee, protocolFee, err := k.feeSplit(grossEth)
	if err != nil {
		return math.Int{}, err
	}
	netEth := grossEth.Sub(creatorFee).Sub(protocolFee)
	if netEth.LT(minEthOut) {
		return math.Int{}, types.ErrSlippageExceeded.Wrapf(
			"eth out %s below minimum %s", netEth, minEthOut,
		)
	}

	// Burning is the fallible step (the seller may not hold the tokens);
	// the payouts after it are covered by the reserve check above.
	if err := k.bankKeeper.BurnCoins(seller, banktypes.NewCoin(denom, tokens)); err != nil {
		return math.Int{}, types.ErrInvalidInput.Wrapf("burn failed: %v", err)
	}

	moduleAddr := k.ModuleAddress()
	pay := k.params.PaymentDenom
	if netEth.IsPositive() {
		if err := k.bankKeeper.SendCoins(moduleAddr, seller, banktypes.NewCoin(pay, netEth)); err != nil {
			return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("payout failed: %v", err)
		}
	}
	if err := k.payFees(moduleAddr, asset.Creator, creatorFee, protocolFee); err != nil {
		return math.Int{}, err
	}

	asset.Supply = asset.Supply.Sub(tokens)
	asset.Reserve = asset.Reserve.Sub(grossEth)

	k.events.EmitEvent(events.NewEvent(
		types.EventTypeSell,
		events.NewAttribute(types.AttributeKeyDenom, denom),
		events.NewAttribute(types.AttributeKeySeller, seller),
		events.NewAttribute(types.AttributeKeyEthOut, netEth.String()),
		events.NewAttribute(types.AttributeKeyTokens, tokens.String()),
		events.NewAttribute(types.AttributeKeyCreatorFee, creatorFee.String()),
		events.NewAttribute(types.AttributeKeyProtocolFee, protocolFee.String()),
		events.NewAttribute(types.AttributeKeySupply, asset.Supply.String()),
	))

	if k.metrics != nil {
		k.metrics.Trades.WithLabelValues(denom, "sell").Inc()
	}

	return netEth, nil
}

// RaisePriceFloor raises the asset's floor. Only the asset creator may call
// it, and decreases are rejected here in the keeper, not left to callers.
func (k *Keeper) RaisePriceFloor(authority, denom string, newFloor math.Int) error {
	if newFloor.IsNil() || newFloor.IsNegative() {
		return types.ErrInvalidInput.Wrap("floor cannot be negative")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	asset, ok := k.assets[denom]
	if !ok {
		return types.ErrAssetNotFound.Wrapf("asset %s", denom)
	}
	if authority != asset.Creator {
		return types.ErrUnauthorized.Wrapf("%s is not the creator of %s", authority, denom)
	}
	if newFloor.LT(asset.PriceFloor) {
		return types.ErrPriceFloorDecrease.Wrapf(
			"new floor %s below current %s", newFloor, asset.PriceFloor,
		)
	}
	asset.PriceFloor = newFloor

	k.events.EmitEvent(events.NewEvent(
		types.EventTypePriceFloorRaised,
		events.NewAttribute(types.AttributeKeyDenom, denom),
		events.NewAttribute(types.AttributeKeyFloor, newFloor.String()),
	))
	return nil
}

// caller must hold k.mu (read or write)
func (k *Keeper) quoteBuy(asset *types.Asset, netEth math.Int) (math.Int, error) {
	price := asset.CurrentPrice(asset.Supply)
	tokens, err := safemath.MulDiv(netEth, safemath.Scale, price)
	if err != nil {
		return math.Int{}, types.ErrInvalidInput.Wrap(err.Error())
	}
	if tokens.IsZero() {
		return math.Int{}, types.ErrInvalidInput.Wrap("eth amount buys zero tokens")
	}
	return tokens, nil
}

// caller must hold k.mu
func (k *Keeper) feeSplit(amount math.Int) (creatorFee, protocolFee math.Int, err error) {
	creatorFee, err = safemath.MulDiv(amount, k.params.CreatorFeeBps, safemath.BpsDenominator)
	if err != nil {
		return math.Int{}, math.Int{}, types.ErrInvalidInput.Wrap(err.Error())
	}
	protocolFee, err = safemath.MulDiv(amount, k.params.ProtocolFeeBps, safemath.BpsDenominator)
	if err != nil {
		return math.Int{}, math.Int{}, types.ErrInvalidInput.Wrap(err.Error())
	}
	return creatorFee, protocolFee, nil
}

// caller must hold k.mu
func (k *Keeper) payFees(moduleAddr, creator string, creatorFee, protocolFee math.Int) error {
	pay := k.params.PaymentDenom
	if creatorFee.IsPositive() {
		if err := k.bankKeeper.SendCoins(moduleAddr, creator, banktypes.NewCoin(pay, creatorFee)); err != nil {
			return types.ErrInvalidInput.Wrapf("creator fee transfer failed: %v", err)
		}
	}
	if protocolFee.IsPositive() {
		if err := k.bankKeeper.SendCoins(moduleAddr, k.params.TreasuryAddress, banktypes.NewCoin(pay, protocolFee)); err != nil {
			return types.ErrInvalidInput.Wrapf("protocol fee transfer failed: %v", err)
		}
	}
	return nil
}
