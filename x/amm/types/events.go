package types

// Event types for the AMM module
const (
	EventTypePoolCreated      = "pool_created"
	EventTypeLiquidityAdded   = "liquidity_added"
	EventTypeLiquidityRemoved = "liquidity_removed"
	EventTypeSwap             = "swap"
)

// Event attribute keys
const (
	AttributeKeyPoolID    = "pool_id"
	AttributeKeyCreator   = "creator"
	AttributeKeyProvider  = "provider"
	AttributeKeyTrader    = "trader"
	AttributeKeyTokenA    = "token_a"
	AttributeKeyTokenB    = "token_b"
	AttributeKeyTokenIn   = "token_in"
	AttributeKeyTokenOut  = "token_out"
	AttributeKeyAmountA   = "amount_a"
	AttributeKeyAmountB   = "amount_b"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyShares    = "shares"
	AttributeKeyFee       = "fee"
)
