package types

// Event types for the curve module
const (
	EventTypeAssetCreated     = "curve_asset_created"
	EventTypeBuy              = "curve_buy"
	EventTypeSell             = "curve_sell"
	EventTypePriceFloorRaised = "price_floor_raised"
	EventTypeAllTimeHigh      = "all_time_high"
)

// Event attribute keys
const (
	AttributeKeyDenom       = "denom"
	AttributeKeyCreator     = "creator"
	AttributeKeyBuyer       = "buyer"
	AttributeKeySeller      = "seller"
	AttributeKeyEthIn       = "eth_in"
	AttributeKeyEthOut      = "eth_out"
	AttributeKeyTokens      = "tokens"
	AttributeKeyPrice       = "price"
	AttributeKeyCreatorFee  = "creator_fee"
	AttributeKeyProtocolFee = "protocol_fee"
	AttributeKeyFloor       = "floor"
	AttributeKeySupply      = "supply"
)
