package types

// Event types for the oracle module
const (
	EventTypePriceSubmitted   = "price_submitted"
	EventTypeConsensusReached = "consensus_reached"
	EventTypeRoundExpired     = "round_expired"
	EventTypeReporterBanned   = "reporter_banned"
)

// Event attribute keys
const (
	AttributeKeyPair        = "pair"
	AttributeKeyReporter    = "reporter"
	AttributeKeyPrice       = "price"
	AttributeKeyMedian      = "median"
	AttributeKeySubmissions = "submissions"
	AttributeKeyRound       = "round"
	AttributeKeyAccuracy    = "accuracy"
)
