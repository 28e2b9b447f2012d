package types

// RegistryKeeper is the agent registry interface the oracle depends on.
// Only registered, active agents may report prices.
type RegistryKeeper interface {
	ValidateAgent(address string) bool
}
