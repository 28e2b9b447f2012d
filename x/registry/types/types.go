package types

import (
	"fmt"
	"time"

	"cosmossdk.io/math"
)

const (
	// ModuleName defines the module name
	ModuleName = "registry"

	// BudgetResetInterval is the wall-clock interval after which an agent's
	// daily spending counter resets. Reset is lazy: it happens on the next
	// budget check after the interval elapses, not via a scheduler.
	BudgetResetInterval = 24 * time.Hour

	// Event types
	EventTypeAgentRegistered   = "agent_registered"
	EventTypeAgentDeactivated  = "agent_deactivated"
	EventTypeAgentReactivated  = "agent_reactivated"
	EventTypeAgentBudgetSpent  = "agent_budget_spent"
	EventTypeAgentBudgetReset  = "agent_budget_reset"

	// Event attribute keys
	AttributeKeyAgent       = "agent"
	AttributeKeyDailyBudget = "daily_budget"
	AttributeKeyAmount      = "amount"
	AttributeKeyRemaining   = "remaining"
	AttributeKeyMetadata    = "metadata"
)

// Agent is a registered autonomous actor allowed to call the core. Budgets
// are denominated in the 6-decimal stable unit, matching the original
// registry contract.
type Agent struct {
	Address      string    `json:"address"`
	DailyBudget  math.Int  `json:"daily_budget"`
	SpentToday   math.Int  `json:"spent_today"`
	LastReset    time.Time `json:"last_reset"`
	Permissions  string    `json:"permissions"`
	Metadata     string    `json:"metadata"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Validate checks structural agent invariants.
func (a Agent) Validate() error {
	if a.Address == "" {
		return fmt.Errorf("agent address cannot be empty")
	}
	if a.DailyBudget.IsNil() || a.DailyBudget.IsNegative() {
		return fmt.Errorf("daily budget must be non-negative")
	}
	if a.SpentToday.IsNil() || a.SpentToday.IsNegative() {
		return fmt.Errorf("spent amount must be non-negative")
	}
	return nil
}

// BudgetExpired reports whether the daily window has elapsed since the last
// reset at the given wall-clock time.
func (a Agent) BudgetExpired(now time.Time) bool {
	return now.Sub(a.LastReset) >= BudgetResetInterval
}
