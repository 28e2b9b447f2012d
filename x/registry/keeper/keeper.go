package keeper

import (
	"sort"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/thryx-chain/thryx/x/registry/types"
	"github.com/thryx-chain/thryx/x/shared/events"
)

// Keeper stores registered agents behind a single mutation gate. It answers
// the "is this submitter currently valid" question for the oracle and
// enforces per-agent daily spending budgets with lazy wall-clock reset.
type Keeper struct {
	mu     sync.RWMutex
	agents map[string]*types.Agent
	events *events.Manager
	logger log.Logger
	now    func() time.Time
}

// NewKeeper creates a registry keeper.
func NewKeeper(em *events.Manager, logger log.Logger) *Keeper {
	return &Keeper{
		agents: make(map[string]*types.Agent),
		events: em,
		logger: logger.With("module", "x/"+types.ModuleName),
		now:    time.Now,
	}
}

// SetTimeSource overrides the wall clock, for tests.
func (k *Keeper) SetTimeSource(now func() time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.now = now
}

// RegisterAgent adds a new agent. Registering an existing address fails.
func (k *Keeper) RegisterAgent(address string, dailyBudget math.Int, permissions, metadata string) (*types.Agent, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if address == "" {
		return nil, types.ErrInvalidInput.Wrap("agent address cannot be empty")
	}
	if dailyBudget.IsNil() || dailyBudget.IsNegative() {
		return nil, types.ErrInvalidInput.Wrap("daily budget must be non-negative")
	}
	if _, exists := k.agents[address]; exists {
		return nil, types.ErrAgentAlreadyExists.Wrapf("agent %s", address)
	}

	now := k.now()
	agent := &types.Agent{
		Address:      address,
		DailyBudget:  dailyBudget,
		SpentToday:   math.ZeroInt(),
		LastReset:    now,
		Permissions:  permissions,
		Metadata:     metadata,
		Active:       true,
		RegisteredAt: now,
	}
	k.agents[address] = agent

	k.events.EmitEvent(events.NewEvent(
		types.EventTypeAgentRegistered,
		events.NewAttribute(types.AttributeKeyAgent, address),
		events.NewAttribute(types.AttributeKeyDailyBudget, dailyBudget.String()),
		events.NewAttribute(types.AttributeKeyMetadata, metadata),
	))
	k.logger.Info("agent registered", "agent", address, "daily_budget", dailyBudget.String())

	copied := *agent
	return &copied, nil
}

// ValidateAgent reports whether the address is a registered, active agent.
func (k *Keeper) ValidateAgent(address string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()

	agent, ok := k.agents[address]
	return ok && agent.Active
}

// GetAgent returns a copy of the stored agent.
func (k *Keeper) GetAgent(address string) (*types.Agent, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	agent, ok := k.agents[address]
	if !ok {
		return nil, types.ErrAgentNotFound.Wrapf("agent %s", address)
	}
	copied := *agent
	return &copied, nil
}

// GetActiveAgents returns the addresses of all active agents, sorted.
func (k *Keeper) GetActiveAgents() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var out []string
	for addr, agent := range k.agents {
		if agent.Active {
			out = append(out, addr)
		}
	}
	sort.Strings(out)
	return out
}

// AgentCount returns the total number of registered agents.
func (k *Keeper) AgentCount() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.agents)
}

// SetActive activates or deactivates an agent.
func (k *Keeper) SetActive(address string, active bool) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	agent, ok := k.agents[address]
	if !ok {
		return types.ErrAgentNotFound.Wrapf("agent %s", address)
	}
	if agent.Active == active {
		return nil
	}
	agent.Active = active

	eventType := types.EventTypeAgentDeactivated
	if active {
		eventType = types.EventTypeAgentReactivated
	}
	k.events.EmitEvent(events.NewEvent(
		eventType,
		events.NewAttribute(types.AttributeKeyAgent, address),
	))
	return nil
}

// SpendBudget debits amount from the agent's daily allowance. The daily
// counter resets lazily once the reset interval has elapsed.
func (k *Keeper) SpendBudget(address string, amount math.Int) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidInput.Wrap("spend amount must be positive")
	}

	agent, ok := k.agents[address]
	if !ok {
		return types.ErrAgentNotFound.Wrapf("agent %s", address)
	}
	if !agent.Active {
		return types.ErrAgentInactive.Wrapf("agent %s", address)
	}

	k.maybeResetBudget(agent)

	remaining := agent.DailyBudget.Sub(agent.SpentToday)
	if remaining.LT(amount) {
		return types.ErrBudgetExceeded.Wrapf(
			"agent %s: remaining %s, requested %s",
			address, remaining, amount,
		)
	}
	agent.SpentToday = agent.SpentToday.Add(amount)

	k.events.EmitEvent(events.NewEvent(
		types.EventTypeAgentBudgetSpent,
		events.NewAttribute(types.AttributeKeyAgent, address),
		events.NewAttribute(types.AttributeKeyAmount, amount.String()),
		events.NewAttribute(types.AttributeKeyRemaining, agent.DailyBudget.Sub(agent.SpentToday).String()),
	))
	return nil
}

// GetRemainingBudget returns what the agent can still spend today, applying
// the lazy reset first.
func (k *Keeper) GetRemainingBudget(address string) (math.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	agent, ok := k.agents[address]
	if !ok {
		return math.Int{}, types.ErrAgentNotFound.Wrapf("agent %s", address)
	}
	k.maybeResetBudget(agent)
	return agent.DailyBudget.Sub(agent.SpentToday), nil
}

// ExportAgents returns every agent for genesis export, sorted by address.
func (k *Keeper) ExportAgents() []types.Agent {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]types.Agent, 0, len(k.agents))
	for _, agent := range k.agents {
		out = append(out, *agent)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

// ImportAgents loads genesis agents, replacing existing state.
func (k *Keeper) ImportAgents(agents []types.Agent) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	fresh := make(map[string]*types.Agent, len(agents))
	for _, agent := range agents {
		if err := agent.Validate(); err != nil {
			return types.ErrInvalidInput.Wrap(err.Error())
		}
		if _, exists := fresh[agent.Address]; exists {
			return types.ErrAgentAlreadyExists.Wrapf("agent %s", agent.Address)
		}
		copied := agent
		fresh[agent.Address] = &copied
	}
	k.agents = fresh
	return nil
}

// caller must hold k.mu
func (k *Keeper) maybeResetBudget(agent *types.Agent) {
	now := k.now()
	if !agent.BudgetExpired(now) {
		return
	}
	agent.SpentToday = math.ZeroInt()
	agent.LastReset = now
	k.events.EmitEvent(events.NewEvent(
		types.EventTypeAgentBudgetReset,
		events.NewAttribute(types.AttributeKeyAgent, agent.Address),
		events.NewAttribute(types.AttributeKeyDailyBudget, agent.DailyBudget.String()),
	))
}
