package keeper

import (
	"fmt"
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/thryx-chain/thryx/x/bank/types"
	"github.com/thryx-chain/thryx/x/shared/events"
)

// Keeper holds all token balances behind a single mutation gate. It replaces
// the host ledger's transfer primitive: every send either fully applies or
// fully fails, and balances can never go negative.
type Keeper struct {
	mu       sync.RWMutex
	balances map[string]map[string]math.Int // address -> denom -> amount
	events   *events.Manager
	logger   log.Logger
}

// NewKeeper creates a bank keeper with empty balances.
func NewKeeper(em *events.Manager, logger log.Logger) *Keeper {
	return &Keeper{
		balances: make(map[string]map[string]math.Int),
		events:   em,
		logger:   logger.With("module", "x/"+types.ModuleName),
	}
}

// ModuleAddress derives the deterministic account address that a module uses
// to escrow funds (pool reserves, curve backing, treasury).
func ModuleAddress(moduleName string) string {
	return "thryx-module/" + moduleName
}

// GetBalance returns the balance of denom held by addr (zero if none).
func (k *Keeper) GetBalance(addr, denom string) math.Int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.balance(addr, denom)
}

// AllBalances returns every non-zero balance held by addr.
func (k *Keeper) AllBalances(addr string) []types.Coin {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var coins []types.Coin
	for denom, amount := range k.balances[addr] {
		if !amount.IsZero() {
			coins = append(coins, types.NewCoin(denom, amount))
		}
	}
	return coins
}

// SendCoins moves coins from one address to another atomically: if any coin
// cannot be covered, no balance changes at all.
func (k *Keeper) SendCoins(from, to string, coins ...types.Coin) error {
	if from == "" || to == "" {
		return types.ErrInvalidAddress.Wrap("sender and recipient cannot be empty")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	// Validate everything before touching any balance. Amounts are
	// aggregated per denom so a repeated denom cannot slip past a
	// per-coin check and drive the sender negative.
	needed := make(map[string]math.Int, len(coins))
	for _, c := range coins {
		if err := c.Validate(); err != nil {
			return types.ErrInvalidCoin.Wrap(err.Error())
		}
		total, ok := needed[c.Denom]
		if !ok {
			total = math.ZeroInt()
		}
		needed[c.Denom] = total.Add(c.Amount)
	}
	for denom, total := range needed {
		if k.balance(from, denom).LT(total) {
			return types.ErrInsufficientFunds.Wrapf(
				"%s has %s%s, needs %s%s",
				from, k.balance(from, denom), denom, total, denom,
			)
		}
	}

	for _, c := range coins {
		k.setBalance(from, c.Denom, k.balance(from, c.Denom).Sub(c.Amount))
		k.setBalance(to, c.Denom, k.balance(to, c.Denom).Add(c.Amount))
		k.events.EmitEvent(events.NewEvent(
			types.EventTypeTransfer,
			events.NewAttribute(types.AttributeKeySender, from),
			events.NewAttribute(types.AttributeKeyRecipient, to),
			events.NewAttribute(types.AttributeKeyDenom, c.Denom),
			events.NewAttribute(types.AttributeKeyAmount, c.Amount.String()),
		))
	}
	return nil
}

// MintCoins credits new supply to addr.
func (k *Keeper) MintCoins(addr string, coins ...types.Coin) error {
	if addr == "" {
		return types.ErrInvalidAddress.Wrap("recipient cannot be empty")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	for _, c := range coins {
		if err := c.Validate(); err != nil {
			return types.ErrInvalidCoin.Wrap(err.Error())
		}
	}
	for _, c := range coins {
		k.setBalance(addr, c.Denom, k.balance(addr, c.Denom).Add(c.Amount))
		k.events.EmitEvent(events.NewEvent(
			types.EventTypeMint,
			events.NewAttribute(types.AttributeKeyRecipient, addr),
			events.NewAttribute(types.AttributeKeyDenom, c.Denom),
			events.NewAttribute(types.AttributeKeyAmount, c.Amount.String()),
		))
	}
	return nil
}

// BurnCoins removes supply from addr.
func (k *Keeper) BurnCoins(addr string, coins ...types.Coin) error {
	if addr == "" {
		return types.ErrInvalidAddress.Wrap("address cannot be empty")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	needed := make(map[string]math.Int, len(coins))
	for _, c := range coins {
		if err := c.Validate(); err != nil {
			return types.ErrInvalidCoin.Wrap(err.Error())
		}
		total, ok := needed[c.Denom]
		if !ok {
			total = math.ZeroInt()
		}
		needed[c.Denom] = total.Add(c.Amount)
	}
	for denom, total := range needed {
		if k.balance(addr, denom).LT(total) {
			return types.ErrInsufficientFunds.Wrapf(
				"%s has %s%s, cannot burn %s%s",
				addr, k.balance(addr, denom), denom, total, denom,
			)
		}
	}
	for _, c := range coins {
		k.setBalance(addr, c.Denom, k.balance(addr, c.Denom).Sub(c.Amount))
		k.events.EmitEvent(events.NewEvent(
			types.EventTypeBurn,
			events.NewAttribute(types.AttributeKeySender, addr),
			events.NewAttribute(types.AttributeKeyDenom, c.Denom),
			events.NewAttribute(types.AttributeKeyAmount, c.Amount.String()),
		))
	}
	return nil
}

// ExportBalances returns every balance for genesis export, sorted.
func (k *Keeper) ExportBalances() []types.Balance {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var out []types.Balance
	for addr, denoms := range k.balances {
		for denom, amount := range denoms {
			if !amount.IsZero() {
				out = append(out, types.Balance{Address: addr, Denom: denom, Amount: amount})
			}
		}
	}
	types.SortBalances(out)
	return out
}

// ImportBalances loads genesis balances, replacing any existing state.
func (k *Keeper) ImportBalances(balances []types.Balance) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	fresh := make(map[string]map[string]math.Int)
	for _, b := range balances {
		if b.Address == "" {
			return types.ErrInvalidAddress.Wrap("balance address cannot be empty")
		}
		if err := types.NewCoin(b.Denom, b.Amount).Validate(); err != nil {
			return types.ErrInvalidCoin.Wrap(err.Error())
		}
		if fresh[b.Address] == nil {
			fresh[b.Address] = make(map[string]math.Int)
		}
		if _, exists := fresh[b.Address][b.Denom]; exists {
			return types.ErrInvalidCoin.Wrapf("duplicate balance for %s/%s", b.Address, b.Denom)
		}
		fresh[b.Address][b.Denom] = b.Amount
	}
	k.balances = fresh
	k.logger.Info("imported balances", "count", fmt.Sprintf("%d", len(balances)))
	return nil
}

func (k *Keeper) balance(addr, denom string) math.Int {
	if amounts, ok := k.balances[addr]; ok {
		if amount, ok := amounts[denom]; ok {
			return amount
		}
	}
	return math.ZeroInt()
}

func (k *Keeper) setBalance(addr, denom string, amount math.Int) {
	if k.balances[addr] == nil {
		k.balances[addr] = make(map[string]math.Int)
	}
	k.balances[addr][denom] = amount
}
