package keeper

import (
	"testing"

	"cosmossdk.io/log"

	ammkeeper "github.com/thryx-chain/thryx/x/amm/keeper"
	bankkeeper "github.com/thryx-chain/thryx/x/bank/keeper"
	curvekeeper "github.com/thryx-chain/thryx/x/curve/keeper"
	oraclekeeper "github.com/thryx-chain/thryx/x/oracle/keeper"
	registrykeeper "github.com/thryx-chain/thryx/x/registry/keeper"
	"github.com/thryx-chain/thryx/x/shared/events"
)

// Env bundles a fully wired keeper set for tests, mirroring how the app
// assembles them.
type Env struct {
	Events   *events.Manager
	Bank     *bankkeeper.Keeper
	Registry *registrykeeper.Keeper
	AMM      *ammkeeper.Keeper
	Curve    *curvekeeper.Keeper
	Oracle   *oraclekeeper.Keeper
}

// NewEnv constructs the keeper set on a shared event manager.
func NewEnv(t testing.TB) *Env {
	t.Helper()
	logger := log.NewNopLogger()
	em := events.NewManager()
	bank := bankkeeper.NewKeeper(em, logger)
	registry := registrykeeper.NewKeeper(em, logger)
	return &Env{
		Events:   em,
		Bank:     bank,
		Registry: registry,
		AMM:      ammkeeper.NewKeeper(bank, em, logger),
		Curve:    curvekeeper.NewKeeper(bank, em, logger),
		Oracle:   oraclekeeper.NewKeeper(registry, em, logger),
	}
}

// AMMKeeper returns an AMM keeper plus the bank it settles against.
func AMMKeeper(t testing.TB) (*ammkeeper.Keeper, *bankkeeper.Keeper) {
	t.Helper()
	env := NewEnv(t)
	return env.AMM, env.Bank
}

// CurveKeeper returns a curve keeper plus the bank it settles against.
func CurveKeeper(t testing.TB) (*curvekeeper.Keeper, *bankkeeper.Keeper) {
	t.Helper()
	env := NewEnv(t)
	return env.Curve, env.Bank
}

// OracleKeeper returns an oracle keeper plus the registry that vouches for
// submitters.
func OracleKeeper(t testing.TB) (*oraclekeeper.Keeper, *registrykeeper.Keeper) {
	t.Helper()
	env := NewEnv(t)
	return env.Oracle, env.Registry
}
