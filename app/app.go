package app

import (
	"cosmossdk.io/log"

	ammkeeper "github.com/thryx-chain/thryx/x/amm/keeper"
	ammtypes "github.com/thryx-chain/thryx/x/amm/types"
	bankkeeper "github.com/thryx-chain/thryx/x/bank/keeper"
	curvekeeper "github.com/thryx-chain/thryx/x/curve/keeper"
	curvetypes "github.com/thryx-chain/thryx/x/curve/types"
	oraclekeeper "github.com/thryx-chain/thryx/x/oracle/keeper"
	oracletypes "github.com/thryx-chain/thryx/x/oracle/types"
	registrykeeper "github.com/thryx-chain/thryx/x/registry/keeper"
	"github.com/thryx-chain/thryx/x/shared/events"
)

const Name = "thryx"

// App assembles every module keeper on a shared event manager. Keepers
// serialize their own state; the app is safe for concurrent use.
type App struct {
	ChainID string

	Events         *events.Manager
	BankKeeper     *bankkeeper.Keeper
	RegistryKeeper *registrykeeper.Keeper
	AMMKeeper      *ammkeeper.Keeper
	CurveKeeper    *curvekeeper.Keeper
	OracleKeeper   *oraclekeeper.Keeper

	AMMMsgServer    ammtypes.MsgServer
	CurveMsgServer  curvetypes.MsgServer
	OracleMsgServer oracletypes.MsgServer

	logger log.Logger
}

// New wires the module keepers together. Construction order follows the
// dependency graph: bank and registry first, then the modules that settle
// against them.
func New(chainID string, logger log.Logger) *App {
	em := events.NewManager()
	bank := bankkeeper.NewKeeper(em, logger)
	registry := registrykeeper.NewKeeper(em, logger)
	amm := ammkeeper.NewKeeper(bank, em, logger)
	curve := curvekeeper.NewKeeper(bank, em, logger)
	oracle := oraclekeeper.NewKeeper(registry, em, logger)

	return &App{
		ChainID:         chainID,
		Events:          em,
		BankKeeper:      bank,
		RegistryKeeper:  registry,
		AMMKeeper:       amm,
		CurveKeeper:     curve,
		OracleKeeper:    oracle,
		AMMMsgServer:    ammkeeper.NewMsgServerImpl(amm),
		CurveMsgServer:  curvekeeper.NewMsgServerImpl(curve),
		OracleMsgServer: oraclekeeper.NewMsgServerImpl(oracle),
		logger:          logger.With("module", "app"),
	}
}

// Logger returns the app-level logger.
func (a *App) Logger() log.Logger {
	return a.logger
}
