package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"cosmossdk.io/log"

	"github.com/thryx-chain/thryx/api"
	"github.com/thryx-chain/thryx/app"
	"github.com/thryx-chain/thryx/internal/cache"
	"github.com/thryx-chain/thryx/internal/config"
	"github.com/thryx-chain/thryx/internal/database"
	"github.com/thryx-chain/thryx/pkg/logger"
	"github.com/thryx-chain/thryx/pkg/telemetry"
)

// NewRootCmd builds the thryxd command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "thryxd",
		Short: "THRYX pricing chain node",
		Long: `thryxd runs the THRYX node: the AMM, bonding-curve, oracle and
agent-registry modules behind an HTTP API.`,
		SilenceUsage: true,
	}

	var flags pflag.FlagSet
	flags.String("home", defaultHome(), "node home directory")
	root.PersistentFlags().AddFlagSet(&flags)

	root.AddCommand(
		newInitCmd(),
		newStartCmd(),
		newExportCmd(),
	)
	return root
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".thryx"
	}
	return filepath.Join(home, ".thryx")
}

func homeDir(cmd *cobra.Command) string {
	home, _ := cmd.Flags().GetString("home")
	return home
}

func configPath(home string) string  { return filepath.Join(home, "config.yaml") }
func genesisPath(home string) string { return filepath.Join(home, "genesis.json") }

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the node home with a default config and genesis",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := homeDir(cmd)
			if err := os.MkdirAll(home, 0o755); err != nil {
				return fmt.Errorf("create home %s: %w", home, err)
			}

			chainID, _ := cmd.Flags().GetString("chain-id")
			cfg := config.Default()
			cfg.Chain.ChainID = chainID
			cfg.Chain.GenesisFile = genesisPath(home)

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			if err := os.WriteFile(configPath(home), data, 0o600); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			if err := app.WriteGenesisFile(genesisPath(home), app.DefaultGenesis(chainID)); err != nil {
				return err
			}

			cmd.Printf("initialized %s (chain-id %s)\n", home, chainID)
			return nil
		},
	}
	cmd.Flags().String("chain-id", "thryx-1", "chain identifier")
	return cmd
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the node and serve the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := homeDir(cmd)
			cfg, err := config.Load(configPath(home))
			if err != nil {
				return err
			}

			baseLogger := newLogger(cfg.Log)
			a := app.New(cfg.Chain.ChainID, baseLogger)

			if _, err := os.Stat(cfg.Chain.GenesisFile); err == nil {
				if err := a.ImportGenesisFile(cfg.Chain.GenesisFile); err != nil {
					return err
				}
				baseLogger.Info("genesis loaded", "file", cfg.Chain.GenesisFile)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Tracing.Enabled() {
				tp, err := telemetry.NewProvider(telemetry.Config{
					Enabled:      true,
					OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
					SampleRate:   cfg.Tracing.SampleRate,
					Environment:  cfg.Tracing.Environment,
					ChainID:      cfg.Chain.ChainID,
				})
				if err != nil {
					return err
				}
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := tp.Shutdown(shutdownCtx); err != nil {
						baseLogger.Error("tracing shutdown", "err", err)
					}
				}()
				baseLogger.Info("tracing enabled", "endpoint", cfg.Tracing.OTLPEndpoint)
			}

			opts := api.Options{}
			if cfg.Database.Enabled() {
				db, err := database.New(database.Config{
					URL:             cfg.Database.URL,
					MaxOpenConns:    cfg.Database.MaxOpenConns,
					MaxIdleConns:    cfg.Database.MaxIdleConns,
					ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
				})
				if err != nil {
					return err
				}
				defer db.Close()
				if err := db.InitSchema(); err != nil {
					return err
				}
				opts.DB = db
				go database.NewSink(db, a.Events, baseLogger).Run(ctx)
			}
			if cfg.Redis.Enabled() {
				prices, err := cache.NewRedisCache(cache.Config{
					Address:  cfg.Redis.Address,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
					TTL:      cfg.Redis.TTL,
				})
				if err != nil {
					return err
				}
				defer prices.Close()
				opts.Prices = prices
			}

			srv, err := api.NewServer(cfg.API, a, opts, baseLogger)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [output-file]",
		Short: "Export the chain state as a genesis file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			home := homeDir(cmd)
			cfg, err := config.Load(configPath(home))
			if err != nil {
				return err
			}

			a := app.New(cfg.Chain.ChainID, newLogger(cfg.Log))
			if _, err := os.Stat(cfg.Chain.GenesisFile); err == nil {
				if err := a.ImportGenesisFile(cfg.Chain.GenesisFile); err != nil {
					return err
				}
			}

			out := cfg.Chain.GenesisFile
			if len(args) == 1 {
				out = args[0]
			}
			if err := a.ExportGenesisFile(out); err != nil {
				return err
			}
			cmd.Printf("state exported to %s\n", out)
			return nil
		},
	}
}

func newLogger(cfg config.LogConfig) log.Logger {
	if cfg.Format == "console" {
		return logger.NewConsole("thryxd", cfg.Level)
	}
	return logger.New("thryxd", cfg.Level)
}
