package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/quietloop/rhythm/internal/cli"
	"github.com/quietloop/rhythm/internal/cli/system"
	"github.com/quietloop/rhythm/internal/config"
	"github.com/quietloop/rhythm/internal/constants"
	apperrors "github.com/quietloop/rhythm/internal/errors"
	"github.com/quietloop/rhythm/internal/logger"
	"github.com/quietloop/rhythm/internal/service"
	"github.com/quietloop/rhythm/internal/storage"
	"github.com/quietloop/rhythm/internal/storage/postgres"
	"github.com/quietloop/rhythm/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init      system.InitCmd    `cmd:"" help:"Initialize rhythm storage."`
	Doctor    system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Keyring   system.KeyringCmd `cmd:"" help:"Manage the database password in the OS keyring."`
	Rhythm    cli.RhythmCmd     `cmd:"" help:"Manage rhythms."`
	Log       cli.LogCmd        `cmd:"" help:"Record and manage activity entries."`
	Stats     cli.StatsCmd      `cmd:"" help:"Show chains, streaks, and period stats." default:"1"`
	Recalc    cli.RecalcCmd     `cmd:"" help:"Recalculate chain snapshots."`
	Encourage cli.EncourageCmd  `cmd:"" help:"Manage encouragement messages."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Tiered streak tracker where chains bend rather than break"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	configPath := config.ExpandHome(CLI.Config)
	cfg, err := config.Load(configPath)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: filepath.Dir(configPath),
	}); err != nil {
		apperrors.Fatal(err)
	}

	var store storage.Provider
	switch cfg.Backend {
	case config.BackendPostgres:
		store = postgres.New(cfg.PostgresDSN)
	default:
		store = sqlite.NewStore(config.ExpandHome(cfg.DatabasePath))
	}

	appCtx := &cli.Context{
		Store:   store,
		Service: service.New(store),
		Config:  cfg,
	}

	// Open the store before running the command; init handles its own setup.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	apperrors.Fatal(ctx.Run(appCtx))
}
