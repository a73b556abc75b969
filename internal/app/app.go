package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"

	"github.com/larch-c/xfbank/internal/bot"
	"github.com/larch-c/xfbank/internal/config"
	"github.com/larch-c/xfbank/internal/interbank"
	"github.com/larch-c/xfbank/internal/ledger"
	"github.com/larch-c/xfbank/internal/store"
	"github.com/larch-c/xfbank/internal/utils"
)

type App struct {
	Ledger  *ledger.Ledger
	Handler *bot.Handler
	Store   *store.FileStore
	Config  *config.Config
}

// NewApp wires store, ledger and command handler together and loads the last
// snapshot. The returned cleanup flushes state to disk, so one-shot commands
// persist on exit even if a per-mutation write failed.
func NewApp(cfg *config.Config) (*App, func(), error) {
	dataPath := cfg.Data.Path
	if dataPath == "" {
		appDir, err := getAppDataDir()
		if err != nil {
			return nil, nil, err
		}
		dataPath = filepath.Join(appDir, "bank_data.json")
	}

	fileStore, err := store.NewFileStore(dataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize data store: %w", err)
	}

	transferMax, err := utils.ParseAmount(cfg.Limits.TransferMax)
	if err != nil {
		return nil, nil, fmt.Errorf("limits.transfer_max: %w", err)
	}
	checkinMin, err := utils.ParseAmount(cfg.Limits.CheckinMin)
	if err != nil {
		return nil, nil, fmt.Errorf("limits.checkin_min: %w", err)
	}
	checkinMax, err := utils.ParseAmount(cfg.Limits.CheckinMax)
	if err != nil {
		return nil, nil, fmt.Errorf("limits.checkin_max: %w", err)
	}
	if checkinMax.LessThan(checkinMin) {
		return nil, nil, fmt.Errorf("limits.checkin_max %s is below limits.checkin_min %s",
			cfg.Limits.CheckinMax, cfg.Limits.CheckinMin)
	}

	l := ledger.New(
		ledger.WithPersister(fileStore),
		ledger.WithTransferCeiling(transferMax),
		ledger.WithCheckInRange(checkinMin, checkinMax),
		ledger.WithGateway(&interbank.Simulator{Delay: cfg.Interbank.Delay}),
		ledger.WithExternalTimeout(cfg.Interbank.Timeout),
	)

	if snap, err := fileStore.Load(); err == nil {
		l.Restore(snap)
	} else if !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("failed to load data file: %w", err)
	}

	application := &App{
		Ledger:  l,
		Handler: bot.NewHandler(l),
		Store:   fileStore,
		Config:  cfg,
	}

	cleanup := func() {
		if err := l.Flush(); err != nil {
			pterm.Warning.Printfln("failed to save ledger on exit: %v", err)
		}
	}

	return application, cleanup, nil
}

// RunFlusher persists the ledger on a fixed interval until ctx is cancelled,
// then writes once more on the way out. Cancellation mid-sleep never
// interrupts a write in progress: saves run between ticks.
func (a *App) RunFlusher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := a.Ledger.Flush(); err != nil {
				pterm.Warning.Printfln("final flush failed: %v", err)
			}
			return
		case <-ticker.C:
			if err := a.Ledger.Flush(); err != nil {
				pterm.Warning.Printfln("periodic flush failed: %v", err)
			}
		}
	}
}

func getAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".xfbank"), nil
	}
	return filepath.Join(configDir, "xfbank"), nil
}
