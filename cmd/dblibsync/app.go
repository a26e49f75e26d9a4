package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/dblibsync/internal/config"
	"github.com/JonMunkholm/dblibsync/internal/core"
	"github.com/JonMunkholm/dblibsync/internal/sheet"
	"github.com/JonMunkholm/dblibsync/internal/store"
)

// openStore connects to the library database described by cfg.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	st, err := store.Open(ctx, store.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		ODBCDriver:      cfg.Database.ODBCDriver,
		MaxConns:        cfg.Database.MaxConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("connected to database",
		"driver", st.Dialect().Name(),
		"host", cfg.Database.Host,
		"name", cfg.Database.Name,
	)
	return st, nil
}

// newService wires the spreadsheet source and st into a sync service.
// st may be nil for commands that never touch the database.
func newService(cfg *config.Config, st store.Store) *core.Service {
	src := sheet.NewGoogleSheets(cfg.Sheet.ID, cfg.Sheet.CredentialsFile)
	return core.NewService(src, st, core.Options{
		CustomRequired: cfg.Sheet.CustomRequiredFields,
		DbLibPath:      cfg.DbLib.File,
		Timeout:        cfg.Sync.Timeout,
		MaxWait:        cfg.Sync.MaxWait,
	})
}

// userError turns err into the message printed to the terminal.
func userError(err error) error {
	if core.IsUserFacing(err) {
		return fmt.Errorf("%s\n\n%w", core.FormatUserError(err), err)
	}
	return err
}
