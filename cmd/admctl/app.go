package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/and161185/admin-console/internal/config"
	"github.com/and161185/admin-console/internal/model"
	"github.com/and161185/admin-console/internal/service"
	"github.com/and161185/admin-console/internal/storage"
	"github.com/and161185/admin-console/internal/storage/file"
	"github.com/and161185/admin-console/internal/storage/sqlite"
)

// app wires storage and services for one command invocation. Each run
// rehydrates all three collections from the durable store; that is the only
// path state takes across process restarts.
type app struct {
	cfg config.Config
	log *zap.Logger

	store     storage.Store
	closeFn   func() error
	session   *service.Session
	directory *service.Directory
	auth      *service.Auth
	inventory *service.Inventory
}

func newApp(cfg config.Config, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log, closeFn: func() error { return nil }}

	switch cfg.Backend {
	case config.BackendSQLite:
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.store = st
		a.closeFn = st.Close
	default:
		st, err := file.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		a.store = st
	}

	a.session = service.NewSession(a.store, []byte(cfg.SigningKey), cfg.SessionTTL)
	a.directory = service.NewDirectory(a.store, log)
	a.inventory = service.NewInventory(a.store, log)
	a.auth = service.NewAuth(service.Admin{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, a.directory, a.session, log)

	if err := a.session.Load(); err != nil {
		return nil, err
	}
	if err := a.directory.Load(); err != nil {
		return nil, err
	}
	if err := a.inventory.Load(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) close() {
	if err := a.closeFn(); err != nil {
		a.log.Warn("close storage", zap.Error(err))
	}
}

// gate consults the authorization decision for the current session before a
// protected command runs. A denial surfaces as the redirect the router would
// perform, not as a fault.
func (a *app) gate(required model.Role) error {
	var p *model.Principal
	if cur, ok := a.session.Current(); ok {
		p = &cur
	}
	d := service.Authorize(p, required)
	if d.Allowed {
		return nil
	}
	switch d.RedirectTo {
	case service.PathLogin:
		return fmt.Errorf("redirected to %s: please log in first", d.RedirectTo)
	default:
		return fmt.Errorf("redirected to %s: admin access required", d.RedirectTo)
	}
}
