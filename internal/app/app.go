// Package app is the composition root: it loads configuration, opens the
// log file and guest store, builds the API client, state store, mutation
// coordinator and session manager, and hands everything to the UI.
package app

import (
	"context"
	"fmt"

	"github.com/Filichkin/OnlineShop-sub001/internal/api"
	"github.com/Filichkin/OnlineShop-sub001/internal/config"
	"github.com/Filichkin/OnlineShop-sub001/internal/coordinator"
	"github.com/Filichkin/OnlineShop-sub001/internal/guest"
	"github.com/Filichkin/OnlineShop-sub001/internal/logging"
	"github.com/Filichkin/OnlineShop-sub001/internal/session"
	"github.com/Filichkin/OnlineShop-sub001/internal/state"
	"github.com/Filichkin/OnlineShop-sub001/internal/ui"
)

// Options configure the shopfront application.
type Options struct {
	ConfigPath string
	LogLevel   string
}

// Run boots the storefront TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := logging.Open(cfg.LogFile, opts.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	client, err := api.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	guestStore, err := guest.Open(cfg.GuestStorePath)
	if err != nil {
		return fmt.Errorf("open guest store: %w", err)
	}

	store := state.NewStore()

	sess := session.New(session.Config{
		Client: client,
		Store:  store,
		Guest:  guestStore,
		Log:    logger,
	})
	coord := coordinator.New(coordinator.Config{
		Store:         store,
		Remote:        client,
		Guest:         guestStore,
		Authenticated: sess.Authenticated,
		Log:           logger,
	})
	coord.SetOnAuthExpired(sess.HandleAuthExpired)
	sess.SetRefresher(coord)

	logger.Info().Str("api_url", cfg.APIURL).Msg("shopfront starting")

	err = ui.Run(ui.Options{
		Context:     ctx,
		Client:      client,
		Store:       store,
		Coordinator: coord,
		Session:     sess,
		ThemeName:   cfg.Theme,
	})

	// Let in-flight mutations settle before the process exits.
	coord.Flush()
	logger.Info().Msg("shopfront stopped")
	return err
}
