package cmd

import (
	"context"
	"fmt"

	"github.com/mkim/storefront-client/config"
	"github.com/mkim/storefront-client/internal/app/gateway"
	"github.com/mkim/storefront-client/internal/app/service"
	apperrors "github.com/mkim/storefront-client/internal/errors"
	"github.com/mkim/storefront-client/internal/event"
	"github.com/mkim/storefront-client/internal/localstore"
	"github.com/mkim/storefront-client/pkg/logger"
)

// app is the wired component graph every command runs against. Construction
// follows the session → store-selection → cart order so the cart's initial
// sync sees restored state.
type app struct {
	cfg     *config.Config
	session service.SessionService
	stores  service.StoreSelectService
	cart    service.CartService
	orders  service.OrderService
	catalog service.CatalogService
	stats   service.StatsService

	closers []func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger.Initialize(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	state, closeState, err := newStateStore(cfg)
	if err != nil {
		return nil, err
	}

	client, err := gateway.NewClient(gateway.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		return nil, err
	}

	bus := event.NewBus()
	session := service.NewSessionService(client, state, bus)
	stores := service.NewStoreSelectService(state, bus)
	cart := service.NewCartService(client, session, stores, bus)

	a := &app{
		cfg:     cfg,
		session: session,
		stores:  stores,
		cart:    cart,
		orders:  service.NewOrderService(client, session, stores, cart),
		catalog: service.NewCatalogService(client),
		stats:   service.NewStatsService(client, session),
	}
	if closeState != nil {
		a.closers = append(a.closers, closeState)
	}

	if err := a.session.Init(ctx); err != nil {
		return nil, err
	}
	if err := a.stores.Init(ctx); err != nil {
		return nil, err
	}
	if err := a.cart.Init(ctx); err != nil {
		logger.Warn("Initial cart sync failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return a, nil
}

func (a *app) dispose() {
	a.cart.Dispose()
	a.stores.Dispose()
	a.session.Dispose()
	for _, close := range a.closers {
		close()
	}
}

func newStateStore(cfg *config.Config) (localstore.Store, func(), error) {
	switch cfg.State.Backend {
	case "", "file":
		store, err := localstore.NewFileStore(cfg.State.Dir)
		return store, nil, err
	case "redis":
		store, err := localstore.NewRedisStore(&cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close Redis state store", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}, nil
	case "memory":
		return localstore.NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}

// hint appends a recovery suggestion for the common failure classes so the
// CLI never surfaces a raw error without a next step.
func hint(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case apperrors.IsPrecondition(err):
		switch apperrors.CodeOf(err) {
		case apperrors.PreconditionNoStore:
			return fmt.Errorf("%w (run 'storefront stores select' first)", err)
		default:
			return fmt.Errorf("%w (run 'storefront login' and 'storefront profile update' first)", err)
		}
	case apperrors.IsAuth(err):
		return fmt.Errorf("%w (check your credentials)", err)
	case apperrors.IsStock(err):
		return fmt.Errorf("%w (lower the quantity)", err)
	case apperrors.IsNetwork(err):
		return fmt.Errorf("%w (is the backend running? try again)", err)
	default:
		return err
	}
}
