package service

import (
	"context"
	"sync"

	"github.com/mkim/storefront-client/internal/app/model"
	"github.com/mkim/storefront-client/internal/event"
	"github.com/mkim/storefront-client/internal/localstore"
	"github.com/mkim/storefront-client/pkg/logger"
)

// StoreSelectService holds the single currently-selected store location. It
// trusts callers: no catalog validation, no network calls. The selection
// survives reloads independently of the session.
type StoreSelectService interface {
	Init(ctx context.Context) error
	Dispose()

	Select(ctx context.Context, store model.Store) error
	Clear(ctx context.Context) error
	Selected() *model.Store
}

type storeSelectService struct {
	state localstore.Store
	bus   *event.Bus

	mu       sync.Mutex
	selected *model.Store
}

func NewStoreSelectService(state localstore.Store, bus *event.Bus) StoreSelectService {
	return &storeSelectService{
		state: state,
		bus:   bus,
	}
}

// Init restores a persisted selection, if any.
func (s *storeSelectService) Init(ctx context.Context) error {
	var store model.Store
	found, err := s.state.Get(ctx, localstore.KeySelectedStore, &store)
	if err != nil {
		logger.Warn("Failed to restore store selection", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if !found {
		return nil
	}

	s.mu.Lock()
	s.selected = &store
	s.mu.Unlock()

	logger.Info("Store selection restored", map[string]interface{}{
		"store_id": store.StoreID,
	})
	return nil
}

func (s *storeSelectService) Dispose() {}

// Select replaces the singleton selection and persists it. The in-memory
// selection and the change notification happen even when persistence fails;
// the returned error only reports lost durability.
func (s *storeSelectService) Select(ctx context.Context, store model.Store) error {
	s.mu.Lock()
	s.selected = &store
	s.mu.Unlock()

	err := s.state.Put(ctx, localstore.KeySelectedStore, store)
	if err != nil {
		logger.Warn("Failed to persist store selection", map[string]interface{}{
			"store_id": store.StoreID,
			"error":    err.Error(),
		})
	}

	logger.Info("Store selected", map[string]interface{}{
		"store_id": store.StoreID,
		"city":     store.City,
	})
	s.bus.Publish(event.Notification{Topic: event.TopicStore})
	return err
}

// Clear removes the selection and its persisted value.
func (s *storeSelectService) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()

	err := s.state.Delete(ctx, localstore.KeySelectedStore)
	if err != nil {
		logger.Warn("Failed to remove persisted store selection", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.bus.Publish(event.Notification{Topic: event.TopicStore})
	return err
}

func (s *storeSelectService) Selected() *model.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	store := *s.selected
	return &store
}
