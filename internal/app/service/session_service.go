package service

import (
	"context"
	"sync"

	"github.com/mkim/storefront-client/internal/app/model"
	apperrors "github.com/mkim/storefront-client/internal/errors"
	"github.com/mkim/storefront-client/internal/event"
	"github.com/mkim/storefront-client/internal/localstore"
	"github.com/mkim/storefront-client/pkg/logger"
)

// AuthGateway is the slice of the backend API the session component talks to.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
	Register(ctx context.Context, username, password string) (*model.User, error)
	CustomerInfo(ctx context.Context, uid int) (*model.Customer, bool, error)
	UpsertCustomer(ctx context.Context, uid int, fields model.ProfileFields, exists bool) (*model.Customer, error)
}

// SessionService holds the authenticated identity and its customer profile.
// Every successful mutation persists a snapshot and publishes
// event.TopicSession so the cart engine can resync.
type SessionService interface {
	Init(ctx context.Context) error
	Dispose()

	Login(ctx context.Context, username, password string) error
	Signup(ctx context.Context, username, password string) error
	Logout(ctx context.Context)
	UpsertProfile(ctx context.Context, fields model.ProfileFields) (*model.Customer, error)

	User() *model.User
	Customer() *model.Customer
	IsAuthenticated() bool
}

type sessionService struct {
	gateway AuthGateway
	state   localstore.Store
	bus     *event.Bus

	mu       sync.Mutex
	user     *model.User
	customer *model.Customer
	disposed bool
}

func NewSessionService(gateway AuthGateway, state localstore.Store, bus *event.Bus) SessionService {
	return &sessionService{
		gateway: gateway,
		state:   state,
		bus:     bus,
	}
}

// Init restores a persisted identity synchronously, then re-validates the
// customer profile against the server. A failed profile fetch degrades to
// "no profile" rather than failing the restore.
func (s *sessionService) Init(ctx context.Context) error {
	var user model.User
	found, err := s.state.Get(ctx, localstore.KeyUser, &user)
	if err != nil {
		logger.Warn("Failed to restore persisted session", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if !found {
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	logger.Info("Session restored from local state", map[string]interface{}{
		"uid":       user.UID,
		"user_name": user.UserName,
	})

	s.refreshProfile(ctx, user.UID)
	s.bus.Publish(event.Notification{Topic: event.TopicSession})
	return nil
}

func (s *sessionService) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()
}

// Login exchanges credentials with the backend and, on success, loads the
// customer profile. A missing profile is first-time setup, not a failure.
func (s *sessionService) Login(ctx context.Context, username, password string) error {
	if err := s.checkDisposed(); err != nil {
		return err
	}

	logger.Info("Attempting login", map[string]interface{}{
		"user_name": username,
	})

	user, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		logger.Warn("Login failed", map[string]interface{}{
			"user_name": username,
			"error":     err.Error(),
		})
		return err
	}

	s.mu.Lock()
	s.user = user
	s.customer = nil
	s.mu.Unlock()

	if err := s.state.Put(ctx, localstore.KeyUser, user); err != nil {
		logger.Warn("Failed to persist session snapshot", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.refreshProfile(ctx, user.UID)
	s.bus.Publish(event.Notification{Topic: event.TopicSession})

	logger.Info("Login succeeded", map[string]interface{}{
		"uid":  user.UID,
		"role": user.Role,
	})
	return nil
}

// Signup creates a new identity. It never auto-creates a profile; any stale
// persisted profile from a previous session on this machine is discarded.
func (s *sessionService) Signup(ctx context.Context, username, password string) error {
	if err := s.checkDisposed(); err != nil {
		return err
	}

	logger.Info("Attempting signup", map[string]interface{}{
		"user_name": username,
	})

	user, err := s.gateway.Register(ctx, username, password)
	if err != nil {
		logger.Warn("Signup failed", map[string]interface{}{
			"user_name": username,
			"error":     err.Error(),
		})
		return err
	}

	s.mu.Lock()
	s.user = user
	s.customer = nil
	s.mu.Unlock()

	if err := s.state.Put(ctx, localstore.KeyUser, user); err != nil {
		logger.Warn("Failed to persist session snapshot", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := s.state.Delete(ctx, localstore.KeyCustomer); err != nil {
		logger.Warn("Failed to clear persisted profile", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.bus.Publish(event.Notification{Topic: event.TopicSession})
	return nil
}

// Logout clears user and profile from memory and persisted storage
// unconditionally. It is idempotent.
func (s *sessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	hadUser := s.user != nil
	s.user = nil
	s.customer = nil
	s.mu.Unlock()

	if err := s.state.Delete(ctx, localstore.KeyUser); err != nil {
		logger.Warn("Failed to remove persisted user", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := s.state.Delete(ctx, localstore.KeyCustomer); err != nil {
		logger.Warn("Failed to remove persisted profile", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if hadUser {
		logger.Info("Logged out")
	}
	s.bus.Publish(event.Notification{Topic: event.TopicSession})
}

// UpsertProfile creates the customer profile when absent and updates it
// otherwise.
func (s *sessionService) UpsertProfile(ctx context.Context, fields model.ProfileFields) (*model.Customer, error) {
	if err := s.checkDisposed(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	user := s.user
	exists := s.customer != nil
	s.mu.Unlock()

	if user == nil {
		return nil, apperrors.Precondition(apperrors.PreconditionNoSession, "no user logged in")
	}

	customer, err := s.gateway.UpsertCustomer(ctx, user.UID, fields, exists)
	if err != nil {
		logger.Warn("Profile upsert failed", map[string]interface{}{
			"uid":   user.UID,
			"error": err.Error(),
		})
		return nil, err
	}

	s.mu.Lock()
	s.customer = customer
	s.mu.Unlock()

	if err := s.state.Put(ctx, localstore.KeyCustomer, customer); err != nil {
		logger.Warn("Failed to persist profile snapshot", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.bus.Publish(event.Notification{Topic: event.TopicSession})

	logger.Info("Customer profile saved", map[string]interface{}{
		"uid":         user.UID,
		"customer_id": customer.CustomerID,
	})
	return customer, nil
}

func (s *sessionService) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *sessionService) Customer() *model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.customer == nil {
		return nil
	}
	customer := *s.customer
	return &customer
}

func (s *sessionService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// refreshProfile loads the customer profile for uid, tolerating failure. An
// explicit "no profile" answer also clears the persisted snapshot; a
// transport failure leaves the snapshot for the next restore.
func (s *sessionService) refreshProfile(ctx context.Context, uid int) {
	customer, found, err := s.gateway.CustomerInfo(ctx, uid)
	if err != nil {
		logger.Warn("Failed to fetch customer profile", map[string]interface{}{
			"uid":   uid,
			"error": err.Error(),
		})
		s.mu.Lock()
		s.customer = nil
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.customer = customer
	s.mu.Unlock()

	if !found {
		if err := s.state.Delete(ctx, localstore.KeyCustomer); err != nil {
			logger.Warn("Failed to clear persisted profile", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return
	}

	if err := s.state.Put(ctx, localstore.KeyCustomer, customer); err != nil {
		logger.Warn("Failed to persist profile snapshot", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *sessionService) checkDisposed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return apperrors.Precondition(apperrors.PreconditionDisposed, "session component disposed")
	}
	return nil
}
