package session

import (
	"context"
	"errors"
	"fmt"
	"parking_app/internal/domain"
	"parking_app/internal/storage"
	"sync"

	"go.uber.org/zap"
)

// Key is the storage key the signed-in user is persisted under.
const Key = "user"

var ErrNoSession = errors.New("no signed-in user")

// Store persists exactly one record: the current user.
type Store interface {
	Set(ctx context.Context, user domain.User) error
	Get(ctx context.Context) (*domain.User, error)
	Clear(ctx context.Context) error
}

type kvStore struct {
	kv storage.KV
}

func NewStore(kv storage.KV) Store {
	return &kvStore{kv: kv}
}

func (s *kvStore) Set(ctx context.Context, user domain.User) error {
	if err := storage.SetJSON(ctx, s.kv, Key, user); err != nil {
		return fmt.Errorf("session.Set: %w", err)
	}
	return nil
}

func (s *kvStore) Get(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := storage.GetJSON(ctx, s.kv, Key, &user); err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("session.Get: %w", err)
	}
	return &user, nil
}

func (s *kvStore) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, Key); err != nil {
		return fmt.Errorf("session.Clear: %w", err)
	}
	return nil
}

// Context is handed to every screen that needs the signed-in user. It owns
// the session lifecycle: set on login, cleared on logout, read on entry.
type Context struct {
	store  Store
	logger *zap.Logger

	mu      sync.RWMutex
	current *domain.User
	loaded  bool
}

func NewContext(store Store, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{store: store, logger: logger}
}

func (c *Context) Login(ctx context.Context, user domain.User) error {
	if err := c.store.Set(ctx, user); err != nil {
		return err
	}
	c.mu.Lock()
	u := user
	c.current = &u
	c.loaded = true
	c.mu.Unlock()
	c.logger.Debug("session started", zap.String("user_id", user.ID.String()))
	return nil
}

func (c *Context) Logout(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.current = nil
	c.loaded = true
	c.mu.Unlock()
	c.logger.Debug("session cleared")
	return nil
}

// Current returns the signed-in user, reading the store the first time.
func (c *Context) Current(ctx context.Context) (*domain.User, error) {
	c.mu.RLock()
	if c.loaded {
		defer c.mu.RUnlock()
		if c.current == nil {
			return nil, ErrNoSession
		}
		u := *c.current
		return &u, nil
	}
	c.mu.RUnlock()

	user, err := c.store.Get(ctx)
	if err != nil && !errors.Is(err, ErrNoSession) {
		return nil, err
	}
	c.mu.Lock()
	c.current = user
	c.loaded = true
	c.mu.Unlock()
	if user == nil {
		return nil, ErrNoSession
	}
	u := *user
	return &u, nil
}

// Require is the entry gate of protected screens. It re-reads the store so a
// logout from another process is honored.
func (c *Context) Require(ctx context.Context) (*domain.User, error) {
	c.mu.Lock()
	c.loaded = false
	c.mu.Unlock()
	return c.Current(ctx)
}
