package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-users/internal/models"
	"go-users/internal/stores"
)

// MemoryUserStore is an in-memory stores.UserStore for end-to-end tests.
// It enforces email uniqueness the way the users.email index does.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
	roles *MemoryRoleStore
}

// NewMemoryUserStore returns an empty store. roles may be nil; when set,
// FindByEmail fills in User.Role like a preload.
func NewMemoryUserStore(roles *MemoryRoleStore) *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User), roles: roles}
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			if s.roles != nil {
				u.Role = s.roles.byID(u.RoleID)
			}
			return &u, nil
		}
	}
	return nil, stores.ErrNotFound
}

func (s *MemoryUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, stores.ErrNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) List(context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FirstName < out[j].FirstName })
	return out, nil
}

func (s *MemoryUserStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return stores.ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	stored := *u
	stored.Role = nil
	s.users[u.ID] = stored
	return nil
}

func (s *MemoryUserStore) UpdateUser(_ context.Context, id string, fields stores.UserUpdate) (*models.User, error) {
	return s.updateActive(id, func(u *models.User) {
		u.FirstName = fields.FirstName
		u.LastName = fields.LastName
		u.Password = fields.Password
	})
}

func (s *MemoryUserStore) SoftDelete(_ context.Context, id string) (*models.User, error) {
	return s.updateActive(id, func(u *models.User) { u.Deleted = true })
}

func (s *MemoryUserStore) updateActive(id string, apply func(*models.User)) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok || u.Deleted {
		return nil, stores.ErrNotFound
	}
	apply(&u)
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return &u, nil
}

// MemoryRoleStore is an in-memory stores.RoleStore.
type MemoryRoleStore struct {
	mu    sync.Mutex
	roles map[string]models.Role
}

func NewMemoryRoleStore(titles ...string) *MemoryRoleStore {
	s := &MemoryRoleStore{roles: make(map[string]models.Role)}
	_ = s.EnsureRoles(context.Background(), titles...)
	return s
}

func (s *MemoryRoleStore) FindByTitle(_ context.Context, title string) (*models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.roles[title]
	if !ok {
		return nil, stores.ErrNotFound
	}
	return &r, nil
}

func (s *MemoryRoleStore) EnsureRoles(_ context.Context, titles ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, title := range titles {
		if _, ok := s.roles[title]; ok || title == "" {
			continue
		}
		s.roles[title] = models.Role{ID: uuid.NewString(), Title: title}
	}
	return nil
}

func (s *MemoryRoleStore) byID(id string) *models.Role {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.roles {
		if r.ID == id {
			return &r
		}
	}
	return nil
}

// MemoryRevokedTokenStore is an in-memory stores.RevokedTokenStore.
type MemoryRevokedTokenStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryRevokedTokenStore() *MemoryRevokedTokenStore {
	return &MemoryRevokedTokenStore{entries: make(map[string]time.Time)}
}

func (s *MemoryRevokedTokenStore) Revoke(_ context.Context, jti, _ string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[jti]; !ok {
		s.entries[jti] = expiresAt
	}
	return nil
}

func (s *MemoryRevokedTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[jti]
	return ok, nil
}

func (s *MemoryRevokedTokenStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for jti, exp := range s.entries {
		if !exp.After(now) {
			delete(s.entries, jti)
			n++
		}
	}
	return n, nil
}
