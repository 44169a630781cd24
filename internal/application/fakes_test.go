package application

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	repo "github.com/oksasatya/go-music-auth/internal/domain/repository"
)

// memUsers is an in-memory UserRepository with injectable failures.
type memUsers struct {
	mu        sync.Mutex
	byID      map[int64]*entity.User
	nextID    int64
	getErr    error
	updateErr error
	updates   int
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{byID: map[int64]*entity.User{}}
	for _, u := range users {
		cp := *u
		if cp.ID > m.nextID {
			m.nextID = cp.ID
		}
		m.byID[cp.ID] = &cp
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return repo.ErrConflict
		}
	}
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) UpdateFields(_ context.Context, id int64, f entity.UserFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	u, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	if f.TwoFAEnabled != nil {
		u.TwoFAEnabled = *f.TwoFAEnabled
	}
	if f.TwoFASecret != nil {
		u.TwoFASecret = *f.TwoFASecret
	}
	m.updates++
	return nil
}

func (m *memUsers) get(id int64) entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.byID[id]
}

type mockArtists struct{ mock.Mock }

func (m *mockArtists) GetByUserID(ctx context.Context, userID int64) (*entity.Artist, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(*entity.Artist)
	return a, args.Error(1)
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []bool
	err   error
}

func (n *recordingNotifier) TwoFactorChanged(_ context.Context, _ *entity.User, enabled bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, enabled)
	return n.err
}

type recordingAudit struct {
	mu     sync.Mutex
	events []entity.AuditEvent
}

func (a *recordingAudit) Record(_ context.Context, ev entity.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}
