package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	"github.com/oksasatya/go-music-auth/internal/domain/repository"
)

type mockArtists struct{ mock.Mock }

func (m *mockArtists) GetByUserID(ctx context.Context, userID int64) (*entity.Artist, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(*entity.Artist)
	return a, args.Error(1)
}

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

// memStore answers GET and SET from a map so no Redis server is needed.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memStore) DialHook(next redis.DialHook) redis.DialHook { return next }

func (m *memStore) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (m *memStore) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		args := cmd.Args()
		switch c := cmd.(type) {
		case *redis.StringCmd:
			v, ok := m.data[args[1].(string)]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(v)
			return nil
		case *redis.StatusCmd:
			m.data[args[1].(string)] = string(args[2].([]byte))
			c.SetVal("OK")
			return nil
		}
		return next(ctx, cmd)
	}
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func memRedis(t *testing.T) (*redis.Client, *memStore) {
	t.Helper()
	store := &memStore{data: map[string]string{}}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	rdb.AddHook(store)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, store
}

func TestArtistRepository_CachesFoundArtist(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	next := &mockArtists{}
	next.On("GetByUserID", mock.Anything, int64(7)).Return(&entity.Artist{ID: 42, UserID: 7, CreatedAt: created}, nil).Once()

	rdb, store := memRedis(t)
	repo := NewArtistRepository(next, rdb, time.Minute, nil)

	for i := 0; i < 2; i++ {
		a, err := repo.GetByUserID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(42), a.ID)
		assert.Equal(t, int64(7), a.UserID)
		assert.True(t, created.Equal(a.CreatedAt))
	}
	assert.True(t, store.has("artist:user:7"))
	next.AssertExpectations(t)
}

func TestArtistRepository_MissIsNotCached(t *testing.T) {
	next := &mockArtists{}
	next.On("GetByUserID", mock.Anything, int64(8)).Return(nil, repository.ErrNotFound).Once()
	next.On("GetByUserID", mock.Anything, int64(8)).Return(&entity.Artist{ID: 9, UserID: 8}, nil).Once()

	rdb, store := memRedis(t)
	repo := NewArtistRepository(next, rdb, time.Minute, nil)

	_, err := repo.GetByUserID(context.Background(), 8)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.False(t, store.has("artist:user:8"))

	// artist created after the first lookup
	a, err := repo.GetByUserID(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, int64(9), a.ID)
	next.AssertExpectations(t)
}

func TestNewArtistRepository_WithoutRedisReturnsNext(t *testing.T) {
	next := &mockArtists{}
	assert.Same(t, next, NewArtistRepository(next, nil, time.Minute, nil))
	assert.Same(t, next, NewArtistRepository(next, unreachableRedis(t), 0, nil))
}

func TestArtistRepository_RedisDownFallsThrough(t *testing.T) {
	next := &mockArtists{}
	next.On("GetByUserID", mock.Anything, int64(7)).Return(&entity.Artist{ID: 42, UserID: 7}, nil).Once()
	next.On("GetByUserID", mock.Anything, int64(8)).Return(nil, repository.ErrNotFound).Once()

	repo := NewArtistRepository(next, unreachableRedis(t), time.Minute, nil)

	a, err := repo.GetByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), a.ID)

	_, err = repo.GetByUserID(context.Background(), 8)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	next.AssertExpectations(t)
}

func TestArtistKey(t *testing.T) {
	assert.Equal(t, "artist:user:15", artistKey(15))
}
