package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	"github.com/oksasatya/go-music-auth/internal/domain/repository"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
)

const artistKeyPrefix = "artist:user:"

type artistEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ArtistRepository caches artist lookups in Redis in front of another
// ArtistRepository. Only found artists are cached, so an artist created
// for an existing user is visible on the next login. Redis errors fall
// through to the wrapped repository.
type ArtistRepository struct {
	next   repository.ArtistRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewArtistRepository returns next unchanged when rdb is nil or ttl is not positive.
func NewArtistRepository(next repository.ArtistRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) repository.ArtistRepository {
	if rdb == nil || ttl <= 0 {
		return next
	}
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &ArtistRepository{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func artistKey(userID int64) string {
	return artistKeyPrefix + strconv.FormatInt(userID, 10)
}

func (r *ArtistRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Artist, error) {
	key := artistKey(userID)

	var e artistEntry
	hit, err := helpers.RedisGetJSON(ctx, r.rdb, key, &e)
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Debug("artist cache read failed")
	}
	if hit {
		return &entity.Artist{ID: e.ID, UserID: e.UserID, CreatedAt: e.CreatedAt}, nil
	}

	a, err := r.next.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, artistEntry{ID: a.ID, UserID: a.UserID, CreatedAt: a.CreatedAt})
	return a, nil
}

func (r *ArtistRepository) store(ctx context.Context, key string, e artistEntry) {
	if err := helpers.RedisSetJSON(ctx, r.rdb, key, e, r.ttl); err != nil {
		r.logger.WithError(err).WithField("key", key).Debug("artist cache write failed")
	}
}
