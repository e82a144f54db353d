package verifystore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type CodeCacheSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	cache *CodeCache
	ctx   context.Context
}

func TestCodeCacheSuite(t *testing.T) {
	suite.Run(t, new(CodeCacheSuite))
}

func (s *CodeCacheSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultCodeCacheConfig()
	cfg.CodeTTL = 5 * time.Minute

	s.cache = NewCodeCacheWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *CodeCacheSuite) TearDownTest() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *CodeCacheSuite) TestGetMissingReturnsErrNoCode() {
	_, err := s.cache.Get(s.ctx, uuid.New())
	s.ErrorIs(err, ErrNoCode)
}

func (s *CodeCacheSuite) TestGetOrCreateMintsSixDigitCode() {
	entry, err := s.cache.GetOrCreate(s.ctx, uuid.New())
	s.Require().NoError(err)

	s.GreaterOrEqual(entry.Code, int64(100000))
	s.Less(entry.Code, int64(1000000))
	s.WithinDuration(time.Now().UTC(), entry.CreatedAt, time.Minute)
}

func (s *CodeCacheSuite) TestGetOrCreateIsStable() {
	playerID := uuid.New()

	first, err := s.cache.GetOrCreate(s.ctx, playerID)
	s.Require().NoError(err)

	second, err := s.cache.GetOrCreate(s.ctx, playerID)
	s.Require().NoError(err)

	s.Equal(first.Code, second.Code)
	s.Equal(first.CreatedAt.Unix(), second.CreatedAt.Unix())
}

func (s *CodeCacheSuite) TestCodesAreIndependentPerPlayer() {
	a, err := s.cache.GetOrCreate(s.ctx, uuid.New())
	s.Require().NoError(err)
	b, err := s.cache.GetOrCreate(s.ctx, uuid.New())
	s.Require().NoError(err)

	// Six digits leaves a one in 900000 chance of a flake here.
	s.NotEqual(a.Code, b.Code)
}

func (s *CodeCacheSuite) TestCodeExpires() {
	playerID := uuid.New()

	first, err := s.cache.GetOrCreate(s.ctx, playerID)
	s.Require().NoError(err)

	s.mini.FastForward(6 * time.Minute)

	_, err = s.cache.Get(s.ctx, playerID)
	s.ErrorIs(err, ErrNoCode)

	// A rejoin after expiry mints a fresh code.
	second, err := s.cache.GetOrCreate(s.ctx, playerID)
	s.Require().NoError(err)
	s.NotEqual(first.CreatedAt, second.CreatedAt)
}

func (s *CodeCacheSuite) TestDelete() {
	playerID := uuid.New()

	_, err := s.cache.GetOrCreate(s.ctx, playerID)
	s.Require().NoError(err)

	s.Require().NoError(s.cache.Delete(s.ctx, playerID))

	_, err = s.cache.Get(s.ctx, playerID)
	s.ErrorIs(err, ErrNoCode)
}
