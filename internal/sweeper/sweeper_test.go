package sweeper_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onthegorentals/onthego/internal/auth"
	"github.com/onthegorentals/onthego/internal/sweeper"
)

type stubTokenRepo struct {
	mu         sync.Mutex
	sweeps     int
	deleteErr  error
	deletedPer int64
}

func (s *stubTokenRepo) Save(context.Context, int64, string, time.Time) error {
	return nil
}

func (s *stubTokenRepo) FindValid(context.Context, string, time.Time) (*auth.RefreshToken, error) {
	return nil, auth.ErrTokenNotFound
}

func (s *stubTokenRepo) Revoke(context.Context, int64) error {
	return nil
}

func (s *stubTokenRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweeps++
	return s.deletedPer, s.deleteErr
}

func (s *stubTokenRepo) sweepCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweeps
}

func TestSweeper_PurgesOnEachTick(t *testing.T) {
	repo := &stubTokenRepo{deletedPer: 2}
	s := sweeper.New(repo, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return repo.sweepCount() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}

func TestSweeper_KeepsRunningAfterError(t *testing.T) {
	repo := &stubTokenRepo{deleteErr: errors.New("connection reset")}
	s := sweeper.New(repo, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Start(ctx)

	require.Eventually(t, func() bool {
		return repo.sweepCount() >= 2
	}, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, repo.sweepCount(), 2)
}
