package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/onthegorentals/onthego/internal/auth"
)

// Sweeper periodically purges expired refresh tokens. Expired tokens are
// already rejected on lookup; the sweep only keeps the table from
// growing unbounded.
type Sweeper struct {
	tokens   auth.RefreshTokenRepository
	interval time.Duration
}

// New creates a new Sweeper.
func New(tokens auth.RefreshTokenRepository, interval time.Duration) *Sweeper {
	return &Sweeper{
		tokens:   tokens,
		interval: interval,
	}
}

// Start begins the sweep loop. It blocks until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	slog.Info("token sweeper started", "interval", s.interval.String())
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("token sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	deleted, err := s.tokens.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		slog.Error("sweeper: failed to delete expired refresh tokens", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("sweeper: purged expired refresh tokens", "count", deleted)
	}
}
