package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/shopauth/internal/auth/store"
)

// HousekeepingService periodically purges expired access and refresh
// tokens. Validation never depends on it; it only bounds table growth
// between the lazy sweeps.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background until Stop is called.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts the worker down and waits for an in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup deletes expired rows once. The two deletions are independent; a
// failure in one does not skip the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := s.Now()

	failed := false

	tokens, err := s.Store.Tokens().DeleteExpiredTokens(ctx, now)
	if err != nil {
		failed = true
		s.Logger.Error("failed to delete expired tokens", "error", err)
	}

	refresh, err := s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, now)
	if err != nil {
		failed = true
		s.Logger.Error("failed to delete expired refresh tokens", "error", err)
	}

	if failed {
		s.Logger.Warn("housekeeping cleanup incomplete",
			"tokens_deleted", tokens,
			"refresh_tokens_deleted", refresh,
		)
		return
	}

	s.Logger.Info("housekeeping cleanup completed",
		"tokens_deleted", tokens,
		"refresh_tokens_deleted", refresh,
	)
}
