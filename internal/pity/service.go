package pity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/logger"
	"github.com/dadddeck/pack-engine/internal/repository"
)

// Service defines the interface for pity counter operations
type Service interface {
	// Get returns the current counters for a user and pack type.
	Get(ctx context.Context, userID string, packType domain.PackType) (domain.PityCounter, error)

	// Apply persists the counters produced by a draw.
	Apply(ctx context.Context, counter domain.PityCounter) error

	// Thresholds returns the configured protection thresholds.
	Thresholds() domain.PityThresholds
}

// service implements the Service interface
type service struct {
	repo       repository.Pity
	thresholds domain.PityThresholds
}

// NewService creates a new pity service
func NewService(repo repository.Pity, thresholds domain.PityThresholds) Service {
	return &service{
		repo:       repo,
		thresholds: thresholds,
	}
}

// Get returns the current counters for a user and pack type.
func (s *service) Get(ctx context.Context, userID string, packType domain.PackType) (domain.PityCounter, error) {
	if userID == "" {
		return domain.PityCounter{}, errors.New(ErrMsgUserIDRequired)
	}
	if packType == "" {
		return domain.PityCounter{}, fmt.Errorf("%w: empty", domain.ErrUnknownPackType)
	}

	counter, err := s.repo.Get(ctx, userID, packType)
	if err != nil {
		return domain.PityCounter{}, fmt.Errorf(ErrMsgGetCountersFailed, err)
	}
	counter.UserID = userID
	counter.PackType = packType
	return counter, nil
}

// Apply persists the counters produced by a draw.
func (s *service) Apply(ctx context.Context, counter domain.PityCounter) error {
	log := logger.FromContext(ctx)

	if counter.UserID == "" {
		return errors.New(ErrMsgUserIDRequired)
	}
	counter.LastUpdated = time.Now()

	if err := s.repo.Save(ctx, counter); err != nil {
		log.Error(LogMsgFailedToSave, "error", err, "user_id", counter.UserID, "pack_type", counter.PackType)
		return fmt.Errorf(ErrMsgSaveCountersFailed, err)
	}

	log.Debug(LogMsgCountersSaved, "user_id", counter.UserID, "pack_type", counter.PackType)
	return nil
}

// Thresholds returns the configured protection thresholds.
func (s *service) Thresholds() domain.PityThresholds {
	return s.thresholds
}
