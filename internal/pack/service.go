package pack

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dadddeck/pack-engine/internal/catalog"
	"github.com/dadddeck/pack-engine/internal/concurrency"
	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/entropy"
	"github.com/dadddeck/pack-engine/internal/event"
	"github.com/dadddeck/pack-engine/internal/logger"
	"github.com/dadddeck/pack-engine/internal/metrics"
	"github.com/dadddeck/pack-engine/internal/pity"
	"github.com/dadddeck/pack-engine/internal/rarity"
	"github.com/dadddeck/pack-engine/internal/ratelimit"
	"github.com/dadddeck/pack-engine/internal/roll"
	"github.com/dadddeck/pack-engine/internal/violation"
)

// Service defines the interface for pack operations
type Service interface {
	// Open runs the full draw pipeline: standing check, rate limit,
	// entropy derivation, slot rolls, card binding, pity persistence.
	Open(ctx context.Context, req domain.DrawRequest) (*domain.DrawResult, error)

	// Verify replays a revealed entropy record and compares the result
	// against the claimed pack. A mismatch is itself a violation.
	Verify(ctx context.Context, record domain.PackEntropy, claimed domain.Pack) (domain.PackValidationResult, error)

	// PityStatus returns the caller's current counters and the configured
	// thresholds.
	PityStatus(ctx context.Context, userID string, packType domain.PackType) (domain.PityCounter, domain.PityThresholds, error)
}

// service implements the Service interface
type service struct {
	tables     rarity.Tables
	pity       pity.Service
	limiter    ratelimit.Service
	violations violation.Service
	catalog    catalog.Service
	rotator    *entropy.Rotator
	nonces     *entropy.NonceGuard
	bus        event.Bus
	locks      *concurrency.LockManager

	// verified remembers hash-by-"user:nonce" for audit submissions so a
	// second, conflicting pack for the same nonce is flagged as a replay.
	verified *lru.Cache[string, string]

	now func() time.Time
}

// NewService creates a new pack service
func NewService(
	tables rarity.Tables,
	pitySvc pity.Service,
	limiter ratelimit.Service,
	violations violation.Service,
	catalogSvc catalog.Service,
	rotator *entropy.Rotator,
	nonces *entropy.NonceGuard,
	bus event.Bus,
	locks *concurrency.LockManager,
) (Service, error) {
	verified, err := lru.New[string, string](VerifiedRecordCacheSize)
	if err != nil {
		return nil, err
	}
	return &service{
		tables:     tables,
		pity:       pitySvc,
		limiter:    limiter,
		violations: violations,
		catalog:    catalogSvc,
		rotator:    rotator,
		nonces:     nonces,
		bus:        bus,
		locks:      locks,
		verified:   verified,
		now:        time.Now,
	}, nil
}

// Open runs the full draw pipeline.
func (s *service) Open(ctx context.Context, req domain.DrawRequest) (*domain.DrawResult, error) {
	log := logger.FromContext(ctx)
	started := s.now()

	key := req.LimitKey()
	if key == "" {
		return nil, errors.New(ErrMsgIdentityRequired)
	}
	if req.ClientSeed == "" {
		return nil, fmt.Errorf("%w: client seed is empty", domain.ErrInvalidSeed)
	}
	blueprint, ok := s.tables.Blueprint(req.PackType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPackType, req.PackType)
	}

	// Standing first: a banned account gets no rate-limit slot and no roll.
	standing, err := s.violations.Standing(ctx, key)
	if err != nil {
		return nil, err
	}
	if standing.Blocked(s.now()) {
		log.Warn(LogMsgDrawRejected, "reason", "banned", "fingerprint", key, "state", standing.State)
		return nil, domain.BannedError{Standing: standing}
	}

	status := s.limiter.Check(ctx, key, ratelimit.ActionOpenPack)
	if status.IsBlocked {
		s.violations.Record(ctx, domain.ViolationRateLimitExceeded, domain.SeverityMedium, key, DetailRateLimitExceeded)
		return nil, domain.RateLimitedError{Status: status}
	}
	if status.BurstUsed {
		s.violations.Record(ctx, domain.ViolationBurstUsage, domain.SeverityLow, key, DetailBurstUsage)
	}

	if err := s.rotator.ValidateCommitment(req.SeedCommitment); err != nil {
		s.violations.Record(ctx, domain.ViolationClientTampering, domain.SeverityHigh, key, DetailStaleCommitment)
		return nil, err
	}

	// Everything that reads or writes pity state runs under the account
	// lock so concurrent draws for one user serialize.
	var result *domain.DrawResult
	lockErr := s.locks.WithLock(key, func() error {
		counters, err := s.pity.Get(ctx, req.UserID, req.PackType)
		if err != nil {
			return err
		}

		// The plaintext seed is consumed here and goes no further: the
		// record carries only its commitment and epoch until rotation
		// publishes the seed for audit.
		serverSeed, commitment, epoch := s.rotator.Current()
		nonce := s.nonces.Next(key)
		hash := entropy.Derive(serverSeed, req.ClientSeed, nonce)
		record := domain.PackEntropy{
			Commitment:   commitment,
			Epoch:        epoch,
			ClientSeed:   req.ClientSeed,
			Nonce:        nonce,
			Hash:         hash,
			PackType:     req.PackType,
			PitySnapshot: counters,
			Thresholds:   s.pity.Thresholds(),
			Timestamp:    s.now(),
		}

		s.observePityPressure(counters)
		cards, updated, err := s.assemble(ctx, blueprint, counters, entropy.NewStream(hash))
		if err != nil {
			return fmt.Errorf(ErrMsgAssembleFailed, err)
		}

		if err := s.pity.Apply(ctx, updated); err != nil {
			return err
		}

		pack := domain.Pack{
			ID:         uuid.New().String(),
			UserID:     req.UserID,
			PackType:   req.PackType,
			Design:     blueprint.Design,
			Cards:      cards,
			BestRarity: domain.ResolveBestRarity(cards),
			OpenedAt:   s.now(),
		}
		result = &domain.DrawResult{Pack: pack, Entropy: record, RateLimit: status}
		return nil
	})
	if lockErr != nil {
		return nil, lockErr
	}

	metrics.PacksOpened.WithLabelValues(string(req.PackType), string(result.Pack.BestRarity)).Inc()
	metrics.PackAssemblyDuration.WithLabelValues(string(req.PackType)).Observe(s.now().Sub(started).Seconds())
	log.Info(LogMsgPackOpened,
		"pack_id", result.Pack.ID, "user_id", req.UserID, "pack_type", req.PackType,
		"best_rarity", result.Pack.BestRarity, "nonce", result.Entropy.Nonce)

	if err := s.bus.Publish(ctx, event.NewPackOpenedEvent(result.Pack, req.Fingerprint, result.Entropy)); err != nil {
		log.Warn(LogMsgEventPublishError, "error", err, "pack_id", result.Pack.ID)
	}

	return result, nil
}

// assemble rolls every slot and binds the outcomes to concrete cards.
func (s *service) assemble(ctx context.Context, blueprint rarity.Blueprint, counters domain.PityCounter, stream entropy.Stream) ([]domain.PackCard, domain.PityCounter, error) {
	n := len(blueprint.Slots)
	holoChance := blueprint.EffectiveHoloChance()
	thresholds := s.pity.Thresholds()

	cards := make([]domain.PackCard, 0, n)
	for i, slot := range blueprint.Slots {
		var tier domain.Rarity
		tier, counters = roll.RollRarity(slot, counters, thresholds, stream.Float(streamBlockRarity*n+i))
		metrics.RarityRolls.WithLabelValues(string(tier)).Inc()

		variant := roll.RollHolo(tier, holoChance, stream.Float(streamBlockHolo*n+i))
		metrics.HoloRolls.WithLabelValues(string(variant)).Inc()

		cardID, err := s.catalog.Bind(ctx, tier, stream.Float(streamBlockBinding*n+i))
		if err != nil {
			return nil, counters, err
		}

		cards = append(cards, domain.PackCard{
			SlotIndex:   i,
			CardID:      cardID,
			Rarity:      tier,
			HoloVariant: variant,
		})
	}
	return cards, counters, nil
}

// observePityPressure counts which tiers enter the draw escalated or forced.
func (s *service) observePityPressure(counters domain.PityCounter) {
	for tier, threshold := range s.pity.Thresholds() {
		count := counters.Count(tier)
		switch {
		case count >= threshold.HardPity:
			metrics.PityTriggers.WithLabelValues(string(tier), PityKindHard).Inc()
		case count >= threshold.SoftPity:
			metrics.PityTriggers.WithLabelValues(string(tier), PityKindSoft).Inc()
		}
	}
}

// Verify replays a revealed entropy record against the claimed pack.
func (s *service) Verify(ctx context.Context, record domain.PackEntropy, claimed domain.Pack) (domain.PackValidationResult, error) {
	log := logger.FromContext(ctx)

	result := domain.PackValidationResult{}
	fingerprint := claimed.UserID

	// Audits are replayable by anyone holding the record, so they get their
	// own admission window rather than consuming draw slots.
	if fingerprint != "" {
		if status := s.limiter.Check(ctx, fingerprint, ratelimit.ActionVerifyPack); status.IsBlocked {
			return result, domain.RateLimitedError{Status: status}
		}
	}

	// Records straight from a draw response carry no seed; it becomes
	// available once the epoch retires.
	if record.ServerSeed == "" {
		seed, err := s.rotator.Reveal(record.Epoch)
		if err != nil {
			return result, err
		}
		record.ServerSeed = seed
	}

	if err := entropy.VerifyHash(record); err != nil {
		result.Anomalies = append(result.Anomalies, AnomalyHashMismatch)
	} else {
		result.EntropyVerified = true
		result.Anomalies = append(result.Anomalies, s.replay(ctx, record, claimed)...)
		if len(result.Anomalies) > 0 {
			result.EntropyVerified = false
		}
	}

	// Duplicate detection: two different packs claiming the same
	// (user, nonce) cannot both be genuine.
	replayKey := fmt.Sprintf("%s:%d", claimed.UserID, record.Nonce)
	if prior, seen := s.verified.Get(replayKey); seen && prior != record.Hash {
		result.Anomalies = append(result.Anomalies, AnomalyNonceReplay)
		s.violations.Record(ctx, domain.ViolationNonceReplay, domain.SeverityHigh, fingerprint, DetailNonceReplay)
	} else if !seen {
		s.verified.Add(replayKey, record.Hash)
	}

	result.Valid = len(result.Anomalies) == 0

	label := VerifyResultValid
	if !result.Valid {
		label = VerifyResultInvalid
		if !result.EntropyVerified {
			s.violations.Record(ctx, domain.ViolationEntropyMismatch, domain.SeverityHigh, fingerprint, DetailVerifyMismatch)
		}
	}
	metrics.PackVerifications.WithLabelValues(label).Inc()

	log.Info(LogMsgPackVerified, "hash", record.Hash, "valid", result.Valid, "anomalies", len(result.Anomalies))
	if err := s.bus.Publish(ctx, event.NewPackValidatedEvent(record.Hash, result)); err != nil {
		log.Warn(LogMsgEventPublishError, "error", err, "hash", record.Hash)
	}

	return result, nil
}

// replay recomputes the expected pack from the record and diffs it against
// the claim.
func (s *service) replay(ctx context.Context, record domain.PackEntropy, claimed domain.Pack) []string {
	blueprint, ok := s.tables.Blueprint(record.PackType)
	if !ok {
		return []string{AnomalyUnknownPackType}
	}

	n := len(blueprint.Slots)
	holoChance := blueprint.EffectiveHoloChance()
	// Replay against the thresholds the draw actually ran with; a retune
	// between draw and audit must not make genuine packs look forged.
	thresholds := record.Thresholds
	if len(thresholds) == 0 {
		thresholds = s.pity.Thresholds()
	}
	stream := entropy.NewStream(record.Hash)
	counters := record.PitySnapshot

	if len(claimed.Cards) != n {
		return []string{AnomalyCardCount}
	}

	var anomalies []string
	for i, slot := range blueprint.Slots {
		var tier domain.Rarity
		tier, counters = roll.RollRarity(slot, counters, thresholds, stream.Float(streamBlockRarity*n+i))
		variant := roll.RollHolo(tier, holoChance, stream.Float(streamBlockHolo*n+i))

		if claimed.Cards[i].Rarity != tier {
			anomalies = append(anomalies, fmt.Sprintf(AnomalyFmtSlotRarity, i))
			continue
		}
		if claimed.Cards[i].HoloVariant != variant {
			anomalies = append(anomalies, fmt.Sprintf(AnomalyFmtSlotHolo, i))
		}

		cardID, err := s.catalog.Bind(ctx, tier, stream.Float(streamBlockBinding*n+i))
		if err == nil && claimed.Cards[i].CardID != cardID {
			anomalies = append(anomalies, fmt.Sprintf(AnomalyFmtSlotCard, i))
		}
	}

	if claimed.BestRarity != domain.ResolveBestRarity(claimed.Cards) {
		anomalies = append(anomalies, AnomalyBestRarity)
	}
	return anomalies
}

// PityStatus returns the caller's counters and the configured thresholds.
func (s *service) PityStatus(ctx context.Context, userID string, packType domain.PackType) (domain.PityCounter, domain.PityThresholds, error) {
	if _, ok := s.tables.Blueprint(packType); !ok {
		return domain.PityCounter{}, nil, fmt.Errorf("%w: %s", domain.ErrUnknownPackType, packType)
	}
	counters, err := s.pity.Get(ctx, userID, packType)
	if err != nil {
		return domain.PityCounter{}, nil, err
	}
	return counters, s.pity.Thresholds(), nil
}
