package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stamprally/internal/bingo"
	"stamprally/internal/domain"
	"stamprally/internal/metrics"
)

// User-facing messages for stamp outcomes. The scan UI displays these
// verbatim, so RATE_LIMIT and MAX_VISITS read as expected outcomes, not
// failures.
const (
	msgStampCollected  = "Stamp collected!"
	msgInvalidStore    = "Invalid store code"
	msgEventNotFound   = "Event not found"
	msgEventNotRunning = "This event is not currently running"
	msgCooldown        = "Please wait a moment before trying again"
	msgAllCollected    = "You already collected every stamp for this store"
	msgServerError     = "Something went wrong. Please try again"
)

type stampService struct {
	eventRepo   domain.EventRepository
	visitorRepo domain.VisitorRepository
	prizeRepo   domain.PrizeRepository
	stampStore  domain.StampStore
	logger      *slog.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewStampService creates a StampService with the given collaborators.
func NewStampService(
	eventRepo domain.EventRepository,
	visitorRepo domain.VisitorRepository,
	prizeRepo domain.PrizeRepository,
	stampStore domain.StampStore,
	logger *slog.Logger,
	m *metrics.Metrics,
) domain.StampService {
	return &stampService{
		eventRepo:   eventRepo,
		visitorRepo: visitorRepo,
		prizeRepo:   prizeRepo,
		stampStore:  stampStore,
		logger:      logger,
		metrics:     m,
		now:         time.Now,
	}
}

func (s *stampService) SubmitStamp(ctx context.Context, eventID, visitorID, storeCode string) *domain.StampResult {
	store, err := domain.ParseStoreCode(storeCode)
	if err != nil {
		return s.failure(domain.StampErrInvalidInput, msgInvalidStore)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.failure(domain.StampErrNotFound, msgEventNotFound)
		}
		return s.serverError(ctx, "get event", err)
	}

	now := s.now()
	if !event.IsRunning(now) {
		return s.failure(domain.StampErrInvalidEvent, msgEventNotRunning)
	}

	if err := s.visitorRepo.EnsureExists(ctx, visitorID); err != nil {
		return s.serverError(ctx, "ensure visitor", err)
	}

	progress, newLines, err := s.stampStore.Apply(ctx, visitorID, eventID, store, now, bingo.LineCount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateLimited):
			return s.failure(domain.StampErrRateLimit, msgCooldown)
		case errors.Is(err, domain.ErrVisitCapReached):
			return s.failure(domain.StampErrMaxVisits, msgAllCollected)
		default:
			return s.serverError(ctx, "apply stamp", err)
		}
	}

	result := &domain.StampResult{
		Success: true,
		Message: msgStampCollected,
		Progress: &domain.ProgressCounters{
			StoreAVisits: progress.StoreAVisits,
			StoreBVisits: progress.StoreBVisits,
			StoreCVisits: progress.StoreCVisits,
			StoreDVisits: progress.StoreDVisits,
		},
	}
	if s.metrics != nil {
		s.metrics.RecordStamp("success")
		s.metrics.AchievementsCreated.Add(float64(len(newLines)))
	}

	// One stamp can cross several thresholds at once; every crossed
	// threshold is persisted but only the lowest is reported back.
	if len(newLines) > 0 {
		result.NewLineAchievement = s.enrichAchievement(ctx, eventID, newLines[0])
	}
	return result
}

// enrichAchievement attaches the configured prize to a newly crossed
// threshold. A missing prize row leaves the achievement unreported, same
// as an achievement beyond the prized thresholds.
func (s *stampService) enrichAchievement(ctx context.Context, eventID string, line int) *domain.LineAchievement {
	prize, err := s.prizeRepo.GetByEventAndLine(ctx, eventID, line)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.ErrorContext(ctx, "get prize for achievement", "event_id", eventID, "line_count", line, "err", err)
		}
		return nil
	}
	achievement := &domain.LineAchievement{
		LineCount:        line,
		PrizeName:        prize.Name,
		PrizeDescription: prize.Description,
	}
	if prize.ValidUntil != nil {
		achievement.ValidUntil = prize.ValidUntil.Format("2006-01-02")
	}
	return achievement
}

func (s *stampService) failure(code, message string) *domain.StampResult {
	if s.metrics != nil {
		s.metrics.RecordStamp(code)
	}
	return &domain.StampResult{
		Success: false,
		Message: message,
		Error:   &domain.StampError{Code: code, Message: message},
	}
}

func (s *stampService) serverError(ctx context.Context, op string, err error) *domain.StampResult {
	s.logger.ErrorContext(ctx, "stamp processing failed", "op", op, "err", err)
	return s.failure(domain.StampErrServer, msgServerError)
}
