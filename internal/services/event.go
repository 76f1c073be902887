package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"stamprally/internal/domain"
)

const (
	maxEventNameLen = 200
	maxStoreNameLen = 100
	maxPrizeNameLen = 200
)

type eventService struct {
	eventRepo       domain.EventRepository
	storeRepo       domain.StoreRepository
	prizeRepo       domain.PrizeRepository
	progressRepo    domain.ProgressRepository
	achievementRepo domain.AchievementRepository
	qrGenerator     domain.QRGenerator
	mailer          domain.Mailer
	adminEmail      string
	logger          *slog.Logger
}

// NewEventService creates the admin-side EventService.
func NewEventService(
	eventRepo domain.EventRepository,
	storeRepo domain.StoreRepository,
	prizeRepo domain.PrizeRepository,
	progressRepo domain.ProgressRepository,
	achievementRepo domain.AchievementRepository,
	qrGenerator domain.QRGenerator,
	mailer domain.Mailer,
	adminEmail string,
	logger *slog.Logger,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		storeRepo:       storeRepo,
		prizeRepo:       prizeRepo,
		progressRepo:    progressRepo,
		achievementRepo: achievementRepo,
		qrGenerator:     qrGenerator,
		mailer:          mailer,
		adminEmail:      adminEmail,
		logger:          logger,
	}
}

func (s *eventService) Create(ctx context.Context, input domain.CreateEventInput) (*domain.Event, domain.QRCodeSet, error) {
	if err := validateCreateEventInput(input); err != nil {
		return nil, nil, err
	}

	eventID := strings.TrimSpace(input.ID)
	if eventID == "" {
		eventID = "evt_" + uuid.NewString()
	}

	now := time.Now()
	event := &domain.Event{
		ID:          eventID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      domain.EventDraft,
		Conditions:  input.Conditions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stores := make([]*domain.Store, 0, len(domain.StoreCodes))
	for _, code := range domain.StoreCodes {
		in := input.Stores[code]
		stores = append(stores, &domain.Store{
			EventID:      eventID,
			Code:         code,
			Name:         strings.TrimSpace(in.Name),
			Description:  in.Description,
			InstagramURL: in.InstagramURL,
			TwitterURL:   in.TwitterURL,
			TikTokURL:    in.TikTokURL,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	prizes := make([]*domain.Prize, 0, domain.MaxPrizeLines)
	for line := 1; line <= domain.MaxPrizeLines; line++ {
		in := input.Prizes[line]
		prizes = append(prizes, &domain.Prize{
			EventID:     eventID,
			LineCount:   line,
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			ValidUntil:  in.ValidUntil,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.eventRepo.CreateWithDetails(ctx, event, stores, prizes); err != nil {
		return nil, nil, fmt.Errorf("create event: %w", err)
	}

	qrCodes, err := s.generateQRCodes(eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("generate qr codes: %w", err)
	}

	// QR sheet delivery is best effort; event creation already committed.
	if s.adminEmail != "" {
		if err := s.mailer.Send(s.adminEmail,
			fmt.Sprintf("Stamp rally QR codes for %s", event.Name),
			qrSheetHTML(event, qrCodes), ""); err != nil {
			s.logger.ErrorContext(ctx, "send qr sheet email", "event_id", eventID, "err", err)
		}
	}

	return event, qrCodes, nil
}

func validateCreateEventInput(input domain.CreateEventInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > maxEventNameLen {
		return fmt.Errorf("event name must be 1-%d characters: %w", maxEventNameLen, domain.ErrInvalidInput)
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() || input.EndDate.Before(input.StartDate) {
		return fmt.Errorf("end date must not precede start date: %w", domain.ErrInvalidInput)
	}
	for _, code := range domain.StoreCodes {
		in, ok := input.Stores[code]
		if !ok || strings.TrimSpace(in.Name) == "" || len(in.Name) > maxStoreNameLen {
			return fmt.Errorf("store %s name must be 1-%d characters: %w", code, maxStoreNameLen, domain.ErrInvalidInput)
		}
	}
	for line := 1; line <= domain.MaxPrizeLines; line++ {
		in, ok := input.Prizes[line]
		if !ok || strings.TrimSpace(in.Name) == "" || len(in.Name) > maxPrizeNameLen {
			return fmt.Errorf("prize for line %d name must be 1-%d characters: %w", line, maxPrizeNameLen, domain.ErrInvalidInput)
		}
	}
	return nil
}

func (s *eventService) Get(ctx context.Context, eventID string) (*domain.EventDetail, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	stores, err := s.storeRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	prizes, err := s.prizeRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list prizes: %w", err)
	}
	return &domain.EventDetail{Event: event, Stores: stores, Prizes: prizes}, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) UpdateStatus(ctx context.Context, eventID string, status domain.EventStatus) error {
	if _, err := domain.ParseEventStatus(string(status)); err != nil {
		return domain.ErrInvalidInput
	}
	if err := s.eventRepo.UpdateStatus(ctx, eventID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update event status: %w", err)
	}
	return nil
}

func (s *eventService) RegenerateQRCodes(ctx context.Context, eventID string) (domain.QRCodeSet, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	codes, err := s.generateQRCodes(eventID)
	if err != nil {
		return nil, fmt.Errorf("generate qr codes: %w", err)
	}
	return codes, nil
}

func (s *eventService) Statistics(ctx context.Context, eventID string) (*domain.EventStatistics, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	participants, err := s.progressRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count participants: %w", err)
	}
	totals, err := s.progressRepo.SumVisitsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("sum visits: %w", err)
	}
	achievements, err := s.achievementRepo.CountByEventID(ctx, eventID, false)
	if err != nil {
		return nil, fmt.Errorf("count achievements: %w", err)
	}
	redeemed, err := s.achievementRepo.CountByEventID(ctx, eventID, true)
	if err != nil {
		return nil, fmt.Errorf("count redemptions: %w", err)
	}

	return &domain.EventStatistics{
		ParticipantCount: participants,
		StampCounts:      totals,
		Achievements:     achievements,
		Redeemed:         redeemed,
	}, nil
}

func (s *eventService) RedeemAchievement(ctx context.Context, visitorID, eventID string, lineCount int, store domain.StoreCode) error {
	if lineCount < 1 || lineCount > domain.MaxPrizeLines {
		return domain.ErrInvalidInput
	}
	if _, err := domain.ParseStoreCode(string(store)); err != nil {
		return domain.ErrInvalidInput
	}
	return s.achievementRepo.Redeem(ctx, visitorID, eventID, lineCount, store, time.Now())
}

func (s *eventService) generateQRCodes(eventID string) (domain.QRCodeSet, error) {
	codes := make(domain.QRCodeSet, len(domain.StoreCodes))
	for _, code := range domain.StoreCodes {
		dataURL, err := s.qrGenerator.DataURL(domain.StampURI(eventID, code))
		if err != nil {
			return nil, fmt.Errorf("store %s: %w", code, err)
		}
		codes[code] = dataURL
	}
	return codes, nil
}

func qrSheetHTML(event *domain.Event, codes domain.QRCodeSet) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h1>%s</h1><p>Print one QR code per store.</p>", event.Name))
	for _, code := range domain.StoreCodes {
		sb.WriteString(fmt.Sprintf(`<h2>Store %s</h2><img src=%q alt="Store %s QR" width="256" height="256">`,
			strings.ToUpper(string(code)), codes[code], strings.ToUpper(string(code))))
	}
	return sb.String()
}
