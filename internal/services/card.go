package services

import (
	"context"
	"errors"
	"fmt"

	"stamprally/internal/bingo"
	"stamprally/internal/domain"
)

type cardService struct {
	eventRepo       domain.EventRepository
	storeRepo       domain.StoreRepository
	prizeRepo       domain.PrizeRepository
	progressRepo    domain.ProgressRepository
	achievementRepo domain.AchievementRepository
}

// NewCardService creates a CardService with the given repositories.
func NewCardService(
	eventRepo domain.EventRepository,
	storeRepo domain.StoreRepository,
	prizeRepo domain.PrizeRepository,
	progressRepo domain.ProgressRepository,
	achievementRepo domain.AchievementRepository,
) domain.CardService {
	return &cardService{
		eventRepo:       eventRepo,
		storeRepo:       storeRepo,
		prizeRepo:       prizeRepo,
		progressRepo:    progressRepo,
		achievementRepo: achievementRepo,
	}
}

func (s *cardService) GetActiveEvent(ctx context.Context) (*domain.Event, error) {
	event, err := s.eventRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get active event: %w", err)
	}
	return event, nil
}

func (s *cardService) GetCard(ctx context.Context, eventID, visitorID string) (*domain.BingoCard, error) {
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

	// No progress yet is a valid state: all counters zero.
	progress, err := s.progressRepo.GetByVisitorAndEvent(ctx, visitorID, eventID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get progress: %w", err)
		}
		progress = &domain.Progress{VisitorID: visitorID, EventID: eventID}
	}

	achieved, err := s.achievementRepo.ListLineCounts(ctx, visitorID, eventID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	storesInfo := make(map[domain.StoreCode]domain.CardStoreInfo, len(stores))
	for _, store := range stores {
		storesInfo[store.Code] = domain.CardStoreInfo{
			Name:         store.Name,
			Description:  store.Description,
			InstagramURL: store.InstagramURL,
			TwitterURL:   store.TwitterURL,
			TikTokURL:    store.TikTokURL,
		}
	}

	prizesInfo := make(map[int]domain.CardPrizeInfo, len(prizes))
	for _, prize := range prizes {
		info := domain.CardPrizeInfo{
			Name:        prize.Name,
			Description: prize.Description,
		}
		if prize.ValidUntil != nil {
			info.ValidUntil = prize.ValidUntil.Format("2006-01-02")
		}
		prizesInfo[prize.LineCount] = info
	}

	states := bingo.CellStates(*progress)
	cells := make([]domain.CardCell, len(bingo.Layout))
	for i, cell := range bingo.Layout {
		cells[i] = domain.CardCell{
			Store:     cell.Store,
			Visit:     cell.Visit,
			Completed: states[i],
		}
	}

	return &domain.BingoCard{
		Event:  event,
		Stores: storesInfo,
		Prizes: prizesInfo,
		Progress: domain.ProgressCounters{
			StoreAVisits: progress.StoreAVisits,
			StoreBVisits: progress.StoreBVisits,
			StoreCVisits: progress.StoreCVisits,
			StoreDVisits: progress.StoreDVisits,
		},
		Cells:         cells,
		LineCount:     bingo.LineCount(*progress),
		AchievedLines: achieved,
	}, nil
}
