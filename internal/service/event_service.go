package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/models"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event")
)

const clockLayout = "15:04"

type CreateTierInput struct {
	Name          string
	Price         decimal.Decimal
	MaxPerUser    int
	TotalQuantity int
	SalesStart    time.Time
	SalesEnd      time.Time
}

type CreateEventInput struct {
	CategoryID  uint
	Title       string
	Description string
	Location    string
	Address     string
	EventDate   time.Time
	StartTime   string
	EndTime     string
	Status      models.EventStatus
	ImageURL    string
	Tiers       []CreateTierInput
}

type EventService interface {
	CreateEvent(ctx context.Context, organizerID string, in CreateEventInput) (*models.Event, error)
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListTiers(ctx context.Context, eventID uint) ([]models.TicketTier, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	tierRepo  repository.TierRepository
	publisher Publisher
}

func NewEventService(eventRepo repository.EventRepository, tierRepo repository.TierRepository, publisher Publisher) EventService {
	return &eventService{eventRepo: eventRepo, tierRepo: tierRepo, publisher: publisher}
}

// CreateEvent stores the event and its tiers in one transaction.
func (s *eventService) CreateEvent(ctx context.Context, organizerID string, in CreateEventInput) (*models.Event, error) {
	event, err := newEvent(organizerID, in)
	if err != nil {
		return nil, err
	}

	err = s.eventRepo.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.eventRepo.Create(ctx, tx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		for i := range event.Tiers {
			event.Tiers[i].EventID = event.ID
		}
		if err := s.tierRepo.CreateBatch(ctx, tx, event.Tiers); err != nil {
			return fmt.Errorf("create tiers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish("event.created", event); err != nil {
			log.Printf("[EventService] publish event.created failed: %v", err)
		}
	}

	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.FindPublishedByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListTiers(ctx context.Context, eventID uint) ([]models.TicketTier, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Tiers == nil {
		return []models.TicketTier{}, nil
	}
	return event.Tiers, nil
}

func newEvent(organizerID string, in CreateEventInput) (*models.Event, error) {
	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	switch {
	case organizerID == "":
		return nil, fmt.Errorf("%w: organizer is required", ErrInvalidEvent)
	case title == "" || location == "":
		return nil, fmt.Errorf("%w: title and location are required", ErrInvalidEvent)
	case in.EventDate.IsZero():
		return nil, fmt.Errorf("%w: event_date is required", ErrInvalidEvent)
	case len(in.Tiers) == 0:
		return nil, fmt.Errorf("%w: at least one ticket tier is required", ErrInvalidEvent)
	}

	if err := checkTimes(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.EventDraft
	}
	if status != models.EventDraft && status != models.EventPublished {
		return nil, fmt.Errorf("%w: new events must be draft or published", ErrInvalidEvent)
	}

	tiers := make([]models.TicketTier, 0, len(in.Tiers))
	for i, t := range in.Tiers {
		tier, err := newTier(t)
		if err != nil {
			return nil, fmt.Errorf("tier %d: %w", i+1, err)
		}
		tiers = append(tiers, tier)
	}

	return &models.Event{
		OrganizerID: organizerID,
		CategoryID:  in.CategoryID,
		Title:       title,
		Description: in.Description,
		Location:    location,
		Address:     in.Address,
		EventDate:   in.EventDate,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Status:      status,
		ImageURL:    in.ImageURL,
		Tiers:       tiers,
	}, nil
}

func newTier(in CreateTierInput) (models.TicketTier, error) {
	name := strings.TrimSpace(in.Name)
	maxPerUser := in.MaxPerUser
	if maxPerUser == 0 {
		maxPerUser = 1
	}

	switch {
	case name == "":
		return models.TicketTier{}, fmt.Errorf("%w: tier name is required", ErrInvalidEvent)
	case in.Price.IsNegative():
		return models.TicketTier{}, fmt.Errorf("%w: price must not be negative", ErrInvalidEvent)
	case in.TotalQuantity < 0:
		return models.TicketTier{}, fmt.Errorf("%w: total_quantity must not be negative", ErrInvalidEvent)
	case maxPerUser < 0:
		return models.TicketTier{}, fmt.Errorf("%w: max_per_user must be positive", ErrInvalidEvent)
	case in.SalesStart.IsZero() || in.SalesEnd.IsZero():
		return models.TicketTier{}, fmt.Errorf("%w: sales_start and sales_end are required", ErrInvalidEvent)
	case !in.SalesEnd.After(in.SalesStart):
		return models.TicketTier{}, fmt.Errorf("%w: sales_end must be after sales_start", ErrInvalidEvent)
	}

	return models.TicketTier{
		Name:          name,
		Price:         in.Price,
		MaxPerUser:    maxPerUser,
		TotalQuantity: in.TotalQuantity,
		SalesStart:    in.SalesStart,
		SalesEnd:      in.SalesEnd,
	}, nil
}

func checkTimes(start, end string) error {
	var startAt, endAt time.Time
	var err error
	if start != "" {
		if startAt, err = time.Parse(clockLayout, start); err != nil {
			return fmt.Errorf("%w: start_time must be HH:MM", ErrInvalidEvent)
		}
	}
	if end != "" {
		if endAt, err = time.Parse(clockLayout, end); err != nil {
			return fmt.Errorf("%w: end_time must be HH:MM", ErrInvalidEvent)
		}
	}
	if start != "" && end != "" && !endAt.After(startAt) {
		return fmt.Errorf("%w: end_time must be after start_time", ErrInvalidEvent)
	}
	return nil
}
