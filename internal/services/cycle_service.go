package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/cyclecal/internal/models"
)

var (
	ErrIdentityRequired = errors.New("resolved user identity is required")
	ErrCycleNotFound    = errors.New("cycle not found")
	ErrInvalidMonth     = errors.New("invalid month")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", err.Field, err.Reason)
}

type CycleInput struct {
	StartDate          time.Time
	CycleLengthDays    int
	PeriodDurationDays int
}

type CycleBackend interface {
	ListByUser(ctx context.Context, userID uint) ([]models.CycleRecord, error)
	Create(ctx context.Context, record *models.CycleRecord) error
	DeleteByUserAndRange(ctx context.Context, userID uint, from time.Time, to time.Time) (int64, error)
	DeleteByUserAndID(ctx context.Context, userID uint, id uint) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
}

// CycleService is the ordered view over a user's declared cycles. The backend
// is the only state; nothing derived from it is kept between calls.
type CycleService struct {
	backend CycleBackend
}

func NewCycleService(backend CycleBackend) *CycleService {
	return &CycleService{backend: backend}
}

func (service *CycleService) LoadAll(ctx context.Context, userID uint) ([]models.CycleRecord, error) {
	if userID == 0 {
		return []models.CycleRecord{}, nil
	}
	records, err := service.backend.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cycles: %w", err)
	}
	SortCycles(records)
	return records, nil
}

func (service *CycleService) Create(ctx context.Context, userID uint, input CycleInput) (models.CycleRecord, error) {
	if userID == 0 {
		return models.CycleRecord{}, ErrIdentityRequired
	}
	if err := ValidateCycleInput(input); err != nil {
		return models.CycleRecord{}, err
	}

	record := models.CycleRecord{
		UserID:             userID,
		StartDate:          CalendarDate(input.StartDate),
		PeriodDurationDays: input.PeriodDurationDays,
		CycleLengthDays:    input.CycleLengthDays,
	}
	if err := service.backend.Create(ctx, &record); err != nil {
		return models.CycleRecord{}, fmt.Errorf("create cycle: %w", err)
	}
	return record, nil
}

// DeleteForMonth removes every cycle of the user that starts in the given
// calendar month. month is 1-based.
func (service *CycleService) DeleteForMonth(ctx context.Context, userID uint, year int, month time.Month) (int64, error) {
	if userID == 0 {
		return 0, ErrIdentityRequired
	}
	if month < time.January || month > time.December {
		return 0, ErrInvalidMonth
	}
	from, to := MonthRange(year, month)
	deleted, err := service.backend.DeleteByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return 0, fmt.Errorf("delete cycles for %04d-%02d: %w", year, int(month), err)
	}
	return deleted, nil
}

func (service *CycleService) DeleteByID(ctx context.Context, userID uint, id uint) error {
	if userID == 0 {
		return ErrIdentityRequired
	}
	deleted, err := service.backend.DeleteByUserAndID(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete cycle %d: %w", id, err)
	}
	if deleted == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func (service *CycleService) DeleteAll(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, ErrIdentityRequired
	}
	deleted, err := service.backend.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete cycles: %w", err)
	}
	return deleted, nil
}

func ValidateCycleInput(input CycleInput) error {
	if input.StartDate.IsZero() {
		return &ValidationError{Field: "startDate", Reason: "is required"}
	}
	if input.PeriodDurationDays < models.MinPeriodDurationDays || input.PeriodDurationDays > models.MaxPeriodDurationDays {
		return &ValidationError{
			Field:  "periodDuration",
			Reason: fmt.Sprintf("must be between %d and %d days", models.MinPeriodDurationDays, models.MaxPeriodDurationDays),
		}
	}
	if input.CycleLengthDays < models.MinCycleLengthDays || input.CycleLengthDays > models.MaxCycleLengthDays {
		return &ValidationError{
			Field:  "cycleLength",
			Reason: fmt.Sprintf("must be between %d and %d days", models.MinCycleLengthDays, models.MaxCycleLengthDays),
		}
	}
	if input.PeriodDurationDays > input.CycleLengthDays {
		return &ValidationError{Field: "periodDuration", Reason: "must not exceed cycle length"}
	}
	return nil
}

func SortCycles(records []models.CycleRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].StartDate.Equal(records[j].StartDate) {
			return records[i].ID < records[j].ID
		}
		return records[i].StartDate.Before(records[j].StartDate)
	})
}

// LatestCycle expects records sorted ascending by start date.
func LatestCycle(records []models.CycleRecord) (models.CycleRecord, bool) {
	if len(records) == 0 {
		return models.CycleRecord{}, false
	}
	return records[len(records)-1], true
}
