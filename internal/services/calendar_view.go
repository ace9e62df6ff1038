package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/cyclecal/internal/models"
)

// CalendarDayDescriptor describes one day cell. DayType only reflects the
// predicted windows; DeclaredPeriod and CycleStartCount come from the cycles
// the user recorded, including earlier ones.
type CalendarDayDescriptor struct {
	DayOfMonth      int           `json:"dayOfMonth"`
	Date            string        `json:"date"`
	DayType         DayType       `json:"dayType"`
	DeclaredPeriod  bool          `json:"declaredPeriod"`
	CycleStartCount int           `json:"cycleStartCount"`
	IsToday         bool          `json:"isToday"`
	HasAnnotation   bool          `json:"hasAnnotation"`
	Annotation      DayAnnotation `json:"annotation"`
}

type CalendarCycleReader interface {
	LoadAll(ctx context.Context, userID uint) ([]models.CycleRecord, error)
}

type CalendarAnnotationReader interface {
	Snapshot(ctx context.Context, userID uint) (AnnotationSnapshot, error)
}

type CalendarOptions struct {
	WeekStart     time.Weekday
	HorizonCycles int
	Classifier    DayClassifier
	Location      *time.Location
	Now           func() time.Time
}

// CalendarService builds the month grid from scratch on every call.
type CalendarService struct {
	cycles      CalendarCycleReader
	annotations CalendarAnnotationReader
	options     CalendarOptions
}

func NewCalendarService(cycles CalendarCycleReader, annotations CalendarAnnotationReader, options CalendarOptions) *CalendarService {
	if options.HorizonCycles <= 0 {
		options.HorizonCycles = DefaultHorizonCycles
	}
	if options.Classifier.Scope == "" {
		options.Classifier.Scope = ScopeMonth
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return &CalendarService{
		cycles:      cycles,
		annotations: annotations,
		options:     options,
	}
}

// Build returns one descriptor per day of the month, preceded by nil cells so
// that index 0 falls on the configured first weekday.
func (service *CalendarService) Build(ctx context.Context, year int, month time.Month, userID uint) ([]*CalendarDayDescriptor, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}

	records, err := service.cycles.LoadAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	windows := PredictLatest(records, service.options.HorizonCycles)
	declared := indexDeclaredCycles(records)
	snapshot, err := service.annotations.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load annotations: %w", err)
	}

	monthStart, nextMonth := MonthRange(year, month)
	daysInMonth := nextMonth.AddDate(0, 0, -1).Day()
	leading := LeadingBlankCells(monthStart.Weekday(), service.options.WeekStart)
	today := FormatISODate(DateAtLocation(service.options.Now(), service.options.Location))

	cells := make([]*CalendarDayDescriptor, leading, leading+daysInMonth)
	for dayOfMonth := 1; dayOfMonth <= daysInMonth; dayOfMonth++ {
		date := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
		key := FormatISODate(date)
		annotation := snapshot.Day(date)

		cells = append(cells, &CalendarDayDescriptor{
			DayOfMonth:      dayOfMonth,
			Date:            key,
			DayType:         service.options.Classifier.Classify(date, windows),
			DeclaredPeriod:  declared.periodDays[key],
			CycleStartCount: declared.starts[key],
			IsToday:         key == today,
			HasAnnotation:   annotation.HasData(),
			Annotation:      annotation,
		})
	}
	return cells, nil
}

type declaredCycles struct {
	periodDays map[string]bool
	starts     map[string]int
}

func indexDeclaredCycles(records []models.CycleRecord) declaredCycles {
	index := declaredCycles{
		periodDays: make(map[string]bool),
		starts:     make(map[string]int),
	}
	for _, record := range records {
		start := CalendarDate(record.StartDate)
		index.starts[FormatISODate(start)]++
		for offset := 0; offset < record.PeriodDurationDays; offset++ {
			index.periodDays[FormatISODate(start.AddDate(0, 0, offset))] = true
		}
	}
	return index
}

func LeadingBlankCells(firstDay time.Weekday, weekStart time.Weekday) int {
	return (int(firstDay) - int(weekStart) + 7) % 7
}

func ParseWeekStart(raw string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	default:
		return time.Sunday, fmt.Errorf("unsupported week start %q", raw)
	}
}
