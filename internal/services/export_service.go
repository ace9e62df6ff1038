package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ExportCSVHeaders = []string{
	"Date",
	"Day type",
	"Period",
	"Flow",
	"Cramps",
	"Symptoms",
	"Mood",
	"Habits",
	"Discharge",
	"Weight (kg)",
	"Body temperature (C)",
	"Sex time",
	"Sex method",
	"Notes",
}

type ExportEntry struct {
	Date        string   `json:"date"`
	DayType     DayType  `json:"dayType"`
	Period      bool     `json:"period"`
	FlowLevel   int      `json:"flowLevel"`
	CrampsLevel int      `json:"crampsLevel"`
	Symptoms    []string `json:"symptoms"`
	Mood        []string `json:"mood"`
	Habits      []string `json:"habits"`
	Discharge   string   `json:"discharge"`
	WeightKg    string   `json:"weightKg"`
	BodyTempC   string   `json:"bodyTempC"`
	SexTime     string   `json:"sexTime"`
	SexMethod   string   `json:"sexMethod"`
	Notes       string   `json:"notes"`
}

type ExportSummary struct {
	TotalEntries int    `json:"totalEntries"`
	HasData      bool   `json:"hasData"`
	DateFrom     string `json:"dateFrom"`
	DateTo       string `json:"dateTo"`
}

type ExportService struct {
	cycles      CalendarCycleReader
	annotations CalendarAnnotationReader
	classifier  DayClassifier
	horizon     int
}

func NewExportService(cycles CalendarCycleReader, annotations CalendarAnnotationReader, classifier DayClassifier, horizon int) *ExportService {
	if horizon <= 0 {
		horizon = DefaultHorizonCycles
	}
	return &ExportService{
		cycles:      cycles,
		annotations: annotations,
		classifier:  classifier,
		horizon:     horizon,
	}
}

// BuildEntries returns one entry per day in the range that has annotation
// data, a period flag or a predicted period or ovulation.
func (service *ExportService) BuildEntries(ctx context.Context, userID uint, span ExportRange) ([]ExportEntry, error) {
	records, err := service.cycles.LoadAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	windows := PredictLatest(records, service.horizon)
	snapshot, err := service.annotations.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load annotations: %w", err)
	}

	entries := make([]ExportEntry, 0)
	for day := CalendarDate(span.From); !day.After(CalendarDate(span.To)); day = day.AddDate(0, 0, 1) {
		annotation := snapshot.Day(day)
		dayType := service.classifier.Classify(day, windows)
		if !exportable(annotation, dayType) {
			continue
		}
		entries = append(entries, newExportEntry(day, dayType, annotation))
	}
	return entries, nil
}

func (service *ExportService) BuildSummary(ctx context.Context, userID uint, span ExportRange) (ExportSummary, error) {
	entries, err := service.BuildEntries(ctx, userID, span)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(entries) == 0 {
		return ExportSummary{}, nil
	}
	return ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     entries[0].Date,
		DateTo:       entries[len(entries)-1].Date,
	}, nil
}

func (entry ExportEntry) Columns() []string {
	return []string{
		entry.Date,
		string(entry.DayType),
		csvYesNo(entry.Period),
		csvLevel(entry.FlowLevel),
		csvLevel(entry.CrampsLevel),
		strings.Join(entry.Symptoms, "; "),
		strings.Join(entry.Mood, "; "),
		strings.Join(entry.Habits, "; "),
		entry.Discharge,
		entry.WeightKg,
		entry.BodyTempC,
		entry.SexTime,
		entry.SexMethod,
		entry.Notes,
	}
}

func exportable(annotation DayAnnotation, dayType DayType) bool {
	return annotation.HasData() ||
		annotation.PeriodFlag ||
		dayType == DayTypePeriod ||
		dayType == DayTypeOvulation
}

func newExportEntry(day time.Time, dayType DayType, annotation DayAnnotation) ExportEntry {
	entry := ExportEntry{
		Date:        FormatISODate(day),
		DayType:     dayType,
		Period:      annotation.PeriodFlag,
		FlowLevel:   annotation.FlowLevel,
		CrampsLevel: annotation.CrampsLevel,
		Symptoms:    nonNilTags(annotation.Symptoms),
		Mood:        nonNilTags(annotation.Mood),
		Habits:      nonNilTags(annotation.Habits),
		Discharge:   annotation.DischargeType,
		WeightKg:    annotation.WeightKg,
		BodyTempC:   annotation.BodyTempC,
		Notes:       annotation.Note,
	}
	if activity := annotation.SexualActivity; activity != nil {
		entry.SexTime = activity.Time
		entry.SexMethod = activity.Method
	}
	return entry
}

func nonNilTags(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func csvYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func csvLevel(level int) string {
	if level <= 0 {
		return ""
	}
	return strconv.Itoa(level)
}
