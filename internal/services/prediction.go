package services

import (
	"time"

	"github.com/terraincognita07/cyclecal/internal/models"
)

const (
	DefaultHorizonCycles = 3

	fertileStartOffsetDays = 10
	fertileEndOffsetDays   = 15
	ovulationOffsetDays    = 13
)

type PredictionWindow struct {
	CycleIndex   int
	CycleStart   time.Time
	PeriodStart  time.Time
	PeriodEnd    time.Time
	FertileStart time.Time
	FertileEnd   time.Time
	OvulationDay time.Time
}

// Predict projects horizonCycles windows from the most recent declared cycle.
// Each window starts one calendar month after the previous one and uses fixed
// offsets tuned for a 28-day cycle; CycleLengthDays does not move them.
func Predict(last models.CycleRecord, horizonCycles int) []PredictionWindow {
	if horizonCycles <= 0 {
		horizonCycles = DefaultHorizonCycles
	}

	periodDays := last.PeriodDurationDays
	if periodDays < models.MinPeriodDurationDays {
		periodDays = models.MinPeriodDurationDays
	}

	anchor := CalendarDate(last.StartDate)
	windows := make([]PredictionWindow, 0, horizonCycles)
	for index := 0; index < horizonCycles; index++ {
		cycleStart := anchor.AddDate(0, index, 0)
		windows = append(windows, PredictionWindow{
			CycleIndex:   index,
			CycleStart:   cycleStart,
			PeriodStart:  cycleStart,
			PeriodEnd:    cycleStart.AddDate(0, 0, periodDays-1),
			FertileStart: cycleStart.AddDate(0, 0, fertileStartOffsetDays),
			FertileEnd:   cycleStart.AddDate(0, 0, fertileEndOffsetDays),
			OvulationDay: cycleStart.AddDate(0, 0, ovulationOffsetDays),
		})
	}
	return windows
}

// PredictLatest predicts from the last record of an ascending cycle list.
// No records means no windows.
func PredictLatest(records []models.CycleRecord, horizonCycles int) []PredictionWindow {
	last, ok := LatestCycle(records)
	if !ok {
		return []PredictionWindow{}
	}
	return Predict(last, horizonCycles)
}
