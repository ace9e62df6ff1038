package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/cyclecal/internal/models"
)

func TestPredictShiftsByCalendarMonth(t *testing.T) {
	t.Parallel()

	windows := Predict(makeCycle(1, "2024-01-01", 5, 28), 3)
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}

	expectedStarts := []string{"2024-01-01", "2024-02-01", "2024-03-01"}
	expectedEnds := []string{"2024-01-05", "2024-02-05", "2024-03-05"}
	for index, window := range windows {
		if window.CycleIndex != index {
			t.Fatalf("window %d: expected cycle index %d, got %d", index, index, window.CycleIndex)
		}
		if got := FormatISODate(window.PeriodStart); got != expectedStarts[index] {
			t.Fatalf("window %d: expected period start %s, got %s", index, expectedStarts[index], got)
		}
		if got := FormatISODate(window.PeriodEnd); got != expectedEnds[index] {
			t.Fatalf("window %d: expected period end %s, got %s", index, expectedEnds[index], got)
		}
	}
}

func TestPredictOffsetsIgnoreCycleLength(t *testing.T) {
	t.Parallel()

	for _, cycleDays := range []int{20, 28, 35, 40} {
		for _, periodDays := range []int{1, 5, 15} {
			if periodDays > cycleDays {
				continue
			}
			for _, window := range Predict(makeCycle(1, "2025-05-17", periodDays, cycleDays), 4) {
				if got := daysBetween(window.PeriodStart, window.PeriodEnd); got != periodDays-1 {
					t.Fatalf("cycle %d period %d: expected period span %d, got %d", cycleDays, periodDays, periodDays-1, got)
				}
				if got := daysBetween(window.FertileStart, window.FertileEnd); got != 5 {
					t.Fatalf("cycle %d: expected fertile span 5, got %d", cycleDays, got)
				}
				if got := daysBetween(window.CycleStart, window.OvulationDay); got != 13 {
					t.Fatalf("cycle %d: expected ovulation offset 13, got %d", cycleDays, got)
				}
				if got := daysBetween(window.CycleStart, window.FertileStart); got != 10 {
					t.Fatalf("cycle %d: expected fertile offset 10, got %d", cycleDays, got)
				}
			}
		}
	}
}

func TestPredictDefaultsHorizon(t *testing.T) {
	t.Parallel()

	windows := Predict(makeCycle(1, "2024-06-10", 4, 30), 0)
	if len(windows) != DefaultHorizonCycles {
		t.Fatalf("expected %d windows, got %d", DefaultHorizonCycles, len(windows))
	}
}

func TestPredictLatestUsesOnlyMostRecentRecord(t *testing.T) {
	t.Parallel()

	latest := makeCycle(1, "2024-03-02", 6, 30)
	withHistory := []models.CycleRecord{
		makeCycle(1, "2023-11-20", 3, 22),
		makeCycle(1, "2024-01-15", 7, 35),
		latest,
	}

	fromHistory := PredictLatest(withHistory, 3)
	fromLatest := Predict(latest, 3)
	if len(fromHistory) != len(fromLatest) {
		t.Fatalf("expected %d windows, got %d", len(fromLatest), len(fromHistory))
	}
	for index := range fromLatest {
		if fromHistory[index] != fromLatest[index] {
			t.Fatalf("window %d differs: %+v vs %+v", index, fromHistory[index], fromLatest[index])
		}
	}
}

func TestPredictLatestWithoutRecords(t *testing.T) {
	t.Parallel()

	windows := PredictLatest(nil, 3)
	if len(windows) != 0 {
		t.Fatalf("expected no windows, got %d", len(windows))
	}
	if got := Classify(mustParseDay("2024-01-14"), windows); got != DayTypeNone {
		t.Fatalf("expected none without windows, got %s", got)
	}
}

func TestPredictMonthShiftNormalizesShortMonths(t *testing.T) {
	t.Parallel()

	windows := Predict(makeCycle(1, "2024-01-31", 5, 28), 2)
	if got := FormatISODate(windows[1].CycleStart); got != "2024-03-02" {
		t.Fatalf("expected 2024-01-31 plus one month to normalize to 2024-03-02, got %s", got)
	}
}

func daysBetween(from time.Time, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
