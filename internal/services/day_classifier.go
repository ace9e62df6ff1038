package services

import (
	"fmt"
	"strings"
	"time"
)

type DayType string

const (
	DayTypeNone      DayType = "none"
	DayTypePeriod    DayType = "period"
	DayTypeFertile   DayType = "fertile"
	DayTypeOvulation DayType = "ovulation"
)

func (dayType DayType) rank() int {
	switch dayType {
	case DayTypePeriod:
		return 3
	case DayTypeOvulation:
		return 2
	case DayTypeFertile:
		return 1
	default:
		return 0
	}
}

type ClassifierScope string

const (
	// ScopeMonth only consults the window whose cycle starts in the same
	// month as the classified date.
	ScopeMonth ClassifierScope = "month"
	// ScopeWindow consults every window, so a period running past the end of
	// its start month still marks the following month.
	ScopeWindow ClassifierScope = "window"
)

func ParseClassifierScope(raw string) (ClassifierScope, error) {
	switch ClassifierScope(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ScopeMonth:
		return ScopeMonth, nil
	case ScopeWindow:
		return ScopeWindow, nil
	default:
		return "", fmt.Errorf("unknown classifier scope %q", raw)
	}
}

type DayClassifier struct {
	Scope ClassifierScope
}

func (classifier DayClassifier) Classify(date time.Time, windows []PredictionWindow) DayType {
	day := CalendarDate(date)
	result := DayTypeNone
	for _, window := range windows {
		if classifier.Scope != ScopeWindow && !sameMonth(window.CycleStart, day) {
			continue
		}
		if candidate := classifyInWindow(day, window); candidate.rank() > result.rank() {
			result = candidate
		}
	}
	return result
}

// Classify is the month-scoped classification.
func Classify(date time.Time, windows []PredictionWindow) DayType {
	return DayClassifier{Scope: ScopeMonth}.Classify(date, windows)
}

func classifyInWindow(day time.Time, window PredictionWindow) DayType {
	switch {
	case betweenInclusive(day, window.PeriodStart, window.PeriodEnd):
		return DayTypePeriod
	case sameDay(day, window.OvulationDay):
		return DayTypeOvulation
	case betweenInclusive(day, window.FertileStart, window.FertileEnd):
		return DayTypeFertile
	default:
		return DayTypeNone
	}
}
