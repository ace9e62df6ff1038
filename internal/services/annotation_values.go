package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	MaxFlowLevel       = 5
	MaxCrampsLevel     = 5
	MaxNoteLength      = 2000
	legacyNoSymptom    = "None"
	legacyMenstruating = "Menstruating"
)

var (
	ErrInvalidAnnotation = errors.New("invalid annotation value")
	ErrCategoryMismatch  = errors.New("annotation value does not belong to category")
)

var clockTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// AnnotationValue is the typed field set of one category for one date.
type AnnotationValue interface {
	Category() Category
	IsEmpty() bool
	normalize() (AnnotationValue, error)
}

type PeriodEntry struct {
	Periods   bool `json:"periods,omitempty"`
	FlowLevel int  `json:"flowLevel,omitempty"`
}

func (PeriodEntry) Category() Category { return CategoryPeriod }

func (entry PeriodEntry) IsEmpty() bool {
	return !entry.Periods && entry.FlowLevel == 0
}

func (entry PeriodEntry) normalize() (AnnotationValue, error) {
	if entry.FlowLevel < 0 || entry.FlowLevel > MaxFlowLevel {
		return nil, fmt.Errorf("%w: flow level must be between 0 and %d", ErrInvalidAnnotation, MaxFlowLevel)
	}
	return entry, nil
}

type SymptomTagsEntry struct {
	Symptoms []string `json:"symptoms"`
}

func (SymptomTagsEntry) Category() Category { return CategorySymptomTags }

func (entry SymptomTagsEntry) IsEmpty() bool {
	return len(normalizeTags(entry.Symptoms)) == 0
}

func (entry SymptomTagsEntry) normalize() (AnnotationValue, error) {
	entry.Symptoms = normalizeTags(entry.Symptoms)
	return entry, nil
}

// DetailedSymptomsEntry is the all-in-one day record of the symptom popup.
// Its period, flow, weight, temperature and sex fields only surface in a
// merged day when the dedicated partition has nothing for that date.
type DetailedSymptomsEntry struct {
	Periods     bool     `json:"periods,omitempty"`
	FlowLevel   int      `json:"flowLevel,omitempty"`
	CrampsLevel int      `json:"crampsLevel,omitempty"`
	Sex         bool     `json:"sex,omitempty"`
	Symptoms    []string `json:"symptoms,omitempty"`
	Mood        []string `json:"mood,omitempty"`
	Habits      []string `json:"habits,omitempty"`
	BodyTemp    string   `json:"bodyTemp,omitempty"`
	Weight      string   `json:"weight,omitempty"`
}

func (DetailedSymptomsEntry) Category() Category { return CategoryDetailedSymptoms }

func (entry DetailedSymptomsEntry) IsEmpty() bool {
	return !entry.Periods &&
		entry.FlowLevel == 0 &&
		entry.CrampsLevel == 0 &&
		!entry.Sex &&
		len(normalizeTags(entry.Symptoms)) == 0 &&
		len(normalizeTags(entry.Mood)) == 0 &&
		len(normalizeTags(entry.Habits)) == 0 &&
		strings.TrimSpace(entry.BodyTemp) == "" &&
		strings.TrimSpace(entry.Weight) == ""
}

func (entry DetailedSymptomsEntry) normalize() (AnnotationValue, error) {
	if entry.FlowLevel < 0 || entry.FlowLevel > MaxFlowLevel {
		return nil, fmt.Errorf("%w: flow level must be between 0 and %d", ErrInvalidAnnotation, MaxFlowLevel)
	}
	if entry.CrampsLevel < 0 || entry.CrampsLevel > MaxCrampsLevel {
		return nil, fmt.Errorf("%w: cramps level must be between 0 and %d", ErrInvalidAnnotation, MaxCrampsLevel)
	}
	entry.Symptoms = normalizeTags(entry.Symptoms)
	entry.Mood = normalizeTags(entry.Mood)
	entry.Habits = normalizeTags(entry.Habits)
	entry.BodyTemp = strings.TrimSpace(entry.BodyTemp)
	entry.Weight = strings.TrimSpace(entry.Weight)
	if err := requirePositiveDecimal("temperature", entry.BodyTemp); err != nil {
		return nil, err
	}
	if err := requirePositiveDecimal("weight", entry.Weight); err != nil {
		return nil, err
	}
	return entry, nil
}

// LegacySymptomEntry is the single-symptom record the dashboard used to
// write before the tag and detailed partitions existed.
type LegacySymptomEntry struct {
	Symptom string `json:"symptom,omitempty"`
	Period  string `json:"period,omitempty"`
	Flow    string `json:"flow,omitempty"`
}

func (LegacySymptomEntry) Category() Category { return CategoryLegacySymptoms }

func (entry LegacySymptomEntry) IsEmpty() bool {
	symptom := strings.TrimSpace(entry.Symptom)
	return (symptom == "" || symptom == legacyNoSymptom) &&
		strings.TrimSpace(entry.Period) == "" &&
		strings.TrimSpace(entry.Flow) == ""
}

func (entry LegacySymptomEntry) normalize() (AnnotationValue, error) {
	entry.Symptom = strings.TrimSpace(entry.Symptom)
	entry.Period = strings.TrimSpace(entry.Period)
	entry.Flow = strings.TrimSpace(entry.Flow)
	return entry, nil
}

type DischargeEntry struct {
	Discharge string `json:"discharge"`
}

func (DischargeEntry) Category() Category { return CategoryDischarge }

func (entry DischargeEntry) IsEmpty() bool {
	return strings.TrimSpace(entry.Discharge) == ""
}

func (entry DischargeEntry) normalize() (AnnotationValue, error) {
	entry.Discharge = strings.TrimSpace(entry.Discharge)
	return entry, nil
}

type WeightEntry struct {
	Weight string `json:"weight"`
}

func (WeightEntry) Category() Category { return CategoryWeight }

func (entry WeightEntry) IsEmpty() bool {
	return strings.TrimSpace(entry.Weight) == ""
}

func (entry WeightEntry) normalize() (AnnotationValue, error) {
	entry.Weight = strings.TrimSpace(entry.Weight)
	if err := requirePositiveDecimal("weight", entry.Weight); err != nil {
		return nil, err
	}
	return entry, nil
}

type TemperatureEntry struct {
	Temperature string `json:"temperature"`
}

func (TemperatureEntry) Category() Category { return CategoryTemperature }

func (entry TemperatureEntry) IsEmpty() bool {
	return strings.TrimSpace(entry.Temperature) == ""
}

func (entry TemperatureEntry) normalize() (AnnotationValue, error) {
	entry.Temperature = strings.TrimSpace(entry.Temperature)
	if err := requirePositiveDecimal("temperature", entry.Temperature); err != nil {
		return nil, err
	}
	return entry, nil
}

type SexActivityEntry struct {
	Time   string `json:"time,omitempty"`
	Method string `json:"method,omitempty"`
}

func (SexActivityEntry) Category() Category { return CategorySexActivity }

func (entry SexActivityEntry) IsEmpty() bool {
	return strings.TrimSpace(entry.Time) == "" && strings.TrimSpace(entry.Method) == ""
}

func (entry SexActivityEntry) normalize() (AnnotationValue, error) {
	entry.Time = strings.TrimSpace(entry.Time)
	entry.Method = strings.TrimSpace(entry.Method)
	if entry.Time != "" && !clockTimePattern.MatchString(entry.Time) {
		return nil, fmt.Errorf("%w: time must be HH:MM", ErrInvalidAnnotation)
	}
	return entry, nil
}

type SymptomSelectionEntry struct {
	Symptoms []string `json:"symptoms"`
}

func (SymptomSelectionEntry) Category() Category { return CategorySymptomSelection }

func (entry SymptomSelectionEntry) IsEmpty() bool {
	return len(normalizeTags(entry.Symptoms)) == 0
}

func (entry SymptomSelectionEntry) normalize() (AnnotationValue, error) {
	entry.Symptoms = normalizeTags(entry.Symptoms)
	return entry, nil
}

type NoteEntry struct {
	Note string `json:"note"`
}

func (NoteEntry) Category() Category { return CategoryNote }

func (entry NoteEntry) IsEmpty() bool {
	return strings.TrimSpace(entry.Note) == ""
}

func (entry NoteEntry) normalize() (AnnotationValue, error) {
	if runes := []rune(entry.Note); len(runes) > MaxNoteLength {
		entry.Note = string(runes[:MaxNoteLength])
	}
	return entry, nil
}

// DecodeValue parses one date's JSON fields for the given category.
func DecodeValue(category Category, raw []byte) (AnnotationValue, error) {
	var (
		value AnnotationValue
		err   error
	)
	switch category {
	case CategoryPeriod:
		value, err = decodeInto[PeriodEntry](raw)
	case CategorySymptomTags:
		value, err = decodeInto[SymptomTagsEntry](raw)
	case CategoryDetailedSymptoms:
		value, err = decodeInto[DetailedSymptomsEntry](raw)
	case CategoryLegacySymptoms:
		value, err = decodeInto[LegacySymptomEntry](raw)
	case CategoryDischarge:
		value, err = decodeInto[DischargeEntry](raw)
	case CategoryWeight:
		value, err = decodeInto[WeightEntry](raw)
	case CategoryTemperature:
		value, err = decodeInto[TemperatureEntry](raw)
	case CategorySexActivity:
		value, err = decodeInto[SexActivityEntry](raw)
	case CategoryNote:
		value, err = decodeInto[NoteEntry](raw)
	case CategorySymptomSelection:
		value, err = decodeInto[SymptomSelectionEntry](raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(category))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnnotation, err)
	}
	return value, nil
}

func decodeInto[T AnnotationValue](raw []byte) (AnnotationValue, error) {
	var value T
	if len(strings.TrimSpace(string(raw))) == 0 || string(raw) == "null" {
		return value, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func normalizeTags(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	tags := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		tags = append(tags, trimmed)
	}
	if len(tags) == 0 {
		return nil
	}
	sort.Strings(tags)
	return tags
}

func requirePositiveDecimal(field string, value string) error {
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed <= 0 {
		return fmt.Errorf("%w: %s must be a positive number", ErrInvalidAnnotation, field)
	}
	return nil
}
