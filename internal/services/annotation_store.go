package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

type PartitionStore interface {
	LoadPartition(ctx context.Context, key string) (string, bool, error)
	SavePartition(ctx context.Context, key string, userID uint, payload string) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type SexualActivity struct {
	Time   string `json:"time,omitempty"`
	Method string `json:"method,omitempty"`
}

// DayAnnotation is the join of every annotation partition for one date.
// Symptoms is the single symptom set exposed to callers; the tag, detailed
// and legacy partitions all feed it.
type DayAnnotation struct {
	PeriodFlag     bool            `json:"periodFlag"`
	FlowLevel      int             `json:"flowLevel"`
	Symptoms       []string        `json:"symptoms"`
	Mood           []string        `json:"mood,omitempty"`
	Habits         []string        `json:"habits,omitempty"`
	CrampsLevel    int             `json:"crampsLevel,omitempty"`
	DischargeType  string          `json:"dischargeType,omitempty"`
	WeightKg       string          `json:"weightKg,omitempty"`
	BodyTempC      string          `json:"bodyTempC,omitempty"`
	SexualActivity *SexualActivity `json:"sexualActivity,omitempty"`
	Note           string          `json:"note,omitempty"`
}

// HasData reports whether anything besides the period flag is recorded.
func (annotation DayAnnotation) HasData() bool {
	return annotation.FlowLevel > 0 ||
		len(annotation.Symptoms) > 0 ||
		len(annotation.Mood) > 0 ||
		len(annotation.Habits) > 0 ||
		annotation.CrampsLevel > 0 ||
		annotation.DischargeType != "" ||
		annotation.WeightKg != "" ||
		annotation.BodyTempC != "" ||
		annotation.SexualActivity != nil ||
		strings.TrimSpace(annotation.Note) != ""
}

// AnnotationStore owns every annotation partition. Read-modify-write cycles
// are serialized inside one store; two processes writing the same partition
// still race and the last save wins.
type AnnotationStore struct {
	partitions PartitionStore
	mu         sync.Mutex
}

func NewAnnotationStore(partitions PartitionStore) *AnnotationStore {
	return &AnnotationStore{partitions: partitions}
}

func (store *AnnotationStore) Read(ctx context.Context, category Category, userID uint, date time.Time) (AnnotationValue, bool, error) {
	if !category.Valid() {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownCategory, string(category))
	}
	if userID == 0 {
		return nil, false, nil
	}

	entries, err := store.loadEntries(ctx, PartitionKey(category, userID))
	if err != nil {
		return nil, false, err
	}
	return decodeEntry(category, entries[FormatISODate(date)])
}

// Write stores value under the date, or removes the date key entirely when
// value is nil or empty.
func (store *AnnotationStore) Write(ctx context.Context, category Category, userID uint, date time.Time, value AnnotationValue) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, string(category))
	}
	if category.ReadOnly() {
		return fmt.Errorf("%w: %s", ErrReadOnlyCategory, category)
	}
	if userID == 0 {
		return ErrIdentityRequired
	}

	remove := value == nil || value.IsEmpty()
	var encoded json.RawMessage
	if !remove {
		if value.Category() != category {
			return fmt.Errorf("%w: %s", ErrCategoryMismatch, category)
		}
		normalized, err := value.normalize()
		if err != nil {
			return err
		}
		encoded, err = json.Marshal(normalized)
		if err != nil {
			return fmt.Errorf("encode %s entry: %w", category, err)
		}
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	key := PartitionKey(category, userID)
	entries, err := store.loadEntries(ctx, key)
	if err != nil {
		return err
	}

	dateKey := FormatISODate(date)
	if remove {
		if _, present := entries[dateKey]; !present {
			return nil
		}
		delete(entries, dateKey)
	} else {
		entries[dateKey] = encoded
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode partition %s: %w", key, err)
	}
	if err := store.partitions.SavePartition(ctx, key, userID, string(payload)); err != nil {
		return fmt.Errorf("save partition %s: %w", key, err)
	}
	return nil
}

func (store *AnnotationStore) Merge(ctx context.Context, date time.Time, userID uint) (DayAnnotation, error) {
	snapshot, err := store.Snapshot(ctx, userID)
	if err != nil {
		return DayAnnotation{}, err
	}
	return snapshot.Day(date), nil
}

// AnnotationSnapshot holds every partition of one user as loaded by a single
// Snapshot call. Day lookups never touch the backend.
type AnnotationSnapshot struct {
	partitions map[Category]map[string]json.RawMessage
}

// Snapshot loads each partition of the user once. An unresolved user gets an
// empty snapshot.
func (store *AnnotationStore) Snapshot(ctx context.Context, userID uint) (AnnotationSnapshot, error) {
	snapshot := AnnotationSnapshot{partitions: make(map[Category]map[string]json.RawMessage)}
	if userID == 0 {
		return snapshot, nil
	}

	for _, category := range AllCategories() {
		entries, err := store.loadEntries(ctx, PartitionKey(category, userID))
		if err != nil {
			return AnnotationSnapshot{}, err
		}
		snapshot.partitions[category] = entries
	}
	return snapshot, nil
}

func (snapshot AnnotationSnapshot) value(category Category, date time.Time) (AnnotationValue, bool) {
	value, found, _ := decodeEntry(category, snapshot.partitions[category][FormatISODate(date)])
	return value, found
}

// Day joins every partition entry recorded for date.
func (snapshot AnnotationSnapshot) Day(date time.Time) DayAnnotation {
	annotation := DayAnnotation{Symptoms: []string{}}
	symptoms := make([]string, 0)
	present := make(map[Category]bool)
	var detailed *DetailedSymptomsEntry

	for _, category := range AllCategories() {
		value, found := snapshot.value(category, date)
		if !found {
			continue
		}
		present[category] = true

		switch entry := value.(type) {
		case PeriodEntry:
			annotation.PeriodFlag = annotation.PeriodFlag || entry.Periods
			annotation.FlowLevel = entry.FlowLevel
		case SymptomTagsEntry:
			symptoms = append(symptoms, entry.Symptoms...)
		case SymptomSelectionEntry:
			symptoms = append(symptoms, entry.Symptoms...)
		case DetailedSymptomsEntry:
			symptoms = append(symptoms, entry.Symptoms...)
			annotation.Mood = normalizeTags(entry.Mood)
			annotation.Habits = normalizeTags(entry.Habits)
			annotation.CrampsLevel = entry.CrampsLevel
			detailed = &entry
		case LegacySymptomEntry:
			if symptom := strings.TrimSpace(entry.Symptom); symptom != "" && symptom != legacyNoSymptom {
				symptoms = append(symptoms, symptom)
			}
			if strings.EqualFold(strings.TrimSpace(entry.Period), legacyMenstruating) {
				annotation.PeriodFlag = true
			}
		case DischargeEntry:
			annotation.DischargeType = strings.TrimSpace(entry.Discharge)
		case WeightEntry:
			annotation.WeightKg = strings.TrimSpace(entry.Weight)
		case TemperatureEntry:
			annotation.BodyTempC = strings.TrimSpace(entry.Temperature)
		case SexActivityEntry:
			annotation.SexualActivity = &SexualActivity{
				Time:   strings.TrimSpace(entry.Time),
				Method: strings.TrimSpace(entry.Method),
			}
		case NoteEntry:
			annotation.Note = entry.Note
		}
	}

	if detailed != nil {
		foldDetailedEntry(&annotation, *detailed, present)
	}
	if tags := normalizeTags(symptoms); tags != nil {
		annotation.Symptoms = tags
	}
	return annotation
}

// foldDetailedEntry fills the fields a detailed record shares with a
// dedicated partition, for dates where that partition has no entry.
func foldDetailedEntry(annotation *DayAnnotation, entry DetailedSymptomsEntry, present map[Category]bool) {
	if !present[CategoryPeriod] {
		annotation.PeriodFlag = annotation.PeriodFlag || entry.Periods
		annotation.FlowLevel = entry.FlowLevel
	}
	if !present[CategoryWeight] {
		annotation.WeightKg = strings.TrimSpace(entry.Weight)
	}
	if !present[CategoryTemperature] {
		annotation.BodyTempC = strings.TrimSpace(entry.BodyTemp)
	}
	if !present[CategorySexActivity] && entry.Sex {
		annotation.SexualActivity = &SexualActivity{}
	}
}

// Clear drops every partition owned by the user.
func (store *AnnotationStore) Clear(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrIdentityRequired
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.partitions.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("clear annotations: %w", err)
	}
	return nil
}

// loadEntries fails open: a missing or unreadable payload is an empty map.
// Only a backend error is returned.
func (store *AnnotationStore) loadEntries(ctx context.Context, key string) (map[string]json.RawMessage, error) {
	payload, exists, err := store.partitions.LoadPartition(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load partition %s: %w", key, err)
	}

	entries := map[string]json.RawMessage{}
	if !exists || strings.TrimSpace(payload) == "" {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(payload), &entries); err != nil || entries == nil {
		return map[string]json.RawMessage{}, nil
	}
	return entries, nil
}

func decodeEntry(category Category, raw json.RawMessage) (AnnotationValue, bool, error) {
	if len(raw) == 0 {
		return nil, false, nil
	}
	value, err := DecodeValue(category, raw)
	if err != nil || value.IsEmpty() {
		return nil, false, nil
	}
	return value, true, nil
}
