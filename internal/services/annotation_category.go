package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCategory  = errors.New("unknown annotation category")
	ErrReadOnlyCategory = errors.New("annotation category is read-only")
)

// Category names one annotation partition. The string value is the
// partition key prefix and must never change for an existing category.
type Category string

const (
	CategoryPeriod           Category = "menstrual_period"
	CategorySymptomTags      Category = "symptoms_selection"
	CategoryDetailedSymptoms Category = "menstrual_symptoms_detailed"
	CategoryLegacySymptoms   Category = "menstrual_symptoms"
	CategoryDischarge        Category = "vaginal_discharge"
	CategoryWeight           Category = "weight_input"
	CategoryTemperature      Category = "temperature_input"
	CategorySexActivity      Category = "sex_activity"
	CategoryNote             Category = "day_note"

	// CategorySymptomSelection is the singular-named tag partition an older
	// selection popup wrote. It is read into the symptom set, never written.
	CategorySymptomSelection Category = "symptom_selection"
)

func AllCategories() []Category {
	return []Category{
		CategoryPeriod,
		CategorySymptomTags,
		CategoryDetailedSymptoms,
		CategoryLegacySymptoms,
		CategoryDischarge,
		CategoryWeight,
		CategoryTemperature,
		CategorySexActivity,
		CategoryNote,
		CategorySymptomSelection,
	}
}

func (category Category) Valid() bool {
	switch category {
	case CategoryPeriod,
		CategorySymptomTags,
		CategoryDetailedSymptoms,
		CategoryLegacySymptoms,
		CategoryDischarge,
		CategoryWeight,
		CategoryTemperature,
		CategorySexActivity,
		CategoryNote,
		CategorySymptomSelection:
		return true
	default:
		return false
	}
}

// ParseCategory accepts the partition prefix or one of the short route names
// ("period", "symptoms", "weight", ...).
func ParseCategory(raw string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := categoryAliases[normalized]; ok {
		return alias, nil
	}
	if category := Category(normalized); category.Valid() {
		return category, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

var categoryAliases = map[string]Category{
	"period":            CategoryPeriod,
	"symptoms":          CategorySymptomTags,
	"detailed-symptoms": CategoryDetailedSymptoms,
	"legacy-symptoms":   CategoryLegacySymptoms,
	"discharge":         CategoryDischarge,
	"weight":            CategoryWeight,
	"temperature":       CategoryTemperature,
	"sex-activity":      CategorySexActivity,
	"note":              CategoryNote,
	"symptom-selection": CategorySymptomSelection,
}

func (category Category) ReadOnly() bool {
	return category == CategorySymptomSelection
}

func PartitionKey(category Category, userID uint) string {
	return fmt.Sprintf("%s_%d", category, userID)
}
