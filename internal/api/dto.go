package api

import (
	"github.com/terraincognita07/cyclecal/internal/models"
	"github.com/terraincognita07/cyclecal/internal/services"
)

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type userResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type cycleInput struct {
	StartDate      string `json:"startDate"`
	CycleLength    int    `json:"cycleLength"`
	PeriodDuration int    `json:"periodDuration"`
}

type cycleResponse struct {
	ID             uint   `json:"id"`
	CycleStartDate string `json:"cycleStartDate"`
	PeriodDuration int    `json:"periodDuration"`
	CycleLength    int    `json:"cycleLength"`
}

type predictionResponse struct {
	CycleIndex   int    `json:"cycleIndex"`
	CycleStart   string `json:"cycleStart"`
	PeriodStart  string `json:"periodStart"`
	PeriodEnd    string `json:"periodEnd"`
	FertileStart string `json:"fertileStart"`
	FertileEnd   string `json:"fertileEnd"`
	OvulationDay string `json:"ovulationDay"`
}

type annotationResponse struct {
	Category services.Category        `json:"category"`
	Date     string                   `json:"date"`
	Value    services.AnnotationValue `json:"value"`
}

type dayResponse struct {
	Date       string                 `json:"date"`
	DayType    services.DayType       `json:"dayType"`
	Annotation services.DayAnnotation `json:"annotation"`
}

func newUserResponse(user models.User) userResponse {
	return userResponse{ID: user.ID, Email: user.Email}
}

func newCycleResponse(record models.CycleRecord) cycleResponse {
	return cycleResponse{
		ID:             record.ID,
		CycleStartDate: services.FormatISODate(record.StartDate),
		PeriodDuration: record.PeriodDurationDays,
		CycleLength:    record.CycleLengthDays,
	}
}

func newPredictionResponse(window services.PredictionWindow) predictionResponse {
	return predictionResponse{
		CycleIndex:   window.CycleIndex,
		CycleStart:   services.FormatISODate(window.CycleStart),
		PeriodStart:  services.FormatISODate(window.PeriodStart),
		PeriodEnd:    services.FormatISODate(window.PeriodEnd),
		FertileStart: services.FormatISODate(window.FertileStart),
		FertileEnd:   services.FormatISODate(window.FertileEnd),
		OvulationDay: services.FormatISODate(window.OvulationDay),
	}
}
