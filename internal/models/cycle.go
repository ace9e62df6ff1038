package models

import "time"

const (
	MinPeriodDurationDays = 1
	MaxPeriodDurationDays = 15
	MinCycleLengthDays    = 20
	MaxCycleLengthDays    = 40
)

type CycleRecord struct {
	ID                 uint      `gorm:"primaryKey"`
	UserID             uint      `gorm:"not null;index:idx_cycles_user_start"`
	StartDate          time.Time `gorm:"type:date;not null;index:idx_cycles_user_start"`
	PeriodDurationDays int       `gorm:"not null"`
	CycleLengthDays    int       `gorm:"not null"`
	CreatedAt          time.Time
}

func (CycleRecord) TableName() string {
	return "cycles"
}
