package models

import "time"

// AnnotationPartition holds one serialized "<category>_<userId>" mapping of
// ISO date to the category's fields.
type AnnotationPartition struct {
	Key       string `gorm:"column:partition_key;primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Payload   string `gorm:"not null;default:'{}'"`
	UpdatedAt time.Time
}
