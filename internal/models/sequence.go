package models

import "time"

// Well-known sequence names.
const (
	SequenceJob             = "job"
	SequenceCompanyNovusarc = "company_novusarc"
)

// SequenceCounter holds the last value handed out for a named sequence.
// Rows are created on first use and only ever incremented.
type SequenceCounter struct {
	Name      string    `gorm:"type:varchar(64);primaryKey" json:"name"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
