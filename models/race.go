package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Race is one calendar entry read from the race sheet. Races are built once
// by the sheets pipeline and never modified afterwards.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:r"`

	// Snapshot bookkeeping, only set when a race is persisted.
	ImportID int64 `bun:"import_id,pk" json:"-"`
	Position int   `bun:"position,pk" json:"-"`

	ID          int      `bun:"race_id,notnull" json:"id"`
	Name        string   `bun:"name,notnull" json:"name"`
	Discipline  string   `bun:"discipline,notnull" json:"discipline"`
	Disciplines []string `bun:"disciplines,array" json:"disciplines"`
	Format      string   `bun:"format" json:"format,omitempty"`
	Formats     []string `bun:"formats,array" json:"formats"`
	Modality    string   `bun:"modality" json:"modality,omitempty"`
	Modalities  []string `bun:"modalities,array" json:"modalities"`

	City     string `bun:"city" json:"city,omitempty"`
	Province string `bun:"province" json:"province,omitempty"`
	Country  string `bun:"country" json:"country,omitempty"`
	Location string `bun:"location,notnull" json:"location"`

	StartDate time.Time  `bun:"start_date,notnull" json:"startDate"`
	EndDate   *time.Time `bun:"end_date" json:"endDate,omitempty"`

	Distance            *float64             `bun:"distance" json:"distance,omitempty"`
	Elevation           *float64             `bun:"elevation" json:"elevation,omitempty"`
	DisciplineDistances []DisciplineDistance `bun:"discipline_distances,type:jsonb" json:"disciplineDistances,omitempty"`

	Stages       *int    `bun:"stages" json:"stages,omitempty"`
	Days         *int    `bun:"days" json:"days,omitempty"`
	StageDetails []Stage `bun:"stage_details,type:jsonb" json:"stageDetails,omitempty"`

	Instagram       string `bun:"instagram" json:"instagram,omitempty"`
	ContactPhone    string `bun:"contact_phone" json:"contactPhone,omitempty"`
	Website         string `bun:"website" json:"website,omitempty"`
	RegistrationURL string `bun:"registration_url" json:"registrationUrl,omitempty"`
}

// DisciplineDistance pairs a discipline or format label with the distances
// (km) offered under it, in sheet order.
type DisciplineDistance struct {
	Discipline string    `json:"discipline"`
	Distances  []float64 `json:"distances"`
}

// Stage is one leg of a multi-stage race. Dates are kept as written in the sheet.
type Stage struct {
	Number    int      `json:"number"`
	Name      string   `json:"name,omitempty"`
	Distance  *float64 `json:"distance,omitempty"`
	Elevation *float64 `json:"elevation,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
}
