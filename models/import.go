package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Import records one persisted pipeline run.
type Import struct {
	bun.BaseModel `bun:"table:imports,alias:im"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Source    string    `bun:"source,notnull" json:"source"`
	ExportURL string    `bun:"export_url,notnull" json:"exportUrl"`
	RaceCount int       `bun:"race_count,notnull" json:"raceCount"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
