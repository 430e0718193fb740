package models

import (
	"time"

	"github.com/lib/pq"
)

type Visualization struct {
	ID        int            `db:"id" json:"id"`
	UserID    int            `db:"user_id" json:"user_id"`
	ChartType string         `db:"chart_type" json:"chart_type"`
	FilePath  string         `db:"file_path" json:"file_path"`
	Teams     pq.StringArray `db:"teams" json:"teams"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
