package models

import "time"

type TeamTimeRecord struct {
	ID         int       `db:"id" json:"id"`
	UserID     int       `db:"user_id" json:"-"`
	Team       string    `db:"team" json:"team"`
	Date       time.Time `db:"date" json:"date"`
	ReviewTime int       `db:"review_time" json:"review_time"`
	MergeTime  int       `db:"merge_time" json:"merge_time"`
}
