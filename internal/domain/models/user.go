package models

import "time"

type User struct {
	ID        int       `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Token     string    `db:"token" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}
