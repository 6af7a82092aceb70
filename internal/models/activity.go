package models

import "time"

// Activity is a reference catalog entry for generic logged work.
type Activity struct {
	ActivityCode string    `db:"activity_code" json:"activity_code"`
	Name         string    `db:"name" json:"name"`
	Category     string    `db:"category" json:"category"`
	Outdoor      bool      `db:"outdoor" json:"outdoor"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
