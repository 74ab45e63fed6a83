package entity

import "time"

// BaseEntity carries the timestamp columns shared by every table.
type BaseEntity struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
