package models

import "time"

// BaseModel uses hard deletes so that foreign key cascades
// (prompt likes, tag associations) actually fire at the database level.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
