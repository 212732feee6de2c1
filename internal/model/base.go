package model

import "time"

// BaseModel is embedded by every entity. Rows are deleted for real,
// never soft-deleted, so there is no DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
