package models

import "time"

// KVRecord backs the Postgres store: one row per collection key.
type KVRecord struct {
	Key       string    `json:"key" gorm:"primaryKey;size:191"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}

// Snapshot is the whole persisted state, used for backup and restore.
type Snapshot struct {
	Items  []Item  `json:"items"`
	Menus  []Menu  `json:"menus"`
	Orders []Order `json:"orders"`
}
