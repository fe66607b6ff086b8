package models

import "time"

// SchemaVersion is the version of the draft/candy machine tables.
const SchemaVersion = 1

const StoreMetaSchemaVersionKey = "schema_version"

// StoreMeta stores key-value bookkeeping for the local store.
type StoreMeta struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (StoreMeta) TableName() string {
	return "store_meta"
}
