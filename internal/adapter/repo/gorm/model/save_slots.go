package model

import "time"

const TableNameSaveSlot = "save_slots"

// SaveSlot mapped from table <save_slots>
type SaveSlot struct {
	Slot    string    `gorm:"column:slot;primaryKey" json:"slot"`
	SaveID  string    `gorm:"column:save_id;not null" json:"save_id"`
	Payload string    `gorm:"column:payload;type:jsonb;not null" json:"payload"`
	SavedAt time.Time `gorm:"column:saved_at;not null" json:"saved_at"`
}

// TableName SaveSlot's table name
func (*SaveSlot) TableName() string {
	return TableNameSaveSlot
}
