package entity

import "time"

// StateDocument stores one entity collection of the application snapshot as JSON
type StateDocument struct {
	Kind      string    `gorm:"primaryKey;size:32" json:"kind"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the StateDocument model
func (StateDocument) TableName() string {
	return "state_documents"
}
