package models

import "time"

// ActivityLog is one entry of a customer's activity feed, keyed by the phone
// number they signed in with.
type ActivityLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Phone     string `gorm:"size:20;index;not null" json:"-"`
	SessionID string `gorm:"size:36" json:"-"`
	Action    string `gorm:"size:50;not null" json:"action"`

	Entity    string `gorm:"size:50" json:"entity"`
	EntityRef string `gorm:"size:64" json:"entity_ref"`
	Metadata  string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
