package models

import "time"

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

type Event struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrganizerID string      `gorm:"type:varchar(64);not null;index" json:"organizer_id"`
	CategoryID  uint        `gorm:"index" json:"category_id"`
	Title       string      `gorm:"type:varchar(255);not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Location    string      `gorm:"type:varchar(255);not null" json:"location"`
	Address     string      `gorm:"type:varchar(255)" json:"address"`
	EventDate   time.Time   `gorm:"type:date;not null" json:"event_date"`
	StartTime   string      `gorm:"type:varchar(5)" json:"start_time"`
	EndTime     string      `gorm:"type:varchar(5)" json:"end_time"`
	Status      EventStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	ImageURL    string      `gorm:"type:varchar(512)" json:"image_url"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Tiers []TicketTier `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"tiers,omitempty"`
}
