package models

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type Attendee struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BookingID uint   `gorm:"not null;index" json:"booking_id"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Email     string `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string `gorm:"type:varchar(32);not null" json:"phone"`
	Gender    Gender `gorm:"type:varchar(10);not null" json:"gender"`
}
