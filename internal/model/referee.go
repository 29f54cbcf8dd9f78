package model

import "regexp"

// Phone numbers in the format '+999999999', up to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// Referee is the person asked to complete a reference form.
// swagger:model Referee
type Referee struct {
	BaseModel
	Name          string `gorm:"size:255;not null" json:"name"`
	Email         string `gorm:"size:100;not null" json:"email"`
	Phone         string `gorm:"size:17" json:"phone"`
	Relationship  string `gorm:"size:100" json:"relationship"`  // e.g. Former Manager, Colleague
	ApplicantName string `gorm:"size:255" json:"applicantName"` // Person being referenced
	IsActive      bool   `gorm:"default:true" json:"isActive"`
}

func (Referee) TableName() string {
	return "referees"
}

// ValidPhone reports whether the phone number matches the accepted format.
// An empty phone is valid, the field is optional.
func ValidPhone(phone string) bool {
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}
