package contact

import "gorm.io/gorm"

// Contact is one organizer listed on the help page.
type Contact struct {
	gorm.Model
	Name  string `json:"name" gorm:"not null"`
	Phone string `json:"phone" gorm:"not null"`
}
