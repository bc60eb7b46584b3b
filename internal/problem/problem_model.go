package problem

import "gorm.io/gorm"

const (
	CategoryHardware = "Hardware"
	CategorySoftware = "Software"
	CategoryBoth     = "Both"
)

// Problem is an admin-owned problem statement teams pick from.
type Problem struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Category    string `json:"category" gorm:"not null"`
	Description string `json:"description" gorm:"not null"`
	Difficulty  string `json:"difficulty" gorm:"default:'Medium'"`
	MaxTeamSize int    `json:"max_team_size" gorm:"default:4"`
}
