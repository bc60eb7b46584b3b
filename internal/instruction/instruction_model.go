package instruction

import "gorm.io/gorm"

// DefaultContent seeds the instructions page before an admin edits it.
const DefaultContent = "Welcome to the Hackathon! Please read the rules carefully."

// Instruction is a singleton document holding the participant-facing
// rules and guidelines shown on the portal.
type Instruction struct {
	gorm.Model
	Content string `json:"content" gorm:"type:text;not null"`
}
