package user

import "time"

const (
	RoleParticipant = "participant"
	RoleAdmin       = "admin"
)

// User is a portal account. Every user carries exactly one role.
// Accounts are hard-deleted (no soft delete) so the unique email index
// stays usable: a removed participant can sign up again with the same
// address.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `gorm:"default:'participant'" json:"role"`
	PhoneNumber  string    `json:"phone_number"`
	RollNumber   string    `json:"roll_number"`
	Branch       string    `json:"branch"`
}
