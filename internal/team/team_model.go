package team

import (
	"time"

	"github.com/roborush/portal/internal/problem"
)

// Team is a hackathon team. Teams are hard-deleted (no soft delete) so the
// unique name/invite-code indexes stay usable after a team disbands.
type Team struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	Name       string           `json:"name" gorm:"uniqueIndex;not null"`
	TeamCode   string           `json:"team_code" gorm:"uniqueIndex"` // human-readable tag, e.g. RB07
	LeaderID   uint             `json:"leader_user_id" gorm:"not null"`
	InviteCode string           `json:"invite_code" gorm:"uniqueIndex;not null"`
	LogoURL    string           `json:"logo_url"`
	ProblemID  *uint            `json:"problem_id"`
	Problem    *problem.Problem `json:"problem,omitempty" gorm:"foreignKey:ProblemID"`
	MaxMembers int              `json:"max_members" gorm:"default:4"`
	Status     string           `json:"status" gorm:"default:'active'"`
	// 0 = no rank, 1..3 = placement. Uniqueness across teams is the
	// admin's responsibility, not enforced here.
	WinningRank int          `json:"winning_rank" gorm:"default:0"`
	Members     []TeamMember `json:"members" gorm:"foreignKey:TeamID"`
}

// TeamMember is one user's membership, with a denormalized name/email
// snapshot taken at join time. The unique index on UserID enforces
// one-team-per-user at the storage layer; rows are hard-deleted on leave
// so a user can join again later.
type TeamMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"joined_at"`
	TeamID    uint      `json:"team_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
}

// TeamTagCounter is the single-row sequence behind team codes. Incrementing
// it inside the create transaction replaces the scan-for-max scheme that
// produced duplicate tags under concurrent creates.
type TeamTagCounter struct {
	ID      uint `gorm:"primaryKey"`
	NextSeq int  `gorm:"not null;default:0"`
}
