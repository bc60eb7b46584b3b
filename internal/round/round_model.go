package round

import (
	"time"

	"gorm.io/gorm"
)

// Round is one named, time-boxed stage of the hackathon, tagged with a
// stable RoundID such as "round1". EndAt is optional: offline/TBA rounds
// have no deadline.
type Round struct {
	gorm.Model
	RoundID      string     `json:"roundId" gorm:"uniqueIndex;not null"`
	Name         string     `json:"name" gorm:"not null"`
	Description  string     `json:"description"`
	StartAt      *time.Time `json:"startAt"`
	EndAt        *time.Time `json:"endAt"`
	IsOffline    bool       `json:"isOffline" gorm:"default:false"`
	ScheduleInfo string     `json:"scheduleInfo"`
}

// Phase1ID is the round whose window gates team formation and problem
// selection.
const Phase1ID = "round1"

// IsActive reports whether the round accepts actions at the given instant.
// A round with no StartAt is treated as not yet configured and never active.
func (r *Round) IsActive(now time.Time) bool {
	if r.StartAt == nil || now.Before(*r.StartAt) {
		return false
	}
	return r.EndAt == nil || !now.After(*r.EndAt)
}

// HasEnded reports whether the round's window is over. Rounds without an
// EndAt never end.
func (r *Round) HasEnded(now time.Time) bool {
	return r.EndAt != nil && now.After(*r.EndAt)
}

// Score is a judge's score for a team in a round, uploaded in bulk by admins.
type Score struct {
	gorm.Model
	TeamID  uint    `json:"team_id" gorm:"index;not null"`
	RoundID string  `json:"round_id" gorm:"index;not null"`
	Judge   string  `json:"judge"`
	Score   float64 `json:"score" gorm:"not null"`
	Remarks string  `json:"remarks"`
}
