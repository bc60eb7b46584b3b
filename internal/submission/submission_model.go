package submission

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/roborush/portal/internal/team"
)

const (
	StatusSubmitted   = "submitted"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
)

// SubmissionFile is an opaque stored-file reference as returned by the
// object-storage collaborator. No core logic inspects file contents.
type SubmissionFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// FileList is the JSON column holding a submission's file references.
type FileList []SubmissionFile

func (f FileList) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan unmarshals a JSON column into the slice.
func (f *FileList) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("FileList: expected []byte or string, got %T", src)
	}
	return json.Unmarshal(b, f)
}

// Submission is a team's work for one round. The composite unique index
// enforces at-most-one submission per (team, round) at the storage layer.
type Submission struct {
	gorm.Model
	TeamID      uint       `json:"team_id" gorm:"uniqueIndex:idx_team_round;not null"`
	Team        *team.Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	RoundID     string     `json:"round_id" gorm:"uniqueIndex:idx_team_round;not null"`
	Description string     `json:"description"`
	GithubLink  string     `json:"github_link"`
	DriveLink   string     `json:"drive_link"`
	Files       FileList   `json:"files" gorm:"type:json"`
	Status      string     `json:"status" gorm:"default:'submitted'"`
	Score       *float64   `json:"score"`
}
