package submission

import (
	"errors"

	"gorm.io/gorm"
)

// SubmissionRepository defines the interface for submission data operations.
type SubmissionRepository interface {
	CreateSubmission(s *Submission) error
	GetSubmissionByID(id uint) (*Submission, error)
	ListAll() ([]Submission, error)
	ListByTeam(teamID uint) ([]Submission, error)
	HasSubmission(teamID uint, roundID string) (bool, error)
	UpdateSubmission(s *Submission) error
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) CreateSubmission(s *Submission) error {
	return r.db.Create(s).Error
}

func (r *submissionRepository) GetSubmissionByID(id uint) (*Submission, error) {
	var s Submission
	if err := r.db.Preload("Team").Preload("Team.Members").First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *submissionRepository) ListAll() ([]Submission, error) {
	var subs []Submission
	if err := r.db.Preload("Team").Order("created_at desc").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepository) ListByTeam(teamID uint) ([]Submission, error) {
	var subs []Submission
	if err := r.db.Where("team_id = ?", teamID).Order("created_at desc").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepository) HasSubmission(teamID uint, roundID string) (bool, error) {
	var count int64
	err := r.db.Model(&Submission{}).
		Where("team_id = ? AND round_id = ?", teamID, roundID).
		Count(&count).Error
	return count > 0, err
}

func (r *submissionRepository) UpdateSubmission(s *Submission) error {
	return r.db.Omit("Team").Save(s).Error
}
