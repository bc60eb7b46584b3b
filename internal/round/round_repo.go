package round

import (
	"errors"

	"gorm.io/gorm"
)

// RoundRepository defines the interface for round data operations.
type RoundRepository interface {
	ListRounds() ([]Round, error)
	GetByRoundID(roundID string) (*Round, error)
	CreateRound(r *Round) error
	UpdateRound(r *Round) error
	CreateScores(scores []Score) error
}

type roundRepository struct {
	db *gorm.DB
}

func NewRoundRepository(db *gorm.DB) RoundRepository {
	return &roundRepository{db: db}
}

func (r *roundRepository) ListRounds() ([]Round, error) {
	var rounds []Round
	if err := r.db.Order("created_at asc").Find(&rounds).Error; err != nil {
		return nil, err
	}
	return rounds, nil
}

func (r *roundRepository) GetByRoundID(roundID string) (*Round, error) {
	var rd Round
	if err := r.db.Where("round_id = ?", roundID).First(&rd).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rd, nil
}

func (r *roundRepository) CreateRound(rd *Round) error {
	return r.db.Create(rd).Error
}

func (r *roundRepository) UpdateRound(rd *Round) error {
	return r.db.Save(rd).Error
}

func (r *roundRepository) CreateScores(scores []Score) error {
	if len(scores) == 0 {
		return nil
	}
	return r.db.Create(&scores).Error
}
