package problem

import (
	"errors"

	"gorm.io/gorm"
)

// ProblemRepository defines the interface for problem-statement data operations.
type ProblemRepository interface {
	ListProblems() ([]Problem, error)
	GetProblemByID(id uint) (*Problem, error)
	CreateProblem(p *Problem) error
	UpdateProblem(p *Problem) error
	DeleteProblem(id uint) error
}

type problemRepository struct {
	db *gorm.DB
}

func NewProblemRepository(db *gorm.DB) ProblemRepository {
	return &problemRepository{db: db}
}

func (r *problemRepository) ListProblems() ([]Problem, error) {
	var problems []Problem
	if err := r.db.Order("created_at asc").Find(&problems).Error; err != nil {
		return nil, err
	}
	return problems, nil
}

func (r *problemRepository) GetProblemByID(id uint) (*Problem, error) {
	var p Problem
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *problemRepository) CreateProblem(p *Problem) error {
	return r.db.Create(p).Error
}

func (r *problemRepository) UpdateProblem(p *Problem) error {
	return r.db.Save(p).Error
}

func (r *problemRepository) DeleteProblem(id uint) error {
	return r.db.Delete(&Problem{}, id).Error
}
