package instruction

import (
	"errors"

	"gorm.io/gorm"
)

// InstructionRepository defines the interface for instruction data operations.
type InstructionRepository interface {
	Get() (*Instruction, error)
	Create(ins *Instruction) error
	Update(ins *Instruction) error
}

type instructionRepository struct {
	db *gorm.DB
}

func NewInstructionRepository(db *gorm.DB) InstructionRepository {
	return &instructionRepository{db: db}
}

func (r *instructionRepository) Get() (*Instruction, error) {
	var ins Instruction
	err := r.db.First(&ins).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ins, nil
}

func (r *instructionRepository) Create(ins *Instruction) error {
	return r.db.Create(ins).Error
}

func (r *instructionRepository) Update(ins *Instruction) error {
	return r.db.Save(ins).Error
}
