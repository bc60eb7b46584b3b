package contact

import "gorm.io/gorm"

// ContactRepository defines the interface for contact data operations.
type ContactRepository interface {
	List() ([]Contact, error)
	Create(ct *Contact) error
	Delete(id uint) (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) List() ([]Contact, error) {
	var cts []Contact
	if err := r.db.Order("created_at asc").Find(&cts).Error; err != nil {
		return nil, err
	}
	return cts, nil
}

func (r *contactRepository) Create(ct *Contact) error {
	return r.db.Create(ct).Error
}

func (r *contactRepository) Delete(id uint) (int64, error) {
	res := r.db.Delete(&Contact{}, id)
	return res.RowsAffected, res.Error
}
