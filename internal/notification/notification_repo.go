package notification

import (
	"errors"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	Create(n *Notification) error
	CreateBatch(ns []Notification) error
	ListByRecipient(recipientID uint, limit int) ([]Notification, error)
	GetByIDForRecipient(id, recipientID uint) (*Notification, error)
	Update(n *Notification) error
	MarkAllRead(recipientID uint) error
	ListBroadcasts() ([]BroadcastSummary, error)
	DeleteBatch(batchID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) CreateBatch(ns []Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.Create(&ns).Error
}

func (r *notificationRepository) ListByRecipient(recipientID uint, limit int) ([]Notification, error) {
	var ns []Notification
	if err := r.db.
		Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Limit(limit).
		Find(&ns).Error; err != nil {
		return nil, err
	}
	return ns, nil
}

func (r *notificationRepository) GetByIDForRecipient(id, recipientID uint) (*Notification, error) {
	var n Notification
	err := r.db.Where("id = ? AND recipient_id = ?", id, recipientID).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) Update(n *Notification) error {
	return r.db.Save(n).Error
}

func (r *notificationRepository) MarkAllRead(recipientID uint) error {
	return r.db.Model(&Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}

func (r *notificationRepository) ListBroadcasts() ([]BroadcastSummary, error) {
	var summaries []BroadcastSummary
	err := r.db.Model(&Notification{}).
		Select("batch_id, MAX(message) AS message, MAX(type) AS type, MIN(created_at) AS created_at, COUNT(*) AS recipients_count").
		Where("batch_id IS NOT NULL").
		Group("batch_id").
		Order("MIN(created_at) desc").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *notificationRepository) DeleteBatch(batchID string) (int64, error) {
	res := r.db.Where("batch_id = ?", batchID).Delete(&Notification{})
	return res.RowsAffected, res.Error
}
