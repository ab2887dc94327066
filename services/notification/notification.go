package notification

import (
	"context"
	"fmt"

	notificationModel "travel-booking/models/notification"
	"travel-booking/services/transaction"

	"gorm.io/gorm"
)

// Message is a notification to enqueue. A nil UserID broadcasts to every user.
type Message struct {
	UserID  *uint
	AdminID *uint
	Title   string
	Body    string
	Type    notificationModel.Type
	Link    *string
}

// Writer inserts notifications inside a caller's transaction.
type Writer struct{}

func (Writer) Enqueue(tx *gorm.DB, m Message) error {
	if m.Title == "" || m.Body == "" {
		return fmt.Errorf("notification requires a title and a message")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid notification type %q", m.Type)
	}
	return tx.Create(&notificationModel.Notification{
		UserID:  m.UserID,
		AdminID: m.AdminID,
		Title:   m.Title,
		Message: m.Body,
		Type:    m.Type,
		Link:    m.Link,
	}).Error
}

// Service serves the recipient side: listing and marking read.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

const defaultListLimit = 100

// ListForUser returns the user's notifications and broadcasts, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uint, limit int) ([]notificationModel.Notification, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	var list []notificationModel.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, transaction.Classify(err)
	}
	return list, nil
}

// UnreadCount counts the user's own unread notifications.
func (s *Service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&notificationModel.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	if err != nil {
		return 0, transaction.Classify(err)
	}
	return n, nil
}

// MarkRead flags one of the user's notifications as read. Broadcasts and other
// users' notifications are reported as not found.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID uint) error {
	res := s.db.WithContext(ctx).
		Model(&notificationModel.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return transaction.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return transaction.Errorf(transaction.KindNotFound, "notification %d not found", notificationID)
	}
	return nil
}
