package audit

import (
	"context"
	"errors"
	"time"

	adminlog "travel-booking/models/log"
	"travel-booking/services/transaction"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Actions written to admin_logs.action
const (
	ActionApproveBooking = "approve_booking"
	ActionRejectBooking  = "reject_booking"
	ActionDeleteUser     = "delete_user"
	ActionRemoveTrip     = "remove_trip"
)

// Entity types written to admin_logs.entity_type
const (
	EntityBookingApproval = "booking_approval"
	EntityUser            = "user"
	EntityTrip            = "trip"
)

// Entry is one administrative action to record.
type Entry struct {
	AdminID    uint
	Action     string
	EntityType string
	EntityID   uint
	Details    string
}

// Writer appends audit rows. It only accepts a transaction handle so the row
// commits or rolls back with the mutation it describes.
type Writer struct{}

func (Writer) Record(tx *gorm.DB, e Entry) error {
	if e.Action == "" || e.EntityType == "" {
		return errors.New("audit entry requires an action and an entity type")
	}
	return tx.Create(&adminlog.AdminLog{
		AdminID:    e.AdminID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Details:    e.Details,
	}).Error
}

// Service serves the audit read paths.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

const maxListLimit = 500

// ListByAdmin returns the admin's entries, newest first. When day is set only
// entries from that calendar day (in day's location) are returned.
func (s *Service) ListByAdmin(ctx context.Context, adminID uint, day *time.Time, limit int) ([]adminlog.AdminLog, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	q := s.db.WithContext(ctx).Where("admin_id = ?", adminID)
	if day != nil {
		d := now.With(*day)
		q = q.Where("created_at BETWEEN ? AND ?", d.BeginningOfDay(), d.EndOfDay())
	}

	var logs []adminlog.AdminLog
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, transaction.Classify(err)
	}
	return logs, nil
}

// ListByEntity returns every entry recorded against one entity.
func (s *Service) ListByEntity(ctx context.Context, entityType string, entityID uint) ([]adminlog.AdminLog, error) {
	var logs []adminlog.AdminLog
	err := s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, transaction.Classify(err)
	}
	return logs, nil
}
