package approval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	approvalModel "travel-booking/models/approval"
	notificationModel "travel-booking/models/notification"
	"travel-booking/services/audit"
	"travel-booking/services/notification"
	"travel-booking/services/transaction"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuditWriter records an admin action inside the caller's transaction.
type AuditWriter interface {
	Record(tx *gorm.DB, e audit.Entry) error
}

// NotificationWriter enqueues a user notification inside the caller's transaction.
type NotificationWriter interface {
	Enqueue(tx *gorm.DB, m notification.Message) error
}

// Service runs the approval state machine: PENDING -> APPROVED | REJECTED.
type Service struct {
	exec     *transaction.Executor
	audit    AuditWriter
	notifier NotificationWriter
}

func NewService(exec *transaction.Executor, auditWriter AuditWriter, notifier NotificationWriter) *Service {
	return &Service{exec: exec, audit: auditWriter, notifier: notifier}
}

// Decide records an administrator's decision on a pending approval. The approval
// row, the booking status, the audit row and the owner's notification are written
// in one transaction.
func (s *Service) Decide(ctx context.Context, approvalID uint, decision approvalModel.Status, adminID uint, notes *string) (*approvalModel.BookingApproval, error) {
	if !decision.IsDecision() {
		return nil, transaction.Errorf(transaction.KindInvalidInput, "decision must be APPROVED or REJECTED")
	}
	if approvalID == 0 || adminID == 0 {
		return nil, transaction.Errorf(transaction.KindInvalidInput, "approval id and admin id are required")
	}
	notes = normalizeNotes(notes)

	opts := transaction.Options{Name: "approval.decide", Isolation: transaction.ReadCommitted}
	return transaction.RunInTransaction(ctx, s.exec, opts, func(tx *gorm.DB) (*approvalModel.BookingApproval, error) {
		// The row lock makes a concurrent decision on the same approval wait here
		// and then observe the committed status.
		var a approvalModel.BookingApproval
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, approvalID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transaction.Errorf(transaction.KindNotFound, "approval %d not found", approvalID)
		}
		if err != nil {
			return nil, err
		}
		if a.Status != approvalModel.StatusPending {
			return nil, transaction.Errorf(transaction.KindAlreadyDecided, "approval %d is already %s", a.ID, a.Status)
		}

		ref, err := RefFor(&a)
		if err != nil {
			return nil, fmt.Errorf("approval %d: %w", a.ID, err)
		}

		decidedAt := time.Now()
		res := tx.Model(&approvalModel.BookingApproval{}).
			Where("id = ? AND status = ?", a.ID, approvalModel.StatusPending).
			Updates(map[string]interface{}{
				"status":      decision,
				"admin_id":    adminID,
				"admin_notes": notes,
				"updated_at":  decidedAt,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, transaction.Errorf(transaction.KindAlreadyDecided, "approval %d is no longer pending", a.ID)
		}

		target, err := ref.SetStatus(tx, decision)
		if err != nil {
			return nil, err
		}

		if err := s.audit.Record(tx, audit.Entry{
			AdminID:    adminID,
			Action:     auditAction(decision),
			EntityType: audit.EntityBookingApproval,
			EntityID:   a.ID,
			Details:    auditDetails(ref, decision, notes),
		}); err != nil {
			return nil, fmt.Errorf("record audit entry: %w", err)
		}

		if err := s.notifier.Enqueue(tx, decisionMessage(target, decision, adminID, notes)); err != nil {
			return nil, fmt.Errorf("enqueue notification: %w", err)
		}

		a.Status = decision
		a.AdminID = &adminID
		a.AdminNotes = notes
		a.UpdatedAt = decidedAt
		return &a, nil
	})
}

// Submit opens a PENDING approval for a booking. The booking row is locked so two
// submissions for the same booking cannot both see "no open approval".
func (s *Service) Submit(ctx context.Context, ref BookingRef) (*approvalModel.BookingApproval, error) {
	if ref == nil || ref.Key() == 0 {
		return nil, transaction.Errorf(transaction.KindInvalidInput, "booking reference is required")
	}

	opts := transaction.Options{Name: "approval.submit"}
	return transaction.RunInTransaction(ctx, s.exec, opts, func(tx *gorm.DB) (*approvalModel.BookingApproval, error) {
		target, err := ref.Lock(tx)
		if err != nil {
			return nil, err
		}

		var open int64
		err = tx.Model(&approvalModel.BookingApproval{}).
			Where("booking_type = ? AND booking_id = ? AND status = ?", ref.Type(), ref.Key(), approvalModel.StatusPending).
			Count(&open).Error
		if err != nil {
			return nil, err
		}
		if open > 0 {
			return nil, transaction.Errorf(transaction.KindAlreadyPending, "%s booking %d already has a pending approval", strings.ToLower(target.Label), ref.Key())
		}

		a := approvalModel.BookingApproval{
			BookingType: ref.Type(),
			BookingID:   ref.Key(),
			Status:      approvalModel.StatusPending,
		}
		if err := tx.Create(&a).Error; err != nil {
			return nil, err
		}

		link := target.Link
		err = s.notifier.Enqueue(tx, notification.Message{
			UserID: &target.OwnerID,
			Title:  target.Label + " booking under review",
			Body:   fmt.Sprintf("Your %s is being reviewed by our team. We will notify you once it is confirmed.", target.Summary),
			Type:   notificationModel.TypeInfo,
			Link:   &link,
		})
		if err != nil {
			return nil, fmt.Errorf("enqueue notification: %w", err)
		}
		return &a, nil
	})
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// List returns approvals newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status *approvalModel.Status, limit int) ([]approvalModel.BookingApproval, error) {
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	q := s.exec.DB().WithContext(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var list []approvalModel.BookingApproval
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, transaction.Classify(err)
	}
	return list, nil
}

// Get returns one approval.
func (s *Service) Get(ctx context.Context, approvalID uint) (*approvalModel.BookingApproval, error) {
	var a approvalModel.BookingApproval
	err := s.exec.DB().WithContext(ctx).First(&a, approvalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, transaction.Errorf(transaction.KindNotFound, "approval %d not found", approvalID)
	}
	if err != nil {
		return nil, transaction.Classify(err)
	}
	return &a, nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func auditAction(decision approvalModel.Status) string {
	if decision == approvalModel.StatusApproved {
		return audit.ActionApproveBooking
	}
	return audit.ActionRejectBooking
}

func auditDetails(ref BookingRef, decision approvalModel.Status, notes *string) string {
	details := fmt.Sprintf("%s %s booking #%d", strings.ToLower(decision.String()), strings.ToLower(string(ref.Type())), ref.Key())
	if notes != nil {
		details += ": " + *notes
	}
	return details
}

func decisionMessage(target Target, decision approvalModel.Status, adminID uint, notes *string) notification.Message {
	link := target.Link
	msg := notification.Message{
		UserID:  &target.OwnerID,
		AdminID: &adminID,
		Link:    &link,
	}
	if decision == approvalModel.StatusApproved {
		msg.Title = target.Label + " booking confirmed"
		msg.Body = fmt.Sprintf("Your %s has been confirmed.", target.Summary)
		msg.Type = notificationModel.TypeSuccess
	} else {
		msg.Title = target.Label + " booking rejected"
		msg.Body = fmt.Sprintf("Your %s was not approved and has been cancelled.", target.Summary)
		msg.Type = notificationModel.TypeWarning
	}
	if notes != nil {
		msg.Body += " Note: " + *notes
	}
	return msg
}
