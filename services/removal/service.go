package removal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	notificationModel "travel-booking/models/notification"
	"travel-booking/models/trip"
	"travel-booking/models/user"
	"travel-booking/services/audit"
	"travel-booking/services/notification"
	"travel-booking/services/transaction"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuditWriter interface {
	Record(tx *gorm.DB, e audit.Entry) error
}

type NotificationWriter interface {
	Enqueue(tx *gorm.DB, m notification.Message) error
}

// Service removes users and trips together with everything they own.
type Service struct {
	exec     *transaction.Executor
	audit    AuditWriter
	notifier NotificationWriter

	userCollections []OwnedCollection
	tripCollections []OwnedCollection
}

func NewService(exec *transaction.Executor, auditWriter AuditWriter, notifier NotificationWriter) *Service {
	return &Service{
		exec:            exec,
		audit:           auditWriter,
		notifier:        notifier,
		userCollections: UserCollections,
		tripCollections: TripCollections,
	}
}

// DeleteUser removes the user and every row registered in UserCollections in a
// single transaction. Booking approvals and admin logs are kept.
//
// The user row is locked first. Any concurrent insert referencing the user
// (a decision's notification, say) then waits on the foreign key check until
// this transaction ends, or deadlocks with it, which the executor retries.
func (s *Service) DeleteUser(ctx context.Context, adminID, userID uint) error {
	if userID == 0 || adminID == 0 {
		return transaction.Errorf(transaction.KindInvalidInput, "user id and admin id are required")
	}

	opts := transaction.Options{Name: "removal.delete_user"}
	return s.exec.Run(ctx, opts, func(tx *gorm.DB) error {
		var u user.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&u, userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return transaction.Errorf(transaction.KindNotFound, "user %d not found", userID)
		}
		if err != nil {
			return err
		}

		var deleted []string
		for _, c := range s.userCollections {
			n, err := c.DeleteOwnedBy(tx, userID)
			if err != nil {
				return fmt.Errorf("delete %s: %w", c.Name(), err)
			}
			if n > 0 {
				deleted = append(deleted, fmt.Sprintf("%s=%d", c.Name(), n))
			}
		}

		res := tx.Where("id = ?", userID).Delete(&user.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return transaction.Errorf(transaction.KindNotFound, "user %d not found", userID)
		}

		details := fmt.Sprintf("deleted user #%d", userID)
		if len(deleted) > 0 {
			details += " (" + strings.Join(deleted, ", ") + ")"
		}
		return s.audit.Record(tx, audit.Entry{
			AdminID:    adminID,
			Action:     audit.ActionDeleteUser,
			EntityType: audit.EntityUser,
			EntityID:   userID,
			Details:    details,
		})
	})
}

// RemoveTrip deletes a trip and its dependents, records the reason and tells the
// owner.
func (s *Service) RemoveTrip(ctx context.Context, tripID, adminID uint, reason string) error {
	reason = strings.TrimSpace(reason)
	if tripID == 0 || adminID == 0 || reason == "" {
		return transaction.Errorf(transaction.KindInvalidInput, "trip id, admin id and reason are required")
	}

	opts := transaction.Options{Name: "removal.remove_trip"}
	return s.exec.Run(ctx, opts, func(tx *gorm.DB) error {
		var t trip.Trip
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, tripID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return transaction.Errorf(transaction.KindNotFound, "trip %d not found", tripID)
		}
		if err != nil {
			return err
		}

		if err := deleteDependents(tx, s.tripCollections, t.ID); err != nil {
			return err
		}
		if err := tx.Delete(&t).Error; err != nil {
			return err
		}

		if err := s.audit.Record(tx, audit.Entry{
			AdminID:    adminID,
			Action:     audit.ActionRemoveTrip,
			EntityType: audit.EntityTrip,
			EntityID:   t.ID,
			Details:    fmt.Sprintf("removed trip %q of user #%d: %s", t.Title, t.UserID, reason),
		}); err != nil {
			return fmt.Errorf("record audit entry: %w", err)
		}

		err = s.notifier.Enqueue(tx, notification.Message{
			UserID:  &t.UserID,
			AdminID: &adminID,
			Title:   "Trip removed",
			Body:    fmt.Sprintf("Your trip %q was removed by an administrator. Reason: %s", t.Title, reason),
			Type:    notificationModel.TypeWarning,
		})
		if err != nil {
			return fmt.Errorf("enqueue notification: %w", err)
		}
		return nil
	})
}
