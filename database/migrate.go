package database

import (
	"fmt"

	"travel-booking/logger"
	"travel-booking/models/approval"
	"travel-booking/models/booking"
	adminlog "travel-booking/models/log"
	"travel-booking/models/notification"
	"travel-booking/models/review"
	"travel-booking/models/search"
	"travel-booking/models/trip"
	"travel-booking/models/user"
	"travel-booking/models/wishlist"

	"gorm.io/gorm"
)

// Migrate creates tables in dependency stages, then foreign keys and indexes.
func Migrate(db *gorm.DB) error {
	stages := [][]interface{}{
		// Stage 1: root aggregates
		{&user.User{}},
		// Stage 2: everything owned by a user
		{
			&user.Setting{},
			&notification.Notification{},
			&search.Analytics{},
			&search.FlightSearch{},
			&search.HotelSearch{},
			&wishlist.Item{},
			&booking.FlightBooking{},
			&booking.HotelBooking{},
			&trip.Trip{},
			&review.Review{},
		},
		// Stage 3: trip dependents
		{&trip.Day{}, &trip.Booking{}},
		{&trip.Activity{}},
		// Stage 4: approval and audit
		{&approval.BookingApproval{}, &adminlog.AdminLog{}},
	}

	for i, models := range stages {
		for _, model := range models {
			if err := db.AutoMigrate(model); err != nil {
				return fmt.Errorf("failed to migrate %T: %w", model, err)
			}
		}
		logger.Debug(fmt.Sprintf("Migration stage %d completed", i+1))
	}

	if err := createForeignKeyConstraints(db); err != nil {
		return err
	}
	if err := createIndexes(db); err != nil {
		return err
	}
	logger.Success("All migrations completed successfully")
	return nil
}

// foreignKey describes one constraint. None of them cascade: dependent rows are
// removed by the application in a single transaction, see services/removal.
type foreignKey struct {
	name      string
	table     string
	column    string
	refTable  string
	refColumn string
}

func (fk foreignKey) sql() string {
	return fmt.Sprintf(`ALTER TABLE %s ADD CONSTRAINT %s
		FOREIGN KEY (%s) REFERENCES %s(%s)
		ON UPDATE CASCADE ON DELETE RESTRICT`,
		fk.table, fk.name, fk.column, fk.refTable, fk.refColumn)
}

var foreignKeys = []foreignKey{
	{"fk_user_settings_user", "user_settings", "user_id", "users", "id"},
	{"fk_notifications_user", "notifications", "user_id", "users", "id"},
	{"fk_search_analytics_user", "search_analytics", "user_id", "users", "id"},
	{"fk_flight_searches_user", "flight_searches", "user_id", "users", "id"},
	{"fk_hotel_searches_user", "hotel_searches", "user_id", "users", "id"},
	{"fk_wishlist_items_user", "wishlist_items", "user_id", "users", "id"},
	{"fk_flight_bookings_user", "flight_bookings", "user_id", "users", "id"},
	{"fk_hotel_bookings_user", "hotel_bookings", "user_id", "users", "id"},
	{"fk_trips_user", "trips", "user_id", "users", "id"},
	{"fk_reviews_user", "reviews", "user_id", "users", "id"},
	{"fk_trip_days_trip", "trip_days", "trip_id", "trips", "id"},
	{"fk_trip_bookings_trip", "trip_bookings", "trip_id", "trips", "id"},
	{"fk_trip_activities_trip", "trip_activities", "trip_id", "trips", "id"},
	{"fk_trip_activities_day", "trip_activities", "trip_day_id", "trip_days", "id"},
}

// createForeignKeyConstraints adds the constraints that do not exist yet
func createForeignKeyConstraints(db *gorm.DB) error {
	for _, fk := range foreignKeys {
		var exists bool
		err := db.Raw(`
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = ? AND constraint_schema = current_schema()
			)`, fk.name).Scan(&exists).Error
		if err != nil {
			return fmt.Errorf("failed to check constraint %s: %w", fk.name, err)
		}
		if exists {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", fk.name))
			continue
		}
		if err := db.Exec(fk.sql()).Error; err != nil {
			return fmt.Errorf("failed to create constraint %s: %w", fk.name, err)
		}
		logger.Success(fmt.Sprintf("Successfully created constraint: %s", fk.name))
	}
	return nil
}

// createIndexes creates additional indexes for the admin read paths
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_booking_approvals_created_at ON booking_approvals(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_broadcast ON notifications(created_at DESC) WHERE user_id IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_admin_logs_admin_created ON admin_logs(admin_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_flight_bookings_status ON flight_bookings(status)",
		"CREATE INDEX IF NOT EXISTS idx_hotel_bookings_status ON hotel_bookings(status)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
