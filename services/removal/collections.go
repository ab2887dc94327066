package removal

import (
	"fmt"

	"travel-booking/models/booking"
	"travel-booking/models/notification"
	"travel-booking/models/review"
	"travel-booking/models/search"
	"travel-booking/models/trip"
	"travel-booking/models/user"
	"travel-booking/models/wishlist"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnedCollection is a table whose rows belong to an aggregate root and must be
// removed before the root row itself. The database does not cascade, so every
// dependent table has to be registered in UserCollections or TripCollections.
type OwnedCollection interface {
	Name() string
	DeleteOwnedBy(tx *gorm.DB, ownerID uint) (int64, error)
}

type ownedTable struct {
	name   string
	model  interface{}
	column string
}

func (c ownedTable) Name() string { return c.name }

func (c ownedTable) DeleteOwnedBy(tx *gorm.DB, ownerID uint) (int64, error) {
	res := tx.Where(c.column+" = ?", ownerID).Delete(c.model)
	return res.RowsAffected, res.Error
}

// TripCollections are the dependents of a trip, in deletion order.
var TripCollections = []OwnedCollection{
	ownedTable{name: "trip_activities", model: &trip.Activity{}, column: "trip_id"},
	ownedTable{name: "trip_days", model: &trip.Day{}, column: "trip_id"},
	ownedTable{name: "trip_bookings", model: &trip.Booking{}, column: "trip_id"},
}

// userTrips removes a user's trips together with each trip's own dependents.
type userTrips struct{}

func (userTrips) Name() string { return "trips" }

func (userTrips) DeleteOwnedBy(tx *gorm.DB, ownerID uint) (int64, error) {
	var tripIDs []uint
	err := tx.Model(&trip.Trip{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", ownerID).
		Pluck("id", &tripIDs).Error
	if err != nil {
		return 0, err
	}
	for _, id := range tripIDs {
		if err := deleteDependents(tx, TripCollections, id); err != nil {
			return 0, err
		}
	}
	res := tx.Where("user_id = ?", ownerID).Delete(&trip.Trip{})
	return res.RowsAffected, res.Error
}

// deleteDependents empties every collection for ownerID, in order.
func deleteDependents(tx *gorm.DB, collections []OwnedCollection, ownerID uint) error {
	for _, c := range collections {
		if _, err := c.DeleteOwnedBy(tx, ownerID); err != nil {
			return fmt.Errorf("delete %s: %w", c.Name(), err)
		}
	}
	return nil
}

// UserCollections are the tables owned by a user, in deletion order. A new table
// with a user_id column is added here.
var UserCollections = []OwnedCollection{
	ownedTable{name: "notifications", model: &notification.Notification{}, column: "user_id"},
	ownedTable{name: "search_analytics", model: &search.Analytics{}, column: "user_id"},
	ownedTable{name: "wishlist_items", model: &wishlist.Item{}, column: "user_id"},
	ownedTable{name: "user_settings", model: &user.Setting{}, column: "user_id"},
	ownedTable{name: "flight_searches", model: &search.FlightSearch{}, column: "user_id"},
	ownedTable{name: "flight_bookings", model: &booking.FlightBooking{}, column: "user_id"},
	ownedTable{name: "hotel_searches", model: &search.HotelSearch{}, column: "user_id"},
	ownedTable{name: "hotel_bookings", model: &booking.HotelBooking{}, column: "user_id"},
	userTrips{},
	ownedTable{name: "reviews", model: &review.Review{}, column: "user_id"},
}
