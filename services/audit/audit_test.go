package audit

import (
	"context"
	"testing"
	"time"

	"travel-booking/database/testdb"
	adminlog "travel-booking/models/log"
)

func TestRecordRejectsIncompleteEntries(t *testing.T) {
	if err := (Writer{}).Record(nil, Entry{AdminID: 1, EntityType: EntityUser}); err == nil {
		t.Error("Record() without action expected error")
	}
	if err := (Writer{}).Record(nil, Entry{AdminID: 1, Action: ActionDeleteUser}); err == nil {
		t.Error("Record() without entity type expected error")
	}
}

func TestListByAdmin(t *testing.T) {
	store := testdb.Open(t, "test_audit", 4)
	db := store.DB
	ctx := context.Background()

	if err := (Writer{}).Record(db, Entry{AdminID: 1, Action: ActionDeleteUser, EntityType: EntityUser, EntityID: 5, Details: "deleted user #5"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := (Writer{}).Record(db, Entry{AdminID: 2, Action: ActionRemoveTrip, EntityType: EntityTrip, EntityID: 9}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	yesterday := time.Now().AddDate(0, 0, -1)
	old := adminlog.AdminLog{AdminID: 1, Action: ActionApproveBooking, EntityType: EntityBookingApproval, EntityID: 3, CreatedAt: yesterday}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("Failed to create log: %v", err)
	}

	s := NewService(db)
	all, err := s.ListByAdmin(ctx, 1, nil, 0)
	if err != nil || len(all) != 2 {
		t.Fatalf("ListByAdmin() = %d, %v, want 2", len(all), err)
	}
	if all[0].Action != ActionDeleteUser {
		t.Errorf("first entry = %s, want newest first", all[0].Action)
	}

	today := time.Now()
	todays, err := s.ListByAdmin(ctx, 1, &today, 0)
	if err != nil || len(todays) != 1 {
		t.Fatalf("ListByAdmin(today) = %d, %v, want 1", len(todays), err)
	}
	yesterdays, err := s.ListByAdmin(ctx, 1, &yesterday, 0)
	if err != nil || len(yesterdays) != 1 || yesterdays[0].EntityID != 3 {
		t.Errorf("ListByAdmin(yesterday) = %+v, %v", yesterdays, err)
	}

	trip, err := s.ListByEntity(ctx, EntityTrip, 9)
	if err != nil || len(trip) != 1 || trip[0].AdminID != 2 {
		t.Errorf("ListByEntity() = %+v, %v", trip, err)
	}
}
