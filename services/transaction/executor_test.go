package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-booking/database/testdb"
	"travel-booking/models/user"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func newTestExecutor(t *testing.T, maxConns int) *Executor {
	t.Helper()
	store := testdb.Open(t, "test_transaction", maxConns)
	return NewExecutor(store, 2)
}

func TestRunCommitsOnSuccess(t *testing.T) {
	e := newTestExecutor(t, 4)
	ctx := context.Background()

	err := e.Run(ctx, Options{Name: "create_user"}, func(tx *gorm.DB) error {
		return tx.Create(&user.User{Uuid: "u-1", Username: "alice", LegalName: "Alice"}).Error
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n := testdb.Count(t, e.DB(), "users", "username = ?", "alice"); n != 1 {
		t.Errorf("users = %d, want 1", n)
	}
}

func TestRunRollsBackOnError(t *testing.T) {
	e := newTestExecutor(t, 4)
	ctx := context.Background()
	boom := errors.New("boom")

	err := e.Run(ctx, Options{Name: "failing"}, func(tx *gorm.DB) error {
		if err := tx.Create(&user.User{Uuid: "u-2", Username: "bob", LegalName: "Bob"}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want boom", err)
	}
	if KindOf(err) != KindUnknown {
		t.Errorf("KindOf() = %s, want unknown", KindOf(err))
	}
	if n := testdb.Count(t, e.DB(), "users", "username = ?", "bob"); n != 0 {
		t.Errorf("users = %d, want 0 after rollback", n)
	}
}

func TestRunRollsBackOnPanic(t *testing.T) {
	e := newTestExecutor(t, 4)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic to propagate")
			}
		}()
		_ = e.Run(context.Background(), Options{Name: "panicking"}, func(tx *gorm.DB) error {
			tx.Create(&user.User{Uuid: "u-3", Username: "carol", LegalName: "Carol"})
			panic("unexpected")
		})
	}()

	if n := testdb.Count(t, e.DB(), "users", "username = ?", "carol"); n != 0 {
		t.Errorf("users = %d, want 0 after panic", n)
	}
}

func TestRunClassifiesConstraintViolation(t *testing.T) {
	e := newTestExecutor(t, 4)
	ctx := context.Background()
	testdb.CreateUser(t, e.DB(), "dave")

	err := e.Run(ctx, Options{Name: "duplicate"}, func(tx *gorm.DB) error {
		return tx.Create(&user.User{Uuid: "other", Username: "dave", LegalName: "Dave"}).Error
	})
	var te *Error
	if !errors.As(err, &te) || te.Kind != KindConstraintViolation {
		t.Fatalf("Run() error = %v, want constraint violation", err)
	}
	if te.Key != "username" {
		t.Errorf("Key = %q, want username", te.Key)
	}
}

func TestRunRetriesSerializationConflict(t *testing.T) {
	e := newTestExecutor(t, 4)
	ctx := context.Background()

	calls := 0
	err := e.Run(ctx, Options{Name: "flaky", Isolation: Serializable}, func(tx *gorm.DB) error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}

	calls = 0
	err = e.Run(ctx, Options{Name: "always_conflicts", MaxRetries: 1}, func(tx *gorm.DB) error {
		calls++
		return &pgconn.PgError{Code: "40001"}
	})
	if !errors.Is(err, ErrSerializationConflict) {
		t.Fatalf("Run() error = %v, want serialization conflict", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRunDoesNotRetryOtherKinds(t *testing.T) {
	e := newTestExecutor(t, 4)

	calls := 0
	err := e.Run(context.Background(), Options{Name: "not_found"}, func(tx *gorm.DB) error {
		calls++
		var u user.User
		return tx.First(&u, 999).Error
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Run() error = %v, want not found", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRunSetsIsolationLevel(t *testing.T) {
	e := newTestExecutor(t, 4)
	ctx := context.Background()

	tests := map[Isolation]string{
		ReadCommitted:  "read committed",
		RepeatableRead: "repeatable read",
		Serializable:   "serializable",
	}
	for iso, want := range tests {
		got, err := RunInTransaction(ctx, e, Options{Name: "show_isolation", Isolation: iso}, func(tx *gorm.DB) (string, error) {
			var level string
			err := tx.Raw("SHOW transaction_isolation").Scan(&level).Error
			return level, err
		})
		if err != nil {
			t.Fatalf("RunInTransaction(%s) error = %v", iso, err)
		}
		if got != want {
			t.Errorf("isolation for %s = %q, want %q", iso, got, want)
		}
	}
}

func TestRunFailsFastWhenPoolExhausted(t *testing.T) {
	store := testdb.Open(t, "test_transaction", 1)
	store.AcquireTimeout = 200 * time.Millisecond
	e := NewExecutor(store, 0)
	ctx := context.Background()

	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- e.Run(ctx, Options{Name: "holder"}, func(tx *gorm.DB) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	start := time.Now()
	err := e.Run(ctx, Options{Name: "starved"}, func(tx *gorm.DB) error {
		t.Error("work must not run without a connection")
		return nil
	})
	close(release)

	if !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("Run() error = %v, want pool exhausted", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("acquisition took %v, should fail fast", elapsed)
	}
	if err := <-done; err != nil {
		t.Errorf("holder Run() error = %v", err)
	}
}
