package transaction

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestClassifyPostgresCodes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    Kind
		wantKey string
	}{
		{
			name:    "unique violation with detail",
			err:     &pgconn.PgError{Code: "23505", Detail: "Key (email)=(a@b.c) already exists.", ConstraintName: "users_email_key"},
			want:    KindConstraintViolation,
			wantKey: "email",
		},
		{
			name:    "foreign key violation falls back to constraint name",
			err:     &pgconn.PgError{Code: "23503", ConstraintName: "fk_notifications_user"},
			want:    KindConstraintViolation,
			wantKey: "fk_notifications_user",
		},
		{
			name:    "not null uses column",
			err:     &pgconn.PgError{Code: "23502", ColumnName: "title"},
			want:    KindConstraintViolation,
			wantKey: "title",
		},
		{
			name: "serialization failure",
			err:  &pgconn.PgError{Code: "40001"},
			want: KindSerializationConflict,
		},
		{
			name: "deadlock",
			err:  &pgconn.PgError{Code: "40P01"},
			want: KindSerializationConflict,
		},
		{
			name: "syntax error is unknown",
			err:  &pgconn.PgError{Code: "42601"},
			want: KindUnknown,
		},
		{
			name: "wrapped pg error",
			err:  fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}),
			want: KindSerializationConflict,
		},
		{
			name: "record not found",
			err:  gorm.ErrRecordNotFound,
			want: KindNotFound,
		},
		{
			name: "gorm duplicated key",
			err:  gorm.ErrDuplicatedKey,
			want: KindConstraintViolation,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset by peer"),
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			var te *Error
			if !errors.As(got, &te) {
				t.Fatalf("Classify() returned untyped %T", got)
			}
			if te.Kind != tt.want {
				t.Errorf("Kind = %s, want %s", te.Kind, tt.want)
			}
			if te.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", te.Key, tt.wantKey)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error should wrap the original")
			}
		})
	}
}

func TestClassifyKeepsTypedErrors(t *testing.T) {
	orig := Errorf(KindAlreadyDecided, "approval %d is APPROVED", 7)
	wrapped := fmt.Errorf("decide: %w", orig)

	if got := Classify(wrapped); got != wrapped {
		t.Errorf("Classify() = %v, want the same error back", got)
	}
	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestErrorsIsMatchesSentinelByKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Errorf(KindNotFound, "user %d not found", 3))

	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound)")
	}
	if errors.Is(err, ErrAlreadyDecided) {
		t.Error("not found must not match ErrAlreadyDecided")
	}
	if KindOf(err) != KindNotFound {
		t.Errorf("KindOf() = %s", KindOf(err))
	}
	if KindOf(errors.New("x")) != KindUnknown {
		t.Error("untyped errors are unknown")
	}
}

func TestUserMessageHidesStoreText(t *testing.T) {
	err := Classify(&pgconn.PgError{
		Code:    "23505",
		Message: `duplicate key value violates unique constraint "users_email_key"`,
		Detail:  "Key (email)=(secret@example.com) already exists.",
	})
	var te *Error
	if !errors.As(err, &te) {
		t.Fatal("expected typed error")
	}
	msg := te.UserMessage()
	if strings.Contains(msg, "secret@example.com") || strings.Contains(msg, "duplicate key") {
		t.Errorf("UserMessage() leaks store text: %q", msg)
	}
	if !strings.Contains(msg, "email") {
		t.Errorf("UserMessage() should name the key, got %q", msg)
	}

	unknown := Classify(errors.New("pq: relation \"users\" does not exist"))
	if msg := unknown.(*Error).UserMessage(); msg != "internal server error" {
		t.Errorf("unknown UserMessage() = %q", msg)
	}
}

func TestOnlySerializationConflictIsRetryable(t *testing.T) {
	for k := KindUnknown; k <= KindPoolExhausted; k++ {
		if got, want := k.Retryable(), k == KindSerializationConflict; got != want {
			t.Errorf("%s.Retryable() = %v", k, got)
		}
	}
}
