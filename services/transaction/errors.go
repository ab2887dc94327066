package transaction

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind is the category every store or business failure is reported as.
type Kind int

const (
	KindUnknown Kind = iota
	KindConstraintViolation
	KindSerializationConflict
	KindAlreadyDecided
	KindAlreadyPending
	KindNotFound
	KindInvalidInput
	KindPoolExhausted
)

func (k Kind) String() string {
	switch k {
	case KindConstraintViolation:
		return "constraint_violation"
	case KindSerializationConflict:
		return "serialization_conflict"
	case KindAlreadyDecided:
		return "already_decided"
	case KindAlreadyPending:
		return "already_pending"
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindPoolExhausted:
		return "pool_exhausted"
	default:
		return "unknown"
	}
}

// Retryable reports whether the whole unit of work may be run again.
func (k Kind) Retryable() bool {
	return k == KindSerializationConflict
}

// Error is the typed failure returned by the executor and the services above it.
// Message is safe to show to a caller; Err carries the raw cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	// Key names the offending column or constraint for constraint violations.
	Key string
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Key != "" {
		msg += " (" + e.Key + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel errors below by kind, so errors.Is(err, ErrNotFound) works
// for any not-found failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Key == "" && t.Err == nil && t.Kind == e.Kind
}

// UserMessage is the text the HTTP layer may forward. It never contains store errors.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindConstraintViolation:
		if e.Key != "" {
			return "request conflicts with existing data on " + e.Key
		}
		return "request conflicts with existing data"
	case KindSerializationConflict:
		return "the operation conflicted with a concurrent change, try again"
	case KindAlreadyDecided:
		return "approval has already been decided"
	case KindAlreadyPending:
		return "booking already has a pending approval"
	case KindNotFound:
		return "record not found"
	case KindInvalidInput:
		return "invalid input"
	case KindPoolExhausted:
		return "service is busy, try again"
	default:
		return "internal server error"
	}
}

var (
	ErrConstraintViolation   = &Error{Kind: KindConstraintViolation}
	ErrSerializationConflict = &Error{Kind: KindSerializationConflict}
	ErrAlreadyDecided        = &Error{Kind: KindAlreadyDecided}
	ErrAlreadyPending        = &Error{Kind: KindAlreadyPending}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrInvalidInput          = &Error{Kind: KindInvalidInput}
	ErrPoolExhausted         = &Error{Kind: KindPoolExhausted}
)

// Errorf builds a typed error with a caller-safe message.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, KindUnknown for untyped errors.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnknown
}

// PostgreSQL SQLSTATE codes the executor understands.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeNotNullViolation     = "23502"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

var detailKeyPattern = regexp.MustCompile(`^Key \(([^)]+)\)=`)

// Classify rewrites a raw store error into the typed taxonomy.
// Already typed errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var te *Error
	if errors.As(err, &te) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeForeignKeyViolation, codeNotNullViolation, codeCheckViolation:
			return &Error{Kind: KindConstraintViolation, Key: constraintKey(pgErr), Err: err}
		case codeSerializationFailure, codeDeadlockDetected:
			return &Error{Kind: KindSerializationConflict, Err: err}
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &Error{Kind: KindConstraintViolation, Err: err}
	}

	return &Error{Kind: KindUnknown, Err: err}
}

// constraintKey extracts the offending column list from the error detail,
// e.g. `Key (email)=(a@b.c) already exists.` gives "email".
func constraintKey(pgErr *pgconn.PgError) string {
	if m := detailKeyPattern.FindStringSubmatch(pgErr.Detail); m != nil {
		return m[1]
	}
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return pgErr.ColumnName
}
