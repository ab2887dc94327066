package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"travel-booking/database"
	"travel-booking/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options configures one unit of work.
type Options struct {
	// Name identifies the unit of work in logs and metrics.
	Name      string
	Isolation Isolation
	// MaxRetries overrides the executor default; a negative value disables retries.
	MaxRetries int
}

func (o Options) name() string {
	if o.Name == "" {
		return "unnamed"
	}
	return o.Name
}

// Work runs inside a transaction. It must use only tx for store access.
type Work func(tx *gorm.DB) error

// Executor runs units of work on connections checked out of the store's pool.
type Executor struct {
	db             *gorm.DB
	acquireTimeout time.Duration
	maxRetries     int
}

// NewExecutor builds an executor over store. maxRetries bounds re-runs after a
// serialization conflict when Options.MaxRetries is zero.
func NewExecutor(store *database.Store, maxRetries int) *Executor {
	return &Executor{
		db:             store.DB,
		acquireTimeout: store.AcquireTimeout,
		maxRetries:     maxRetries,
	}
}

// DB returns the underlying handle for plain reads outside a unit of work.
func (e *Executor) DB() *gorm.DB {
	return e.db
}

// Run executes work in a transaction: commit on success, rollback on any error,
// panic or commit failure. Errors are always typed, see Classify.
func (e *Executor) Run(ctx context.Context, opts Options, work Work) error {
	attempts := 1 + e.retriesFor(opts)
	for attempt := 1; ; attempt++ {
		err := e.attempt(ctx, opts, attempt, work)
		if err == nil {
			return nil
		}
		if !KindOf(err).Retryable() || attempt >= attempts || ctx.Err() != nil {
			return err
		}
		txRetries.WithLabelValues(opts.name()).Inc()
		logger.Warnw("retrying unit of work", "name", opts.name(), "attempt", attempt, "max_attempts", attempts)
	}
}

// RunInTransaction is Run for work that produces a value.
func RunInTransaction[T any](ctx context.Context, e *Executor, opts Options, work func(tx *gorm.DB) (T, error)) (T, error) {
	var result T
	err := e.Run(ctx, opts, func(tx *gorm.DB) error {
		var err error
		result, err = work(tx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func (e *Executor) retriesFor(opts Options) int {
	switch {
	case opts.MaxRetries < 0:
		return 0
	case opts.MaxRetries > 0:
		return opts.MaxRetries
	default:
		return e.maxRetries
	}
}

func (e *Executor) attempt(ctx context.Context, opts Options, attempt int, work Work) error {
	txID := uuid.NewString()
	start := time.Now()
	logger.Infow("transaction started",
		"tx_id", txID, "name", opts.name(), "isolation", opts.Isolation.String(), "attempt", attempt)

	err := e.execute(ctx, opts, work)
	duration := time.Since(start)
	observe(opts.name(), err, duration)

	if err != nil {
		logger.Warnw("transaction rolled back",
			"tx_id", txID, "name", opts.name(), "kind", KindOf(err).String(), "duration", duration, "error", err)
		return err
	}
	logger.Infow("transaction committed", "tx_id", txID, "name", opts.name(), "duration", duration)
	return nil
}

// execute checks out one connection for the lifetime of the transaction.
func (e *Executor) execute(ctx context.Context, opts Options, work Work) error {
	acquireCtx, cancel := ctx, context.CancelFunc(func() {})
	if e.acquireTimeout > 0 {
		acquireCtx, cancel = context.WithTimeout(ctx, e.acquireTimeout)
	}
	defer cancel()

	acquired := false
	err := e.db.WithContext(acquireCtx).Connection(func(conn *gorm.DB) error {
		acquired = true
		return runTx(conn.WithContext(ctx), opts, work)
	})
	if err == nil {
		return nil
	}
	if !acquired {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return &Error{Kind: KindPoolExhausted, Err: err}
		}
		return Classify(fmt.Errorf("acquire connection: %w", err))
	}
	return Classify(err)
}

func runTx(conn *gorm.DB, opts Options, work Work) (err error) {
	tx := conn.Begin(opts.Isolation.txOptions())
	if tx.Error != nil {
		return fmt.Errorf("begin: %w", tx.Error)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
		if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("Rollback failed", rbErr)
		}
	}()

	if err := work(tx); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}
