package transaction

import (
	"database/sql"
)

// Isolation is the isolation level requested for a unit of work.
type Isolation int

const (
	// ReadCommitted is the store default and needs no SET TRANSACTION.
	ReadCommitted Isolation = iota
	RepeatableRead
	Serializable
)

func (i Isolation) String() string {
	switch i {
	case RepeatableRead:
		return "REPEATABLE READ"
	case Serializable:
		return "SERIALIZABLE"
	default:
		return "READ COMMITTED"
	}
}

// txOptions returns nil for the default level so BEGIN is issued unchanged.
func (i Isolation) txOptions() *sql.TxOptions {
	switch i {
	case RepeatableRead:
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead}
	case Serializable:
		return &sql.TxOptions{Isolation: sql.LevelSerializable}
	default:
		return nil
	}
}
