// Package store is the write/dedup storage engine: it owns the open
// database handle and the cache of prepared statements, and exposes
// schema lifecycle, transaction control, and the find-or-insert
// primitives the writer façade composes into higher-level operations.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrIncompatible is returned by Setup when a non-empty database's
// meta[storage_version] does not match supportedDatabaseVersion.
var ErrIncompatible = errors.New("srctrail/store: database is not compatible with this writer version")

// ErrNoTransaction is returned by Commit/Rollback when no transaction is
// active.
var ErrNoTransaction = errors.New("srctrail/store: no transaction is active")

// ErrTransactionActive is returned by BeginTx when a transaction is
// already open. Nesting is a caller error, not something this engine
// supports.
var ErrTransactionActive = errors.New("srctrail/store: a transaction is already active")

// Engine wraps one *sql.DB and its prepared statements, matching
// DatabaseStorage's role in the original implementation.
type Engine struct {
	db      *sql.DB
	stmts   *statements
	metrics *Metrics
	tx      *sql.Tx
}

// Open opens or creates the SQLite file at path and enables foreign key
// enforcement. It does not run Setup — callers must call Setup before
// issuing any write.
func Open(path string) (*Engine, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=30000&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &Engine{db: db, metrics: newMetrics()}, nil
}

// Metrics returns the passive counters registry for this engine.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Close finalizes the prepared-statement cache and closes the database
// handle, even if prior operations failed.
func (e *Engine) Close() error {
	var firstErr error
	if e.stmts != nil {
		if err := e.stmts.close(); err != nil {
			firstErr = err
		}
	}
	if err := e.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close database: %w", err)
	}
	return firstErr
}

// Setup verifies compatibility, creates all tables and indices if
// missing, compiles the prepared-statement cache, and writes
// meta[storage_version]. It fails with ErrIncompatible if a non-empty
// database's stored version differs from supportedDatabaseVersion.
func (e *Engine) Setup() error {
	if _, err := e.db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}

	compatible, err := e.IsCompatible()
	if err != nil {
		return err
	}
	if !compatible {
		return ErrIncompatible
	}

	if _, err := e.db.Exec(createTablesSQL); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	if _, err := e.db.Exec(createIndicesSQL); err != nil {
		return fmt.Errorf("create indices: %w", err)
	}

	s := &statements{}
	if err := prepareStatements(e.db, s); err != nil {
		return err
	}
	e.stmts = s

	if err := e.upsertMeta("storage_version", fmt.Sprintf("%d", supportedDatabaseVersion)); err != nil {
		return err
	}
	return nil
}

// Clear disables foreign keys, drops every known table, and re-runs
// Setup. The old prepared-statement cache is finalized first.
func (e *Engine) Clear() error {
	if e.stmts != nil {
		if err := e.stmts.close(); err != nil {
			return err
		}
		e.stmts = nil
	}

	if _, err := e.db.Exec("PRAGMA foreign_keys=OFF;"); err != nil {
		return fmt.Errorf("disable foreign keys: %w", err)
	}
	for _, table := range dropTableOrder {
		if _, err := e.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS main.%s;", table)); err != nil {
			return fmt.Errorf("drop table %s: %w", table, err)
		}
	}
	return e.Setup()
}

// IsEmpty reports whether the meta table does not exist.
func (e *Engine) IsEmpty() (bool, error) {
	var name string
	err := e.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='meta';").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("check meta table: %w", err)
	}
	return name != "meta", nil
}

// IsCompatible reports true if the database is empty, or if its loaded
// version matches supportedDatabaseVersion.
func (e *Engine) IsCompatible() (bool, error) {
	empty, err := e.IsEmpty()
	if err != nil {
		return false, err
	}
	if empty {
		return true, nil
	}
	loaded, err := e.LoadedVersion()
	if err != nil {
		return false, err
	}
	return loaded == supportedDatabaseVersion, nil
}

// LoadedVersion reads meta[storage_version]. It fails on an empty
// database.
func (e *Engine) LoadedVersion() (int, error) {
	empty, err := e.IsEmpty()
	if err != nil {
		return 0, err
	}
	if empty {
		return 0, fmt.Errorf("srctrail/store: cannot determine version of an empty database")
	}

	var value string
	err = e.db.QueryRow("SELECT value FROM meta WHERE key = 'storage_version';").Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read storage_version: %w", err)
	}
	var version int
	if _, err := fmt.Sscanf(value, "%d", &version); err != nil {
		return 0, fmt.Errorf("parse storage_version %q: %w", value, err)
	}
	return version, nil
}

// BeginTx starts a transaction. Opening a second transaction while one is
// active is a caller error.
func (e *Engine) BeginTx() error {
	if e.tx != nil {
		return ErrTransactionActive
	}
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	e.tx = tx
	e.metrics.transactionsBegun.Inc()
	return nil
}

// Commit commits the active transaction.
func (e *Engine) Commit() error {
	if e.tx == nil {
		return ErrNoTransaction
	}
	err := e.tx.Commit()
	e.tx = nil
	if err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	e.metrics.transactionsCommitted.Inc()
	return nil
}

// Rollback rolls back the active transaction, returning the database
// exactly to the state before BeginTx.
func (e *Engine) Rollback() error {
	if e.tx == nil {
		return ErrNoTransaction
	}
	err := e.tx.Rollback()
	e.tx = nil
	if err != nil {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	e.metrics.transactionsRolledBack.Inc()
	return nil
}

// Optimize issues a full database compaction.
func (e *Engine) Optimize() error {
	if _, err := e.db.Exec("VACUUM;"); err != nil {
		return fmt.Errorf("vacuum database: %w", err)
	}
	return nil
}

// stmt returns the statement bound to the active transaction if one is
// open, or the shared connection-level statement otherwise.
func (e *Engine) stmt(s *sql.Stmt) *sql.Stmt {
	if e.tx != nil {
		return e.tx.Stmt(s)
	}
	return s
}

func (e *Engine) upsertMeta(key, value string) error {
	stmt := e.stmt(e.stmts.insertOrUpdateMetaValue)
	if _, err := stmt.Exec(key, key, value); err != nil {
		return fmt.Errorf("upsert meta %s: %w", key, err)
	}
	return nil
}

// SetProjectSettingsText upserts the companion project-settings document
// text into meta[project_settings].
func (e *Engine) SetProjectSettingsText(text string) error {
	return e.upsertMeta("project_settings", text)
}
