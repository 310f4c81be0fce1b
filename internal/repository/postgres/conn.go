package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
)

// ConnManager owns the process-wide database handle. The first Get opens and
// pings a connection; while that attempt is in flight, concurrent callers wait
// on it instead of opening their own. A failed attempt leaves the cell empty so
// the next call retries; a successful handle is cached for the life of the
// process. Construct it once at the composition root and inject it.
type ConnManager struct {
	mu  sync.Mutex
	db  *sql.DB
	dsn string

	// open is swappable in tests.
	open func(ctx context.Context) (*sql.DB, error)
}

// NewConnManager returns a ConnManager for the given data source URL. No
// connection is attempted until the first Get.
func NewConnManager(dsn string) *ConnManager {
	m := &ConnManager{dsn: dsn}
	m.open = m.openAndPing
	return m
}

// Get returns the cached database handle, opening it on first use.
func (m *ConnManager) Get(ctx context.Context) (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db != nil {
		return m.db, nil
	}
	db, err := m.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	m.db = db
	return m.db, nil
}

// Close releases the cached handle if one was opened.
func (m *ConnManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

func (m *ConnManager) openAndPing(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", m.dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
