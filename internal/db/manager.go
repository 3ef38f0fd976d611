package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrManagerClosed = errors.New("db manager closed")

type ManagerParams struct {
	Conn           ConnParams
	TracingEnabled bool
}

// Manager owns the one connection pool of the process. The pool is created
// on first use and then shared by every repo. A failed creation is not
// cached, the next Pool call tries again.
type Manager struct {
	params ManagerParams

	mu     sync.Mutex
	pool   *pgxpool.Pool
	closed bool

	// replaced in tests
	newPool func(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error)
}

func NewManager(params ManagerParams) *Manager {
	return &Manager{
		params:  params,
		newPool: pgxpool.NewWithConfig,
	}
}

func (m *Manager) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrManagerClosed
	}
	if m.pool != nil {
		return m.pool, nil
	}

	poolConfig, err := pgxpool.ParseConfig(m.params.Conn.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	if m.params.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	pool, err := m.newPool(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	log.Debugf("db pool created: %s:%s/%s", m.params.Conn.Host, m.params.Conn.Port, m.params.Conn.DBName)
	m.pool = pool
	return pool, nil
}

// Close releases the pool, if one was created. Pool fails after Close.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	if m.pool != nil {
		m.pool.Close()
		m.pool = nil
	}
}
