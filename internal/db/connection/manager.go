// Package connection manages pgx pools for the configured data sources.
package connection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/rebeliceyang/pgdesk/internal/db/metadata"
	"github.com/rebeliceyang/pgdesk/internal/models"
)

// ErrNoConnection is returned for data sources the manager does not know
var ErrNoConnection = errors.New("connection not found")

// PasswordSource looks up a password for a connection id
type PasswordSource interface {
	Get(connectionID string) (string, error)
}

// Manager keeps one entry per data source and lazily opens one pool per
// (data source, database) pair
type Manager struct {
	mu        sync.Mutex
	sources   map[string]*source
	opts      PoolOptions
	passwords PasswordSource
	logger    *log.Logger

	openPool func(ctx context.Context, cfg models.ConnectionConfig, opts PoolOptions) (*Pool, error)
}

type source struct {
	conn  *models.Connection
	pools map[string]*Pool
}

// NewManager creates a new connection manager.
// passwords may be nil when no keyring is available.
func NewManager(opts PoolOptions, passwords PasswordSource, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		sources:   make(map[string]*source),
		opts:      opts,
		passwords: passwords,
		logger:    logger.WithPrefix("connection"),
		openPool:  NewPool,
	}
}

// Register makes a data source known without connecting to it
func (m *Manager) Register(conn *models.Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sources[conn.ID]; ok {
		return
	}
	m.sources[conn.ID] = &source{conn: conn, pools: make(map[string]*Pool)}
}

// Connect registers the data source and opens a pool on its configured database
func (m *Manager) Connect(ctx context.Context, conn *models.Connection) error {
	m.Register(conn)

	_, err := m.Resolve(ctx, conn.ID, conn.Config.Database)
	return err
}

// Resolve returns the pool for a database of a data source, opening it on first use.
// An empty database means the data source's configured database.
func (m *Manager) Resolve(ctx context.Context, dataSourceID, database string) (*Pool, error) {
	m.mu.Lock()
	src, ok := m.sources[dataSourceID]
	if !ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNoConnection, dataSourceID)
	}
	if database == "" {
		database = src.conn.Config.Database
	}
	if pool, ok := src.pools[database]; ok {
		m.mu.Unlock()
		return pool, nil
	}
	conn := src.conn
	m.mu.Unlock()

	pool, err := m.openPool(ctx, m.configFor(conn, database), m.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s/%s: %w", conn.Alias, database, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have opened the same pool meanwhile.
	if existing, ok := src.pools[database]; ok {
		pool.Close()
		return existing, nil
	}
	m.logger.Info("opened pool", "alias", conn.Alias, "database", database)
	src.pools[database] = pool
	return pool, nil
}

// Querier is Resolve typed for the catalog readers
func (m *Manager) Querier(ctx context.Context, dataSourceID, database string) (metadata.Querier, error) {
	pool, err := m.Resolve(ctx, dataSourceID, database)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// configFor returns the connection config pointed at database, with the
// password filled in from the keyring when the config has none
func (m *Manager) configFor(conn *models.Connection, database string) models.ConnectionConfig {
	cfg := conn.Config
	cfg.Database = database

	if cfg.Password == "" && m.passwords != nil {
		password, err := m.passwords.Get(conn.ID)
		if err == nil {
			cfg.Password = password
		} else {
			m.logger.Debug("no stored password", "alias", conn.Alias, "err", err)
		}
	}
	return cfg
}

// Get returns a registered connection
func (m *Manager) Get(dataSourceID string) (*models.Connection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.sources[dataSourceID]
	if !ok {
		return nil, false
	}
	return src.conn, true
}

// Disconnect closes every pool of a data source and forgets it
func (m *Manager) Disconnect(dataSourceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.sources[dataSourceID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoConnection, dataSourceID)
	}

	for _, pool := range src.pools {
		pool.Close()
	}
	delete(m.sources, dataSourceID)
	return nil
}

// Close closes every pool
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, src := range m.sources {
		for _, pool := range src.pools {
			pool.Close()
		}
		delete(m.sources, id)
	}
}
