package models

import (
	"fmt"

	"github.com/google/uuid"
)

// DatabaseTypePostgreSQL is the only data source type pgdesk talks to
const DatabaseTypePostgreSQL = "POSTGRESQL"

// ConnectionConfig represents a PostgreSQL data source as configured by the user
type ConnectionConfig struct {
	ID       string `mapstructure:"id" yaml:"id"`
	Alias    string `mapstructure:"alias" yaml:"alias"`
	Type     string `mapstructure:"type" yaml:"type"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Database string `mapstructure:"database" yaml:"database"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"-"`
	SSLMode  string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// ListAllDatabases controls whether the selector offers every database on
	// the server or only the schemas of Database.
	ListAllDatabases bool `mapstructure:"list_all_databases" yaml:"list_all_databases"`
}

// Normalize fills in defaults and derives a stable ID when none is configured
func (c ConnectionConfig) Normalize() ConnectionConfig {
	if c.Type == "" {
		c.Type = DatabaseTypePostgreSQL
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.Database == "" {
		c.Database = "postgres"
	}
	if c.SSLMode == "" {
		c.SSLMode = "prefer"
	}
	if c.ID == "" {
		c.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(c.URL())).String()
	}
	if c.Alias == "" {
		c.Alias = fmt.Sprintf("%s@%s", c.Database, c.Host)
	}
	return c
}

// URL returns a password-free URL identifying the data source
func (c ConnectionConfig) URL() string {
	return fmt.Sprintf("postgres://%s@%s:%d/%s", c.User, c.Host, c.Port, c.Database)
}

// Connection represents a data source.
// The sidebar only ever reads ID, Alias and Type.
type Connection struct {
	ID     string
	Alias  string
	Type   string
	Config ConnectionConfig
}

// NewConnection builds a Connection from its configuration
func NewConnection(cfg ConnectionConfig) *Connection {
	cfg = cfg.Normalize()
	return &Connection{
		ID:     cfg.ID,
		Alias:  cfg.Alias,
		Type:   cfg.Type,
		Config: cfg,
	}
}

// ConnectionState is the lifecycle of a data source as seen by the app
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connecting
	Connected
	Failed
)

// Marker is the symbol shown next to a connection in that state
func (s ConnectionState) Marker() string {
	switch s {
	case Connecting:
		return "◌"
	case Connected:
		return "●"
	case Failed:
		return "✗"
	default:
		return ""
	}
}

func (s ConnectionState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
