// Package discovery finds connection settings outside the config file: the
// libpq environment variables and the ~/.pgpass password file.
package discovery

import (
	"os"
	"strconv"

	"github.com/rebeliceyang/pgdesk/internal/models"
)

// EnvironmentAlias is the alias of the connection built from PG* variables
const EnvironmentAlias = "env"

// FromEnvironment builds a connection from PGHOST, PGPORT, PGDATABASE,
// PGUSER, PGPASSWORD and PGSSLMODE. It returns nil when none of host,
// database and user are set. getenv defaults to os.Getenv.
func FromEnvironment(getenv func(string) string) *models.ConnectionConfig {
	if getenv == nil {
		getenv = os.Getenv
	}

	host := getenv("PGHOST")
	database := getenv("PGDATABASE")
	user := getenv("PGUSER")
	if host == "" && database == "" && user == "" {
		return nil
	}

	if user == "" {
		user = getenv("USER")
	}
	if database == "" {
		database = user
	}

	cfg := models.ConnectionConfig{
		Alias:    EnvironmentAlias,
		Host:     host,
		Database: database,
		User:     user,
		Password: getenv("PGPASSWORD"),
		SSLMode:  getenv("PGSSLMODE"),
	}
	if p, err := strconv.Atoi(getenv("PGPORT")); err == nil && p > 0 && p <= 65535 {
		cfg.Port = p
	}

	cfg = cfg.Normalize()
	return &cfg
}

// AppendEnvironment adds the environment connection to conns unless a
// connection with the same id or alias is already configured
func AppendEnvironment(conns []models.ConnectionConfig, getenv func(string) string) []models.ConnectionConfig {
	env := FromEnvironment(getenv)
	if env == nil {
		return conns
	}
	for _, c := range conns {
		if c.ID == env.ID || c.Alias == env.Alias {
			return conns
		}
	}
	return append(conns, *env)
}
