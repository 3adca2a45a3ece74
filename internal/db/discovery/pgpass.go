package discovery

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/rebeliceyang/pgdesk/internal/models"
)

// PgPassEntry represents a line in .pgpass file
type PgPassEntry struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

// PgPass is a parsed password file
type PgPass []PgPassEntry

// DefaultPgPassPath returns $PGPASSFILE or ~/.pgpass
func DefaultPgPassPath() (string, error) {
	if p := os.Getenv("PGPASSFILE"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pgpass"), nil
}

// LoadPgPass reads the password file at path. A missing file is empty.
func LoadPgPass(path string) (PgPass, error) {
	// libpq ignores password files readable by group or others
	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return PgPass{}, nil
		}
		if err != nil {
			return nil, err
		}
		if info.Mode().Perm()&0077 != 0 {
			return nil, fmt.Errorf("%s has insecure permissions %v, must be 0600", path, info.Mode().Perm())
		}
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return PgPass{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	entries := PgPass{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if entry, ok := parsePgPassLine(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries, scanner.Err()
}

// parsePgPassLine splits hostname:port:database:username:password,
// honouring the \: and \\ escapes
func parsePgPassLine(line string) (PgPassEntry, bool) {
	parts := make([]string, 0, 5)
	var current strings.Builder
	escaped := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case escaped:
			current.WriteByte(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == ':':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	parts = append(parts, current.String())

	if len(parts) != 5 {
		return PgPassEntry{}, false
	}
	if parts[1] != "*" {
		if p, err := strconv.Atoi(parts[1]); err != nil || p < 1 || p > 65535 {
			return PgPassEntry{}, false
		}
	}

	return PgPassEntry{
		Host:     parts[0],
		Port:     parts[1],
		Database: parts[2],
		User:     parts[3],
		Password: parts[4],
	}, true
}

// Lookup returns the password of the first entry matching cfg
func (p PgPass) Lookup(cfg models.ConnectionConfig) (string, bool) {
	port := strconv.Itoa(cfg.Port)
	for _, e := range p {
		if matches(e.Host, cfg.Host) &&
			matches(e.Port, port) &&
			matches(e.Database, cfg.Database) &&
			matches(e.User, cfg.User) {
			return e.Password, true
		}
	}
	return "", false
}

// matches checks if pattern matches value (* is wildcard)
func matches(pattern, value string) bool {
	return pattern == "*" || pattern == value
}
