package models

import (
	"fmt"
	"strings"
	"time"
)

// ConsoleStatus is the lifecycle state of a saved console
type ConsoleStatus string

const (
	ConsoleStatusDraft   ConsoleStatus = "DRAFT"
	ConsoleStatusRelease ConsoleStatus = "RELEASE"
)

// ParseConsoleStatus accepts a status name in any case
func ParseConsoleStatus(s string) (ConsoleStatus, error) {
	switch ConsoleStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case ConsoleStatusDraft:
		return ConsoleStatusDraft, nil
	case ConsoleStatusRelease:
		return ConsoleStatusRelease, nil
	default:
		return "", fmt.Errorf("unknown console status %q", s)
	}
}

// Console is a saved query
type Console struct {
	ID           int64         `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Status       ConsoleStatus `json:"status" yaml:"status"`
	DDL          string        `json:"ddl" yaml:"ddl"`
	Type         string        `json:"type" yaml:"type"`
	DataSourceID string        `json:"dataSourceId" yaml:"data_source_id"`
	DatabaseName string        `json:"databaseName,omitempty" yaml:"database_name,omitempty"`
	SchemaName   string        `json:"schemaName,omitempty" yaml:"schema_name,omitempty"`
	CreatedAt    time.Time     `json:"createdAt" yaml:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" yaml:"updated_at"`
}

// ConsoleQuery is the payload of a saved-console fetch: pagination, status
// and the workspace the consoles belong to.
type ConsoleQuery struct {
	PageNo   int
	PageSize int
	Status   ConsoleStatus
	WorkspaceParams
}

// Offset returns the row offset for a 1-based page number
func (q ConsoleQuery) Offset() int {
	if q.PageNo <= 1 || q.PageSize <= 0 {
		return 0
	}
	return (q.PageNo - 1) * q.PageSize
}
