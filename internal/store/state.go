// Package store holds the connection and workspace state shared by the
// sidebar panels. State only changes through Dispatch; reducers are pure.
package store

import "github.com/rebeliceyang/pgdesk/internal/models"

// State is the whole shared state
type State struct {
	Connection ConnectionState
	Workspace  WorkspaceState
}

// ConnectionState tracks the configured and the active data sources
type ConnectionState struct {
	CurConnection  *models.Connection
	ConnectionList []*models.Connection
}

// WorkspaceState tracks what the sidebar shows.
// ConsoleList is nil until the first fetch completes.
type WorkspaceState struct {
	DatabaseAndSchema  *models.DatabaseAndSchema
	CurWorkspaceParams *models.WorkspaceParams
	ConsoleList        []models.Console
}

// CurrentParams returns the workspace params or the zero value
func (s State) CurrentParams() models.WorkspaceParams {
	if s.Workspace.CurWorkspaceParams == nil {
		return models.WorkspaceParams{}
	}
	return *s.Workspace.CurWorkspaceParams
}

// CurrentConnectionID returns the active data source id or ""
func (s State) CurrentConnectionID() string {
	if s.Connection.CurConnection == nil {
		return ""
	}
	return s.Connection.CurConnection.ID
}

// Change describes one applied action
type Change struct {
	Action Action
	Prev   State
	Next   State
}

// ParamsChanged reports whether the workspace params differ between Prev and Next
func (c Change) ParamsChanged() bool {
	return !sameParams(c.Prev.Workspace.CurWorkspaceParams, c.Next.Workspace.CurWorkspaceParams)
}

// DatabaseAndSchemaChanged reports whether a new DatabaseAndSchema was stored
func (c Change) DatabaseAndSchemaChanged() bool {
	return c.Prev.Workspace.DatabaseAndSchema != c.Next.Workspace.DatabaseAndSchema
}

// ConnectionChanged reports whether the active connection was replaced
func (c Change) ConnectionChanged() bool {
	return c.Prev.Connection.CurConnection != c.Next.Connection.CurConnection
}

// ConsoleListChanged reports whether the saved console list was replaced
func (c Change) ConsoleListChanged() bool {
	return c.Action.Type == ActionSetConsoleList
}

func sameParams(a, b *models.WorkspaceParams) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
