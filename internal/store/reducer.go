package store

import "github.com/rebeliceyang/pgdesk/internal/models"

// Reducer computes the next state. It must not mutate its input.
type Reducer func(State, Action) State

var reducers = map[string]Reducer{
	ActionSetCurWorkspaceParams: reduceSetCurWorkspaceParams,
	ActionSetDatabaseAndSchema:  reduceSetDatabaseAndSchema,
	ActionSetConsoleList:        reduceSetConsoleList,
	ActionSetCurConnection:      reduceSetCurConnection,
	ActionSetConnectionList:     reduceSetConnectionList,
}

// Reduce applies the reducer registered for the action type.
// Unknown types and malformed payloads leave the state unchanged.
func Reduce(s State, a Action) State {
	r, ok := reducers[a.Type]
	if !ok {
		return s
	}
	return r(s, a)
}

func reduceSetCurWorkspaceParams(s State, a Action) State {
	switch p := a.Payload.(type) {
	case models.WorkspaceParams:
		s.Workspace.CurWorkspaceParams = &p
	case *models.WorkspaceParams:
		if p == nil {
			s.Workspace.CurWorkspaceParams = nil
			break
		}
		cp := *p
		s.Workspace.CurWorkspaceParams = &cp
	}
	return s
}

func reduceSetDatabaseAndSchema(s State, a Action) State {
	if das, ok := a.Payload.(*models.DatabaseAndSchema); ok {
		s.Workspace.DatabaseAndSchema = das
	}
	return s
}

func reduceSetConsoleList(s State, a Action) State {
	list, ok := a.Payload.([]models.Console)
	if !ok {
		return s
	}
	cp := make([]models.Console, len(list))
	copy(cp, list)
	s.Workspace.ConsoleList = cp
	return s
}

func reduceSetCurConnection(s State, a Action) State {
	conn, ok := a.Payload.(*models.Connection)
	if !ok || conn == s.Connection.CurConnection {
		return s
	}
	s.Connection.CurConnection = conn
	// The catalog belongs to the previous data source.
	s.Workspace.DatabaseAndSchema = nil
	return s
}

func reduceSetConnectionList(s State, a Action) State {
	list, ok := a.Payload.([]*models.Connection)
	if !ok {
		return s
	}
	cp := make([]*models.Connection, len(list))
	copy(cp, list)
	s.Connection.ConnectionList = cp
	return s
}
