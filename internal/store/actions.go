package store

import "github.com/rebeliceyang/pgdesk/internal/models"

// Action types handled by reducers
const (
	ActionSetCurWorkspaceParams = "workspace/setCurWorkspaceParams"
	ActionSetDatabaseAndSchema  = "workspace/setDatabaseAndSchema"
	ActionSetConsoleList        = "workspace/setConsoleList"
	ActionSetCurConnection      = "connection/setCurConnection"
	ActionSetConnectionList     = "connection/setConnectionList"
)

// Action types handled by effects
const (
	ActionFetchGetSavedConsole   = "workspace/fetchGetSavedConsole"
	ActionFetchDatabaseAndSchema = "workspace/fetchDatabaseAndSchema"
)

// Action is a request to change the state
type Action struct {
	Type    string
	Payload interface{}
}

// SetCurWorkspaceParams builds a workspace/setCurWorkspaceParams action
func SetCurWorkspaceParams(p models.WorkspaceParams) Action {
	return Action{Type: ActionSetCurWorkspaceParams, Payload: p}
}

// SetDatabaseAndSchema builds a workspace/setDatabaseAndSchema action
func SetDatabaseAndSchema(das *models.DatabaseAndSchema) Action {
	return Action{Type: ActionSetDatabaseAndSchema, Payload: das}
}

// SetConsoleList builds a workspace/setConsoleList action
func SetConsoleList(list []models.Console) Action {
	return Action{Type: ActionSetConsoleList, Payload: list}
}

// SetCurConnection builds a connection/setCurConnection action
func SetCurConnection(conn *models.Connection) Action {
	return Action{Type: ActionSetCurConnection, Payload: conn}
}

// SetConnectionList builds a connection/setConnectionList action
func SetConnectionList(list []*models.Connection) Action {
	return Action{Type: ActionSetConnectionList, Payload: list}
}

// FetchGetSavedConsole builds the saved console effect action
func FetchGetSavedConsole(q models.ConsoleQuery) Action {
	return Action{Type: ActionFetchGetSavedConsole, Payload: q}
}

// FetchDatabaseAndSchema builds the catalog effect action
func FetchDatabaseAndSchema() Action {
	return Action{Type: ActionFetchDatabaseAndSchema}
}
