package store

import (
	"context"
	"fmt"

	"github.com/rebeliceyang/pgdesk/internal/models"
)

// ConsoleService lists saved consoles
type ConsoleService interface {
	ListSavedConsoles(ctx context.Context, q models.ConsoleQuery) ([]models.Console, error)
}

// SchemaService loads the databases and schemas of a data source
type SchemaService interface {
	DatabaseAndSchema(ctx context.Context, conn *models.Connection) (*models.DatabaseAndSchema, error)
}

// Services are the collaborators the default effects call
type Services struct {
	Consoles ConsoleService
	Schemas  SchemaService
}

// EffectAPI is what an effect may do with the store
type EffectAPI interface {
	GetState() State
	Dispatch(Action) Change
	DispatchIf(func(State) bool, Action) (Change, bool)
}

// Effect performs I/O for an action and commits the outcome through the API
type Effect func(ctx context.Context, a Action, api EffectAPI) (Change, error)

func fetchGetSavedConsole(svc ConsoleService) Effect {
	return func(ctx context.Context, a Action, api EffectAPI) (Change, error) {
		q, ok := a.Payload.(models.ConsoleQuery)
		if !ok {
			return Change{}, fmt.Errorf("%s: unexpected payload %T", a.Type, a.Payload)
		}

		list, err := svc.ListSavedConsoles(ctx, q)
		if err != nil {
			return Change{}, fmt.Errorf("failed to fetch saved consoles: %w", err)
		}
		if list == nil {
			list = []models.Console{}
		}

		ch, ok := api.DispatchIf(func(s State) bool {
			return s.CurrentParams() == q.WorkspaceParams
		}, SetConsoleList(list))
		if !ok {
			return Change{}, ErrStale
		}
		return ch, nil
	}
}

func fetchDatabaseAndSchema(svc SchemaService) Effect {
	return func(ctx context.Context, a Action, api EffectAPI) (Change, error) {
		conn := api.GetState().Connection.CurConnection
		if conn == nil {
			return Change{}, ErrNoConnection
		}

		das, err := svc.DatabaseAndSchema(ctx, conn)
		if err != nil {
			return Change{}, fmt.Errorf("failed to load databases of %s: %w", conn.Alias, err)
		}
		if das == nil {
			das = &models.DatabaseAndSchema{}
		}

		ch, ok := api.DispatchIf(func(s State) bool {
			return s.Connection.CurConnection == conn
		}, SetDatabaseAndSchema(das))
		if !ok {
			return Change{}, ErrStale
		}
		return ch, nil
	}
}
