package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConsoles struct {
	mu      sync.Mutex
	queries []models.ConsoleQuery
	list    []models.Console
	err     error
	// before runs inside ListSavedConsoles, used to simulate a concurrent change
	before func()
}

func (f *fakeConsoles) ListSavedConsoles(_ context.Context, q models.ConsoleQuery) ([]models.Console, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.before != nil {
		f.before()
	}
	return f.list, f.err
}

type fakeSchemas struct {
	das *models.DatabaseAndSchema
	err error
}

func (f *fakeSchemas) DatabaseAndSchema(_ context.Context, _ *models.Connection) (*models.DatabaseAndSchema, error) {
	return f.das, f.err
}

func params(db, schema string) models.WorkspaceParams {
	return models.WorkspaceParams{DataSourceID: "1", DatabaseSourceName: "local", DatabaseName: db, SchemaName: schema}
}

func TestReduce_IsPure(t *testing.T) {
	p := params("shop", "public")
	before := State{}
	before.Workspace.CurWorkspaceParams = &p

	after := Reduce(before, SetCurWorkspaceParams(params("shop", "billing")))

	assert.Equal(t, "public", before.Workspace.CurWorkspaceParams.SchemaName)
	assert.Equal(t, "billing", after.Workspace.CurWorkspaceParams.SchemaName)
	assert.NotSame(t, before.Workspace.CurWorkspaceParams, after.Workspace.CurWorkspaceParams)
}

func TestReduce_UnknownActionKeepsState(t *testing.T) {
	p := params("shop", "public")
	s := State{}
	s.Workspace.CurWorkspaceParams = &p

	assert.Equal(t, s, Reduce(s, Action{Type: "workspace/unknown"}))
	assert.Equal(t, s, Reduce(s, Action{Type: ActionSetConsoleList, Payload: "not a list"}))
}

func TestReduce_SetConsoleListCopies(t *testing.T) {
	list := []models.Console{{ID: 1, Name: "daily revenue"}}

	s := Reduce(State{}, SetConsoleList(list))
	list[0].Name = "mutated"

	require.Len(t, s.Workspace.ConsoleList, 1)
	assert.Equal(t, "daily revenue", s.Workspace.ConsoleList[0].Name)
}

func TestReduce_SetCurConnectionClearsCatalog(t *testing.T) {
	conn := models.NewConnection(models.ConnectionConfig{ID: "1", Alias: "local"})
	s := Reduce(State{}, SetCurConnection(conn))
	s = Reduce(s, SetDatabaseAndSchema(&models.DatabaseAndSchema{Schemas: []models.Schema{{Name: "public"}}}))

	same := Reduce(s, SetCurConnection(conn))
	assert.NotNil(t, same.Workspace.DatabaseAndSchema, "re-setting the same connection keeps the catalog")

	other := Reduce(s, SetCurConnection(models.NewConnection(models.ConnectionConfig{ID: "2"})))
	assert.Nil(t, other.Workspace.DatabaseAndSchema)
	assert.Equal(t, "2", other.CurrentConnectionID())
}

func TestStore_DispatchNotifiesSubscribers(t *testing.T) {
	st := New(Services{}, nil)

	var changes []Change
	unsubscribe := st.Subscribe(func(c Change) { changes = append(changes, c) })

	ch := st.Dispatch(SetCurWorkspaceParams(params("shop", "public")))
	assert.True(t, ch.ParamsChanged())

	unsubscribe()
	st.Dispatch(SetCurWorkspaceParams(params("shop", "billing")))

	require.Len(t, changes, 1)
	assert.Equal(t, ActionSetCurWorkspaceParams, changes[0].Action.Type)
	assert.Nil(t, changes[0].Prev.Workspace.CurWorkspaceParams)
	assert.Equal(t, "billing", st.GetState().CurrentParams().SchemaName)
}

func TestChange_ParamsChangedIgnoresEqualValues(t *testing.T) {
	st := New(Services{}, nil)
	st.Dispatch(SetCurWorkspaceParams(params("shop", "public")))

	ch := st.Dispatch(SetCurWorkspaceParams(params("shop", "public")))

	assert.False(t, ch.ParamsChanged())
}

func TestStore_RunWithoutEffect(t *testing.T) {
	st := New(Services{}, nil)

	_, err := st.Run(context.Background(), FetchGetSavedConsole(models.ConsoleQuery{}))

	assert.ErrorIs(t, err, ErrNoEffect)
}

func TestStore_FetchGetSavedConsole(t *testing.T) {
	svc := &fakeConsoles{list: []models.Console{{ID: 7, Name: "top customers", Status: models.ConsoleStatusRelease}}}
	st := New(Services{Consoles: svc}, nil)
	p := params("shop", "public")
	st.Dispatch(SetCurWorkspaceParams(p))

	q := models.ConsoleQuery{PageNo: 1, PageSize: 999, Status: models.ConsoleStatusRelease, WorkspaceParams: p}
	ch, err := st.Run(context.Background(), FetchGetSavedConsole(q))

	require.NoError(t, err)
	assert.True(t, ch.ConsoleListChanged())
	require.Len(t, svc.queries, 1)
	assert.Equal(t, q, svc.queries[0])
	assert.Equal(t, "top customers", st.GetState().Workspace.ConsoleList[0].Name)
}

func TestStore_FetchGetSavedConsoleEmptyResultIsNotNil(t *testing.T) {
	st := New(Services{Consoles: &fakeConsoles{}}, nil)

	_, err := st.Run(context.Background(), FetchGetSavedConsole(models.ConsoleQuery{PageNo: 1, PageSize: 999}))

	require.NoError(t, err)
	assert.NotNil(t, st.GetState().Workspace.ConsoleList)
	assert.Empty(t, st.GetState().Workspace.ConsoleList)
}

func TestStore_FetchGetSavedConsoleDropsStaleResult(t *testing.T) {
	svc := &fakeConsoles{list: []models.Console{{ID: 1, Name: "old"}}}
	st := New(Services{Consoles: svc}, nil)
	first := params("shop", "public")
	st.Dispatch(SetCurWorkspaceParams(first))

	svc.before = func() {
		st.Dispatch(SetCurWorkspaceParams(params("shop", "billing")))
	}

	_, err := st.Run(context.Background(), FetchGetSavedConsole(models.ConsoleQuery{WorkspaceParams: first}))

	assert.ErrorIs(t, err, ErrStale)
	assert.Nil(t, st.GetState().Workspace.ConsoleList)
}

func TestStore_FetchGetSavedConsoleError(t *testing.T) {
	boom := errors.New("disk on fire")
	st := New(Services{Consoles: &fakeConsoles{err: boom}}, nil)

	_, err := st.Run(context.Background(), FetchGetSavedConsole(models.ConsoleQuery{}))

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, st.GetState().Workspace.ConsoleList)
}

func TestStore_FetchDatabaseAndSchema(t *testing.T) {
	das := &models.DatabaseAndSchema{Databases: []models.Database{{Name: "shop"}}}
	st := New(Services{Schemas: &fakeSchemas{das: das}}, nil)

	_, err := st.Run(context.Background(), FetchDatabaseAndSchema())
	assert.ErrorIs(t, err, ErrNoConnection)

	st.Dispatch(SetCurConnection(models.NewConnection(models.ConnectionConfig{ID: "1"})))
	ch, err := st.Run(context.Background(), FetchDatabaseAndSchema())

	require.NoError(t, err)
	assert.True(t, ch.DatabaseAndSchemaChanged())
	assert.Same(t, das, st.GetState().Workspace.DatabaseAndSchema)
}
