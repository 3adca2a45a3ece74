package models

// PanelType identifies which panel is focused
type PanelType int

const (
	LeftPanel PanelType = iota
	RightPanel
)

// ViewMode identifies the current view
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
)

// AppState holds the layout state of the application
type AppState struct {
	Width          int
	Height         int
	LeftPanelWidth int
	FocusedPanel   PanelType
	ViewMode       ViewMode
}

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:          80,
		Height:         24,
		LeftPanelWidth: 25,
		FocusedPanel:   LeftPanel,
		ViewMode:       NormalMode,
	}
}

// ColumnInfo holds metadata about a column
type ColumnInfo struct {
	Name       string
	DataType   string
	Nullable   bool
	PrimaryKey bool
	Default    *string
	IsArray    bool
	IsJsonb    bool
}

// TableMeta is attached to table tree nodes
type TableMeta struct {
	Schema        string
	Name          string
	EstimatedRows int64
	Size          string
}

// Constraint represents a table constraint
type Constraint struct {
	Name         string
	Type         string // 'p'=PK, 'f'=FK, 'u'=Unique, 'c'=Check
	Columns      []string
	Definition   string
	ForeignTable string // For FK: "schema.table"
	ForeignCols  []string
}
