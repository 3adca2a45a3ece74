package models

// CascaderOption is one entry of the database → schema selector
type CascaderOption struct {
	Value    string
	Label    string
	Children []CascaderOption
}

// HasChildren reports whether the option opens a second level
func (o CascaderOption) HasChildren() bool {
	return len(o.Children) > 0
}

// BuildCascaderOptions derives the selector options from a DatabaseAndSchema.
// Databases take precedence over the flat schema list; input order is kept.
func BuildCascaderOptions(das *DatabaseAndSchema) []CascaderOption {
	if das == nil {
		return nil
	}

	if das.Databases != nil {
		options := make([]CascaderOption, 0, len(das.Databases))
		for _, db := range das.Databases {
			opt := CascaderOption{Value: db.Name, Label: db.Name}
			if len(db.Schemas) > 0 {
				opt.Children = make([]CascaderOption, 0, len(db.Schemas))
				for _, s := range db.Schemas {
					opt.Children = append(opt.Children, CascaderOption{Value: s.Name, Label: s.Name})
				}
			}
			options = append(options, opt)
		}
		return options
	}

	if das.Schemas != nil {
		options := make([]CascaderOption, 0, len(das.Schemas))
		for _, s := range das.Schemas {
			options = append(options, CascaderOption{Value: s.Name, Label: s.Name})
		}
		return options
	}

	return nil
}

// NeedsDefaultSelection reports whether the stored params belong to another
// (or no) data source than the active connection
func NeedsDefaultSelection(params *WorkspaceParams, conn *Connection) bool {
	if conn == nil {
		return false
	}
	return params == nil || params.DataSourceID == "" || params.DataSourceID != conn.ID
}

// DefaultWorkspaceParams selects the first option and its first child
func DefaultWorkspaceParams(conn *Connection, options []CascaderOption, flat bool) WorkspaceParams {
	var labels []string
	if len(options) > 0 {
		labels = append(labels, options[0].Value)
		if len(options[0].Children) > 0 {
			labels = append(labels, options[0].Children[0].Value)
		}
	}
	return WorkspaceParamsFromSelection(conn, labels, flat)
}

// WorkspaceParamsFromSelection builds params from the labels picked in the
// selector. A leading source alias (as shown in the display path) is dropped.
// In flat mode the single label names a schema of the connection's database.
func WorkspaceParamsFromSelection(conn *Connection, labels []string, flat bool) WorkspaceParams {
	var params WorkspaceParams
	if conn != nil {
		params.DataSourceID = conn.ID
		params.DatabaseSourceName = conn.Alias
		params.DatabaseType = conn.Type
	}

	if len(labels) > 2 {
		labels = labels[len(labels)-2:]
	}

	if flat {
		if conn != nil {
			params.DatabaseName = conn.Config.Database
		}
		if len(labels) > 0 {
			params.SchemaName = labels[len(labels)-1]
		}
		return params
	}

	if len(labels) > 0 {
		params.DatabaseName = labels[0]
	}
	if len(labels) > 1 {
		params.SchemaName = labels[1]
	}
	return params
}
