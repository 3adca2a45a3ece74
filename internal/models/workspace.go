package models

import "strings"

// WorkspaceParams is the active database/schema selection shared by the
// sidebar panels. The zero value means nothing is selected.
type WorkspaceParams struct {
	DataSourceID       string `json:"dataSourceId" yaml:"data_source_id"`
	DatabaseSourceName string `json:"databaseSourceName" yaml:"database_source_name"`
	DatabaseName       string `json:"databaseName,omitempty" yaml:"database_name,omitempty"`
	SchemaName         string `json:"schemaName,omitempty" yaml:"schema_name,omitempty"`
	DatabaseType       string `json:"databaseType" yaml:"database_type"`
}

// IsZero reports whether no data source is selected
func (p WorkspaceParams) IsZero() bool {
	return p.DataSourceID == ""
}

// DisplayPath joins source, database and schema with "/", skipping empty parts
func (p WorkspaceParams) DisplayPath() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.DatabaseSourceName, p.DatabaseName, p.SchemaName} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// Schema is a schema entry of a DatabaseAndSchema
type Schema struct {
	Name string `json:"name" yaml:"name"`
}

// Database is a database entry of a DatabaseAndSchema.
// Schemas is nil when the database's schemas could not be read.
type Database struct {
	Name    string   `json:"name" yaml:"name"`
	Schemas []Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// DatabaseAndSchema is what the selector is built from: either a list of
// databases (each with nested schemas) or a flat list of schemas.
type DatabaseAndSchema struct {
	Databases []Database `json:"databases,omitempty" yaml:"databases,omitempty"`
	Schemas   []Schema   `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// Flat reports whether the structure only carries schemas. A non-nil
// database list wins, even when empty, as in BuildCascaderOptions.
func (d *DatabaseAndSchema) Flat() bool {
	return d != nil && d.Databases == nil && d.Schemas != nil
}
