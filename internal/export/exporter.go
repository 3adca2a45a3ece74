// Package export writes saved consoles to files and reads them back.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rebeliceyang/pgdesk/internal/models"
	"gopkg.in/yaml.v3"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts a format name in any case; "yml" means YAML
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// consoleFile is the document written by ExportToYAML
type consoleFile struct {
	Consoles []models.Console `yaml:"consoles"`
}

// Export writes consoles to path in the given format
func Export(format Format, consoles []models.Console, path string) error {
	switch format {
	case FormatCSV:
		return ExportToCSV(consoles, path)
	case FormatJSON:
		return ExportToJSON(consoles, path)
	case FormatYAML:
		return ExportToYAML(consoles, path)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// ExportToCSV exports consoles to a CSV file
func ExportToCSV(consoles []models.Console, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	header := []string{"ID", "Name", "Status", "Query", "Data Source", "Database", "Schema", "Created", "Updated"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, c := range consoles {
		row := []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			string(c.Status),
			c.DDL,
			c.DataSourceID,
			c.DatabaseName,
			c.SchemaName,
			c.CreatedAt.Format("2006-01-02 15:04:05"),
			c.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}
	return nil
}

// ExportToJSON exports consoles to a JSON file
func ExportToJSON(consoles []models.Console, path string) error {
	data, err := json.MarshalIndent(consoles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal consoles to JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}

// ExportToYAML exports consoles to a YAML file that ImportFromFile can read
func ExportToYAML(consoles []models.Console, path string) error {
	data, err := yaml.Marshal(consoleFile{Consoles: consoles})
	if err != nil {
		return fmt.Errorf("failed to marshal consoles to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	return nil
}

// ImportFromFile reads consoles from a YAML or JSON export.
// The format is chosen by file extension.
func ImportFromFile(path string) ([]models.Console, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var consoles []models.Console
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &consoles); err != nil {
			return nil, fmt.Errorf("failed to parse JSON import: %w", err)
		}
	case ".yaml", ".yml":
		var doc consoleFile
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML import: %w", err)
		}
		consoles = doc.Consoles
	default:
		return nil, fmt.Errorf("cannot import %s: unknown file extension", filepath.Base(path))
	}

	return consoles, nil
}
