package components

import (
	"strings"
	"testing"

	"github.com/rebeliceyang/pgdesk/internal/models"
)

func TestParseSearchQuery_Simple(t *testing.T) {
	q := ParseSearchQuery("plan")

	if q.Pattern != "plan" {
		t.Errorf("expected pattern 'plan', got '%s'", q.Pattern)
	}
	if q.Negate {
		t.Error("expected Negate=false")
	}
	if q.TypeFilter != "" {
		t.Errorf("expected empty TypeFilter, got '%s'", q.TypeFilter)
	}
}

func TestParseSearchQuery_Negate(t *testing.T) {
	q := ParseSearchQuery("!test")

	if q.Pattern != "test" {
		t.Errorf("expected pattern 'test', got '%s'", q.Pattern)
	}
	if !q.Negate {
		t.Error("expected Negate=true")
	}
}

func TestParseSearchQuery_TypePrefixes(t *testing.T) {
	tests := []struct {
		query    string
		pattern  string
		typeName string
	}{
		{"t:plan", "plan", "table"},
		{"table:plan", "plan", "table"},
		{"col:id", "id", "column"},
		{"column:id", "id", "column"},
		{"c:id", "id", "column"},
		{"T:Plan", "Plan", "table"},
	}

	for _, tt := range tests {
		q := ParseSearchQuery(tt.query)
		if q.Pattern != tt.pattern {
			t.Errorf("%s: expected pattern '%s', got '%s'", tt.query, tt.pattern, q.Pattern)
		}
		if q.TypeFilter != tt.typeName {
			t.Errorf("%s: expected TypeFilter '%s', got '%s'", tt.query, tt.typeName, q.TypeFilter)
		}
	}
}

func TestParseSearchQuery_NegateWithType(t *testing.T) {
	q := ParseSearchQuery("!col:id")

	if q.Pattern != "id" {
		t.Errorf("expected pattern 'id', got '%s'", q.Pattern)
	}
	if !q.Negate {
		t.Error("expected Negate=true")
	}
	if q.TypeFilter != "column" {
		t.Errorf("expected TypeFilter 'column', got '%s'", q.TypeFilter)
	}
}

func TestFuzzyMatch_ExactPrefix(t *testing.T) {
	match, positions := FuzzyMatch("plan", "plan_check_run")

	if !match {
		t.Error("expected match")
	}
	if len(positions) != 4 || positions[0] != 0 || positions[3] != 3 {
		t.Errorf("expected positions [0,1,2,3], got %v", positions)
	}
}

func TestFuzzyMatch_Subsequence(t *testing.T) {
	match, positions := FuzzyMatch("pcr", "plan_check_run")

	if !match {
		t.Error("expected match")
	}
	if len(positions) != 3 {
		t.Errorf("expected 3 positions, got %d", len(positions))
	}
}

func TestFuzzyMatch_NoMatch(t *testing.T) {
	if match, _ := FuzzyMatch("xyz", "plan_check_run"); match {
		t.Error("expected no match")
	}
}

func TestFuzzyMatch_CaseInsensitive(t *testing.T) {
	if match, _ := FuzzyMatch("PLAN", "plan_check_run"); !match {
		t.Error("expected case-insensitive match")
	}
}

func TestNodeMatchesType(t *testing.T) {
	table := &models.TreeNode{Type: models.TreeNodeTypeTable}
	column := &models.TreeNode{Type: models.TreeNodeTypeColumn}

	if !NodeMatchesType(table, "table") {
		t.Error("table node should match 'table' type filter")
	}
	if NodeMatchesType(table, "column") {
		t.Error("table node should not match 'column' type filter")
	}
	if !NodeMatchesType(column, "") {
		t.Error("empty filter should match any node")
	}
	if NodeMatchesType(column, "view") {
		t.Error("unknown filters should match nothing")
	}
}

func createTestTree() *models.TreeNode {
	tables := models.BuildTableNodes("shop", "public", []models.TableMeta{
		{Schema: "public", Name: "plan"},
		{Schema: "public", Name: "plan_check_run"},
		{Schema: "public", Name: "users"},
	})
	root := models.NewRoot(tables)

	users := tables[2]
	models.RefreshTreeChildren(users, models.BuildColumnNodes("shop", "public", "users", []models.ColumnInfo{
		{Name: "id", DataType: "integer", PrimaryKey: true},
		{Name: "plan_id", DataType: "integer"},
	}))

	return root
}

func TestFilterTree_SimpleMatch(t *testing.T) {
	matches := FilterTree(createTestTree(), ParseSearchQuery("plan"))

	// plan, plan_check_run and the plan_id column
	if len(matches) != 3 {
		t.Errorf("expected 3 matches, got %d", len(matches))
	}
}

func TestFilterTree_TypeFilter(t *testing.T) {
	matches := FilterTree(createTestTree(), ParseSearchQuery("t:plan"))

	if len(matches) != 2 {
		t.Errorf("expected 2 table matches, got %d", len(matches))
	}
	for _, m := range matches {
		if m.Type != models.TreeNodeTypeTable {
			t.Errorf("expected only table nodes, got %s", m.Type)
		}
	}
}

func TestFilterTree_FindsCollapsedColumns(t *testing.T) {
	matches := FilterTree(createTestTree(), ParseSearchQuery("col:id"))

	if len(matches) != 2 {
		t.Fatalf("expected 2 column matches, got %d", len(matches))
	}
	if matches[0].Label != "id (integer)" {
		t.Errorf("expected 'id (integer)', got '%s'", matches[0].Label)
	}
}

func TestFilterTree_Negate(t *testing.T) {
	matches := FilterTree(createTestTree(), ParseSearchQuery("!plan"))

	if len(matches) == 0 {
		t.Fatal("expected some matches")
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(m.Label), "plan") {
			t.Errorf("negated query should not match '%s'", m.Label)
		}
	}
}

func TestFilterTree_EmptyQuery(t *testing.T) {
	matches := FilterTree(createTestTree(), ParseSearchQuery(""))

	if len(matches) != 5 {
		t.Errorf("empty query should return all 5 searchable nodes, got %d", len(matches))
	}
}
