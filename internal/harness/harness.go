// Package harness runs query-compilation scenarios from YAML files and
// renders compile results into a stable text form for golden comparison.
package harness

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/finchql/finch/internal/qlang"
)

// Scenario is one named query compilation case.
type Scenario struct {
	Name  string `yaml:"name"`
	Query string `yaml:"query"`
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadScenarios reads a scenario YAML file. Scenario names must be
// non-empty and unique since they name the golden fixtures.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenarios: %w", err)
	}
	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing scenarios: %w", err)
	}
	seen := make(map[string]bool, len(file.Scenarios))
	for _, s := range file.Scenarios {
		if s.Name == "" {
			return nil, fmt.Errorf("scenario with empty name (query %q)", s.Query)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return file.Scenarios, nil
}

// CompileSnapshot renders one compile result. Every field appears on its
// own line in fixed order so fixture diffs are easy to read.
func CompileSnapshot(query string, q *qlang.CompiledQuery, err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "query: %s\n", query)
	if err != nil {
		fmt.Fprintf(&b, "error: %s\n", err.Error())
		return b.String()
	}
	fmt.Fprintf(&b, "type: %s\n", q.Type)
	fmt.Fprintf(&b, "dialect: %s\n", q.Dialect)
	fmt.Fprintf(&b, "fetch: %s\n", q.Fetch)
	fmt.Fprintf(&b, "limit: %d\n", q.Limit)
	fmt.Fprintf(&b, "offset: %d\n", q.StartIndex)
	fmt.Fprintf(&b, "sorts: %s\n", renderSorts(q.Sorts))
	fmt.Fprintf(&b, "params: %v\n", q.Params)
	fmt.Fprintf(&b, "native: %s\n", q.Native)
	return b.String()
}

func renderSorts(sorts []qlang.SortClause) string {
	if len(sorts) == 0 {
		return "[]"
	}
	parts := make([]string, len(sorts))
	for i, s := range sorts {
		dir := "ASC"
		if s.Descending {
			dir = "DESC"
		}
		parts[i] = s.Field + " " + dir
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
