package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dan9191/finhealth-service/internal/export"
	"github.com/Dan9191/finhealth-service/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const householdYAML = `annualSalary: 300000
annualLivingExpenses: 180000
cashAndDeposits: 50000
emergencyFund: 50000
`

func TestScoreSingleFileJSON(t *testing.T) {
	path := writeFile(t, "household.yaml", householdYAML)
	out, err := run(t, "", "score", path, "-o", "json", "--lang", "en")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	var report models.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if report.Analysis.HealthScore != 85 || report.LevelLabel != "Excellent" {
		t.Fatalf("unexpected report: %d %q", report.Analysis.HealthScore, report.LevelLabel)
	}
}

func TestScoreBatchKeepsArgumentOrder(t *testing.T) {
	good := writeFile(t, "good.yaml", householdYAML)
	empty := writeFile(t, "empty.json", `{}`)

	out, err := run(t, "", "score", good, empty, "-o", "json")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	var items []export.Item
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(items) != 2 || items[0].Source != good || items[1].Source != empty {
		t.Fatalf("unexpected order: %+v", items)
	}
	if items[0].Report.Analysis.HealthScore != 85 || items[1].Report.Analysis.HealthScore != 45 {
		t.Fatalf("unexpected scores %d, %d", items[0].Report.Analysis.HealthScore, items[1].Report.Analysis.HealthScore)
	}
}

func TestScoreFromStdin(t *testing.T) {
	out, err := run(t, householdYAML, "score", "-", "-o", "yaml")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !strings.Contains(out, "healthScore: 85") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestScoreErrors(t *testing.T) {
	unknownField := writeFile(t, "typo.yaml", "annualSalry: 1000\n")
	badJSON := writeFile(t, "bad.json", `{"annualSalary": "lots"}`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no files", []string{"score"}, "requires at least 1 arg"},
		{"missing file", []string{"score", filepath.Join(t.TempDir(), "nope.yaml")}, "read"},
		{"unknown field", []string{"score", unknownField}, "parse"},
		{"bad json", []string{"score", badJSON}, "parse"},
		{"bad format", []string{"score", unknownField, "-o", "pdf"}, "unsupported format"},
		{"stdin twice", []string{"score", "-", "-"}, "only be read once"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSummaryCommand(t *testing.T) {
	path := writeFile(t, "household.yaml", householdYAML)
	out, err := run(t, "", "summary", path)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, "年薪资收入：300,000 元") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil || !strings.Contains(out, "finhealth version") {
		t.Fatalf("version: %q %v", out, err)
	}
}
