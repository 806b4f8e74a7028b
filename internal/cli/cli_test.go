package cli_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgready/internal/cli"
	"github.com/rshade/esgready/internal/config"
)

const (
	emissionsCSV = "testdata/emissions.csv"
	previousCSV  = "testdata/previous.csv"
	spendCSV     = "testdata/spend.csv"
)

// setupCLITest isolates config, cache and log state for one test and
// returns the isolated ESGREADY_HOME.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFormat, "")
	t.Setenv(config.EnvOutputFormat, "")
	t.Setenv(config.EnvCacheDisabled, "true")
	t.Setenv(config.EnvCacheTTL, "")
	t.Setenv(config.EnvGeminiAPIKey, "")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestScore_Table(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "score", "--data", emissionsCSV, "--year", "2025")
	require.NoError(t, err)

	assert.Contains(t, out, "ESG Audit Readiness 2025")
	assert.Contains(t, out, "Audit score:    92/100")
	assert.Contains(t, out, "CSRD maturity:  Level 4 (Managed)")
	assert.Contains(t, out, "Scope 1 CO₂ (kg)")
	assert.Contains(t, out, "115.50")
	assert.Contains(t, out, "Renewable Transparency")
	assert.Contains(t, out, "No data quality issues found.")
	assert.Contains(t, out, "Financial linkage")
	assert.NotContains(t, out, "Scope 3 estimates")
}

func TestScore_JSONWithSpend(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "score", "--data", emissionsCSV, "--spend", spendCSV, "--output", "json")
	require.NoError(t, err)

	var res struct {
		Audit struct {
			TotalScore int `json:"total_score"`
		} `json:"audit"`
		Maturity struct {
			MaturityLevel int `json:"maturity_level"`
		} `json:"maturity"`
		Scope3 struct {
			TotalKg  float64 `json:"total_co2_kg"`
			Warnings []any   `json:"warnings"`
		} `json:"scope3"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 92, res.Audit.TotalScore)
	assert.Equal(t, 5, res.Maturity.MaturityLevel)
	assert.InDelta(t, 180.0, res.Scope3.TotalKg, 1e-9)
	assert.Len(t, res.Scope3.Warnings, 1)
}

func TestScore_MultipleFilesNDJSON(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "score", "--data", emissionsCSV, "--data", previousCSV, "-o", "ndjson")
	require.NoError(t, err)

	var paths []string
	sc := bufio.NewScanner(strings.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var line struct {
			Path string `json:"path"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		paths = append(paths, line.Path)
	}
	assert.Equal(t, []string{emissionsCSV, previousCSV}, paths)
}

func TestScore_MultipleFilesTable(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "score", "--data", emissionsCSV, "--data", previousCSV)
	require.NoError(t, err)
	assert.Contains(t, out, "== "+emissionsCSV+" ==")
	assert.Contains(t, out, "== "+previousCSV+" ==")
}

func TestScore_Errors(t *testing.T) {
	setupCLITest(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no data", args: []string{"score"}, want: `required flag(s) "data" not set`},
		{name: "missing file", args: []string{"score", "--data", "testdata/nope.csv"}, want: "nope.csv"},
		{name: "missing column", args: []string{"score", "--data", "testdata/missing_columns.csv"}, want: "required column missing"},
		{name: "bad format", args: []string{"score", "--data", emissionsCSV, "-o", "xml"}, want: "invalid output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScore_OutputFormatFromEnv(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvOutputFormat, "json")

	out, _, err := run(t, "score", "--data", emissionsCSV)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestQuality(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "quality", "--data", emissionsCSV)
	require.NoError(t, err)
	assert.Contains(t, out, "Data quality")
	assert.Contains(t, out, "Measured")
	assert.Contains(t, out, "No data quality issues found.")

	_, _, err = run(t, "quality", "--data", emissionsCSV, "--data", previousCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one --data file")
}

func TestMaturity(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "maturity", "--score", "90", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "CSRD maturity 2025: Level 4 (Managed)")
	assert.Contains(t, out, "> 4 Managed")
	assert.Contains(t, out, "Report Scope 3 emissions to reach Level 5")

	out, _, err = run(t, "maturity", "--score", "90", "--scope3", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"maturity_level": 5`)

	_, _, err = run(t, "maturity", "--score", "101")
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "compare", "--current", emissionsCSV, "--previous", previousCSV)
	require.NoError(t, err)
	assert.Contains(t, out, "Period comparison (5 metrics)")
	assert.Contains(t, out, "+200.00")
	assert.Contains(t, out, "Increase due to operational expansion")
	assert.Contains(t, out, "Reduction driven by efficiency measures")

	out, _, err = run(t, "compare", "--current", emissionsCSV, "--previous", previousCSV, "-o", "json")
	require.NoError(t, err)
	var changes []struct {
		Metric string  `json:"metric"`
		Change float64 `json:"change"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &changes))
	require.Len(t, changes, 5)
	assert.InDelta(t, 200.0, changes[0].Change, 1e-9)
}

func TestReport(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "report", "--data", emissionsCSV, "--year", "2025", "--gap", "--narrative")
	require.NoError(t, err)
	assert.Contains(t, out, "# ESG Audit Readiness Report 2025")
	assert.Contains(t, out, "Audit Readiness Score: **92/100**")
	assert.Contains(t, out, "## Executive Summary")
	assert.Contains(t, out, "## ESG Narrative")

	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "report.html")
	out, _, err = run(t, "report", "--data", emissionsCSV, "--format", "html", "--out", htmlPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")
	data, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<table>")

	_, _, err = run(t, "report", "--data", emissionsCSV, "--format", "pdf")
	require.Error(t, err)
}

func TestNarrative(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "narrative", "--data", emissionsCSV)
	require.NoError(t, err)
	assert.Contains(t, out, "## Environment")
	assert.Contains(t, out, "## Governance")
	assert.Contains(t, out, "## Strategy")

	out, _, err = run(t, "narrative", "--data", emissionsCSV, "--kind", "risk", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"source": "deterministic"`)

	_, stderr, err := run(t, "narrative", "--data", emissionsCSV, "--ai")
	require.NoError(t, err)
	assert.Contains(t, stderr, "using deterministic narrative")

	_, _, err = run(t, "narrative", "--data", emissionsCSV, "--kind", "poem")
	require.Error(t, err)
}

func TestFrameworks(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "frameworks")
	require.NoError(t, err)
	assert.Contains(t, out, "CSRD / GRI")
	assert.Contains(t, out, "GRI 302-1")
	assert.Contains(t, out, "IF-EU-110a.1")
	assert.Contains(t, out, "Coverage: 60.4%")

	out, _, err = run(t, "frameworks", "--framework", "tcfd")
	require.NoError(t, err)
	assert.Contains(t, out, "Metrics & Targets")
	assert.NotContains(t, out, "GRI 302-1")

	out, _, err = run(t, "frameworks", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"coverage_ratio": 0.6042`)

	_, _, err = run(t, "frameworks", "--framework", "esrs")
	require.Error(t, err)
}

func TestDashboard_RequiresTerminal(t *testing.T) {
	setupCLITest(t)

	_, _, err := run(t, "dashboard", "--data", emissionsCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestCache_Commands(t *testing.T) {
	home := setupCLITest(t)
	t.Setenv(config.EnvCacheDisabled, "false")

	_, _, err := run(t, "score", "--data", emissionsCSV, "-o", "json")
	require.NoError(t, err)

	out, _, err := run(t, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(home, "cache"))
	assert.Contains(t, out, "Entries: 1")

	out, _, err = run(t, "cache", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 expired entries")

	out, _, err = run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 entries")
}

func TestVersionFlag(t *testing.T) {
	setupCLITest(t)

	out, _, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "esgready version test")
	assert.Contains(t, out, "commit unknown, built unknown")
	assert.Contains(t, out, "[development build]")
}

func TestVersionFlag_Release(t *testing.T) {
	setupCLITest(t)

	for ver, dev := range map[string]bool{"1.4.0": false, "1.4.0-rc.1": true} {
		var stdout bytes.Buffer
		cmd := cli.NewRootCmd(ver)
		cmd.SetOut(&stdout)
		cmd.SetArgs([]string{"--version"})
		require.NoError(t, cmd.Execute())

		assert.Contains(t, stdout.String(), "esgready version "+ver)
		assert.Equal(t, dev, strings.Contains(stdout.String(), "[development build]"), ver)
	}
}
