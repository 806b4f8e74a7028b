// Package mcpserver exposes the evaluation engine as Model Context Protocol
// tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rshade/esgready/internal/api"
	"github.com/rshade/esgready/internal/engine"
	"github.com/rshade/esgready/internal/kpi"
	"github.com/rshade/esgready/internal/logging"
)

// Tool names.
const (
	ToolEvaluate   = "esg_evaluate"
	ToolMaturity   = "esg_maturity"
	ToolCompare    = "esg_compare"
	ToolFrameworks = "esg_frameworks"
)

// EvaluateTool handles esg_evaluate.
type EvaluateTool struct {
	engine *engine.Engine
}

// NewEvaluateTool creates an EvaluateTool backed by eng.
func NewEvaluateTool(eng *engine.Engine) *EvaluateTool {
	return &EvaluateTool{engine: eng}
}

// Definition returns the MCP tool schema.
func (t *EvaluateTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolEvaluate,
		mcp.WithDescription(
			"Score an emissions dataset for ESG audit readiness. Returns KPIs, the audit score "+
				"breakdown with explanations, data quality issues, CSRD maturity and optional Scope 3 estimates.",
		),
		mcp.WithString("records",
			mcp.Required(),
			mcp.Description(`JSON array of rows with date, facility, energy_kwh, renewable_kwh, fuel_liters`),
		),
		mcp.WithString("spend",
			mcp.Description(`Optional JSON array of {"category", "annual_spend_eur"} for Scope 3 estimation`),
		),
		mcp.WithNumber("year",
			mcp.Description("Reporting year (default: current year)"),
		),
	)
}

// Handle processes the tool call.
func (t *EvaluateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var body api.EvaluateRequest
	if err := json.Unmarshal([]byte(req.GetString("records", "")), &body.Records); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("'records' must be a JSON array of objects: %v", err)), nil
	}
	if spend := strings.TrimSpace(req.GetString("spend", "")); spend != "" {
		if err := json.Unmarshal([]byte(spend), &body.Spend); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("'spend' must be a JSON array of objects: %v", err)), nil
		}
		if body.Spend == nil {
			body.Spend = []map[string]any{}
		}
	}
	body.Year = int(req.GetFloat("year", 0))

	res, err := api.Evaluate(ctx, t.engine, body)
	if err != nil {
		if errors.Is(err, api.ErrInvalidRequest) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		logging.FromContext(ctx).Error().Str("component", "mcp").Str("tool", ToolEvaluate).Err(err).Msg("evaluation failed")
		return nil, err
	}
	return jsonResult(summarize(res), res)
}

// MaturityTool handles esg_maturity.
type MaturityTool struct{}

// NewMaturityTool creates a MaturityTool.
func NewMaturityTool() *MaturityTool { return &MaturityTool{} }

// Definition returns the MCP tool schema.
func (t *MaturityTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolMaturity,
		mcp.WithDescription("Classify a CSRD maturity level (1-5) from an audit readiness score."),
		mcp.WithNumber("audit_score", mcp.Required(), mcp.Description("Audit readiness score, 0-100")),
		mcp.WithBoolean("scope3_present", mcp.Description("Whether Scope 3 emissions are reported (default: false)")),
		mcp.WithNumber("year", mcp.Description("Reporting year")),
	)
}

// Handle processes the tool call.
func (t *MaturityTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, ok := req.GetArguments()["audit_score"]; !ok {
		return mcp.NewToolResultError("'audit_score' is required"), nil
	}
	rating, err := api.Maturity(api.MaturityRequest{
		AuditScore:    int(req.GetFloat("audit_score", 0)),
		Scope3Present: req.GetBool("scope3_present", false),
		Year:          int(req.GetFloat("year", 0)),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	summary := fmt.Sprintf("Level %d (%s) for score %d", rating.MaturityLevel, rating.MaturityLabel, rating.AuditScore)
	return jsonResult(summary, rating)
}

// CompareTool handles esg_compare.
type CompareTool struct{}

// NewCompareTool creates a CompareTool.
func NewCompareTool() *CompareTool { return &CompareTool{} }

// Definition returns the MCP tool schema.
func (t *CompareTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolCompare,
		mcp.WithDescription("Compare two KPI snapshots (current vs previous period) metric by metric."),
		mcp.WithString("current", mcp.Required(), mcp.Description("JSON object of metric name to value for the current period")),
		mcp.WithString("previous", mcp.Required(), mcp.Description("JSON object of metric name to value for the previous period")),
	)
}

// Handle processes the tool call.
func (t *CompareTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var current, previous kpi.Snapshot
	if err := json.Unmarshal([]byte(req.GetString("current", "")), &current); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("'current' must be a JSON object of numbers: %v", err)), nil
	}
	if err := json.Unmarshal([]byte(req.GetString("previous", "")), &previous); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("'previous' must be a JSON object of numbers: %v", err)), nil
	}

	resp := api.Compare(api.CompareRequest{Current: current, Previous: previous})
	var sb strings.Builder
	for _, c := range resp.Changes {
		fmt.Fprintf(&sb, "- **%s**: %+g (%s)\n", c.Metric, c.Change, c.Explanation)
	}
	if len(resp.Changes) == 0 {
		sb.WriteString("No metrics in common.\n")
	}
	return jsonResult(sb.String(), resp)
}

// FrameworksTool handles esg_frameworks.
type FrameworksTool struct{}

// NewFrameworksTool creates a FrameworksTool.
func NewFrameworksTool() *FrameworksTool { return &FrameworksTool{} }

// Definition returns the MCP tool schema.
func (t *FrameworksTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolFrameworks,
		mcp.WithDescription("List CSRD, GRI, SASB and TCFD metric mappings and the topic coverage matrix."),
	)
}

// Handle processes the tool call.
func (t *FrameworksTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp := api.Frameworks()
	summary := fmt.Sprintf("Coverage %.0f%%, %d gaps", resp.CoverageRatio*100, len(resp.Gaps)) //nolint:mnd // Percent.
	return jsonResult(summary, resp)
}

func summarize(res *engine.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## ESG Audit Readiness %d\n\n", res.Year)
	fmt.Fprintf(&sb, "- **Audit score**: %d/100\n", res.Score.TotalScore)
	fmt.Fprintf(&sb, "- **CSRD maturity**: Level %d (%s)\n", res.Maturity.MaturityLevel, res.Maturity.MaturityLabel)
	fmt.Fprintf(&sb, "- **Quality issues**: %d\n", len(res.Quality.Issues))
	if len(res.Score.MissingColumns) > 0 {
		fmt.Fprintf(&sb, "- **Missing columns**: %s\n", strings.Join(res.Score.MissingColumns, ", "))
	}
	return sb.String()
}

// jsonResult returns a text summary followed by the indented JSON payload.
func jsonResult(summary string, v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return mcp.NewToolResultText(strings.TrimRight(summary, "\n") + "\n\n```json\n" + string(data) + "\n```"), nil
}
