package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgready/internal/audit"
	"github.com/rshade/esgready/internal/engine"
)

func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

const records = `[{"date":"2024-01-01","facility":"Plant A","energy_kwh":1000,"renewable_kwh":200,"fuel_liters":50}]`

func TestEvaluateTool_Definition(t *testing.T) {
	def := NewEvaluateTool(engine.New(nil)).Definition()
	assert.Equal(t, ToolEvaluate, def.Name)
	assert.Contains(t, def.InputSchema.Properties, "records")
	assert.Contains(t, def.InputSchema.Properties, "spend")
	assert.Contains(t, def.InputSchema.Required, "records")
}

func TestEvaluateTool_Handle(t *testing.T) {
	tool := NewEvaluateTool(engine.New(audit.FixedAlignment{}))

	res, err := tool.Handle(context.Background(), makeReq(map[string]any{
		"records": records,
		"year":    float64(2024),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	text := resultText(res)
	assert.Contains(t, text, "## ESG Audit Readiness 2024")
	assert.Contains(t, text, "**Audit score**: 92/100")
	assert.Contains(t, text, `"total_score": 92`)
}

func TestEvaluateTool_WithSpend(t *testing.T) {
	tool := NewEvaluateTool(engine.New(audit.FixedAlignment{}))
	res, err := tool.Handle(context.Background(), makeReq(map[string]any{
		"records": records,
		"spend":   `[{"category":"it_services","annual_spend_eur":2000}]`,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(res), `"total_co2_kg": 100`)
}

func TestEvaluateTool_Errors(t *testing.T) {
	tool := NewEvaluateTool(engine.New(audit.FixedAlignment{}))
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "missing records", args: map[string]any{}, want: "'records' must be"},
		{name: "not an array", args: map[string]any{"records": `{"a":1}`}, want: "'records' must be"},
		{name: "empty array", args: map[string]any{"records": `[]`}, want: "records must be a non-empty array"},
		{name: "missing column", args: map[string]any{"records": `[{"energy_kwh":1}]`}, want: "required column missing"},
		{name: "bad spend", args: map[string]any{"records": records, "spend": `nope`}, want: "'spend' must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tool.Handle(context.Background(), makeReq(tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(res), tt.want)
		})
	}
}

func TestMaturityTool(t *testing.T) {
	tool := NewMaturityTool()
	res, err := tool.Handle(context.Background(), makeReq(map[string]any{
		"audit_score":    float64(88),
		"scope3_present": true,
		"year":           float64(2025),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(res), "Level 5 (Optimized) for score 88")

	res, err = tool.Handle(context.Background(), makeReq(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = tool.Handle(context.Background(), makeReq(map[string]any{"audit_score": float64(120)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestCompareTool(t *testing.T) {
	tool := NewCompareTool()
	res, err := tool.Handle(context.Background(), makeReq(map[string]any{
		"current":  `{"Total Energy (kWh)": 1200}`,
		"previous": `{"Total Energy (kWh)": 1000}`,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(res), "**Total Energy (kWh)**: +200 (Increase due to operational expansion)")

	res, err = tool.Handle(context.Background(), makeReq(map[string]any{"current": `[1]`, "previous": `{}`}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = tool.Handle(context.Background(), makeReq(map[string]any{"current": `{"a":1}`, "previous": `{"b":1}`}))
	require.NoError(t, err)
	assert.Contains(t, resultText(res), "No metrics in common.")
}

func TestFrameworksTool(t *testing.T) {
	res, err := NewFrameworksTool().Handle(context.Background(), makeReq(nil))
	require.NoError(t, err)
	text := resultText(res)
	assert.True(t, strings.HasPrefix(text, "Coverage 60%"))
	assert.Contains(t, text, `"coverage_ratio": 0.6042`)
}

func TestNew_RegistersTools(t *testing.T) {
	s := New(engine.New(nil), "test")
	require.NotNil(t, s)
	tools := s.ListTools()
	for _, name := range []string{ToolEvaluate, ToolMaturity, ToolCompare, ToolFrameworks} {
		assert.Contains(t, tools, name)
	}
}
