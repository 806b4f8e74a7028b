package mcpserver

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/server"

	"github.com/rshade/esgready/internal/engine"
)

const serverName = "esgready"

const instructions = `esgready scores emissions datasets for ESG audit readiness and CSRD maturity.
Call esg_evaluate with the dataset rows as a JSON string. Use esg_maturity for a
score you already have, esg_compare for period-over-period KPI changes, and
esg_frameworks for CSRD/GRI/SASB/TCFD reference mappings.`

// New builds the MCP server with every tool registered.
func New(eng *engine.Engine, version string) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	evaluate := NewEvaluateTool(eng)
	s.AddTool(evaluate.Definition(), evaluate.Handle)

	maturity := NewMaturityTool()
	s.AddTool(maturity.Definition(), maturity.Handle)

	compare := NewCompareTool()
	s.AddTool(compare.Definition(), compare.Handle)

	frameworks := NewFrameworksTool()
	s.AddTool(frameworks.Definition(), frameworks.Handle)

	return s
}

// ServeStdio runs s over in/out until ctx is cancelled or in closes.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}
