// Package mcptools exposes the screening pipeline as MCP tools.
//
// Each tool follows the same shape:
// - A struct holding the AssessmentService, injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a markdown result
package mcptools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/service"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// NewServer builds an MCP server with every screening tool registered.
func NewServer(svc *service.AssessmentService) *server.MCPServer {
	s := server.NewMCPServer(
		"asd-screening",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	assess := NewAssessTool(svc)
	s.AddTool(assess.Definition(), assess.Handle)

	trace := NewTraceTool(svc)
	s.AddTool(trace.Definition(), trace.Handle)

	history := NewHistoryTool(svc)
	s.AddTool(history.Definition(), history.Handle)

	return s
}

// floatArg extracts a numeric argument, returning defaultVal if the key is
// missing or not a number (JSON numbers are float64).
func floatArg(req mcp.CallToolRequest, key string, defaultVal float64) float64 {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return v
}

// writeTrace renders the calculation trace as a markdown table.
func writeTrace(sb *strings.Builder, tr screening.Trace) {
	sb.WriteString("| Criterion | Raw | Normalized | Weight (l, m, u) | Weighted (l, m, u) |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, row := range tr.Rows {
		fmt.Fprintf(sb, "| %s %s | %d/%d | %.3f | %.3f, %.3f, %.3f | %.4f, %.4f, %.4f |\n",
			row.Code, row.Name, row.Raw, row.Max, row.Normalized,
			row.Weight.L, row.Weight.M, row.Weight.U,
			row.Product.L, row.Product.M, row.Product.U,
		)
	}
	fmt.Fprintf(sb, "\n**Totals**: l=%.4f m=%.4f u=%.4f\n", tr.Totals.L, tr.Totals.M, tr.Totals.U)
}
