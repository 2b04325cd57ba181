package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/service"
)

// TraceTool handles the screening_trace MCP tool.
type TraceTool struct {
	svc *service.AssessmentService
}

// NewTraceTool creates a TraceTool.
func NewTraceTool(svc *service.AssessmentService) *TraceTool {
	return &TraceTool{svc: svc}
}

// Definition returns the MCP tool definition for screening_trace.
func (t *TraceTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Show the fuzzy risk calculation for a vector of normalized criterion scores " +
				"(each 0..1). Nothing is stored.",
		),
	}
	for _, cr := range t.svc.Criteria() {
		opts = append(opts, mcp.WithNumber(strings.ToLower(string(cr.Code)),
			mcp.Description(fmt.Sprintf("Normalized score for %s %s. Defaults to 0.", cr.Code, cr.Name)),
		))
	}
	return mcp.NewTool("screening_trace", opts...)
}

// Handle processes the screening_trace tool call.
func (t *TraceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var scores screening.Scores
	for i, code := range screening.Order {
		scores[i] = floatArg(req, strings.ToLower(string(code)), 0)
	}

	res := t.svc.Trace(scores)

	var sb strings.Builder
	sb.WriteString("## Calculation trace\n\n")
	writeTrace(&sb, res.Trace)
	fmt.Fprintf(&sb, "\n**Risk score**: %.3f (%s)\n", res.Score, res.Tier)

	return mcp.NewToolResultText(sb.String()), nil
}
