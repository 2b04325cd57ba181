package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asd-screening/backend/internal/service"
)

// HistoryTool handles the screening_history MCP tool.
type HistoryTool struct {
	svc *service.AssessmentService
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(svc *service.AssessmentService) *HistoryTool {
	return &HistoryTool{svc: svc}
}

// Definition returns the MCP tool definition for screening_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("screening_history",
		mcp.WithDescription("List stored screening results, most recently updated first."),
	)
}

// Handle processes the screening_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	history, err := t.svc.History(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load history: %v", err)), nil
	}
	if len(history) == 0 {
		return mcp.NewToolResultText("No screening results stored yet."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Screening history (%d)\n\n", len(history))
	sb.WriteString("| # | Name | Date of birth | Score | Tier | Program | Updated |\n")
	sb.WriteString("|---|---|---|---|---|---|---|\n")
	for _, s := range history {
		fmt.Fprintf(&sb, "| %d | %s | %s | %.3f | %s | %s | %s |\n",
			s.ID, s.Name, s.DateOfBirth, s.Score, s.Tier, s.Program,
			s.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
