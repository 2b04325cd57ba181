package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asd-screening/backend/internal/domain/screening"
	"github.com/asd-screening/backend/internal/service"
)

// AssessTool handles the screening_assess MCP tool.
type AssessTool struct {
	svc *service.AssessmentService
}

// NewAssessTool creates an AssessTool.
func NewAssessTool(svc *service.AssessmentService) *AssessTool {
	return &AssessTool{svc: svc}
}

// Definition returns the MCP tool definition for screening_assess.
func (t *AssessTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Score a ten-question autism screening questionnaire for one child, " +
				"recommend an intervention program and store the result. " +
				"Resubmitting for the same name and date of birth replaces the earlier record.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Child's name"),
		),
		mcp.WithString("date_of_birth",
			mcp.Required(),
			mcp.Description("Date of birth as YYYY-MM-DD"),
		),
	}
	for _, cr := range t.svc.Criteria() {
		for _, q := range cr.Questions {
			opts = append(opts, mcp.WithBoolean(q,
				mcp.Description(fmt.Sprintf("Answer to %s (%s). Omitted means no.", q, cr.Name)),
			))
		}
	}
	return mcp.NewTool("screening_assess", opts...)
}

// Handle processes the screening_assess tool call.
func (t *AssessTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	answers := make(map[string]any, len(args))
	for k, v := range args {
		if strings.HasPrefix(k, "q") {
			answers[k] = v
		}
	}

	report, err := t.svc.Assess(ctx, service.Submission{
		Name:        req.GetString("name", ""),
		DateOfBirth: req.GetString("date_of_birth", ""),
		Answers:     answers,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assessment failed: %v", err)), nil
	}

	rec := report.Record
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Screening result for %s (%s)\n\n", rec.Name, rec.DateOfBirth)
	fmt.Fprintf(&sb, "- **Record**: #%d\n", rec.ID)
	fmt.Fprintf(&sb, "- **Risk score**: %.3f (%s)\n", rec.Score, rec.Tier)
	fmt.Fprintf(&sb, "- **Most prominent**: %s %s (%.2f)\n", rec.Prominent.Code, rec.Prominent.Name, rec.Prominent.Value)
	fmt.Fprintf(&sb, "- **Recommended program**: %s\n", rec.Program)
	if d := rec.Details; d.Title != "" {
		fmt.Fprintf(&sb, "  - %s: %s\n", d.Code, d.Title)
		fmt.Fprintf(&sb, "  - Goal: %s\n", d.Goal)
		fmt.Fprintf(&sb, "  - Activity: %s\n", d.Activity)
		fmt.Fprintf(&sb, "  - School: %s\n", d.School)
	}

	sb.WriteString("\n### Confidence\n\n")
	for _, c := range rec.Confidence {
		fmt.Fprintf(&sb, "- %s: %.1f%%\n", c.Label, c.Percent)
	}

	sb.WriteString("\n### Calculation\n\n")
	writeTrace(&sb, report.Result.Trace)
	fmt.Fprintf(&sb, "\nScore = (l + m + u) / 3 = %.3f → %s\n", report.Result.Score, screening.TierFor(report.Result.Score))

	return mcp.NewToolResultText(sb.String()), nil
}
