package ui

import (
	"fmt"
	"strings"

	"RegulatorRadar/internal/domain"
	"RegulatorRadar/internal/usecase"
)

// RenderResult formats an analysis result for the terminal.
func RenderResult(res domain.AnalysisResult) string {
	if !res.Success || res.Analysis == nil {
		var b strings.Builder
		b.WriteString(ErrorStyle.Render("Analysis failed"))
		b.WriteString("\n")
		for _, err := range res.Errors {
			fmt.Fprintf(&b, "  %s %s\n", LabelStyle.Render(string(err.Kind)+":"), err.Error())
		}
		return b.String()
	}
	return RenderAnalysis(*res.Analysis)
}

// RenderAnalysis formats a single analysis with its actions and deadlines.
func RenderAnalysis(a domain.RegulationAnalysis) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(a.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s   %s %s   %s %.0f%%\n",
		LabelStyle.Render("Severity"), SeverityStyle(a.SeverityScore).Render(fmt.Sprintf("%d/10", a.SeverityScore)),
		LabelStyle.Render("Type"), a.RegulationType.Label(),
		LabelStyle.Render("Confidence"), a.Confidence*100,
	)

	areas := make([]string, len(a.BusinessImpactAreas))
	for i, area := range a.BusinessImpactAreas {
		areas[i] = string(area)
	}
	fmt.Fprintf(&b, "%s %s   %s %d days", LabelStyle.Render("Areas"), strings.Join(areas, ", "),
		LabelStyle.Render("Timeline"), a.ImplementationTimelineDays)
	if a.EstimatedPenalty > 0 {
		fmt.Fprintf(&b, "   %s $%.0f", LabelStyle.Render("Penalty"), a.EstimatedPenalty)
	}
	b.WriteString("\n")

	b.WriteString(SectionStyle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(a.PlainEnglishSummary)
	b.WriteString("\n")
	if a.BusinessImpactSummary != "" {
		b.WriteString(LabelStyle.Render(a.BusinessImpactSummary))
		b.WriteString("\n")
	}

	if len(a.KeyRequirements) > 0 {
		b.WriteString(SectionStyle.Render("Key requirements"))
		b.WriteString("\n")
		for _, r := range a.KeyRequirements {
			fmt.Fprintf(&b, "  • %s\n", r)
		}
	}

	if len(a.ActionItems) > 0 {
		b.WriteString(SectionStyle.Render("Action items"))
		b.WriteString("\n")
		for _, item := range a.ActionItems {
			line := fmt.Sprintf("  [%s] %s (%dh, %s)", item.Priority, item.Description, item.EstimatedHours, item.Category)
			if item.Deadline != nil {
				line += " due " + item.Deadline.Format("2006-01-02")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if len(a.ComplianceDeadlines) > 0 {
		b.WriteString(SectionStyle.Render("Deadlines"))
		b.WriteString("\n")
		for _, d := range a.ComplianceDeadlines {
			fmt.Fprintf(&b, "  %s\n", d.Description)
		}
	}

	for _, w := range a.Warnings {
		b.WriteString(WarningStyle.Render("! " + w))
		b.WriteString("\n")
	}

	if a.OriginalURL != "" {
		b.WriteString(LinkStyle.Render(a.OriginalURL))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderReport formats a poll report followed by its highest-severity findings.
func RenderReport(r usecase.Report) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Poll " + r.RunID))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d  %s %d  %s %d  %s %d  %s %d  %s %d\n",
		LabelStyle.Render("fetched"), r.Fetched,
		LabelStyle.Render("new"), r.New,
		LabelStyle.Render("analyzed"), r.Analyzed,
		LabelStyle.Render("failed"), r.Failed,
		LabelStyle.Render("skipped"), r.Skipped,
		LabelStyle.Render("alerted"), r.Alerted,
	)

	for _, w := range r.Warnings {
		b.WriteString(WarningStyle.Render("! " + w))
		b.WriteString("\n")
	}

	for _, res := range r.Results {
		if !res.Success || res.Analysis == nil {
			continue
		}
		a := res.Analysis
		fmt.Fprintf(&b, "%s %s  %s\n",
			SeverityStyle(a.SeverityScore).Render(fmt.Sprintf("%2d", a.SeverityScore)),
			a.Title,
			LabelStyle.Render(a.RegulationType.Label()),
		)
	}
	return b.String()
}
