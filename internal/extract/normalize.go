package extract

import (
	"jira-extract/internal/jira"
)

// Normalize maps a raw JIRA issue to the flat dashboard record. Every
// optional field gets an explicit default; a sparse issue never fails.
func Normalize(baseURL string, issue jira.Issue) NormalizedIssue {
	fields := issue.Fields

	normalized := NormalizedIssue{
		Key:       issue.Key,
		Summary:   fields.Summary,
		Status:    "Unknown",
		IssueType: "Unknown",
		Priority:  "None",
		Assignee:  "Unassigned",
		Created:   fields.Created,
		Updated:   fields.Updated,
		URL:       baseURL + "/browse/" + issue.Key,
	}

	if fields.Status != nil && fields.Status.Name != "" {
		normalized.Status = fields.Status.Name
	}
	if fields.IssueType != nil && fields.IssueType.Name != "" {
		normalized.IssueType = fields.IssueType.Name
	}
	if fields.Priority != nil && fields.Priority.Name != "" {
		normalized.Priority = fields.Priority.Name
	}
	if fields.Assignee != nil && fields.Assignee.DisplayName != "" {
		normalized.Assignee = fields.Assignee.DisplayName
	}
	if fields.Project != nil {
		normalized.Project = fields.Project.Key
	}

	return normalized
}

// NormalizeAll normalizes a sequence of raw issues, preserving order
func NormalizeAll(baseURL string, issues []jira.Issue) []NormalizedIssue {
	normalized := make([]NormalizedIssue, 0, len(issues))
	for _, issue := range issues {
		normalized = append(normalized, Normalize(baseURL, issue))
	}
	return normalized
}

// Aggregate folds normalized issues into frequency counts per dimension.
// Each issue contributes exactly one increment to each of the four maps.
func Aggregate(issues []NormalizedIssue) Aggregates {
	agg := Aggregates{
		ByStatus:   make(map[string]int),
		ByType:     make(map[string]int),
		ByAssignee: make(map[string]int),
		ByPriority: make(map[string]int),
		Total:      len(issues),
	}

	for _, issue := range issues {
		agg.ByStatus[issue.Status]++
		agg.ByType[issue.IssueType]++
		agg.ByAssignee[issue.Assignee]++
		agg.ByPriority[issue.Priority]++
	}

	return agg
}
