package extract

// NormalizedIssue is the flat issue record the dashboard consumes
type NormalizedIssue struct {
	Key       string `json:"key"`
	Summary   string `json:"summary"`
	Status    string `json:"status"`
	IssueType string `json:"issuetype"`
	Priority  string `json:"priority"`
	Assignee  string `json:"assignee"`
	Project   string `json:"project"`
	Created   string `json:"created"`
	Updated   string `json:"updated"`
	URL       string `json:"url"`
}

// Aggregates holds frequency counts across the dashboard chart dimensions
type Aggregates struct {
	ByStatus   map[string]int `json:"by_status"`
	ByType     map[string]int `json:"by_type"`
	ByAssignee map[string]int `json:"by_assignee"`
	ByPriority map[string]int `json:"by_priority"`
	Total      int            `json:"total"`
}

// FilterResult holds the normalized issues of one saved filter
type FilterResult struct {
	Issues []NormalizedIssue `json:"issues"`
	Count  int               `json:"count"`
}

// IssuesDocument is the issues.json payload
type IssuesDocument struct {
	Issues      []NormalizedIssue `json:"issues"`
	Aggregates  Aggregates        `json:"aggregates"`
	LastUpdated string            `json:"last_updated"`
}

// FiltersDocument is the filters.json payload
type FiltersDocument struct {
	Filters map[string]FilterResult `json:"filters"`
}
