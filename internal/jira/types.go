package jira

// Issue represents a raw JIRA issue from the search API response
type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields represents the fields section of a JIRA issue. The nested
// records are pointers because the API returns null for unset fields.
type IssueFields struct {
	Summary   string       `json:"summary"`
	Status    *NamedEntity `json:"status"`
	IssueType *NamedEntity `json:"issuetype"`
	Priority  *NamedEntity `json:"priority"`
	Assignee  *User        `json:"assignee"`
	Project   *Project     `json:"project"`
	Created   string       `json:"created"`
	Updated   string       `json:"updated"`
}

// NamedEntity represents a JIRA entity identified by name (status, issue
// type, priority)
type NamedEntity struct {
	Name string `json:"name"`
}

// User represents a JIRA user reference
type User struct {
	DisplayName string `json:"displayName"`
}

// Project represents a JIRA project reference
type Project struct {
	Key string `json:"key"`
}

// cursorSearchResponse is the /rest/api/3/search/jql response shape
type cursorSearchResponse struct {
	Issues        []Issue `json:"issues"`
	NextPageToken string  `json:"nextPageToken"`
}

// offsetSearchResponse is the legacy /rest/api/{v}/search response shape
type offsetSearchResponse struct {
	Issues []Issue `json:"issues"`
	Total  int     `json:"total"`
}

// filterResponse is the /rest/api/{v}/filter/{id} response shape
type filterResponse struct {
	JQL string `json:"jql"`
}
