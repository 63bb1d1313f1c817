package extract

import (
	"fmt"
	"strings"
)

// recencyKeywords are the JQL fields that bound a query in time. A query
// mentioning any of them is considered already bounded.
var recencyKeywords = []string{"updated", "created", "resolved"}

// EnsureBoundedJQL conjoins an unbounded query with a 90-day recency
// constraint, as JIRA Cloud requires of search queries. Already bounded
// queries pass through unchanged.
func EnsureBoundedJQL(jql string) string {
	lower := strings.ToLower(jql)
	for _, keyword := range recencyKeywords {
		if strings.Contains(lower, keyword) {
			return jql
		}
	}
	return fmt.Sprintf("(%s) AND updated >= -90d", jql)
}
