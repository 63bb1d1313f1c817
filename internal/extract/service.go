package extract

import (
	"fmt"
	"path/filepath"
	"time"

	"jira-extract/internal/config"
	"jira-extract/internal/helpers"
	"jira-extract/internal/jira"
)

const (
	// maxIssuesAll caps the unfiltered fetch; maxIssuesPerFilter caps each
	// saved-filter fetch.
	maxIssuesAll       = 1000
	maxIssuesPerFilter = 500

	issuesFileName  = "issues.json"
	filtersFileName = "filters.json"
)

// Service drives the extraction pipeline: fetch, resolve filters,
// normalize, aggregate, persist
type Service struct {
	config *config.Config
	client *jira.Client
}

// NewService creates a new extraction service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: jira.NewClient(&cfg.Jira),
	}
}

// FetchAllIssues fetches the most recently updated issues using the
// configured default JQL
func (s *Service) FetchAllIssues() ([]jira.Issue, error) {
	return s.client.SearchIssues(s.config.Jira.DefaultJQL, maxIssuesAll)
}

// FetchFilterIssues resolves a saved filter to its JQL and fetches its
// issues, bounding unbounded queries first. An unresolvable filter yields an
// empty result, not an error.
func (s *Service) FetchFilterIssues(filterID string) ([]jira.Issue, error) {
	jql, err := s.client.GetFilterJQL(filterID)
	if err != nil {
		return nil, err
	}
	if jql == "" {
		helpers.PrintWarning("Filter %s could not be resolved, skipping", filterID)
		return nil, nil
	}
	return s.client.SearchIssues(EnsureBoundedJQL(jql), maxIssuesPerFilter)
}

// Run executes the full pipeline and writes issues.json and filters.json to
// the configured output directory. Files are written only after every fetch
// has completed, so a failed fetch leaves prior outputs untouched.
func (s *Service) Run() error {
	helpers.PrintInfo("Extracting issues from JIRA...")
	raw, err := s.FetchAllIssues()
	if err != nil {
		return fmt.Errorf("failed to fetch issues: %w", err)
	}

	baseURL := s.config.Jira.BaseURL

	filterResults := make(map[string]FilterResult)
	for _, filterID := range s.config.Jira.FilterIDList() {
		helpers.PrintInfo("Extracting filter %s...", filterID)
		filterRaw, err := s.FetchFilterIssues(filterID)
		if err != nil {
			return fmt.Errorf("failed to fetch filter %s: %w", filterID, err)
		}
		normalized := NormalizeAll(baseURL, filterRaw)
		filterResults[filterID] = FilterResult{Issues: normalized, Count: len(normalized)}
	}

	normalized := NormalizeAll(baseURL, raw)
	aggregates := Aggregate(normalized)

	if err := helpers.EnsureDir(s.config.Extract.OutputDir); err != nil {
		return err
	}

	issuesDoc := IssuesDocument{
		Issues:      normalized,
		Aggregates:  aggregates,
		LastUpdated: lastUpdated(raw),
	}
	issuesPath := filepath.Join(s.config.Extract.OutputDir, issuesFileName)
	if err := helpers.SaveJSON(issuesDoc, issuesPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", issuesFileName, err)
	}
	helpers.PrintSuccess("Saved %s (%d issues)", issuesPath, len(normalized))

	filtersDoc := FiltersDocument{Filters: filterResults}
	filtersPath := filepath.Join(s.config.Extract.OutputDir, filtersFileName)
	if err := helpers.SaveJSON(filtersDoc, filtersPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", filtersFileName, err)
	}
	helpers.PrintSuccess("Saved %s (%d filters)", filtersPath, len(filterResults))

	return nil
}

// lastUpdated reports the update timestamp of the newest fetched issue. The
// default JQL orders by updated descending, so that is the first one.
func lastUpdated(issues []jira.Issue) string {
	if len(issues) > 0 {
		return issues[0].Fields.Updated
	}
	return time.Now().UTC().Format(time.RFC3339)
}
