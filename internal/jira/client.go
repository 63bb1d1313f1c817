package jira

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"jira-extract/internal/config"
	"jira-extract/internal/helpers"
)

const (
	// maxPerPage is the page size cap JIRA Cloud enforces on search requests.
	maxPerPage = 100

	// searchFields is the explicit field selection the legacy search endpoint
	// requires; the v3 endpoint returns these by default.
	searchFields = "summary,status,issuetype,priority,assignee,project,created,updated"

	errorBodyLimit  = 500
	decodeBodyLimit = 200
)

// Client handles JIRA API interactions
type Client struct {
	config *config.JiraConfig
	client *http.Client
	search func(jql string, maxResults int) ([]Issue, error)
}

// NewClient creates a new JIRA client. The pagination strategy is chosen
// once here: API version "3" uses the cursor-based /search/jql endpoint
// (the old /search returns 410 on JIRA Cloud), anything else uses the
// offset-based /search endpoint of Server/Data Center.
func NewClient(jiraConfig *config.JiraConfig) *Client {
	c := &Client{
		config: jiraConfig,
		client: &http.Client{
			Timeout: time.Duration(jiraConfig.Timeout) * time.Second,
		},
	}

	if jiraConfig.APIVersion == "3" {
		c.search = c.searchCursor
	} else {
		c.search = c.searchOffset
	}

	return c
}

// SearchIssues runs a JQL search and returns up to maxResults raw issues in
// upstream order, paginating as needed.
func (c *Client) SearchIssues(jql string, maxResults int) ([]Issue, error) {
	return c.search(jql, maxResults)
}

func (c *Client) searchCursor(jql string, maxResults int) ([]Issue, error) {
	endpoint := fmt.Sprintf("%s/rest/api/3/search/jql", c.config.BaseURL)

	var all []Issue
	nextPageToken := ""

	for len(all) < maxResults {
		params := url.Values{}
		params.Set("jql", jql)
		params.Set("maxResults", strconv.Itoa(min(maxPerPage, maxResults-len(all))))
		if nextPageToken != "" {
			params.Set("nextPageToken", nextPageToken)
		}

		var page cursorSearchResponse
		if err := c.getJSON(endpoint, params, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Issues...)
		nextPageToken = page.NextPageToken
		if nextPageToken == "" || len(page.Issues) == 0 {
			break
		}
	}

	if len(all) > maxResults {
		all = all[:maxResults]
	}
	return all, nil
}

func (c *Client) searchOffset(jql string, maxResults int) ([]Issue, error) {
	endpoint := fmt.Sprintf("%s/rest/api/%s/search", c.config.BaseURL, c.config.APIVersion)

	var all []Issue
	startAt := 0

	for {
		params := url.Values{}
		params.Set("jql", jql)
		params.Set("startAt", strconv.Itoa(startAt))
		params.Set("maxResults", strconv.Itoa(maxPerPage))
		params.Set("fields", searchFields)

		var page offsetSearchResponse
		if err := c.getJSON(endpoint, params, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Issues...)
		if startAt+len(page.Issues) >= page.Total || len(page.Issues) == 0 || len(all) >= maxResults {
			break
		}
		startAt += len(page.Issues)
	}

	if len(all) > maxResults {
		all = all[:maxResults]
	}
	return all, nil
}

// GetFilterJQL resolves a saved filter ID to its JQL. An unresolvable filter
// (non-200 response) returns an empty string without an error so one bad
// filter does not abort the run.
func (c *Client) GetFilterJQL(filterID string) (string, error) {
	endpoint := fmt.Sprintf("%s/rest/api/%s/filter/%s", c.config.BaseURL, c.config.APIVersion, filterID)

	resp, err := c.get(endpoint, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	var filter filterResponse
	if err := json.NewDecoder(resp.Body).Decode(&filter); err != nil {
		return "", fmt.Errorf("failed to decode filter response: %w", err)
	}

	return filter.JQL, nil
}

func (c *Client) get(endpoint string, params url.Values) (*http.Response, error) {
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.config.Email, c.config.APIToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// getJSON performs a GET and decodes the body into target, printing a
// truncated copy of the body on HTTP or decode failures for diagnosis.
func (c *Client) getJSON(endpoint string, params url.Values, target interface{}) error {
	resp, err := c.get(endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		helpers.PrintError("JIRA API error: status %d", resp.StatusCode)
		helpers.PrintError("Response: %s", truncate(body, errorBodyLimit))
		return fmt.Errorf("JIRA API returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, target); err != nil {
		helpers.PrintError("Response is not JSON: %q", truncate(body, decodeBodyLimit))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func truncate(body []byte, limit int) string {
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}
