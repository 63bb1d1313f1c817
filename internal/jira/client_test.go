package jira

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jira-extract/internal/config"
)

func testConfig(baseURL, apiVersion string) *config.JiraConfig {
	return &config.JiraConfig{
		BaseURL:    baseURL,
		Email:      "user@example.com",
		APIToken:   "token",
		APIVersion: apiVersion,
		Timeout:    5,
	}
}

func makeIssues(start, count int) []Issue {
	issues := make([]Issue, 0, count)
	for i := start; i < start+count; i++ {
		issues = append(issues, Issue{
			Key: fmt.Sprintf("PROJ-%d", i+1),
			Fields: IssueFields{
				Summary: fmt.Sprintf("Issue %d", i+1),
				Status:  &NamedEntity{Name: "To Do"},
			},
		})
	}
	return issues
}

// cursorServer serves /rest/api/3/search/jql over a fixed issue set, paging
// with nextPageToken and honoring the requested maxResults.
func cursorServer(t *testing.T, total int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/search/jql", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "user@example.com", user)
		assert.Equal(t, "token", pass)

		start := 0
		if token := r.URL.Query().Get("nextPageToken"); token != "" {
			var err error
			start, err = strconv.Atoi(token)
			assert.NoError(t, err)
		}
		pageSize, err := strconv.Atoi(r.URL.Query().Get("maxResults"))
		assert.NoError(t, err)
		if start+pageSize > total {
			pageSize = total - start
		}

		page := cursorSearchResponse{Issues: makeIssues(start, pageSize)}
		if start+pageSize < total {
			page.NextPageToken = strconv.Itoa(start + pageSize)
		}
		writeJSON(t, w, page)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestSearchIssues_CursorPagination(t *testing.T) {
	t.Parallel()
	server := cursorServer(t, 300)
	client := NewClient(testConfig(server.URL, "3"))

	issues, err := client.SearchIssues("updated >= -90d", 1000)
	require.NoError(t, err)
	require.Len(t, issues, 300)

	// Upstream order preserved across pages.
	assert.Equal(t, "PROJ-1", issues[0].Key)
	assert.Equal(t, "PROJ-101", issues[100].Key)
	assert.Equal(t, "PROJ-300", issues[299].Key)
}

func TestSearchIssues_CursorMaxResultsCap(t *testing.T) {
	t.Parallel()
	server := cursorServer(t, 300)
	client := NewClient(testConfig(server.URL, "3"))

	issues, err := client.SearchIssues("updated >= -90d", 50)
	require.NoError(t, err)
	assert.Len(t, issues, 50)
}

func TestSearchIssues_CursorEmptyResult(t *testing.T) {
	t.Parallel()
	server := cursorServer(t, 0)
	client := NewClient(testConfig(server.URL, "3"))

	issues, err := client.SearchIssues("updated >= -90d", 1000)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestSearchIssues_OffsetPagination(t *testing.T) {
	t.Parallel()
	var startAts []string
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.URL.Query().Get("fields"))

		startAts = append(startAts, r.URL.Query().Get("startAt"))
		start, err := strconv.Atoi(r.URL.Query().Get("startAt"))
		assert.NoError(t, err)

		total := 250
		pageSize := 100
		if start+pageSize > total {
			pageSize = total - start
		}
		writeJSON(t, w, offsetSearchResponse{Issues: makeIssues(start, pageSize), Total: total})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(testConfig(server.URL, "2"))
	issues, err := client.SearchIssues("project = ABC", 1000)
	require.NoError(t, err)
	require.Len(t, issues, 250)
	assert.Equal(t, []string{"0", "100", "200"}, startAts)
	assert.Equal(t, "PROJ-250", issues[249].Key)
}

func TestSearchIssues_HTTPError(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "something broke", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(testConfig(server.URL, "3"))
	_, err := client.SearchIssues("updated >= -90d", 1000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSearchIssues_MalformedBody(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	t.Cleanup(server.Close)

	client := NewClient(testConfig(server.URL, "3"))
	_, err := client.SearchIssues("updated >= -90d", 1000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestGetFilterJQL(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/3/filter/10001", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, filterResponse{JQL: "project = ABC"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(testConfig(server.URL, "3"))

	jql, err := client.GetFilterJQL("10001")
	require.NoError(t, err)
	assert.Equal(t, "project = ABC", jql)

	// Unresolvable filters are a soft failure.
	jql, err = client.GetFilterJQL("99999")
	require.NoError(t, err)
	assert.Empty(t, jql)
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abc", truncate([]byte("abc"), 5))
	assert.Equal(t, "abcde", truncate([]byte("abcdefgh"), 5))
}
