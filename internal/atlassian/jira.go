package atlassian

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// JiraClient talks to one Jira instance with one user's API token.
type JiraClient struct {
	httpClient *http.Client
	baseURL    string
	user       string
	token      string
}

// NewJiraClient builds a client for the given instance. token must already
// be decrypted.
func NewJiraClient(rawURL, user, token string) *JiraClient {
	return &JiraClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    NormalizeBaseURL(rawURL),
		user:       user,
		token:      token,
	}
}

// SearchIssues runs a JQL search and returns the raw issue objects, which
// are passed through to the caller unmodified.
func (c *JiraClient) SearchIssues(ctx context.Context, jql string) ([]json.RawMessage, error) {
	u := c.baseURL + "/rest/api/2/search?jql=" + url.QueryEscape(jql)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	body, err := getJSON(c.httpClient, "jira", req, c.user, c.token)
	if err != nil {
		return nil, err
	}

	var out struct {
		Issues []json.RawMessage `json:"issues"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if out.Issues == nil {
		out.Issues = []json.RawMessage{}
	}
	return out.Issues, nil
}

// AssignableUsers lists users assignable to issues in the given project.
func (c *JiraClient) AssignableUsers(ctx context.Context, project string) ([]json.RawMessage, error) {
	u := c.baseURL + "/rest/api/2/user/assignable/search?project=" + url.QueryEscape(project)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	body, err := getJSON(c.httpClient, "jira", req, c.user, c.token)
	if err != nil {
		return nil, err
	}

	var users []json.RawMessage
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Statuses lists all issue statuses known to the instance.
func (c *JiraClient) Statuses(ctx context.Context) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rest/api/2/status", nil)
	if err != nil {
		return nil, err
	}

	body, err := getJSON(c.httpClient, "jira", req, c.user, c.token)
	if err != nil {
		return nil, err
	}

	var statuses []json.RawMessage
	if err := json.Unmarshal(body, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}
