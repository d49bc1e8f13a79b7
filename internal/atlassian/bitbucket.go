package atlassian

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

const bitbucketAPIBase = "https://api.bitbucket.org/2.0"

// BitbucketClient talks to the Bitbucket Cloud API for one workspace with
// one user's app password.
type BitbucketClient struct {
	httpClient *http.Client
	baseURL    string
	user       string
	pass       string
	workspace  string
}

// NewBitbucketClient builds a client. pass must already be decrypted.
// baseURL overrides the Bitbucket Cloud endpoint when non-empty (tests).
func NewBitbucketClient(user, pass, workspace, baseURL string) *BitbucketClient {
	if baseURL == "" {
		baseURL = bitbucketAPIBase
	}
	return &BitbucketClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		user:       user,
		pass:       pass,
		workspace:  workspace,
	}
}

// Commits returns the raw commit objects for a repository. The Bitbucket
// commits API has no usable created-after filter, so no date filtering
// happens here; callers get the latest page as-is.
func (c *BitbucketClient) Commits(ctx context.Context, repo string) ([]json.RawMessage, error) {
	u := c.baseURL + "/repositories/" + url.PathEscape(c.workspace) + "/" + url.PathEscape(repo) + "/commits"
	return c.values(ctx, u)
}

// Members returns the raw member objects of the workspace.
func (c *BitbucketClient) Members(ctx context.Context) ([]json.RawMessage, error) {
	u := c.baseURL + "/workspaces/" + url.PathEscape(c.workspace) + "/members"
	return c.values(ctx, u)
}

// values fetches a Bitbucket paginated collection and unwraps its values
// array.
func (c *BitbucketClient) values(ctx context.Context, u string) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	body, err := getJSON(c.httpClient, "bitbucket", req, c.user, c.pass)
	if err != nil {
		return nil, err
	}

	var out struct {
		Values []json.RawMessage `json:"values"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if out.Values == nil {
		out.Values = []json.RawMessage{}
	}
	return out.Values, nil
}
