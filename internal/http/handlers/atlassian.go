package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"devboard/internal/atlassian"
	"devboard/internal/domain"
	"devboard/internal/logger"

	"github.com/gin-gonic/gin"
)

// BitbucketCommits lists commits of the configured repository.
//
// A startDate query parameter is accepted for interface parity but not
// applied: the Bitbucket commits API has no usable created-after filter, so
// clients always get the latest page.
func (h *Handler) BitbucketCommits(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var missing []string
	for field, val := range map[string]string{
		"bitbucket_user":      user.BitbucketUser,
		"bitbucket_pass":      user.BitbucketPass,
		"bitbucket_workspace": user.BitbucketWorkspace,
		"bitbucket_repo":      user.BitbucketRepo,
	} {
		if val == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		writeError(c, &domain.ConfigurationError{Service: "bitbucket", Missing: missing})
		return
	}

	pass, err := h.Cipher.Decrypt(user.BitbucketPass)
	if err != nil {
		writeError(c, err)
		return
	}

	client := atlassian.NewBitbucketClient(user.BitbucketUser, pass, user.BitbucketWorkspace, h.BitbucketBaseURL)
	commits, err := client.Commits(c.Request.Context(), user.BitbucketRepo)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, commits)
}

// JiraIssues searches issues in the configured project, narrowed by
// whichever of the assignee, status and created-date filters are present.
func (h *Handler) JiraIssues(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var missing []string
	if user.JiraToken == "" {
		missing = append(missing, "jira_token")
	}
	if user.JiraURL == "" {
		missing = append(missing, "jira_url")
	}
	if len(missing) > 0 {
		writeError(c, &domain.ConfigurationError{Service: "jira", Missing: missing})
		return
	}
	if user.JiraProject == "" {
		writeError(c, &domain.ConfigurationError{Service: "jira", Missing: []string{"jira_project"}})
		return
	}

	token, err := h.Cipher.Decrypt(user.JiraToken)
	if err != nil {
		writeError(c, err)
		return
	}

	jql := atlassian.BuildJQL(user.JiraProject, atlassian.IssueFilter{
		Assignee:  c.Query("username"),
		Status:    c.Query("status"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	})

	client := atlassian.NewJiraClient(user.JiraURL, user.JiraUser, token)
	issues, err := client.SearchIssues(c.Request.Context(), jql)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, issues)
}

// JiraUsers lists assignable users for the configured project. This feeds a
// dropdown, so every failure degrades to an empty list.
func (h *Handler) JiraUsers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.JiraToken == "" || user.JiraURL == "" || user.JiraProject == "" {
		c.JSON(http.StatusOK, []json.RawMessage{})
		return
	}

	token, err := h.Cipher.Decrypt(user.JiraToken)
	if err != nil {
		logger.Warn("jira users lookup failed", "error", err)
		c.JSON(http.StatusOK, []json.RawMessage{})
		return
	}

	client := atlassian.NewJiraClient(user.JiraURL, user.JiraUser, token)
	users, err := client.AssignableUsers(c.Request.Context(), user.JiraProject)
	if err != nil {
		logger.Warn("jira users lookup failed", "error", err)
		c.JSON(http.StatusOK, []json.RawMessage{})
		return
	}

	c.JSON(http.StatusOK, users)
}

// JiraStatuses lists the instance's issue statuses, degrading to an empty
// list on any failure.
func (h *Handler) JiraStatuses(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.JiraToken == "" || user.JiraURL == "" {
		c.JSON(http.StatusOK, []json.RawMessage{})
		return
	}

	token, err := h.Cipher.Decrypt(user.JiraToken)
	if err != nil {
		logger.Warn("jira statuses lookup failed", "error", err)
		c.JSON(http.StatusOK, []json.RawMessage{})
		return
	}

	client := atlassian.NewJiraClient(user.JiraURL, user.JiraUser, token)
	statuses, err := client.Statuses(c.Request.Context())
	if err != nil {
		logger.Warn("jira statuses lookup failed", "error", err)
		c.JSON(http.StatusOK, []json.RawMessage{})
		return
	}

	c.JSON(http.StatusOK, statuses)
}

// BitbucketUsers lists the workspace members, degrading to an empty list on
// any failure.
func (h *Handler) BitbucketUsers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.BitbucketPass == "" || user.BitbucketWorkspace == "" {
		c.JSON(http.StatusOK, []json.RawMessage{})
		return
	}

	pass, err := h.Cipher.Decrypt(user.BitbucketPass)
	if err != nil {
		logger.Warn("bitbucket users lookup failed", "error", err)
		c.JSON(http.StatusOK, []json.RawMessage{})
		return
	}

	client := atlassian.NewBitbucketClient(user.BitbucketUser, pass, user.BitbucketWorkspace, h.BitbucketBaseURL)
	members, err := client.Members(c.Request.Context())
	if err != nil {
		logger.Warn("bitbucket users lookup failed", "error", err)
		c.JSON(http.StatusOK, []json.RawMessage{})
		return
	}

	c.JSON(http.StatusOK, members)
}
