package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type authorizationsRequest struct {
	JiraUser    string `json:"jira_user"`
	JiraURL     string `json:"jira_url"`
	JiraProject string `json:"jira_project"`
	JiraToken   string `json:"jira_token"`

	BitbucketUser      string `json:"bitbucket_user"`
	BitbucketWorkspace string `json:"bitbucket_workspace"`
	BitbucketRepo      string `json:"bitbucket_repo"`
	BitbucketPass      string `json:"bitbucket_pass"`
}

// SaveAuthorizations merges the fields present in the request into the
// user's record. The two secrets are encrypted before they reach storage;
// absent fields stay untouched.
func (h *Handler) SaveAuthorizations(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req authorizationsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	fields := make(map[string]string)
	for col, val := range map[string]string{
		"jira_user":           req.JiraUser,
		"jira_url":            req.JiraURL,
		"jira_project":        req.JiraProject,
		"bitbucket_user":      req.BitbucketUser,
		"bitbucket_workspace": req.BitbucketWorkspace,
		"bitbucket_repo":      req.BitbucketRepo,
	} {
		if val != "" {
			fields[col] = val
		}
	}

	if req.JiraToken != "" {
		envelope, err := h.Cipher.Encrypt(req.JiraToken)
		if err != nil {
			writeError(c, err)
			return
		}
		fields["jira_token"] = envelope
	}
	if req.BitbucketPass != "" {
		envelope, err := h.Cipher.Encrypt(req.BitbucketPass)
		if err != nil {
			writeError(c, err)
			return
		}
		fields["bitbucket_pass"] = envelope
	}

	if err := h.Users.UpdateCredentials(c.Request.Context(), user.Email, fields); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "credentials saved successfully"})
}

// GetAuthorizations reports the non-secret fields plus derived configured
// flags. Secret values never appear here, encrypted or not.
func (h *Handler) GetAuthorizations(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jira_configured":      user.JiraConfigured(),
		"jira_user":            user.JiraUser,
		"jira_url":             user.JiraURL,
		"jira_project":         user.JiraProject,
		"bitbucket_configured": user.BitbucketConfigured(),
		"bitbucket_user":       user.BitbucketUser,
		"bitbucket_workspace":  user.BitbucketWorkspace,
		"bitbucket_repo":       user.BitbucketRepo,
	})
}
