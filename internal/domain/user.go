package domain

import "time"

// User is the persistent record for one account, keyed by email.
// JiraToken and BitbucketPass hold ciphertext, never plaintext.
type User struct {
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	AuthToken    string    `db:"auth_token"`
	CreatedAt    time.Time `db:"created_at"`

	JiraUser    string `db:"jira_user"`
	JiraURL     string `db:"jira_url"`
	JiraProject string `db:"jira_project"`
	JiraToken   string `db:"jira_token"`

	BitbucketUser      string `db:"bitbucket_user"`
	BitbucketWorkspace string `db:"bitbucket_workspace"`
	BitbucketRepo      string `db:"bitbucket_repo"`
	BitbucketPass      string `db:"bitbucket_pass"`
}

// JiraConfigured reports whether both the Jira identity and its secret are set.
func (u *User) JiraConfigured() bool {
	return u.JiraUser != "" && u.JiraToken != ""
}

// BitbucketConfigured reports whether both the Bitbucket identity and its secret are set.
func (u *User) BitbucketConfigured() bool {
	return u.BitbucketUser != "" && u.BitbucketPass != ""
}
