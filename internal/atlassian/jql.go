package atlassian

import (
	"fmt"
	"strings"
	"time"
)

// Values the frontend sends for "no filter selected".
const (
	filterAnyAssignee = "all"
	filterAnyStatus   = "All Statuses"
)

// IssueFilter holds the optional clauses of an issue search. Zero-value
// fields are omitted from the query entirely.
type IssueFilter struct {
	Assignee  string
	Status    string
	StartDate string
	EndDate   string
}

// BuildJQL conjoins the project clause with whichever filters are present.
func BuildJQL(project string, f IssueFilter) string {
	parts := []string{fmt.Sprintf("project = %q", project)}

	if f.Assignee != "" && f.Assignee != filterAnyAssignee {
		parts = append(parts, fmt.Sprintf("assignee = %q", f.Assignee))
	}
	if f.Status != "" && f.Status != filterAnyStatus {
		parts = append(parts, fmt.Sprintf("status = %q", f.Status))
	}
	if d := dateOnly(f.StartDate); d != "" {
		parts = append(parts, fmt.Sprintf("created >= %q", d))
	}
	if d := dateOnly(f.EndDate); d != "" {
		parts = append(parts, fmt.Sprintf("created <= %q", d))
	}

	return strings.Join(parts, " AND ")
}

// dateOnly reduces an ISO timestamp to the YYYY-MM-DD form JQL expects.
// The literal placeholders the frontend sends for unset pickers count as
// absent.
func dateOnly(s string) string {
	if s == "" || s == "null" || s == "undefined" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}
