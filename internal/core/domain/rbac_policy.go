package domain

import (
	"regexp"
	"strings"
)

// ValidRoles are the roles a platform user can hold in both the GitOps
// controller and the workflow engine.
var ValidRoles = []string{"admin", "developer", "readonly"}

const DefaultRole = "developer"

// IsValidRole reports whether role is one of ValidRoles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// UpsertSubjectRole adds or replaces the group line for subject in a CSV
// policy. Every line mentioning the subject is dropped before the new
// assignment is appended, so a subject holds at most one role.
func UpsertSubjectRole(policy, subject, role string) string {
	lines := removeSubjectLines(policy, subject)
	lines = append(lines, "g, "+subject+", role:"+role)
	return strings.Join(lines, "\n")
}

// RemoveSubject drops every policy line mentioning the subject.
func RemoveSubject(policy, subject string) string {
	return strings.Join(removeSubjectLines(policy, subject), "\n")
}

func removeSubjectLines(policy, subject string) []string {
	marker := "g, " + subject + ", "
	var kept []string
	for _, line := range strings.Split(policy, "\n") {
		if !strings.Contains(line, marker) {
			kept = append(kept, line)
		}
	}
	return kept
}

var (
	usernameInvalidChars = regexp.MustCompile(`[^a-z0-9.-]`)
	usernameDashRuns     = regexp.MustCompile(`-+`)
	usernameDotRuns      = regexp.MustCompile(`\.+`)
)

// SanitizeUsername reduces a username to a single canonical form usable both
// as a Kubernetes resource name (DNS-1123 subdomain) and as a secret or
// config key.
func SanitizeUsername(username string) (string, error) {
	sanitized := strings.ToLower(username)
	sanitized = usernameInvalidChars.ReplaceAllString(sanitized, "-")
	sanitized = usernameDashRuns.ReplaceAllString(sanitized, "-")
	sanitized = usernameDotRuns.ReplaceAllString(sanitized, ".")
	sanitized = strings.Trim(sanitized, "-.")

	if sanitized == "" {
		return "", NewValidationError("username %q cannot be sanitized to a non-empty string", username)
	}
	return sanitized, nil
}
