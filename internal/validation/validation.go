// Package validation holds the input checks run on every keystroke of the
// organization and token fields.
package validation

import (
	"regexp"
	"strings"
)

var (
	organizationPattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?$`)
	tokenPattern        = regexp.MustCompile(`^[A-Za-z0-9_]{20,}$`)
	unsafeCharacters    = strings.NewReplacer("<", "", ">", "", "'", "", `"`, "", "&", "")
)

// Sanitize removes < > ' " & from v. Anything that is not a string yields
// an empty string.
func Sanitize(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}

	return unsafeCharacters.Replace(s)
}

func IsValidOrganizationName(name string) bool {
	return organizationPattern.MatchString(strings.TrimSpace(Sanitize(name)))
}

func IsValidToken(token string) bool {
	return tokenPattern.MatchString(strings.TrimSpace(token))
}
