package logging

import (
	"net/url"
	"strings"
)

// secretKeyPatterns are substrings marking an attribute key as sensitive.
// Matching is case-insensitive.
var secretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// tokenPrefixes identify values that are credentials whatever their key.
var tokenPrefixes = []string{
	"ghp_",
	"gho_",
	"ghu_",
	"ghs_",
	"ghr_",
	"github_pat_",
	"sk-",
	"AKIA",
	"xoxb-",
	"xoxp-",
}

// Redact returns value masked when key or value looks like a secret.
// URLs with embedded passwords keep everything but the password.
func Redact(key, value string) string {
	if ShouldMask(key) || ContainsTokenPrefix(value) {
		return MaskValue(value)
	}
	if strings.Contains(value, "://") && strings.Contains(value, "@") {
		return MaskURL(value)
	}
	return value
}

// MaskValue masks a sensitive string, keeping the last four characters of
// values longer than four.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskURL redacts the password of a URL such as a git remote with an embedded
// token. Unparseable input is returned unchanged.
func MaskURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return rawURL
	}

	password, ok := parsed.User.Password()
	if !ok || password == "" {
		// https://TOKEN@github.com/... carries the secret as the username.
		if name := parsed.User.Username(); ContainsTokenPrefix(name) {
			parsed.User = url.User(MaskValue(name))
			return parsed.String()
		}
		return rawURL
	}

	parsed.User = url.UserPassword(parsed.User.Username(), MaskValue(password))
	return parsed.String()
}

// ShouldMask reports whether key names sensitive data.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range secretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
