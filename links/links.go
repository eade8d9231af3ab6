// Package links extracts URLs and invite codes from message text and
// classifies them against domain allow-lists.
package links

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"']+`)

	// known invite hostname shapes, capturing the trailing code segment
	invitePattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:discord\.(?:gg|io|me|li)|discord(?:app)?\.com/invite)/([a-zA-Z0-9-]+)`)
)

// ExtractLinks returns all URLs found in the text. Bare "www." links are
// returned with an https scheme prepended so they parse consistently.
func ExtractLinks(text string) []string {
	raw := urlPattern.FindAllString(text, -1)
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, u := range raw {
		u = strings.TrimRight(u, ".,;:)")
		if strings.HasPrefix(strings.ToLower(u), "www.") {
			u = "https://" + u
		}
		if !seen[u] {
			out = append(out, u)
			seen[u] = true
		}
	}
	return out
}

// ExtractInviteCodes returns the code segment of every invite link found in
// the text, de-duplicated in order of first appearance.
func ExtractInviteCodes(text string) []string {
	matches := invitePattern.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		code := m[1]
		if !seen[code] {
			out = append(out, code)
			seen[code] = true
		}
	}
	return out
}

// IsWhitelisted reports whether the URL's hostname is covered by any
// whitelist entry. Matching is substring-based on the hostname, which is
// intentionally permissive so subdomains of a whitelisted domain pass. An
// unparsable URL is never whitelisted.
func IsWhitelisted(rawURL string, whitelist []string) bool {
	host := Hostname(rawURL)
	if host == "" {
		return false
	}
	for _, entry := range whitelist {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if strings.Contains(host, entry) {
			return true
		}
	}
	return false
}

// Hostname parses the URL and returns its lower-cased hostname, or the
// empty string if the URL cannot be parsed.
func Hostname(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
