package domain

import (
	"strings"
)

// NormalizeDomain trims and lower-cases a domain name.
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// NormalizeCustomerID returns my_customer for an empty customer ID.
func NormalizeCustomerID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return DefaultCustomerID
	}
	return id
}

// NormalizeEmail turns a bare user or group name into a full address in domain.
// Names that already contain an @ are kept as given (trimmed and lower-cased).
// An empty name stays empty.
func NormalizeEmail(name, domain string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	if strings.Contains(name, "@") {
		return name
	}
	domain = NormalizeDomain(domain)
	if domain == "" {
		return name
	}
	return name + "@" + domain
}

// IsEmailAddress reports whether s looks like local@domain.
func IsEmailAddress(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	host := s[at+1:]
	return host != "" && !strings.ContainsAny(s, " \t\n") && !strings.HasPrefix(host, ".")
}

// NormalizeOrgUnitPath ensures an org unit path starts with a slash.
func NormalizeOrgUnitPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	return path
}
