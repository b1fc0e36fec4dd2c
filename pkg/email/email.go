// Package email extracts and normalizes the parts of sender addresses used for
// identity checks.
package email

import (
	"strings"

	vstrings "verity/pkg/platform/strings"
)

// Domain returns the lowercased domain of addr. ok is false when addr has no single
// "@" separating a non-empty local part from a dotted domain.
func Domain(addr string) (domain string, ok bool) {
	addr = strings.TrimSpace(addr)
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 || at == len(addr)-1 || strings.Count(addr, "@") != 1 {
		return "", false
	}
	domain = strings.ToLower(strings.TrimSuffix(addr[at+1:], "."))
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.ContainsAny(domain, " \t") {
		return "", false
	}
	return domain, true
}

// NormalizeDomains lowercases, trims and dedupes a verified-domain list. A leading
// "@" or "." and trailing "." are dropped so "@Acme.com" matches "acme.com".
func NormalizeDomains(domains []string) []string {
	cleaned := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.TrimSpace(d)
		d = strings.TrimLeft(d, "@.")
		d = strings.TrimSuffix(d, ".")
		cleaned = append(cleaned, d)
	}
	return vstrings.DedupeAndTrimLower(cleaned)
}

// DomainIn reports whether the sender domain of addr is one of the verified domains.
// Malformed addresses never match.
func DomainIn(addr string, verified []string) bool {
	domain, ok := Domain(addr)
	if !ok {
		return false
	}
	for _, v := range NormalizeDomains(verified) {
		if v == domain {
			return true
		}
	}
	return false
}
