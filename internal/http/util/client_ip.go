package util

import "strings"

// UnknownIP is the sentinel recorded when no forwarding header is present.
const UnknownIP = "unknown"

// ClientIP derives the requester address from the forwarded-for header chain,
// falling back to the real-ip header, then to the sentinel. The first hop of
// X-Forwarded-For is the original client.
func ClientIP(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		if first, _, found := strings.Cut(forwardedFor, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP != "" {
		return strings.TrimSpace(realIP)
	}
	return UnknownIP
}
