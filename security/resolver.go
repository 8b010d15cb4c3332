package security

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// defaultHeaderPriority is the ordered list of headers inspected when the
// caller does not provide an explicit HeaderPriority.
var defaultHeaderPriority = []string{"X-Real-Ip", "X-Forwarded-For"}

// ClientAddr determines the effective client address for r.
//
// It first parses the transport peer from r.RemoteAddr. If that peer is a
// trusted proxy, the forwarding headers are walked in priority order and the
// first valid IP found is returned. Otherwise (or when no valid header IP is
// found) the peer address itself is returned. Headers from untrusted peers
// are never consulted, so clients cannot spoof their way past an IP block.
func (b *IPBlocker) ClientAddr(r *http.Request) (netip.Addr, bool) {
	peer, ok := addrFromHostPort(r.RemoteAddr)
	if !ok {
		return netip.Addr{}, false
	}

	if isTrustedProxy(peer, b.trustedProxies) {
		if addr, found := addrFromHeaders(r.Header, b.headerPriority); found {
			return addr, true
		}
	}

	return peer, true
}

// addrFromHostPort parses a "host:port" (or bare host) string into a
// netip.Addr.
func addrFromHostPort(s string) (netip.Addr, bool) {
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return ip, true
}

// isTrustedProxy reports whether addr falls within any of the given prefixes.
func isTrustedProxy(addr netip.Addr, prefixes []netip.Prefix) bool {
	for _, p := range prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// addrFromHeaders walks the header keys in priority order and returns the
// first valid IP address found. For multi-value headers such as
// X-Forwarded-For the left-most (client) entry is used.
func addrFromHeaders(h http.Header, priority []string) (netip.Addr, bool) {
	for _, key := range priority {
		for _, v := range h.Values(key) {
			// X-Forwarded-For may contain comma-separated IPs.
			for part := range strings.SplitSeq(v, ",") {
				trimmed := strings.TrimSpace(part)
				if trimmed == "" {
					continue
				}
				if ip, err := netip.ParseAddr(trimmed); err == nil {
					return ip, true
				}
			}
		}
	}
	return netip.Addr{}, false
}
