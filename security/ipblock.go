// Package security provides CIDR-based client filtering for the avatar
// endpoint, with trusted-proxy-aware client IP resolution from forwarding
// headers.
package security

import (
	"fmt"
	"net/http"
	"net/netip"
)

// Mode controls how the CIDR list is interpreted.
type Mode int

const (
	// AllowList only permits IPs that match at least one CIDR.
	AllowList Mode = iota
	// DenyList blocks IPs that match any CIDR and allows all others.
	DenyList
)

// Config holds the configuration for an IPBlocker.
type Config struct {
	Mode           Mode
	CIDRs          []string
	TrustedProxies []string
	HeaderPriority []string
}

// IPBlocker evaluates whether a client IP is allowed or denied based on the
// configured Mode and CIDR ranges.
type IPBlocker struct {
	mode           Mode
	cidrs          []netip.Prefix
	trustedProxies []netip.Prefix
	headerPriority []string
}

// NewIPBlocker creates an IPBlocker from the given Config. It parses all CIDR
// strings and trusted-proxy strings up-front and returns an error if any entry
// is invalid.
func NewIPBlocker(cfg Config) (*IPBlocker, error) {
	cidrs, err := parsePrefixes(cfg.CIDRs)
	if err != nil {
		return nil, fmt.Errorf("ipblock: invalid CIDR: %w", err)
	}

	proxies, err := parsePrefixes(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("ipblock: invalid trusted proxy: %w", err)
	}

	priority := cfg.HeaderPriority
	if len(priority) == 0 {
		priority = defaultHeaderPriority
	}

	return &IPBlocker{
		mode:           cfg.Mode,
		cidrs:          cidrs,
		trustedProxies: proxies,
		headerPriority: priority,
	}, nil
}

// Check resolves the effective client IP for r and reports whether the
// request is allowed. Requests whose client address cannot be determined are
// rejected.
func (b *IPBlocker) Check(r *http.Request) bool {
	addr, ok := b.ClientAddr(r)
	if !ok {
		return false
	}
	return b.Allowed(addr)
}

// Allowed evaluates addr against the configured mode and CIDR list.
func (b *IPBlocker) Allowed(addr netip.Addr) bool {
	matched := false
	for _, p := range b.cidrs {
		if p.Contains(addr) {
			matched = true
			break
		}
	}
	if b.mode == AllowList {
		return matched
	}
	return !matched
}

// parsePrefixes converts CIDR strings to netip.Prefix values. Bare addresses
// are accepted as single-address prefixes.
func parsePrefixes(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		if p, err := netip.ParsePrefix(e); err == nil {
			prefixes = append(prefixes, p)
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", e, err)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}
