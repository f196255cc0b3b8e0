package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"os"
	"strings"
)

// UnknownClientKey is the rate limit key for requests whose client IP
// cannot be determined. All unidentifiable clients share one bucket;
// that is an accepted tradeoff, not a bug.
const UnknownClientKey = "unknown"

// IPExtractor is an interface for extracting client IP addresses from HTTP requests.
// It provides an abstraction layer for different IP extraction strategies,
// allowing the application to choose between secure RemoteAddr extraction
// (default) or header-based extraction with proxy trust validation (opt-in).
type IPExtractor interface {
	// ExtractIP extracts the client IP address from an HTTP request.
	// Returns the IP address as a string and an error if extraction fails.
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor extracts the client IP from the RemoteAddr field of the HTTP request.
// This is the default and most secure approach as it uses the actual TCP connection IP,
// which cannot be spoofed by the client. It should be used when the application is
// directly accessible (no reverse proxy) or when header trust is explicitly disabled.
type RemoteAddrExtractor struct{}

// ExtractIP extracts the IP address from r.RemoteAddr.
// The RemoteAddr format is "IP:port", so this method strips the port number
// to return only the IP address. Handles both IPv4 and IPv6 addresses correctly.
func (e *RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyConfig holds configuration for validating trusted reverse proxies.
// When enabled, the extractor will check if the request comes from a trusted proxy
// before extracting the client IP from forwarding headers.
type TrustedProxyConfig struct {
	// Enabled indicates whether proxy trust is enabled.
	// When false, all header-based extraction is disabled.
	Enabled bool

	// AllowedCIDRs is a list of trusted proxy IP ranges in CIDR notation.
	// Both single IPs (converted to /32 or /128) and CIDR ranges are supported.
	AllowedCIDRs []netip.Prefix
}

// IsTrusted checks if the given RemoteAddr belongs to a trusted proxy.
func (c *TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// LoadTrustedProxyConfig loads trusted proxy configuration from environment variables.
//
// Environment Variables:
//   - RATE_LIMIT_TRUST_PROXY: Set to "true" to enable proxy trust checking (default: false)
//   - RATE_LIMIT_TRUSTED_PROXIES: Comma-separated list of trusted proxy IPs or CIDR ranges
//
// Fail-closed: invalid configuration prevents application startup rather
// than silently trusting spoofable headers.
func LoadTrustedProxyConfig() (*TrustedProxyConfig, error) {
	enabled := os.Getenv("RATE_LIMIT_TRUST_PROXY") == "true"

	config := &TrustedProxyConfig{
		Enabled:      enabled,
		AllowedCIDRs: []netip.Prefix{},
	}
	if !enabled {
		return config, nil
	}

	proxiesStr := strings.TrimSpace(os.Getenv("RATE_LIMIT_TRUSTED_PROXIES"))
	if proxiesStr == "" {
		return nil, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but RATE_LIMIT_TRUSTED_PROXIES is empty")
	}

	for _, proxyStr := range strings.Split(proxiesStr, ",") {
		proxyStr = strings.TrimSpace(proxyStr)
		if proxyStr == "" {
			continue
		}
		prefix, err := netip.ParsePrefix(proxyStr)
		if err != nil {
			ip, ipErr := netip.ParseAddr(proxyStr)
			if ipErr != nil {
				return nil, fmt.Errorf("invalid IP or CIDR format '%s': must be valid IP address or CIDR notation (e.g., '192.168.1.1' or '10.0.0.0/8')", proxyStr)
			}
			if ip.Is4() {
				prefix = netip.PrefixFrom(ip, 32)
			} else {
				prefix = netip.PrefixFrom(ip, 128)
			}
		}
		config.AllowedCIDRs = append(config.AllowedCIDRs, prefix)
	}

	if len(config.AllowedCIDRs) == 0 {
		return nil, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but no valid proxies found in RATE_LIMIT_TRUSTED_PROXIES")
	}
	return config, nil
}

// HeaderChainExtractor extracts the client IP from forwarding headers set
// by a trusted reverse proxy or CDN, in priority order:
//
//  1. CF-Connecting-IP (set by the CDN for the real client)
//  2. X-Real-IP
//  3. X-Forwarded-For (first public IP in the list)
//  4. RemoteAddr
//
// Private and loopback addresses in X-Forwarded-For are skipped, since
// those are the proxies themselves rather than the client. If the proxy
// is not trusted, headers are ignored entirely to prevent rate-limit
// bypass through spoofed headers.
type HeaderChainExtractor struct {
	config TrustedProxyConfig
}

// NewHeaderChainExtractor creates a HeaderChainExtractor with the given configuration.
func NewHeaderChainExtractor(config TrustedProxyConfig) *HeaderChainExtractor {
	return &HeaderChainExtractor{config: config}
}

// ExtractIP extracts the client IP address, consulting headers only when
// the directly connected peer is a trusted proxy.
func (e *HeaderChainExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.config.Enabled {
		return extractIPFromAddr(r.RemoteAddr)
	}

	if !e.config.IsTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted peer attempting to set X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff),
			)
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	if cf := r.Header.Get("CF-Connecting-IP"); cf != "" {
		if ip := net.ParseIP(strings.TrimSpace(cf)); ip != nil {
			return ip.String(), nil
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
			return ip.String(), nil
		}
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := firstPublicIP(xff); ip != "" {
			return ip, nil
		}
	}
	return extractIPFromAddr(r.RemoteAddr)
}

// ClientKey derives the rate limit key for a request. Unlike ExtractIP
// it never fails: requests without a resolvable client IP all map to
// UnknownClientKey.
func ClientKey(extractor IPExtractor, r *http.Request) string {
	ip, err := extractor.ExtractIP(r)
	if err != nil || ip == "" {
		return UnknownClientKey
	}
	return ip
}

// extractIPFromAddr extracts the IP address from a "host:port" or "IP" string.
// Handles both IPv4 and IPv6 addresses correctly.
func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		// The address might not carry a port
		if ip := net.ParseIP(addr); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}

// firstPublicIP returns the first globally routable IP in a
// comma-separated X-Forwarded-For list, skipping the private and
// loopback addresses that belong to intermediate proxies.
func firstPublicIP(s string) string {
	for _, part := range strings.Split(s, ",") {
		addr, err := netip.ParseAddr(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() || addr.IsUnspecified() {
			continue
		}
		return addr.String()
	}
	return ""
}
