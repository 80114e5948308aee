// Package validation checks user-supplied URLs before any request is made.
//
// The pre-checks are narrow: they reject numeric IPv4 octets
// above 255, malformed bracketed IPv6 literals and ports above 65535. They do
// not attempt full address validation. Structural checks are delegated to
// net/url afterwards.
package validation

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gh0stintheshe11/Web-Client/domain/entities"
	"github.com/gh0stintheshe11/Web-Client/domain/errors"
)

const (
	maxIPv6Segments   = 8
	maxIPv6SegmentLen = 4
	maxOctet          = 255
	maxPort           = 65535
)

// ValidateURL runs the pre-checks in order and then parses raw.
// The first failing check decides the error kind. Parse failures and
// schemes other than http/https are both reported as InvalidProtocol.
func ValidateURL(raw string) (*entities.ValidatedURL, error) {
	if authority, ok := authorityOf(raw); ok {
		if kind, ok := precheckAuthority(authority); !ok {
			return nil, &errors.ValidationError{Kind: kind, URL: raw}
		}
	}

	parsed, err := url.Parse(raw)
	if err != nil || !wellFormed(parsed) {
		return nil, &errors.ValidationError{Kind: errors.InvalidProtocol, URL: raw}
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &errors.ValidationError{Kind: errors.InvalidProtocol, URL: raw}
	}

	return entities.NewValidatedURL(raw, parsed), nil
}

// authorityOf returns the text after the first "://" up to the next "/".
// A second "://" also ends the authority.
func authorityOf(raw string) (string, bool) {
	parts := strings.Split(raw, "://")
	if len(parts) < 2 {
		return "", false
	}
	authority := parts[1]
	if i := strings.IndexByte(authority, '/'); i >= 0 {
		authority = authority[:i]
	}
	return authority, true
}

// precheckAuthority applies the IPv6, IPv4 and port checks in that order.
func precheckAuthority(authority string) (errors.ValidationKind, bool) {
	if literal, ok := bracketedLiteral(authority); ok && !validIPv6Literal(literal) {
		return errors.InvalidIPv6, false
	}
	if !validIPv4Octets(authority) {
		return errors.InvalidIPv4, false
	}
	if !validPortSuffix(authority) {
		return errors.InvalidPort, false
	}
	return "", true
}

// bracketedLiteral extracts the text between "[" and "]" when the authority
// starts with "[" and contains "]".
func bracketedLiteral(authority string) (string, bool) {
	if !strings.HasPrefix(authority, "[") || !strings.Contains(authority, "]") {
		return "", false
	}
	inner := strings.Split(authority, "[")[1]
	return strings.Split(inner, "]")[0], true
}

// validIPv6Literal accepts at most one "::", at most eight colon-separated
// segments and segments of one to four hex digits. Empty segments are only
// allowed when the literal contains "::".
func validIPv6Literal(literal string) bool {
	compressed := strings.Contains(literal, "::")
	if strings.Count(literal, "::") > 1 {
		return false
	}

	segments := strings.Split(literal, ":")
	if len(segments) > maxIPv6Segments {
		return false
	}

	for _, segment := range segments {
		if segment == "" {
			if !compressed {
				return false
			}
			continue
		}
		if len(segment) > maxIPv6SegmentLen || !isHex(segment) {
			return false
		}
	}
	return true
}

// validIPv4Octets looks at the text before the first ":". If it has exactly
// four dot-separated parts, every numeric part must be at most 255.
// Non-numeric parts are not flagged.
func validIPv4Octets(authority string) bool {
	candidate := strings.Split(authority, ":")[0]
	octets := strings.Split(candidate, ".")
	if len(octets) != 4 {
		return true
	}
	for _, octet := range octets {
		if n, ok := parseUnsigned(octet); ok && n > maxOctet {
			return false
		}
	}
	return true
}

// validPortSuffix checks the text between the first and second ":".
// A suffix that is not a number is left to the URL parser.
func validPortSuffix(authority string) bool {
	parts := strings.Split(authority, ":")
	if len(parts) < 2 {
		return true
	}
	port := strings.Split(parts[1], "/")[0]
	if n, ok := parseUnsigned(port); ok && n > maxPort {
		return false
	}
	return true
}

// wellFormed rejects parses that net/url accepts but that cannot address
// an HTTP server: a missing host or a port outside 0-65535.
func wellFormed(u *url.URL) bool {
	if u.Scheme == "http" || u.Scheme == "https" {
		if u.Hostname() == "" {
			return false
		}
	}
	if port := u.Port(); port != "" {
		if _, err := strconv.ParseUint(port, 10, 16); err != nil {
			return false
		}
	}
	return true
}

// parseUnsigned parses a base-10 unsigned 32-bit integer with an optional
// leading "+". Values that overflow 32 bits do not parse.
func parseUnsigned(s string) (uint64, bool) {
	s = strings.TrimPrefix(s, "+")
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
