// Credit to https://github.com/santhosh-tekuri/jsonschema, whose format
// checkers this file adapts onto the Value type for the draft-04 format
// subset.
package serpyco

import (
	"net"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Formats is the registry of recognized "format" keyword checkers. Only the
// draft-04 subset spec.md names is included; register additional entries
// here to extend recognition.
var Formats = map[string]func(Value) bool{
	FormatDateTime: IsDateTime,
	FormatHostname: IsHostname,
	FormatEmail:    IsEmail,
	FormatIPv4:     IsIPV4,
	FormatIPv6:     IsIPV6,
	FormatURI:      IsURI,
	FormatUUID:     IsUUID,
}

// IsDateTime tells whether v is a valid RFC 3339 date-time string.
func IsDateTime(v Value) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// IsHostname tells whether v is a valid Internet host name, per RFC 1034
// section 3.1 and RFC 1123 section 2.1.
func IsHostname(v Value) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	s = strings.TrimSuffix(s, ".")
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if labelLen := len(label); labelLen < 1 || labelLen > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, c := range label {
			valid := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'
			if !valid {
				return false
			}
		}
	}
	return true
}

// IsEmail tells whether v is a valid Internet email address per RFC 5322.
func IsEmail(v Value) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if len(s) > 254 {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at == -1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if len(local) > 64 {
		return false
	}
	if len(domain) >= 2 && domain[0] == '[' && domain[len(domain)-1] == ']' {
		ip := domain[1 : len(domain)-1]
		if strings.HasPrefix(ip, "IPv6:") {
			return IsIPV6(strings.TrimPrefix(ip, "IPv6:"))
		}
		return IsIPV4(ip)
	}
	if !IsHostname(domain) {
		return false
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}

// IsIPV4 tells whether v is a valid dotted-quad IPv4 address.
func IsIPV4(v Value) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	groups := strings.Split(s, ".")
	if len(groups) != 4 {
		return false
	}
	for _, group := range groups {
		n, err := strconv.Atoi(group)
		if err != nil || n < 0 || n > 255 {
			return false
		}
		if n != 0 && group[0] == '0' {
			return false
		}
	}
	return true
}

// IsIPV6 tells whether v is a valid IPv6 address.
func IsIPV6(v Value) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if !strings.Contains(s, ":") {
		return false
	}
	return net.ParseIP(s) != nil
}

// IsURI tells whether v is a valid absolute URI per RFC 3986.
func IsURI(v Value) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	hostname := u.Hostname()
	if strings.IndexByte(hostname, ':') != -1 && !IsIPV6(hostname) {
		return false
	}
	return u.IsAbs()
}

// IsUUID tells whether v is a valid RFC 4122 UUID string.
func IsUUID(v Value) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := uuid.Parse(s)
	return err == nil
}
