package validators

import (
	"net"
	"regexp"
	"strings"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)

func IsPhoneValid(phone string) bool {
	return phoneRe.MatchString(strings.TrimSpace(phone))
}

// IsEmailDomainValid checks that the address has a deliverable-looking
// domain; it is intentionally loose, the notifier deals with bounces.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
