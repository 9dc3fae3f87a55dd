package util

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dnsvantage/dnsvantage/log"

	"github.com/miekg/dns"
)

// matches label(.label)+ on the canonical form
var hostnameRegex = regexp.MustCompile(`^[a-z0-9_-]+(\.[a-z0-9_-]+)+$`)

// CanonicalHostname returns the canonical form of a hostname: lower
// case, surrounding whitespace and the trailing dot removed. It is
// idempotent; all set operations and comparisons use this form.
func CanonicalHostname(host string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
}

// IsValidHostname reports whether the canonical form of host looks like
// a multi-label domain name.
func IsValidHostname(host string) bool {
	return hostnameRegex.MatchString(CanonicalHostname(host))
}

// SortedUnique returns a sorted copy of values with duplicates collapsed.
func SortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}

			result = append(result, v)
		}
	}

	sort.Strings(result)

	return result
}

// NewMsgWithQuestion creates new DNS message with given question
func NewMsgWithQuestion(question string, mType uint16) *dns.Msg {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(question), mType)

	return msg
}

// FatalOnError logs the message only if error is not nil and exits the program execution
func FatalOnError(message string, err error) {
	if err != nil {
		log.Log().Fatal(message, err)
	}
}
