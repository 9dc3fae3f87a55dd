package posture

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dnsvantage/dnsvantage/model"
	"github.com/dnsvantage/dnsvantage/util"

	"github.com/miekg/dns"
)

// Normalize converts raw answer records into deduplicated, canonically
// sorted facts of the expected type. Records of other types and records
// the extraction can't handle are dropped, they never abort an otherwise
// valid answer.
func Normalize(records []dns.RR, expected uint16) []model.RecordFact {
	seen := make(map[model.RecordFact]struct{}, len(records))
	facts := make([]model.RecordFact, 0, len(records))

	for _, rr := range records {
		if rr.Header().Rrtype != expected {
			continue
		}

		fact, ok := extractFact(rr)
		if !ok {
			continue
		}

		fact.Owner = util.CanonicalHostname(rr.Header().Name)
		fact.Type = expected

		if _, dup := seen[fact]; dup {
			continue
		}

		seen[fact] = struct{}{}
		facts = append(facts, fact)
	}

	sort.Slice(facts, func(i, j int) bool {
		if facts[i].Value != facts[j].Value {
			return facts[i].Value < facts[j].Value
		}

		return facts[i].Priority < facts[j].Priority
	})

	return facts
}

// extractFact pulls the relevant value out of one typed record.
// MX values keep the trailing dot so that the same host can appear at
// two different priorities as two distinct facts.
func extractFact(rr dns.RR) (model.RecordFact, bool) {
	var fact model.RecordFact

	switch v := rr.(type) {
	case *dns.NS:
		fact.Value = util.CanonicalHostname(v.Ns)
	case *dns.MX:
		fact.Value = dns.Fqdn(strings.ToLower(v.Mx))
		fact.Priority = v.Preference
	case *dns.A:
		fact.Value = v.A.String()
	case *dns.AAAA:
		fact.Value = v.AAAA.String()
	case *dns.TXT:
		// multi-segment TXT payloads are a single logical value
		fact.Value = strings.Join(v.Txt, "")
	case *dns.SOA:
		fact.Value = util.CanonicalHostname(v.Ns)
	case *dns.DNSKEY:
		fact.Value = fmt.Sprintf("%d %d %d", v.Flags, v.Protocol, v.Algorithm)
	case *dns.DS:
		fact.Value = fmt.Sprintf("%d %d %d", v.KeyTag, v.Algorithm, v.DigestType)
	default:
		return fact, false
	}

	return fact, true
}

// FactValues returns the values of the passed facts, in order.
func FactValues(facts []model.RecordFact) []string {
	return convertEach(facts, func(f model.RecordFact) string { return f.Value })
}

func convertEach[T, U any](slice []T, convert func(T) U) []U {
	result := make([]U, len(slice))
	for i, v := range slice {
		result[i] = convert(v)
	}

	return result
}
