package posture

import (
	"context"
	"strings"

	"github.com/dnsvantage/dnsvantage/dnsclient"
	"github.com/dnsvantage/dnsvantage/model"
	"github.com/dnsvantage/dnsvantage/util"

	"github.com/miekg/dns"
)

const (
	// rootServer is a.root-servers.net, the starting point of the
	// iterative fallback trace.
	rootServer = "198.41.0.4"

	maxTraceDepth = 8

	loggerPrefixDelegation = "delegation"
)

// NameserverSet is a deduplicated, sorted set of canonical hostnames.
type NameserverSet []string

// NewNameserverSet builds a set from NS facts.
func NewNameserverSet(facts []model.RecordFact) NameserverSet {
	return util.SortedUnique(FactValues(facts))
}

// Contains reports set membership of the canonical form of host.
func (s NameserverSet) Contains(host string) bool {
	canonical := util.CanonicalHostname(host)
	for _, v := range s {
		if v == canonical {
			return true
		}
	}

	return false
}

// CompareDelegation computes the alignment of the parent-side and the
// zone-side nameserver sets. An empty side is never aligned: a failed
// lookup must not pass as "nothing to compare".
func CompareDelegation(parent, zone NameserverSet) model.DelegationResult {
	onlyParent := difference(parent, zone)
	onlyZone := difference(zone, parent)

	return model.DelegationResult{
		Aligned:    len(parent) > 0 && len(zone) > 0 && len(onlyParent) == 0 && len(onlyZone) == 0,
		ParentNS:   parent,
		ZoneNS:     zone,
		OnlyParent: onlyParent,
		OnlyZone:   onlyZone,
	}
}

func difference(a, b NameserverSet) []string {
	result := []string{}

	for _, v := range a {
		if !b.Contains(v) {
			result = append(result, v)
		}
	}

	return result
}

// DelegationCollector gathers the two sides of the delegation comparison.
type DelegationCollector struct {
	client dnsclient.Client
}

// NewDelegationCollector creates new collector instance
func NewDelegationCollector(client dnsclient.Client) *DelegationCollector {
	return &DelegationCollector{client: client}
}

// Collect queries the registry view and the zone view of the domain's
// NS records and compares them. zoneVantage overrides the server used
// for the zone side; empty means the default resolution path.
func (c *DelegationCollector) Collect(ctx context.Context, domain, zoneVantage string) model.DelegationResult {
	parent := c.parentSet(ctx, domain)
	zone := c.zoneSet(ctx, domain, zoneVantage)

	return CompareDelegation(parent, zone)
}

func (c *DelegationCollector) zoneSet(ctx context.Context, domain, vantage string) NameserverSet {
	answer, err := c.client.Query(ctx, vantage, domain, dns.TypeNS, dnsclient.Options{})
	if err != nil {
		logger(loggerPrefixDelegation).Warnf("zone NS lookup for %s failed: %v", domain, err)

		return NameserverSet{}
	}

	return NewNameserverSet(ownedFacts(answer, domain))
}

// parentSet determines the delegation as published by the registry. It
// asks a nameserver of the top level domain directly, falls back to an
// iterative trace from the root, and guesses a.nic.<tld> when the TLD's
// own nameserver cannot be determined.
func (c *DelegationCollector) parentSet(ctx context.Context, domain string) NameserverSet {
	tld := topLevel(domain)
	if tld == "" {
		return NameserverSet{}
	}

	target := c.tldServer(ctx, tld)
	if target == "" {
		target = "a.nic." + tld

		logger(loggerPrefixDelegation).Debugf("no nameserver found for tld %s, guessing %s", tld, target)
	}

	if set := c.referralSet(ctx, target, domain); len(set) > 0 {
		return set
	}

	logger(loggerPrefixDelegation).Debugf("empty referral for %s from %s, tracing from root", domain, target)

	return c.traceFromRoot(ctx, domain)
}

// tldServer returns one authoritative nameserver of the top level domain.
func (c *DelegationCollector) tldServer(ctx context.Context, tld string) string {
	answer, err := c.client.Query(ctx, "", tld, dns.TypeNS, dnsclient.Options{})
	if err != nil {
		logger(loggerPrefixDelegation).Warnf("NS lookup for tld %s failed: %v", tld, err)

		return ""
	}

	servers := NewNameserverSet(Normalize(answer.Records, dns.TypeNS))
	if len(servers) == 0 {
		return ""
	}

	return servers[0]
}

// referralSet sends a non-recursive NS query to target and keeps only
// records owned by the exact domain, wherever the server put them.
func (c *DelegationCollector) referralSet(ctx context.Context, target, domain string) NameserverSet {
	answer, err := c.client.Query(ctx, target, domain, dns.TypeNS,
		dnsclient.Options{NoRecursion: true})
	if err != nil {
		logger(loggerPrefixDelegation).Warnf("referral query for %s against %s failed: %v", domain, target, err)

		return NameserverSet{}
	}

	return NewNameserverSet(ownedFacts(answer, domain))
}

// traceFromRoot follows NS referrals from a root server down to the
// domain's parent and returns the NS records owned by the exact domain.
func (c *DelegationCollector) traceFromRoot(ctx context.Context, domain string) NameserverSet {
	server := rootServer

	for depth := 0; depth < maxTraceDepth; depth++ {
		answer, err := c.client.Query(ctx, server, domain, dns.TypeNS,
			dnsclient.Options{NoRecursion: true})
		if err != nil {
			logger(loggerPrefixDelegation).Warnf("trace query for %s against %s failed: %v", domain, server, err)

			return NameserverSet{}
		}

		if owned := ownedFacts(answer, domain); len(owned) > 0 {
			return NewNameserverSet(owned)
		}

		referral := Normalize(append(answer.Records, answer.Authority...), dns.TypeNS)
		if len(referral) == 0 {
			return NameserverSet{}
		}

		server = referral[0].Value
	}

	return NameserverSet{}
}

// ownedFacts normalizes both response sections and filters to NS facts
// whose owner is the exact domain.
func ownedFacts(answer *dnsclient.Answer, domain string) []model.RecordFact {
	canonical := util.CanonicalHostname(domain)
	all := Normalize(append(answer.Records, answer.Authority...), dns.TypeNS)

	owned := make([]model.RecordFact, 0, len(all))

	for _, fact := range all {
		if fact.Owner == canonical {
			owned = append(owned, fact)
		}
	}

	return owned
}

// topLevel extracts the last label of the domain.
func topLevel(domain string) string {
	labels := strings.Split(util.CanonicalHostname(domain), ".")
	if len(labels) < 2 {
		return ""
	}

	return labels[len(labels)-1]
}
