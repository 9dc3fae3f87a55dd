package model

//go:generate go-enum -f=$GOFILE --marshal --names

import (
	"time"
)

// Badge is a summary judgment for one posture aspect ENUM(
// Pass // the aspect is consistently healthy across all vantage points
// Warn // the aspect is only partially healthy
// Fail // the aspect is missing or inconsistent
// )
type Badge int

// Presence is the observed state of one record type on one server ENUM(
// NotSet // the server answered, but without records of this type
// Set // the server returned at least one record of this type
// Failed // the query could not be completed
// )
type Presence int

// EmailAuthStatus is the classification of one email-auth record kind ENUM(
// NotFound // no matching record was published
// Found // a matching record was published
// FoundNoPolicy // a DMARC record exists but carries no policy tag
// )
type EmailAuthStatus int

// RecordFact is one observed DNS fact. Owner and hostname values are
// canonical (lower case, no trailing dot), except MX values which keep
// the trailing dot to pair host and priority unambiguously.
type RecordFact struct {
	Owner    string
	Type     uint16
	Value    string
	Priority uint16
}

// Resolver identifies one public recursive resolver vantage point.
type Resolver struct {
	Name    string
	Address string
}

// AuthoritativeRow is the capability vector observed on one
// authoritative nameserver. A row is published to the snapshot only
// after all of its sub-queries completed.
type AuthoritativeRow struct {
	Server string

	DNSKEY Presence
	SOA    Presence
	NS     Presence
	A      Presence
	AAAA   Presence
	MX     Presence
	SPF    Presence
	DMARC  Presence
	DKIM   Presence

	// MXFacts holds the raw MX facts of this server, used for
	// cross-server deduplication into MXEntries.
	MXFacts []RecordFact

	// Err aggregates the failures of this row's sub-queries. It is
	// diagnostic only and never fails the run.
	Err error
}

// ResolverRow is the validation vector observed through one public
// recursive resolver.
type ResolverRow struct {
	Resolver Resolver

	DSPresent     bool
	DNSKEYPresent bool
	// AuthenticatedData reports whether a plain DNSSEC-aware query came
	// back with the AD header bit set.
	AuthenticatedData bool
	// AnswerWithCheckingDisabled reports whether a checking-disabled
	// query returned any answer at all.
	AnswerWithCheckingDisabled bool

	Err error
}

// MXEntry is one deduplicated mail exchanger, keyed by host and priority.
type MXEntry struct {
	Host     string
	Priority uint16
}

// MXResolutionRow is the address resolution of one MX target host from
// one vantage point.
type MXResolutionRow struct {
	Host    string
	HasA    bool
	HasAAAA bool
}

// DelegationResult is the comparison of the parent-side and zone-side
// nameserver sets.
type DelegationResult struct {
	Aligned    bool
	ParentNS   []string
	ZoneNS     []string
	OnlyParent []string
	OnlyZone   []string
}

// EmailAuthBundle collects the raw email-authentication record text and
// the derived status per kind, aggregated over all authoritative servers.
type EmailAuthBundle struct {
	SPFRecords   []string
	DMARCRecords []string
	// DKIMRecords maps a selector to the TXT values found for it.
	DKIMRecords map[string][]string

	SPFStatus   EmailAuthStatus
	DMARCStatus EmailAuthStatus
	DKIMStatus  EmailAuthStatus
}

// Summary holds the five posture judgments.
type Summary struct {
	Delegation Badge
	DNSSEC     Badge
	MX         Badge
	SPF        Badge
	DMARC      Badge
}

// Snapshot is the aggregate result of one posture evaluation run. It is
// owned by the run that produced it and not mutated after all collectors
// completed.
type Snapshot struct {
	ID        string
	Domain    string
	StartedAt time.Time
	Took      time.Duration

	AuthoritativeServers []string

	Delegation      DelegationResult
	Authoritative   []AuthoritativeRow
	Resolvers       []ResolverRow
	MXEntries       []MXEntry
	MXAuthoritative []MXResolutionRow
	MXRecursive     []MXResolutionRow
	EmailAuth       EmailAuthBundle

	Summary Summary
}
