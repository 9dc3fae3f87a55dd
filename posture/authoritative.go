package posture

import (
	"context"
	"fmt"

	"github.com/dnsvantage/dnsvantage/dnsclient"
	"github.com/dnsvantage/dnsvantage/model"
	"github.com/dnsvantage/dnsvantage/util"

	"github.com/hashicorp/go-multierror"
	"github.com/miekg/dns"
)

const loggerPrefixAuthoritative = "authoritative"

// AuthoritativeCollector gathers the capability vector of every
// authoritative nameserver plus the raw email-authentication records.
type AuthoritativeCollector struct {
	client    dnsclient.Client
	selectors []string
	fanOut    uint
}

// NewAuthoritativeCollector creates new collector instance
func NewAuthoritativeCollector(client dnsclient.Client, selectors []string, fanOut uint) *AuthoritativeCollector {
	return &AuthoritativeCollector{
		client:    client,
		selectors: selectors,
		fanOut:    fanOut,
	}
}

// Collect inspects every server concurrently. Rows come back in server
// list order, each row fully populated; one failing server never stops
// the others.
func (c *AuthoritativeCollector) Collect(ctx context.Context, domain string,
	servers []string,
) ([]model.AuthoritativeRow, model.EmailAuthBundle) {
	rows := make([]model.AuthoritativeRow, len(servers))
	raws := make([]rawEmailRecords, len(servers))

	forEach(ctx, c.fanOut, len(servers), func(i int) {
		rows[i], raws[i] = c.collectRow(ctx, domain, servers[i])
	})

	return rows, mergeEmailAuth(raws, c.selectors)
}

// rawEmailRecords is one server's contribution to the email-auth bundle.
type rawEmailRecords struct {
	spf   []string
	dmarc []string
	dkim  map[string][]string
}

func (c *AuthoritativeCollector) collectRow(ctx context.Context, domain, server string) (
	model.AuthoritativeRow, rawEmailRecords,
) {
	row := model.AuthoritativeRow{Server: util.CanonicalHostname(server)}
	raw := rawEmailRecords{dkim: make(map[string][]string)}

	var errs *multierror.Error

	query := func(name string, qtype uint16) ([]model.RecordFact, model.Presence) {
		answer, err := c.client.Query(ctx, server, name, qtype, dnsclient.Options{})
		if err != nil {
			errs = multierror.Append(errs, err)

			return nil, model.PresenceFailed
		}

		facts := Normalize(answer.Records, qtype)
		if len(facts) == 0 {
			return nil, model.PresenceNotSet
		}

		return facts, model.PresenceSet
	}

	_, row.DNSKEY = query(domain, dns.TypeDNSKEY)
	_, row.SOA = query(domain, dns.TypeSOA)
	_, row.NS = query(domain, dns.TypeNS)
	_, row.A = query(domain, dns.TypeA)
	_, row.AAAA = query(domain, dns.TypeAAAA)

	row.MXFacts, row.MX = query(domain, dns.TypeMX)

	apexTxt, apexState := query(domain, dns.TypeTXT)
	raw.spf = filterValues(apexTxt, IsSPFRecord)
	row.SPF = presenceOf(raw.spf, apexState)

	dmarcTxt, dmarcState := query("_dmarc."+domain, dns.TypeTXT)
	raw.dmarc = filterValues(dmarcTxt, IsDMARCRecord)
	row.DMARC = presenceOf(raw.dmarc, dmarcState)

	// selectors are tried independently, any hit marks DKIM as set
	row.DKIM = model.PresenceNotSet

	for _, selector := range c.selectors {
		name := fmt.Sprintf("%s._domainkey.%s", selector, domain)

		dkimTxt, dkimState := query(name, dns.TypeTXT)

		records := filterValues(dkimTxt, IsDKIMRecord)
		raw.dkim[selector] = records

		switch {
		case len(records) > 0:
			row.DKIM = model.PresenceSet
		case dkimState == model.PresenceFailed && row.DKIM == model.PresenceNotSet:
			row.DKIM = model.PresenceFailed
		}
	}

	row.Err = errs.ErrorOrNil()
	if row.Err != nil {
		logger(loggerPrefixAuthoritative).Warnf("incomplete row for %s: %v", server, row.Err)
	}

	return row, raw
}

// presenceOf classifies a filtered record subset: the query state wins
// when the subset is empty, so a failed TXT lookup is never reported as
// a missing record.
func presenceOf(records []string, state model.Presence) model.Presence {
	if len(records) > 0 {
		return model.PresenceSet
	}

	if state == model.PresenceFailed {
		return model.PresenceFailed
	}

	return model.PresenceNotSet
}

func filterValues(facts []model.RecordFact, keep func(string) bool) []string {
	result := []string{}

	for _, fact := range facts {
		if keep(fact.Value) {
			result = append(result, fact.Value)
		}
	}

	return result
}

// mergeEmailAuth folds the per-server raw records into one bundle with
// derived status per kind.
func mergeEmailAuth(raws []rawEmailRecords, selectors []string) model.EmailAuthBundle {
	bundle := model.EmailAuthBundle{
		DKIMRecords: make(map[string][]string, len(selectors)),
	}

	for _, raw := range raws {
		bundle.SPFRecords = append(bundle.SPFRecords, raw.spf...)
		bundle.DMARCRecords = append(bundle.DMARCRecords, raw.dmarc...)

		for selector, records := range raw.dkim {
			bundle.DKIMRecords[selector] = append(bundle.DKIMRecords[selector], records...)
		}
	}

	bundle.SPFRecords = util.SortedUnique(bundle.SPFRecords)
	bundle.DMARCRecords = util.SortedUnique(bundle.DMARCRecords)

	for selector := range bundle.DKIMRecords {
		bundle.DKIMRecords[selector] = util.SortedUnique(bundle.DKIMRecords[selector])
	}

	bundle.SPFStatus = foundStatus(len(bundle.SPFRecords) > 0)
	bundle.DMARCStatus = dmarcStatus(bundle.DMARCRecords)
	bundle.DKIMStatus = model.EmailAuthStatusNotFound

	for _, records := range bundle.DKIMRecords {
		if len(records) > 0 {
			bundle.DKIMStatus = model.EmailAuthStatusFound

			break
		}
	}

	return bundle
}

func foundStatus(found bool) model.EmailAuthStatus {
	if found {
		return model.EmailAuthStatusFound
	}

	return model.EmailAuthStatusNotFound
}

func dmarcStatus(records []string) model.EmailAuthStatus {
	if len(records) == 0 {
		return model.EmailAuthStatusNotFound
	}

	for _, record := range records {
		if _, ok := DMARCPolicy(record); ok {
			return model.EmailAuthStatusFound
		}
	}

	return model.EmailAuthStatusFoundNoPolicy
}
