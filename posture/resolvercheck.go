package posture

import (
	"context"

	"github.com/dnsvantage/dnsvantage/dnsclient"
	"github.com/dnsvantage/dnsvantage/model"

	"github.com/miekg/dns"
)

const loggerPrefixResolver = "resolver_check"

// PublicResolvers is the fixed validation vantage list. The provider
// diversity is intentional, resolver-specific DNSSEC bugs only show up
// when independent implementations disagree.
//
//nolint:gochecknoglobals
var PublicResolvers = []model.Resolver{
	{Name: "Cloudflare", Address: "1.1.1.1"},
	{Name: "Google", Address: "8.8.8.8"},
	{Name: "Quad9", Address: "9.9.9.9"},
	{Name: "OpenDNS", Address: "208.67.222.222"},
}

// ResolverCollector gathers the DNSSEC validation view of the public
// recursive resolvers.
type ResolverCollector struct {
	client    dnsclient.Client
	resolvers []model.Resolver
	fanOut    uint
}

// NewResolverCollector creates new collector instance
func NewResolverCollector(client dnsclient.Client, resolvers []model.Resolver, fanOut uint) *ResolverCollector {
	return &ResolverCollector{
		client:    client,
		resolvers: resolvers,
		fanOut:    fanOut,
	}
}

// Collect queries every resolver concurrently. A timed out or otherwise
// failing resolver yields an all-false row instead of aborting the pass.
func (c *ResolverCollector) Collect(ctx context.Context, domain string) []model.ResolverRow {
	rows := make([]model.ResolverRow, len(c.resolvers))

	forEach(ctx, c.fanOut, len(c.resolvers), func(i int) {
		rows[i] = c.collectRow(ctx, domain, c.resolvers[i])
	})

	return rows
}

func (c *ResolverCollector) collectRow(ctx context.Context, domain string,
	resolver model.Resolver,
) model.ResolverRow {
	row := model.ResolverRow{Resolver: resolver}

	present := func(qtype uint16) bool {
		answer, err := c.client.Query(ctx, resolver.Address, domain, qtype,
			dnsclient.Options{DNSSEC: true})
		if err != nil {
			row.Err = err

			return false
		}

		return len(Normalize(answer.Records, qtype)) > 0
	}

	row.DSPresent = present(dns.TypeDS)
	row.DNSKEYPresent = present(dns.TypeDNSKEY)

	// plain DNSSEC-aware query, the success criterion is the AD header bit
	if answer, err := c.client.Query(ctx, resolver.Address, domain, dns.TypeA,
		dnsclient.Options{DNSSEC: true}); err != nil {
		row.Err = err
	} else {
		row.AuthenticatedData = answer.AuthenticatedData
	}

	// checking disabled bypasses validation, any answer at all counts
	if answer, err := c.client.Query(ctx, resolver.Address, domain, dns.TypeA,
		dnsclient.Options{DNSSEC: true, CheckingDisabled: true}); err != nil {
		row.Err = err
	} else {
		row.AnswerWithCheckingDisabled = len(answer.Records) > 0
	}

	if row.Err != nil {
		logger(loggerPrefixResolver).Warnf("incomplete row for %s (%s): %v",
			resolver.Name, resolver.Address, row.Err)
	}

	return row
}
