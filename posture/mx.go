package posture

import (
	"context"
	"sort"

	"github.com/dnsvantage/dnsvantage/dnsclient"
	"github.com/dnsvantage/dnsvantage/model"
	"github.com/dnsvantage/dnsvantage/util"

	"github.com/miekg/dns"
)

const loggerPrefixMX = "mx_targets"

// DeduplicateMX collapses the MX facts of all authoritative rows into
// one canonical set ordered by host. The same host at two different
// priorities stays as two entries.
func DeduplicateMX(rows []model.AuthoritativeRow) []model.MXEntry {
	seen := make(map[model.MXEntry]struct{})
	entries := []model.MXEntry{}

	for _, row := range rows {
		for _, fact := range row.MXFacts {
			entry := model.MXEntry{
				Host:     util.CanonicalHostname(fact.Value),
				Priority: fact.Priority,
			}

			if _, dup := seen[entry]; dup {
				continue
			}

			seen[entry] = struct{}{}
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Host != entries[j].Host {
			return entries[i].Host < entries[j].Host
		}

		return entries[i].Priority < entries[j].Priority
	})

	return entries
}

// MXCollector resolves the mail exchanger targets from the authoritative
// and the recursive vantage point.
type MXCollector struct {
	client dnsclient.Client
	fanOut uint
}

// NewMXCollector creates new collector instance
func NewMXCollector(client dnsclient.Client, fanOut uint) *MXCollector {
	return &MXCollector{client: client, fanOut: fanOut}
}

// Collect resolves A/AAAA of every distinct MX host from both vantage
// points. The recursive side runs with checking disabled so that target
// reachability is judged independently of the mail host's own DNSSEC
// state. No MX hosts means empty output, not an error.
func (c *MXCollector) Collect(ctx context.Context, entries []model.MXEntry,
	authoritativeVantage, recursiveVantage string,
) (authoritative, recursive []model.MXResolutionRow) {
	hosts := distinctHosts(entries)

	authoritative = make([]model.MXResolutionRow, len(hosts))
	recursive = make([]model.MXResolutionRow, len(hosts))

	forEach(ctx, c.fanOut, len(hosts), func(i int) {
		authoritative[i] = c.resolveHost(ctx, hosts[i], authoritativeVantage,
			dnsclient.Options{})
		recursive[i] = c.resolveHost(ctx, hosts[i], recursiveVantage,
			dnsclient.Options{CheckingDisabled: true})
	})

	return authoritative, recursive
}

func (c *MXCollector) resolveHost(ctx context.Context, host, vantage string,
	opts dnsclient.Options,
) model.MXResolutionRow {
	row := model.MXResolutionRow{Host: host}

	row.HasA = c.hasAddress(ctx, host, vantage, dns.TypeA, opts)
	row.HasAAAA = c.hasAddress(ctx, host, vantage, dns.TypeAAAA, opts)

	return row
}

func (c *MXCollector) hasAddress(ctx context.Context, host, vantage string,
	qtype uint16, opts dnsclient.Options,
) bool {
	answer, err := c.client.Query(ctx, vantage, host, qtype, opts)
	if err != nil {
		logger(loggerPrefixMX).Warnf("%s lookup for %s against %s failed: %v",
			dns.TypeToString[qtype], host, vantage, err)

		return false
	}

	return len(Normalize(answer.Records, qtype)) > 0
}

func distinctHosts(entries []model.MXEntry) []string {
	hosts := make([]string, 0, len(entries))
	for _, entry := range entries {
		hosts = append(hosts, entry.Host)
	}

	return util.SortedUnique(hosts)
}
