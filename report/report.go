// Package report renders a finished posture snapshot for the console.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dnsvantage/dnsvantage/model"

	"github.com/olekukonko/tablewriter"
)

const (
	iconPass   = "✅"
	iconWarn   = "⚠️"
	iconFail   = "❌"
	iconNotSet = "➖"
)

// Renderer writes the snapshot tables to one output.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates new renderer instance
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render prints the whole report: summary, delegation, the two vantage
// matrices, MX resolution and the raw email-authentication records.
func (r *Renderer) Render(snapshot *model.Snapshot) {
	fmt.Fprintf(r.out, "\nPosture of %s (run %s, took %s)\n\n",
		snapshot.Domain, snapshot.ID, snapshot.Took.Round(time.Millisecond))

	r.renderSummary(snapshot.Summary)
	r.renderDelegation(snapshot.Delegation)
	r.renderAuthoritative(snapshot.Authoritative)
	r.renderResolvers(snapshot.Resolvers)
	r.renderMX(snapshot)
	r.renderEmailAuth(snapshot.EmailAuth)
}

func (r *Renderer) renderSummary(summary model.Summary) {
	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Delegation", "DNSSEC", "MX", "SPF", "DMARC"})
	table.Append([]string{
		badgeIcon(summary.Delegation),
		badgeIcon(summary.DNSSEC),
		badgeIcon(summary.MX),
		badgeIcon(summary.SPF),
		badgeIcon(summary.DMARC),
	})
	table.Render()

	fmt.Fprintln(r.out)
}

func (r *Renderer) renderDelegation(result model.DelegationResult) {
	if result.Aligned {
		fmt.Fprintf(r.out, "Delegation aligned: %d nameserver(s) match on both sides\n\n",
			len(result.ParentNS))

		return
	}

	fmt.Fprintln(r.out, "Delegation NOT aligned:")
	fmt.Fprintf(r.out, "  registry side: %s\n", hostList(result.ParentNS))
	fmt.Fprintf(r.out, "  zone side:     %s\n", hostList(result.ZoneNS))

	if len(result.OnlyParent) > 0 {
		fmt.Fprintf(r.out, "  only registry: %s\n", hostList(result.OnlyParent))
	}

	if len(result.OnlyZone) > 0 {
		fmt.Fprintf(r.out, "  only zone:     %s\n", hostList(result.OnlyZone))
	}

	fmt.Fprintln(r.out)
}

func (r *Renderer) renderAuthoritative(rows []model.AuthoritativeRow) {
	fmt.Fprintln(r.out, "Authoritative nameservers:")

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{
		"Server", "DNSKEY", "SOA", "NS", "A", "AAAA", "MX", "SPF", "DMARC", "DKIM",
	})

	for _, row := range rows {
		table.Append([]string{
			row.Server,
			presenceIcon(row.DNSKEY),
			presenceIcon(row.SOA),
			presenceIcon(row.NS),
			presenceIcon(row.A),
			presenceIcon(row.AAAA),
			presenceIcon(row.MX),
			presenceIcon(row.SPF),
			presenceIcon(row.DMARC),
			presenceIcon(row.DKIM),
		})
	}

	table.Render()

	fmt.Fprintln(r.out)
}

func (r *Renderer) renderResolvers(rows []model.ResolverRow) {
	fmt.Fprintln(r.out, "Public resolver validation:")

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Resolver", "DS", "DNSKEY", "AD flag", "Answer with CD"})

	for _, row := range rows {
		table.Append([]string{
			fmt.Sprintf("%s (%s)", row.Resolver.Name, row.Resolver.Address),
			boolIcon(row.DSPresent),
			boolIcon(row.DNSKEYPresent),
			boolIcon(row.AuthenticatedData),
			boolIcon(row.AnswerWithCheckingDisabled),
		})
	}

	table.Render()

	fmt.Fprintln(r.out)
}

func (r *Renderer) renderMX(snapshot *model.Snapshot) {
	if len(snapshot.MXEntries) == 0 {
		fmt.Fprint(r.out, "No MX records published\n\n")

		return
	}

	fmt.Fprintln(r.out, "Mail exchangers:")

	for _, entry := range snapshot.MXEntries {
		fmt.Fprintf(r.out, "  %5d  %s\n", entry.Priority, entry.Host)
	}

	fmt.Fprintln(r.out)

	r.renderMXResolution("MX targets (authoritative view):", snapshot.MXAuthoritative)
	r.renderMXResolution("MX targets (recursive view):", snapshot.MXRecursive)
}

func (r *Renderer) renderMXResolution(title string, rows []model.MXResolutionRow) {
	fmt.Fprintln(r.out, title)

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Host", "A", "AAAA"})

	for _, row := range rows {
		table.Append([]string{row.Host, boolIcon(row.HasA), boolIcon(row.HasAAAA)})
	}

	table.Render()

	fmt.Fprintln(r.out)
}

func (r *Renderer) renderEmailAuth(bundle model.EmailAuthBundle) {
	fmt.Fprintf(r.out, "SPF   %s\n", statusLine(bundle.SPFStatus, bundle.SPFRecords))
	fmt.Fprintf(r.out, "DMARC %s\n", statusLine(bundle.DMARCStatus, bundle.DMARCRecords))
	fmt.Fprintf(r.out, "DKIM  %s\n", emailAuthIcon(bundle.DKIMStatus))

	selectors := make([]string, 0, len(bundle.DKIMRecords))
	for selector := range bundle.DKIMRecords {
		selectors = append(selectors, selector)
	}

	sort.Strings(selectors)

	for _, selector := range selectors {
		records := bundle.DKIMRecords[selector]
		if len(records) == 0 {
			fmt.Fprintf(r.out, "      %s: %s\n", selector, iconNotSet)

			continue
		}

		for _, record := range records {
			fmt.Fprintf(r.out, "      %s: %s\n", selector, record)
		}
	}
}

func statusLine(status model.EmailAuthStatus, records []string) string {
	line := emailAuthIcon(status)
	for _, record := range records {
		line += "\n      " + record
	}

	return line
}

func badgeIcon(badge model.Badge) string {
	switch badge {
	case model.BadgePass:
		return iconPass
	case model.BadgeWarn:
		return iconWarn
	case model.BadgeFail:
		return iconFail
	default:
		return iconNotSet
	}
}

func presenceIcon(presence model.Presence) string {
	switch presence {
	case model.PresenceSet:
		return iconPass
	case model.PresenceNotSet:
		return iconNotSet
	case model.PresenceFailed:
		return iconFail
	default:
		return iconNotSet
	}
}

func emailAuthIcon(status model.EmailAuthStatus) string {
	switch status {
	case model.EmailAuthStatusFound:
		return iconPass
	case model.EmailAuthStatusFoundNoPolicy:
		return iconWarn
	case model.EmailAuthStatusNotFound:
		return iconFail
	default:
		return iconNotSet
	}
}

func boolIcon(v bool) string {
	if v {
		return iconPass
	}

	return iconFail
}

func hostList(hosts []string) string {
	if len(hosts) == 0 {
		return "(none)"
	}

	result := hosts[0]
	for _, host := range hosts[1:] {
		result += ", " + host
	}

	return result
}
