package posture

import (
	"context"
	"fmt"
	"time"

	"github.com/dnsvantage/dnsvantage/config"
	"github.com/dnsvantage/dnsvantage/dnsclient"
	"github.com/dnsvantage/dnsvantage/model"
	"github.com/dnsvantage/dnsvantage/util"

	"github.com/google/uuid"
)

const loggerPrefixRunner = "posture_run"

// Runner drives one complete posture evaluation. Every run produces a
// fresh snapshot, nothing carries over between runs.
type Runner struct {
	cfg    config.CheckConfig
	client dnsclient.Client

	delegation    *DelegationCollector
	authoritative *AuthoritativeCollector
	resolvers     *ResolverCollector
	mx            *MXCollector
}

// NewRunner creates new runner instance
func NewRunner(cfg config.CheckConfig, client dnsclient.Client) *Runner {
	return &Runner{
		cfg:    cfg,
		client: client,

		delegation:    NewDelegationCollector(client),
		authoritative: NewAuthoritativeCollector(client, cfg.DKIMSelectors, cfg.FanOut),
		resolvers:     NewResolverCollector(client, PublicResolvers, cfg.FanOut),
		mx:            NewMXCollector(client, cfg.FanOut),
	}
}

// Run evaluates the posture of domain. DNS level problems end up inside
// the snapshot, an error return means the run could not start at all.
func (r *Runner) Run(ctx context.Context, domain string) (*model.Snapshot, error) {
	canonical := util.CanonicalHostname(domain)
	if !util.IsValidHostname(canonical) {
		return nil, fmt.Errorf("'%s' is not a valid domain name", domain)
	}

	log := logger(loggerPrefixRunner)

	snapshot := &model.Snapshot{
		ID:        uuid.NewString(),
		Domain:    canonical,
		StartedAt: time.Now(),
	}

	log.Infof("evaluating %s (run %s)", canonical, snapshot.ID)

	zoneVantage := ""
	if len(r.cfg.AuthoritativeServers) > 0 {
		zoneVantage = util.CanonicalHostname(r.cfg.AuthoritativeServers[0])
	}

	snapshot.Delegation = r.delegation.Collect(ctx, canonical, zoneVantage)
	snapshot.AuthoritativeServers = r.authoritativeServers(snapshot.Delegation)

	if len(snapshot.AuthoritativeServers) == 0 {
		log.Warnf("no authoritative nameservers discovered for %s", canonical)
	}

	snapshot.Authoritative, snapshot.EmailAuth = r.authoritative.Collect(
		ctx, canonical, snapshot.AuthoritativeServers)
	snapshot.Resolvers = r.resolvers.Collect(ctx, canonical)

	snapshot.MXEntries = DeduplicateMX(snapshot.Authoritative)
	snapshot.MXAuthoritative, snapshot.MXRecursive = r.mx.Collect(ctx,
		snapshot.MXEntries, r.authoritativeVantage(snapshot), r.recursiveVantage())

	snapshot.Summary = Summarize(snapshot)
	snapshot.Took = time.Since(snapshot.StartedAt)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run aborted: %w", err)
	}

	log.Infof("finished %s in %s", canonical, snapshot.Took.Round(time.Millisecond))

	return snapshot, nil
}

// authoritativeServers is the configured override, or the zone's own NS
// set, or the parent's delegation as a last resort.
func (r *Runner) authoritativeServers(delegation model.DelegationResult) []string {
	if len(r.cfg.AuthoritativeServers) > 0 {
		return util.SortedUnique(convertEach(r.cfg.AuthoritativeServers, util.CanonicalHostname))
	}

	if len(delegation.ZoneNS) > 0 {
		return delegation.ZoneNS
	}

	return delegation.ParentNS
}

// authoritativeVantage is the first discovered authoritative server.
func (r *Runner) authoritativeVantage(snapshot *model.Snapshot) string {
	if len(snapshot.AuthoritativeServers) > 0 {
		return snapshot.AuthoritativeServers[0]
	}

	return ""
}

// recursiveVantage is the first public resolver.
func (r *Runner) recursiveVantage() string {
	return PublicResolvers[0].Address
}
