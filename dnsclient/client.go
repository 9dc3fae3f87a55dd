package dnsclient

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/dnsvantage/dnsvantage/log"
	"github.com/dnsvantage/dnsvantage/util"

	"github.com/avast/retry-go/v4"
	"github.com/miekg/dns"
)

const (
	// ednsUDPSize is the EDNS0 UDP buffer size
	ednsUDPSize = 4096

	defaultPort     = "53"
	queryAttempts   = uint(2)
	retryCooldown   = 200 * time.Millisecond
	fallbackServer  = "8.8.8.8:53"
	resolvConfig    = "/etc/resolv.conf"
	loggerPrefixDNS = "dns_client"
)

// Options are the per-query flags.
type Options struct {
	// DNSSEC sets the EDNS0 DO bit so that the server includes DNSSEC
	// material and a validating resolver reports the AD header bit.
	DNSSEC bool

	// CheckingDisabled asks the resolver to skip DNSSEC validation.
	CheckingDisabled bool

	// NoRecursion issues a non-recursive query. Delegation answers of
	// such queries typically arrive in the authority section.
	NoRecursion bool
}

// Answer is the raw result of one completed query. An empty answer
// section is a valid outcome, distinct from a failed query.
type Answer struct {
	Records   []dns.RR
	Authority []dns.RR
	Rcode     int

	// AuthenticatedData reports the AD bit of the response header,
	// independent of whether records were returned.
	AuthenticatedData bool
}

// Empty reports whether the answer carries no records in either section.
func (a *Answer) Empty() bool {
	return len(a.Records) == 0 && len(a.Authority) == 0
}

// Client sends a single DNS question to a single server. Server "" means
// the system's default resolver.
type Client interface {
	Query(ctx context.Context, server, name string, qtype uint16, opts Options) (*Answer, error)
}

// DNSClient implements Client on top of plain UDP/TCP DNS.
type DNSClient struct {
	udpClient    *dns.Client
	tcpClient    *dns.Client
	systemServer string
}

// NewClient creates a client whose individual queries are bounded by timeout.
func NewClient(timeout time.Duration) *DNSClient {
	return &DNSClient{
		udpClient: &dns.Client{
			Net:     "udp",
			Timeout: timeout,
		},
		tcpClient: &dns.Client{
			Net:     "tcp",
			Timeout: timeout,
		},
		systemServer: systemResolver(),
	}
}

// systemResolver returns the first configured system nameserver,
// falling back to a public resolver.
func systemResolver() string {
	cfg, err := dns.ClientConfigFromFile(resolvConfig)
	if err != nil || len(cfg.Servers) == 0 {
		return fallbackServer
	}

	return net.JoinHostPort(cfg.Servers[0], cfg.Port)
}

// Query sends one question and returns the raw answer. NXDOMAIN and
// empty answers are valid results; transport problems and other error
// response codes are returned as errors.
func (c *DNSClient) Query(ctx context.Context, server, name string,
	qtype uint16, opts Options,
) (*Answer, error) {
	msg := util.NewMsgWithQuestion(name, qtype)
	msg.RecursionDesired = !opts.NoRecursion
	msg.CheckingDisabled = opts.CheckingDisabled

	if opts.DNSSEC {
		msg.SetEdns0(ednsUDPSize, true)
	}

	addr := c.serverAddress(server)
	logger := log.PrefixedLog(loggerPrefixDNS)

	var response *dns.Msg

	err := retry.Do(
		func() error {
			var err error

			response, err = c.exchange(ctx, msg, addr)

			return err
		},
		retry.Attempts(queryAttempts),
		retry.Delay(retryCooldown),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Debugf("query %s/%s against %s failed, retrying (%d): %v",
				name, dns.TypeToString[qtype], addr, n, err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("can't query %s for %s: %w", addr, name, err)
	}

	switch response.Rcode {
	case dns.RcodeSuccess, dns.RcodeNameError:
		// NXDOMAIN is absence of data, not a failure
	default:
		return nil, fmt.Errorf("server %s returned %s for %s",
			addr, dns.RcodeToString[response.Rcode], name)
	}

	return &Answer{
		Records:           response.Answer,
		Authority:         response.Ns,
		Rcode:             response.Rcode,
		AuthenticatedData: response.AuthenticatedData,
	}, nil
}

// exchange sends via UDP and falls back to TCP on truncation.
func (c *DNSClient) exchange(ctx context.Context, msg *dns.Msg, addr string) (*dns.Msg, error) {
	response, _, err := c.udpClient.ExchangeContext(ctx, msg, addr)
	if err != nil {
		return nil, err
	}

	if response.Truncated {
		response, _, err = c.tcpClient.ExchangeContext(ctx, msg, addr)
		if err != nil {
			return nil, err
		}
	}

	return response, nil
}

func (c *DNSClient) serverAddress(server string) string {
	if server == "" {
		return c.systemServer
	}

	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}

	return net.JoinHostPort(server, defaultPort)
}
