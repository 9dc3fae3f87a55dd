// Package helpertest contains test support for the collector and
// command suites.
package helpertest

import (
	"context"

	"github.com/dnsvantage/dnsvantage/dnsclient"

	"github.com/miekg/dns"
	"github.com/onsi/ginkgo/v2"
)

// MustRR parses a record in zone file syntax, e.g.
// "example.com. 300 IN NS ns1.example.com.".
func MustRR(rr string) dns.RR {
	parsed, err := dns.NewRR(rr)
	if err != nil {
		ginkgo.Fail("can't parse test record: " + err.Error())
	}

	return parsed
}

// MustRRs parses multiple records in zone file syntax.
func MustRRs(rrs ...string) []dns.RR {
	result := make([]dns.RR, len(rrs))
	for i, rr := range rrs {
		result[i] = MustRR(rr)
	}

	return result
}

// Answer builds a raw client answer from zone file records.
func Answer(rrs ...string) *dnsclient.Answer {
	return &dnsclient.Answer{Records: MustRRs(rrs...)}
}

// AuthorityAnswer builds a referral style answer whose records sit in
// the authority section.
func AuthorityAnswer(rrs ...string) *dnsclient.Answer {
	return &dnsclient.Answer{Authority: MustRRs(rrs...)}
}

// QueryFn is the scripted behavior of a FakeDNSClient.
type QueryFn func(server, name string, qtype uint16, opts dnsclient.Options) (*dnsclient.Answer, error)

// FakeDNSClient is a scripted dnsclient.Client for collector tests.
type FakeDNSClient struct {
	Fn QueryFn
}

func (c *FakeDNSClient) Query(_ context.Context, server, name string,
	qtype uint16, opts dnsclient.Options,
) (*dnsclient.Answer, error) {
	return c.Fn(server, name, qtype, opts)
}
