package posture_test

import (
	"context"
	"errors"

	"github.com/dnsvantage/dnsvantage/dnsclient"
	"github.com/dnsvantage/dnsvantage/helpertest"
	"github.com/dnsvantage/dnsvantage/model"
	. "github.com/dnsvantage/dnsvantage/posture"

	"github.com/miekg/dns"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AuthoritativeCollector", func() {
	var (
		collector *AuthoritativeCollector
		rows      []model.AuthoritativeRow
		bundle    model.EmailAuthBundle
	)

	fullyConfigured := func(server, name string, qtype uint16,
		_ dnsclient.Options,
	) (*dnsclient.Answer, error) {
		switch qtype {
		case dns.TypeDNSKEY:
			return helpertest.Answer("example.org. 300 IN DNSKEY 257 3 13 aGVsbG8="), nil
		case dns.TypeSOA:
			return helpertest.Answer("example.org. 300 IN SOA ns1.example.org. hostmaster.example.org. 1 2 3 4 5"), nil
		case dns.TypeNS:
			return helpertest.Answer("example.org. 300 IN NS ns1.example.org."), nil
		case dns.TypeA:
			return helpertest.Answer("example.org. 300 IN A 192.0.2.1"), nil
		case dns.TypeAAAA:
			return helpertest.Answer("example.org. 300 IN AAAA 2001:db8::1"), nil
		case dns.TypeMX:
			return helpertest.Answer("example.org. 300 IN MX 10 mail.example.org."), nil
		case dns.TypeTXT:
			switch name {
			case "example.org":
				return helpertest.Answer(
					`example.org. 300 IN TXT "v=spf1 -all"`,
					`example.org. 300 IN TXT "google-site-verification=abc"`,
				), nil
			case "_dmarc.example.org":
				return helpertest.Answer(`_dmarc.example.org. 300 IN TXT "v=DMARC1; p=reject"`), nil
			case "selector1._domainkey.example.org":
				return helpertest.Answer(`selector1._domainkey.example.org. 300 IN TXT "v=DKIM1; p=MIGfMA"`), nil
			}
		}

		return &dnsclient.Answer{}, nil
	}

	When("a server has everything configured", func() {
		BeforeEach(func() {
			collector = NewAuthoritativeCollector(
				&helpertest.FakeDNSClient{Fn: fullyConfigured},
				[]string{"default", "selector1"}, 4)

			rows, bundle = collector.Collect(context.Background(), "example.org",
				[]string{"ns1.example.org"})
		})

		It("should mark every capability as set", func() {
			Expect(rows).Should(HaveLen(1))

			row := rows[0]
			Expect(row.Server).Should(Equal("ns1.example.org"))
			Expect(row.DNSKEY).Should(Equal(model.PresenceSet))
			Expect(row.SOA).Should(Equal(model.PresenceSet))
			Expect(row.NS).Should(Equal(model.PresenceSet))
			Expect(row.A).Should(Equal(model.PresenceSet))
			Expect(row.AAAA).Should(Equal(model.PresenceSet))
			Expect(row.MX).Should(Equal(model.PresenceSet))
			Expect(row.SPF).Should(Equal(model.PresenceSet))
			Expect(row.DMARC).Should(Equal(model.PresenceSet))
			Expect(row.DKIM).Should(Equal(model.PresenceSet))
			Expect(row.Err).Should(BeNil())
		})

		It("should keep only classified records in the bundle", func() {
			Expect(bundle.SPFRecords).Should(Equal([]string{"v=spf1 -all"}))
			Expect(bundle.DMARCRecords).Should(Equal([]string{"v=DMARC1; p=reject"}))
			Expect(bundle.SPFStatus).Should(Equal(model.EmailAuthStatusFound))
			Expect(bundle.DMARCStatus).Should(Equal(model.EmailAuthStatusFound))
		})

		It("should retain the per selector detail", func() {
			Expect(bundle.DKIMRecords).Should(HaveKey("default"))
			Expect(bundle.DKIMRecords["default"]).Should(BeEmpty())
			Expect(bundle.DKIMRecords["selector1"]).Should(HaveLen(1))
			Expect(bundle.DKIMStatus).Should(Equal(model.EmailAuthStatusFound))
		})
	})

	When("one query of one server times out", func() {
		BeforeEach(func() {
			failing := func(server, name string, qtype uint16,
				opts dnsclient.Options,
			) (*dnsclient.Answer, error) {
				if server == "ns2.example.org" && qtype == dns.TypeMX {
					return nil, errors.New("i/o timeout")
				}

				return fullyConfigured(server, name, qtype, opts)
			}

			collector = NewAuthoritativeCollector(
				&helpertest.FakeDNSClient{Fn: failing},
				[]string{"default", "selector1"}, 4)

			rows, bundle = collector.Collect(context.Background(), "example.org",
				[]string{"ns1.example.org", "ns2.example.org"})
		})

		It("should mark only the failed field as failed", func() {
			Expect(rows[1].MX).Should(Equal(model.PresenceFailed))
			Expect(rows[1].SOA).Should(Equal(model.PresenceSet))
			Expect(rows[1].Err).Should(HaveOccurred())
		})

		It("should not corrupt the row of the other server", func() {
			Expect(rows[0].Server).Should(Equal("ns1.example.org"))
			Expect(rows[0].MX).Should(Equal(model.PresenceSet))
			Expect(rows[0].Err).Should(BeNil())
		})
	})

	When("a server answers without the requested records", func() {
		BeforeEach(func() {
			collector = NewAuthoritativeCollector(
				&helpertest.FakeDNSClient{
					Fn: func(_, _ string, _ uint16, _ dnsclient.Options) (*dnsclient.Answer, error) {
						return &dnsclient.Answer{}, nil
					},
				},
				[]string{"default"}, 4)

			rows, bundle = collector.Collect(context.Background(), "example.org",
				[]string{"ns1.example.org"})
		})

		It("should report not set, not failed", func() {
			Expect(rows[0].DNSKEY).Should(Equal(model.PresenceNotSet))
			Expect(rows[0].SPF).Should(Equal(model.PresenceNotSet))
			Expect(rows[0].DKIM).Should(Equal(model.PresenceNotSet))
			Expect(bundle.SPFStatus).Should(Equal(model.EmailAuthStatusNotFound))
			Expect(bundle.DMARCStatus).Should(Equal(model.EmailAuthStatusNotFound))
			Expect(bundle.DKIMStatus).Should(Equal(model.EmailAuthStatusNotFound))
		})
	})

	When("the DMARC record has no policy tag", func() {
		BeforeEach(func() {
			collector = NewAuthoritativeCollector(
				&helpertest.FakeDNSClient{
					Fn: func(_, name string, qtype uint16, _ dnsclient.Options) (*dnsclient.Answer, error) {
						if qtype == dns.TypeTXT && name == "_dmarc.example.org" {
							return helpertest.Answer(
								`_dmarc.example.org. 300 IN TXT "v=DMARC1; sp=reject"`), nil
						}

						return &dnsclient.Answer{}, nil
					},
				},
				[]string{"default"}, 4)

			_, bundle = collector.Collect(context.Background(), "example.org",
				[]string{"ns1.example.org"})
		})

		It("should classify it as found without policy", func() {
			Expect(bundle.DMARCStatus).Should(Equal(model.EmailAuthStatusFoundNoPolicy))
		})
	})
})
