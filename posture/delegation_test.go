package posture_test

import (
	"context"

	"github.com/dnsvantage/dnsvantage/dnsclient"
	"github.com/dnsvantage/dnsvantage/helpertest"
	. "github.com/dnsvantage/dnsvantage/posture"

	"github.com/miekg/dns"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
)

var _ = Describe("CompareDelegation", func() {
	When("both sides publish the same set", func() {
		It("should report alignment with empty diffs", func() {
			result := CompareDelegation(
				NameserverSet{"ns1.example", "ns2.example"},
				NameserverSet{"ns1.example", "ns2.example"})

			Expect(result.Aligned).Should(BeTrue())
			Expect(result.OnlyParent).Should(BeEmpty())
			Expect(result.OnlyZone).Should(BeEmpty())
		})
	})

	When("the zone publishes an additional nameserver", func() {
		It("should report the asymmetric difference", func() {
			result := CompareDelegation(
				NameserverSet{"ns1.example"},
				NameserverSet{"ns1.example", "ns3.example"})

			Expect(result.Aligned).Should(BeFalse())
			Expect(result.OnlyZone).Should(Equal([]string{"ns3.example"}))
			Expect(result.OnlyParent).Should(BeEmpty())
		})
	})

	When("the sides are swapped", func() {
		It("should detect the mismatch symmetrically", func() {
			a := NameserverSet{"ns1.example"}
			b := NameserverSet{"ns1.example", "ns3.example"}

			forward := CompareDelegation(a, b)
			backward := CompareDelegation(b, a)

			Expect(forward.Aligned).Should(Equal(backward.Aligned))
			Expect(forward.OnlyZone).Should(Equal(backward.OnlyParent))
			Expect(forward.OnlyParent).Should(Equal(backward.OnlyZone))
		})
	})

	When("one side is empty", func() {
		It("should never report alignment", func() {
			result := CompareDelegation(NameserverSet{}, NameserverSet{"ns1.example"})

			Expect(result.Aligned).Should(BeFalse())
			Expect(result.OnlyZone).Should(Equal([]string{"ns1.example"}))
		})

		It("should not mask two empty sides as aligned", func() {
			Expect(CompareDelegation(NameserverSet{}, NameserverSet{}).Aligned).Should(BeFalse())
		})
	})
})

var _ = Describe("DelegationCollector", func() {
	var (
		collector *DelegationCollector
		queries   []string
	)

	newCollector := func(fn helpertest.QueryFn) *DelegationCollector {
		queries = nil

		return NewDelegationCollector(&helpertest.FakeDNSClient{
			Fn: func(server, name string, qtype uint16, opts dnsclient.Options) (*dnsclient.Answer, error) {
				queries = append(queries, server+"/"+name)

				return fn(server, name, qtype, opts)
			},
		})
	}

	When("the TLD nameserver answers the referral", func() {
		BeforeEach(func() {
			collector = newCollector(func(server, name string, _ uint16,
				opts dnsclient.Options,
			) (*dnsclient.Answer, error) {
				switch {
				case server == "" && name == "org":
					return helpertest.Answer("org. 300 IN NS a0.org.afilias-nst.info."), nil
				case server == "a0.org.afilias-nst.info" && opts.NoRecursion:
					return helpertest.AuthorityAnswer(
						"example.org. 300 IN NS ns1.example.org.",
						"example.org. 300 IN NS ns2.example.org.",
					), nil
				case server == "" && name == "example.org":
					return helpertest.Answer(
						"example.org. 300 IN NS ns2.example.org.",
						"example.org. 300 IN NS ns1.example.org.",
					), nil
				}

				return &dnsclient.Answer{}, nil
			})
		})

		It("should report an aligned delegation", func() {
			result := collector.Collect(context.Background(), "example.org", "")

			Expect(result.Aligned).Should(BeTrue())
			Expect(result.ParentNS).Should(Equal([]string{"ns1.example.org", "ns2.example.org"}))
			Expect(result.ZoneNS).Should(Equal([]string{"ns1.example.org", "ns2.example.org"}))
		})
	})

	When("the TLD nameserver cannot be determined", func() {
		BeforeEach(func() {
			collector = newCollector(func(server, name string, _ uint16,
				opts dnsclient.Options,
			) (*dnsclient.Answer, error) {
				switch {
				case server == "" && name == "org":
					return &dnsclient.Answer{}, nil
				case server == "a.nic.org" && opts.NoRecursion:
					return helpertest.AuthorityAnswer("example.org. 300 IN NS ns1.example.org."), nil
				case server == "" && name == "example.org":
					return helpertest.Answer("example.org. 300 IN NS ns1.example.org."), nil
				}

				return &dnsclient.Answer{}, nil
			})
		})

		It("should fall back to the a.nic heuristic", func() {
			result := collector.Collect(context.Background(), "example.org", "")

			Expect(result.Aligned).Should(BeTrue())
			Expect(queries).Should(ContainElement("a.nic.org/example.org"))
		})
	})

	When("the referral comes back empty", func() {
		BeforeEach(func() {
			collector = newCollector(func(server, name string, _ uint16,
				_ dnsclient.Options,
			) (*dnsclient.Answer, error) {
				switch {
				case server == "" && name == "org":
					return helpertest.Answer("org. 300 IN NS a0.org.afilias-nst.info."), nil
				case server == "a0.org.afilias-nst.info":
					return &dnsclient.Answer{}, nil
				case server == "198.41.0.4":
					// root referral down to the org zone
					return helpertest.AuthorityAnswer("org. 300 IN NS b0.org.afilias-nst.org."), nil
				case server == "b0.org.afilias-nst.org":
					return helpertest.AuthorityAnswer("example.org. 300 IN NS ns1.example.org."), nil
				case server == "" && name == "example.org":
					return helpertest.Answer("example.org. 300 IN NS ns1.example.org."), nil
				}

				return &dnsclient.Answer{}, nil
			})
		})

		It("should trace the delegation from the root", func() {
			result := collector.Collect(context.Background(), "example.org", "")

			Expect(result.Aligned).Should(BeTrue())
			Expect(result.ParentNS).Should(Equal([]string{"ns1.example.org"}))
			Expect(queries).Should(ContainElement("198.41.0.4/example.org"))
		})
	})

	When("a zone vantage server is configured", func() {
		It("should send the zone query to that server", func() {
			client := &dnsclient.MockClient{}

			client.On("Query", mock.Anything, "", "org", dns.TypeNS,
				dnsclient.Options{}).
				Return(helpertest.Answer("org. 300 IN NS a0.org.afilias-nst.info."), nil)
			client.On("Query", mock.Anything, "a0.org.afilias-nst.info", "example.org", dns.TypeNS,
				dnsclient.Options{NoRecursion: true}).
				Return(helpertest.AuthorityAnswer("example.org. 300 IN NS ns1.example.org."), nil)
			client.On("Query", mock.Anything, "ns1.example.org", "example.org", dns.TypeNS,
				dnsclient.Options{}).
				Return(helpertest.Answer("example.org. 300 IN NS ns1.example.org."), nil)

			result := NewDelegationCollector(client).Collect(
				context.Background(), "example.org", "ns1.example.org")

			Expect(result.Aligned).Should(BeTrue())
			client.AssertExpectations(GinkgoT())
		})
	})

	When("the zone side lookup fails", func() {
		BeforeEach(func() {
			collector = newCollector(func(server, name string, qtype uint16,
				_ dnsclient.Options,
			) (*dnsclient.Answer, error) {
				if server == "" && name == "example.org" && qtype == dns.TypeNS {
					return nil, context.DeadlineExceeded
				}

				if server == "" && name == "org" {
					return helpertest.Answer("org. 300 IN NS a0.org.afilias-nst.info."), nil
				}

				return helpertest.AuthorityAnswer("example.org. 300 IN NS ns1.example.org."), nil
			})
		})

		It("should surface the empty side instead of failing the run", func() {
			result := collector.Collect(context.Background(), "example.org", "")

			Expect(result.Aligned).Should(BeFalse())
			Expect(result.ZoneNS).Should(BeEmpty())
			Expect(result.OnlyParent).Should(Equal([]string{"ns1.example.org"}))
		})
	})
})
