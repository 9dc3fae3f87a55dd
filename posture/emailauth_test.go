package posture_test

import (
	. "github.com/dnsvantage/dnsvantage/posture"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Email authentication records", func() {
	Describe("SPF", func() {
		It("should accept a record whose first term is the version", func() {
			Expect(IsSPFRecord("v=spf1 include:_spf.example.com -all")).Should(BeTrue())
			Expect(IsSPFRecord("V=SPF1 -all")).Should(BeTrue())
		})

		It("should reject other TXT content", func() {
			Expect(IsSPFRecord("google-site-verification=abc")).Should(BeFalse())
			Expect(IsSPFRecord("something v=spf1")).Should(BeFalse())
			Expect(IsSPFRecord("")).Should(BeFalse())
		})
	})

	Describe("DMARC", func() {
		It("should accept a record with a leading version tag", func() {
			Expect(IsDMARCRecord("v=DMARC1; p=reject")).Should(BeTrue())
			Expect(IsDMARCRecord(" v = DMARC1 ; p=none")).Should(BeTrue())
		})

		It("should reject records without the version tag first", func() {
			Expect(IsDMARCRecord("p=reject; v=DMARC1")).Should(BeFalse())
			Expect(IsDMARCRecord("v=spf1 -all")).Should(BeFalse())
		})

		It("should find the discrete policy tag", func() {
			policy, ok := DMARCPolicy("v=DMARC1; p=quarantine; rua=mailto:d@example.com")

			Expect(ok).Should(BeTrue())
			Expect(policy).Should(Equal("quarantine"))
		})

		It("should not mistake the subdomain policy for the policy", func() {
			_, ok := DMARCPolicy("v=DMARC1; sp=reject")

			Expect(ok).Should(BeFalse())
		})

		It("should not match a p substring inside another tag value", func() {
			_, ok := DMARCPolicy("v=DMARC1; rua=mailto:p=x@example.com")

			Expect(ok).Should(BeFalse())
		})
	})

	Describe("DKIM", func() {
		It("should accept a record with the version tag", func() {
			Expect(IsDKIMRecord("v=DKIM1; k=rsa; p=MIGfMA0GCSq")).Should(BeTrue())
		})

		It("should accept a record with only a public key tag", func() {
			Expect(IsDKIMRecord("k=rsa; p=MIGfMA0GCSq")).Should(BeTrue())
		})

		It("should reject a revoked key without version", func() {
			Expect(IsDKIMRecord("k=rsa; p=")).Should(BeFalse())
		})

		It("should reject unrelated TXT content", func() {
			Expect(IsDKIMRecord("some verification token")).Should(BeFalse())
		})
	})
})
