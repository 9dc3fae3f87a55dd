package posture

import (
	"strings"
)

// Version markers of the three email-authentication record kinds.
const (
	spfVersion   = "v=spf1"
	dmarcVersion = "dmarc1"
	dkimVersion  = "dkim1"
)

// IsSPFRecord reports whether an apex TXT value is an SPF record: its
// first term must be the SPF version, case-insensitively (RFC 7208).
func IsSPFRecord(txt string) bool {
	fields := strings.Fields(strings.ToLower(txt))

	return len(fields) > 0 && fields[0] == spfVersion
}

// IsDMARCRecord reports whether a TXT value under _dmarc is a DMARC
// record: the v tag must be first and carry DMARC1 (RFC 7489).
func IsDMARCRecord(txt string) bool {
	tags := parseTags(txt)
	if len(tags) == 0 {
		return false
	}

	return tags[0].name == "v" && strings.ToLower(tags[0].value) == dmarcVersion
}

// DMARCPolicy returns the value of the discrete p tag of a DMARC record.
// Parsing tag by tag keeps sp= and p-substrings inside other tag values
// from counting as a policy.
func DMARCPolicy(txt string) (policy string, ok bool) {
	for _, tag := range parseTags(txt) {
		if tag.name == "p" {
			return strings.ToLower(tag.value), tag.value != ""
		}
	}

	return "", false
}

// IsDKIMRecord reports whether a TXT value under <selector>._domainkey
// looks like a DKIM key record: either a v=DKIM1 tag or a p= public key
// tag (RFC 6376 makes the version tag optional).
func IsDKIMRecord(txt string) bool {
	for _, tag := range parseTags(txt) {
		switch tag.name {
		case "v":
			if strings.ToLower(tag.value) == dkimVersion {
				return true
			}
		case "p":
			if tag.value != "" {
				return true
			}
		}
	}

	return false
}

type recordTag struct {
	name  string
	value string
}

// parseTags splits a record into its discrete tag=value pairs. Malformed
// segments are skipped, a single bad tag never discards the record.
func parseTags(record string) []recordTag {
	segments := strings.Split(record, ";")
	tags := make([]recordTag, 0, len(segments))

	for _, segment := range segments {
		name, value, found := strings.Cut(segment, "=")
		if !found {
			continue
		}

		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		tags = append(tags, recordTag{
			name:  name,
			value: strings.TrimSpace(value),
		})
	}

	return tags
}
