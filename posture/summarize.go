package posture

import (
	"github.com/dnsvantage/dnsvantage/model"
)

// Summarize folds a finished snapshot into the five posture judgments.
func Summarize(snapshot *model.Snapshot) model.Summary {
	return model.Summary{
		Delegation: delegationBadge(snapshot.Delegation),
		DNSSEC:     dnssecBadge(snapshot.Resolvers),
		MX:         mxBadge(snapshot.MXEntries),
		SPF:        spfBadge(snapshot.Authoritative),
		DMARC:      dmarcBadge(snapshot.EmailAuth.DMARCStatus),
	}
}

func delegationBadge(result model.DelegationResult) model.Badge {
	if result.Aligned {
		return model.BadgePass
	}

	return model.BadgeFail
}

// dnssecBadge is computed over the resolver rows only: all validating
// is a pass, a split verdict is a warning, none (or no rows at all) is
// a failure.
func dnssecBadge(rows []model.ResolverRow) model.Badge {
	validated := 0

	for _, row := range rows {
		if row.AuthenticatedData {
			validated++
		}
	}

	switch {
	case len(rows) > 0 && validated == len(rows):
		return model.BadgePass
	case validated > 0:
		return model.BadgeWarn
	default:
		return model.BadgeFail
	}
}

func mxBadge(entries []model.MXEntry) model.Badge {
	if len(entries) > 0 {
		return model.BadgePass
	}

	return model.BadgeFail
}

func spfBadge(rows []model.AuthoritativeRow) model.Badge {
	for _, row := range rows {
		if row.SPF == model.PresenceSet {
			return model.BadgePass
		}
	}

	return model.BadgeFail
}

func dmarcBadge(status model.EmailAuthStatus) model.Badge {
	switch status {
	case model.EmailAuthStatusFound:
		return model.BadgePass
	case model.EmailAuthStatusFoundNoPolicy:
		return model.BadgeWarn
	case model.EmailAuthStatusNotFound:
		return model.BadgeFail
	default:
		return model.BadgeFail
	}
}
