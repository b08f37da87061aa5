// Package compliance provides a list-backed implementation of the
// ComplianceLists port for hosts without an external sanctions/PEP provider.
// Production deployments substitute a real list service.
package compliance

import "context"

// StaticLists screens against fixed in-memory sets. Lookups never fail, which
// also makes it the test double of choice.
type StaticLists struct {
	sanctioned map[string]struct{}
	peps       map[string]struct{}
}

// NewStaticLists builds the screener from a sanctioned-country set (ISO
// 3166-1 alpha-2 codes) and a PEP user-id set.
func NewStaticLists(sanctionedCountries, pepUserIDs []string) *StaticLists {
	lists := &StaticLists{
		sanctioned: make(map[string]struct{}, len(sanctionedCountries)),
		peps:       make(map[string]struct{}, len(pepUserIDs)),
	}
	for _, code := range sanctionedCountries {
		lists.sanctioned[code] = struct{}{}
	}
	for _, id := range pepUserIDs {
		lists.peps[id] = struct{}{}
	}
	return lists
}

func (l *StaticLists) IsSanctionedCountry(ctx context.Context, countryCode string) (bool, error) {
	_, ok := l.sanctioned[countryCode]
	return ok, nil
}

func (l *StaticLists) IsPEP(ctx context.Context, userID string) (bool, error) {
	_, ok := l.peps[userID]
	return ok, nil
}
