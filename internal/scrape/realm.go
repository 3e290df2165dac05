package scrape

import "strings"

// realmAliases maps the legacy client-facing realm names the replay
// index and lobby pages report to the canonical Battle.net hostnames
// used everywhere stats are stored (spec.md §4.4/§4.6). entconnect is
// already canonical and maps to itself; any realm not in this table
// passes through unchanged, with the caller expected to log a warning
// (see NormalizeRealm).
var realmAliases = map[string]string{
	"USEast":     "useast.battle.net",
	"USWest":     "uswest.battle.net",
	"Europe":     "europe.battle.net",
	"Asia":       "asia.battle.net",
	"entconnect": "entconnect",
}

// NormalizeRealm resolves a scraped realm string to its canonical
// form. ok is false when the realm wasn't in the alias table, in which
// case realm is returned unchanged and the caller should log a warning
// per the open question in spec.md §9 about unnormalized realms
// producing duplicate stats rows.
func NormalizeRealm(realm string) (string, bool) {
	trimmed := strings.TrimSpace(realm)
	canonical, ok := realmAliases[trimmed]
	if !ok {
		return trimmed, false
	}
	return canonical, true
}
