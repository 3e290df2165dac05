// Package model holds the pure value types shared across the replay
// pipeline: players, ratings, persisted stats and match results. None of
// these own back-pointers or mutable shared state; stats records are
// mutated in place by the rating package's update functions.
package model

import "strings"

// Player identifies a participant by (name, realm). Equality on Name is
// case-insensitive; equality on Realm is exact.
type Player struct {
	Name  string `json:"name" bson:"name" msgpack:"name"`
	Realm string `json:"realm" bson:"realm" msgpack:"realm"`
}

// NormalizedKey returns the case-folded (name, realm) pair used as the
// primary key for stats lookups and upserts.
func (p Player) NormalizedKey() (string, string) {
	return strings.ToLower(p.Name), p.Realm
}

// Equal reports whether two players refer to the same identity.
func (p Player) Equal(other Player) bool {
	an, ar := p.NormalizedKey()
	bn, br := other.NormalizedKey()
	return an == bn && ar == br
}
