package model

// SlotProjection is one lobby slot's current rating plus the "what-if"
// deltas the player would see for each possible outcome of the
// hypothetical match currently forming in the lobby.
type SlotProjection struct {
	Player        Player  `json:"player" bson:"player" msgpack:"player"`
	MeanRating    float64 `json:"mean_rating" bson:"mean_rating" msgpack:"mean_rating"`
	PotentialGain float64 `json:"potential_gain" bson:"potential_gain" msgpack:"potential_gain"`
	PotentialLoss float64 `json:"potential_loss" bson:"potential_loss" msgpack:"potential_loss"`
}

// TeamProjection is a team's slot-level projections plus the team
// aggregate rating (arithmetic mean of slot mean ratings).
type TeamProjection struct {
	Slots         []SlotProjection `json:"slots" bson:"slots" msgpack:"slots"`
	AggregateMean float64          `json:"aggregate_mean" bson:"aggregate_mean" msgpack:"aggregate_mean"`
}

// Lobby is the current-match read projection served at
// GET /v1/lobby/island-defense.
type Lobby struct {
	Builders TeamProjection `json:"builders" bson:"builders" msgpack:"builders"`
	Titans   TeamProjection `json:"titans" bson:"titans" msgpack:"titans"`
}

// LeaderboardEntry is one ranked row, descending by Rating.Mu.
type LeaderboardEntry struct {
	Player Player    `json:"player" bson:"player" msgpack:"player"`
	Rating Rating    `json:"rating" bson:"rating" msgpack:"rating"`
	Stats  SideStats `json:"stats" bson:"stats" msgpack:"stats"`
}

// Leaderboard is the top-N-per-side read projection served at
// GET /v1/leaderBoard/island-defense.
type Leaderboard struct {
	Builders []LeaderboardEntry `json:"builders" bson:"builders" msgpack:"builders"`
	Titans   []LeaderboardEntry `json:"titans" bson:"titans" msgpack:"titans"`
}
