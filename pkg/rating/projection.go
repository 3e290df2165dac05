package rating

import (
	"sort"

	"github.com/islanddefense/w3g-platform/pkg/model"
)

// ProjectLobby computes each slot's potential rating gain and loss for
// a hypothetical match between the given builder and titan rosters,
// without mutating any stored stats. It runs the same win-probability
// model as Update in all four quadrants (each side winning or losing)
// and reports the signed mu delta for each: PotentialGain is the delta
// if the slot's side wins, PotentialLoss the delta if it loses.
func ProjectLobby(builders, titans []model.Player, stats map[string]*model.PlayerStats) model.Lobby {
	builderMean := teamMean(builders, stats, model.TeamBuilder)
	titanMean := teamMean(titans, stats, model.TeamTitan)
	pBuilder := winProbability(builderMean, titanMean)

	n := lcm(len(builders), len(titans))
	gainIfBuilderWins := expansionDelta(n, len(builders), true, pBuilder)
	lossIfBuilderLoses := expansionDelta(n, len(builders), false, pBuilder)
	gainIfTitanWins := expansionDelta(n, len(titans), true, 1-pBuilder)
	lossIfTitanLoses := expansionDelta(n, len(titans), false, 1-pBuilder)

	return model.Lobby{
		Builders: projectSide(builders, stats, model.TeamBuilder, builderMean, gainIfBuilderWins, lossIfBuilderLoses),
		Titans:   projectSide(titans, stats, model.TeamTitan, titanMean, gainIfTitanWins, lossIfTitanLoses),
	}
}

func projectSide(players []model.Player, stats map[string]*model.PlayerStats, side model.Team, aggregateMean, gain, loss float64) model.TeamProjection {
	slots := make([]model.SlotProjection, 0, len(players))
	for _, p := range players {
		s := statsFor(stats, p)
		mean := s.BuilderStats.Rating.Mu
		if side == model.TeamTitan {
			mean = s.TitanStats.Rating.Mu
		}
		slots = append(slots, model.SlotProjection{
			Player:        p,
			MeanRating:    mean,
			PotentialGain: gain,
			PotentialLoss: loss,
		})
	}
	return model.TeamProjection{Slots: slots, AggregateMean: aggregateMean}
}

// Leaderboard builds the top-N-per-side ranked view, descending by mu.
func Leaderboard(stats map[string]*model.PlayerStats, topN int) model.Leaderboard {
	var builders, titans []model.LeaderboardEntry
	for _, s := range stats {
		builders = append(builders, model.LeaderboardEntry{Player: s.Player, Rating: s.BuilderStats.Rating, Stats: s.BuilderStats})
		titans = append(titans, model.LeaderboardEntry{Player: s.Player, Rating: s.TitanStats.Rating, Stats: s.TitanStats})
	}
	sortByMuDesc(builders)
	sortByMuDesc(titans)
	if topN > 0 {
		if len(builders) > topN {
			builders = builders[:topN]
		}
		if len(titans) > topN {
			titans = titans[:topN]
		}
	}
	return model.Leaderboard{Builders: builders, Titans: titans}
}

func sortByMuDesc(entries []model.LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Rating.Mu > entries[j].Rating.Mu })
}
