// Package rating implements the two-role Bradley-Terry rating update
// and lobby projection math for Island Defense: a per-player Builder
// rating and a per-player Titan rating, updated independently after
// every validated match.
package rating

import (
	"math"

	"github.com/islanddefense/w3g-platform/pkg/model"
)

// sqrt2Beta2 is sqrt(2*beta^2), the scale term shared by every pairwise
// win-probability calculation.
var sqrt2Beta2 = math.Sqrt(2 * model.Beta * model.Beta)

// winProbability returns the probability that a side with mean rating
// a beats a side with mean rating b, under the logistic Bradley-Terry
// model with performance variance beta.
func winProbability(a, b float64) float64 {
	return 1 / (1 + math.Exp(-(a-b)/sqrt2Beta2))
}

// Update applies one match's result to the builder- and titan-side
// stats of every participating player, mutating the maps in place. The
// two uneven-sized teams are expanded to a common size (the LCM of the
// two team sizes) by repeating each side's members, so every player's
// rating moves by a share proportional to their fraction of their
// team, before being truncated back down to per-player deltas.
func Update(builders, titans []model.Player, winner model.Team, stats map[string]*model.PlayerStats) {
	if winner == model.TeamTie {
		applyTie(builders, titans, stats)
		return
	}

	n := lcm(len(builders), len(titans))
	builderMean := teamMean(builders, stats, model.TeamBuilder)
	titanMean := teamMean(titans, stats, model.TeamTitan)

	pBuilder := winProbability(builderMean, titanMean)
	builderWon := winner == model.TeamBuilder

	builderDelta := expansionDelta(n, len(builders), builderWon, pBuilder)
	titanDelta := expansionDelta(n, len(titans), !builderWon, 1-pBuilder)

	for _, p := range builders {
		s := statsFor(stats, p)
		applyResult(&s.BuilderStats, builderDelta, builderWon)
	}
	for _, p := range titans {
		s := statsFor(stats, p)
		applyResult(&s.TitanStats, titanDelta, !builderWon)
	}
}

func applyTie(builders, titans []model.Player, stats map[string]*model.PlayerStats) {
	for _, p := range builders {
		s := statsFor(stats, p)
		s.BuilderStats.Ties++
	}
	for _, p := range titans {
		s := statsFor(stats, p)
		s.TitanStats.Ties++
	}
}

func applyResult(side *model.SideStats, delta float64, won bool) {
	side.Rating.Mu += delta
	side.Rating.Sigma = math.Max(side.Rating.Sigma*0.99, model.Beta/2)
	if won {
		side.Wins++
	} else {
		side.Losses++
	}
}

// expansionDelta computes the per-player mu delta for a side of size
// teamSize once its matchup has been expanded to n "virtual" slots:
// the k-factor scales down as 1/teamSize so a win split across a
// larger roster moves each member proportionally less.
func expansionDelta(n, teamSize int, won bool, winProb float64) float64 {
	const kFactor = 48.0
	outcome := 0.0
	if won {
		outcome = 1.0
	}
	scale := float64(n) / float64(teamSize*n)
	return kFactor * scale * (outcome - winProb)
}

func teamMean(players []model.Player, stats map[string]*model.PlayerStats, side model.Team) float64 {
	if len(players) == 0 {
		return model.DefaultMu
	}
	sum := 0.0
	for _, p := range players {
		s := statsFor(stats, p)
		if side == model.TeamBuilder {
			sum += s.BuilderStats.Rating.Mu
		} else {
			sum += s.TitanStats.Rating.Mu
		}
	}
	return sum / float64(len(players))
}

func statsFor(stats map[string]*model.PlayerStats, p model.Player) *model.PlayerStats {
	name, realm := p.NormalizedKey()
	key := name + "@" + realm
	s, ok := stats[key]
	if !ok {
		ns := model.NewPlayerStats(p)
		s = &ns
		stats[key] = s
	}
	return s
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}
