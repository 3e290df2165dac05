package rating

import (
	"testing"

	"github.com/islanddefense/w3g-platform/pkg/model"
	"github.com/stretchr/testify/require"
)

func TestUpdate_WinnerGainsLoserLoses(t *testing.T) {
	builders := []model.Player{{Name: "Alice", Realm: "USEast"}}
	titans := []model.Player{{Name: "Bob", Realm: "USEast"}}
	stats := map[string]*model.PlayerStats{}

	Update(builders, titans, model.TeamBuilder, stats)

	alice := statsFor(stats, builders[0])
	bob := statsFor(stats, titans[0])

	require.Greater(t, alice.BuilderStats.Rating.Mu, model.DefaultMu)
	require.Less(t, bob.TitanStats.Rating.Mu, model.DefaultMu)
	require.Equal(t, 1, alice.BuilderStats.Wins)
	require.Equal(t, 1, bob.TitanStats.Losses)
}

func TestUpdate_TieIncrementsTiesOnly(t *testing.T) {
	builders := []model.Player{{Name: "Alice", Realm: "USEast"}}
	titans := []model.Player{{Name: "Bob", Realm: "USEast"}}
	stats := map[string]*model.PlayerStats{}

	Update(builders, titans, model.TeamTie, stats)

	alice := statsFor(stats, builders[0])
	require.Equal(t, 1, alice.BuilderStats.Ties)
	require.Equal(t, model.DefaultMu, alice.BuilderStats.Rating.Mu)
}

func TestUpdate_UnevenTeamsSplitDeltaBySize(t *testing.T) {
	builders := []model.Player{{Name: "A"}, {Name: "B"}}
	titans := []model.Player{{Name: "C"}}
	stats := map[string]*model.PlayerStats{}

	Update(builders, titans, model.TeamBuilder, stats)

	a := statsFor(stats, builders[0])
	c := statsFor(stats, titans[0])
	require.Greater(t, a.BuilderStats.Rating.Mu, model.DefaultMu)
	require.Less(t, c.TitanStats.Rating.Mu, model.DefaultMu)
	// Two builders share the win, the lone titan takes the whole loss.
	require.InDelta(t, 2*(a.BuilderStats.Rating.Mu-model.DefaultMu), model.DefaultMu-c.TitanStats.Rating.Mu, 1e-9)
}

func TestProjectLobby_GainAndLossOppositeSign(t *testing.T) {
	builders := []model.Player{{Name: "Alice"}}
	titans := []model.Player{{Name: "Bob"}}
	stats := map[string]*model.PlayerStats{}

	lobby := ProjectLobby(builders, titans, stats)

	require.Len(t, lobby.Builders.Slots, 1)
	require.Greater(t, lobby.Builders.Slots[0].PotentialGain, 0.0)
	require.Less(t, lobby.Builders.Slots[0].PotentialLoss, 0.0)
}

func TestLeaderboard_SortedDescendingByMu(t *testing.T) {
	stats := map[string]*model.PlayerStats{
		"a": {Player: model.Player{Name: "A"}, BuilderStats: model.SideStats{Rating: model.Rating{Mu: 1400}}, TitanStats: model.NewSideStats()},
		"b": {Player: model.Player{Name: "B"}, BuilderStats: model.SideStats{Rating: model.Rating{Mu: 1600}}, TitanStats: model.NewSideStats()},
	}

	lb := Leaderboard(stats, 10)
	require.Len(t, lb.Builders, 2)
	require.Equal(t, "B", lb.Builders[0].Player.Name)
}

func TestLCM(t *testing.T) {
	require.Equal(t, 6, lcm(2, 3))
	require.Equal(t, 4, lcm(4, 4))
}
