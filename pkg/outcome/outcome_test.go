package outcome

import (
	"testing"

	"github.com/islanddefense/w3g-platform/pkg/model"
	"github.com/islanddefense/w3g-platform/pkg/w3g"
	"github.com/stretchr/testify/require"
)

func syncInt(file, group, key string, value int32) w3g.SyncStoredInteger {
	return w3g.SyncStoredInteger{File: file, Group: group, Key: key, Value: value}
}

func tickWith(playerID uint8, actions ...w3g.Action) w3g.Tick {
	return w3g.Tick{Commands: []w3g.Command{{PlayerID: playerID, Actions: actions}}}
}

func TestExtract_BuilderWin(t *testing.T) {
	replay := &w3g.Replay{
		Players: []w3g.PlayerRecord{{PlayerID: 1}, {PlayerID: 2}},
		Ticks: []w3g.Tick{
			tickWith(0, syncInt(gamecacheFile, groupGameStart, "_", 1)),
			tickWith(0, syncInt(gamecacheFile, groupClass, "0", 0)),
			tickWith(1, syncInt(gamecacheFile, groupClass, "1", classTitan)),
			tickWith(0, syncInt(gamecacheFile, groupFlag, "0", 1)),
		},
	}
	bySlot := map[uint8]model.Player{
		0: {Name: "Alice"},
		1: {Name: "Bob"},
	}

	result, err := Extract(replay, bySlot)
	require.NoError(t, err)
	require.Equal(t, model.TeamBuilder, result.Winner)
	require.Len(t, result.Builders, 1)
	require.Len(t, result.Titans, 1)
	require.Equal(t, "Alice", result.Builders[0].Name)
}

func TestExtract_FlagLossImpliesOpposingWin(t *testing.T) {
	replay := &w3g.Replay{
		Players: []w3g.PlayerRecord{{PlayerID: 1}, {PlayerID: 2}},
		Ticks: []w3g.Tick{
			tickWith(0, syncInt(gamecacheFile, groupGameStart, "_", 1)),
			tickWith(0, syncInt(gamecacheFile, groupClass, "0", 0)),
			tickWith(1, syncInt(gamecacheFile, groupClass, "1", classTitan)),
			// slot 0 (builder) reports itself a loser -> titans win.
			tickWith(0, syncInt(gamecacheFile, groupFlag, "0", 0)),
		},
	}
	bySlot := map[uint8]model.Player{0: {Name: "Alice"}, 1: {Name: "Bob"}}

	result, err := Extract(replay, bySlot)
	require.NoError(t, err)
	require.Equal(t, model.TeamTitan, result.Winner)
}

func TestExtract_LastFlagEventWins(t *testing.T) {
	replay := &w3g.Replay{
		Players: []w3g.PlayerRecord{{PlayerID: 1}, {PlayerID: 2}},
		Ticks: []w3g.Tick{
			tickWith(0, syncInt(gamecacheFile, groupGameStart, "_", 1)),
			tickWith(0, syncInt(gamecacheFile, groupClass, "0", 0)),
			tickWith(1, syncInt(gamecacheFile, groupClass, "1", classTitan)),
			tickWith(1, syncInt(gamecacheFile, groupFlag, "1", 1)), // titans win first...
			tickWith(0, syncInt(gamecacheFile, groupFlag, "0", 1)), // ...then builders report a later win.
		},
	}
	bySlot := map[uint8]model.Player{0: {Name: "Alice"}, 1: {Name: "Bob"}}

	result, err := Extract(replay, bySlot)
	require.NoError(t, err)
	require.Equal(t, model.TeamBuilder, result.Winner)
}

func TestExtract_ObserverFlagIgnored(t *testing.T) {
	replay := &w3g.Replay{
		Players: []w3g.PlayerRecord{{PlayerID: 1}, {PlayerID: 2}, {PlayerID: 3}},
		Ticks: []w3g.Tick{
			tickWith(0, syncInt(gamecacheFile, groupGameStart, "_", 1)),
			tickWith(0, syncInt(gamecacheFile, groupClass, "0", 0)),
			tickWith(1, syncInt(gamecacheFile, groupClass, "1", classTitan)),
			tickWith(2, syncInt(gamecacheFile, groupClass, "2", classObserver)),
			tickWith(0, syncInt(gamecacheFile, groupFlag, "0", 1)),
			// a later flag from the observer slot must not override the result.
			tickWith(2, syncInt(gamecacheFile, groupFlag, "2", 0)),
		},
	}
	bySlot := map[uint8]model.Player{0: {Name: "Alice"}, 1: {Name: "Bob"}, 2: {Name: "Carol"}}

	result, err := Extract(replay, bySlot)
	require.NoError(t, err)
	require.Equal(t, model.TeamBuilder, result.Winner)
	require.Len(t, result.Builders, 2) // Alice + the observer, enumerated as a builder.
	require.Len(t, result.Titans, 1)
}

func TestExtract_LongTitanStalemateOverride(t *testing.T) {
	replay := &w3g.Replay{
		Header:  w3g.ReplayHeader{DurationMs: longTitanStalemateThresholdMs + 1},
		Players: []w3g.PlayerRecord{{PlayerID: 1}, {PlayerID: 2}},
		Ticks: []w3g.Tick{
			tickWith(0, syncInt(gamecacheFile, groupGameStart, "_", 1)),
			tickWith(0, syncInt(gamecacheFile, groupClass, "0", 0)),
			tickWith(1, syncInt(gamecacheFile, groupClass, "1", classTitan)),
			tickWith(1, syncInt(gamecacheFile, groupFlag, "1", 1)),
		},
	}
	bySlot := map[uint8]model.Player{0: {Name: "Alice"}, 1: {Name: "Bob"}}

	result, err := Extract(replay, bySlot)
	require.NoError(t, err)
	require.Equal(t, model.TeamTie, result.Winner)
}

func TestExtract_NoWinnerReported(t *testing.T) {
	replay := &w3g.Replay{
		Players: []w3g.PlayerRecord{{PlayerID: 1}},
		Ticks: []w3g.Tick{
			tickWith(0, syncInt(gamecacheFile, groupGameStart, "_", 1)),
			tickWith(0, syncInt(gamecacheFile, groupClass, "0", 0)),
		},
	}
	_, err := Extract(replay, map[uint8]model.Player{0: {Name: "Alice"}})
	require.Error(t, err)
}

func TestExtract_NeverStarted(t *testing.T) {
	replay := &w3g.Replay{}
	_, err := Extract(replay, map[uint8]model.Player{})
	require.Error(t, err)
}

func TestSlotMap_SortsByOnWireIDAndZipsWithRoster(t *testing.T) {
	replay := &w3g.Replay{
		Players: []w3g.PlayerRecord{{PlayerID: 3}, {PlayerID: 1}, {PlayerID: 2}},
	}
	roster := []model.Player{{Name: "First"}, {Name: "Second"}, {Name: "Third"}}

	bySlot, err := SlotMap(replay, roster)
	require.NoError(t, err)
	require.Equal(t, "First", bySlot[0].Name)
	require.Equal(t, "Second", bySlot[1].Name)
	require.Equal(t, "Third", bySlot[2].Name)
}

func TestSlotMap_RosterSizeMismatchErrors(t *testing.T) {
	replay := &w3g.Replay{Players: []w3g.PlayerRecord{{PlayerID: 1}}}
	_, err := SlotMap(replay, []model.Player{{Name: "A"}, {Name: "B"}})
	require.Error(t, err)
}
