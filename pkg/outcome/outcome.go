// Package outcome extracts the final Builder/Titan/Tie result from a
// decoded Island Defense replay by tracking the gamecache writes the
// map script uses to report match state.
package outcome

import (
	"sort"

	"github.com/islanddefense/w3g-platform/pkg/errs"
	"github.com/islanddefense/w3g-platform/pkg/model"
	"github.com/islanddefense/w3g-platform/pkg/w3g"
)

const gamecacheFile = "ID.D"

const (
	groupClass     = "class"
	groupGameStart = "game_start"
	groupFlag      = "flag"
)

// class values written to ("ID.D","class",<slot>). 4 (observer) is
// enumerated as a builder for team composition but excluded from
// flag-driven winner determination.
const (
	classTitan    int32 = 2
	classObserver int32 = 4
)

type role uint8

const (
	roleBuilder role = iota
	roleTitan
)

const longTitanStalemateThresholdMs = 60 * 60 * 1000

// SlotMap zips the replay's on-wire player records (1-based ids) with
// the externally supplied roster (in display order) to produce the
// slot → Player lookup the state machine keys its events on. The
// 0-based ids are sorted ascending and zipped with the roster in the
// order it was given.
func SlotMap(replay *w3g.Replay, roster []model.Player) (map[uint8]model.Player, error) {
	if len(replay.Players) != len(roster) {
		return nil, errs.Extract(nil, "roster size %d does not match replay player count %d", len(roster), len(replay.Players))
	}

	ids := make([]uint8, len(replay.Players))
	for i, p := range replay.Players {
		id := p.PlayerID
		if id > 0 {
			id--
		}
		ids[i] = id
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make(map[uint8]model.Player, len(ids))
	for i, id := range ids {
		out[id] = roster[i]
	}
	return out, nil
}

// Extract derives the game result from a decoded replay and the
// slot → Player map (see SlotMap). It is a pure function of its
// arguments.
func Extract(replay *w3g.Replay, bySlot map[uint8]model.Player) (model.GameResult, error) {
	classBySlot := make(map[uint8]role)
	observers := make(map[uint8]bool)
	gameStarted := false

	var winnerRole *role

	for _, tick := range replay.Ticks {
		for _, cmd := range tick.Commands {
			for _, act := range cmd.Actions {
				sync, ok := act.(w3g.SyncStoredInteger)
				if !ok || sync.File != gamecacheFile {
					continue
				}
				switch sync.Group {
				case groupClass:
					slot := slotFromKey(sync.Key)
					if sync.Value == classTitan {
						classBySlot[slot] = roleTitan
					} else {
						classBySlot[slot] = roleBuilder
						if sync.Value == classObserver {
							observers[slot] = true
						}
					}
				case groupGameStart:
					gameStarted = true
				case groupFlag:
					if !gameStarted {
						continue
					}
					slot := slotFromKey(sync.Key)
					if observers[slot] {
						continue
					}
					r, known := classBySlot[slot]
					if !known {
						continue
					}
					won := r
					if sync.Value == 0 {
						won = opposite(r)
					}
					winnerRole = &won
				}
			}
		}
	}

	if !gameStarted {
		return model.GameResult{}, errs.Extract(nil, "replay never reached game start")
	}
	if winnerRole == nil {
		return model.GameResult{}, errs.Extract(nil, "no winner reported via gamecache")
	}

	var builders, titans []model.Player
	for slot, r := range classBySlot {
		p, ok := bySlot[slot]
		if !ok {
			continue
		}
		if r == roleBuilder {
			builders = append(builders, p)
		} else {
			titans = append(titans, p)
		}
	}

	winner := model.TeamBuilder
	if *winnerRole == roleTitan {
		winner = model.TeamTitan
	}

	result := model.GameResult{Builders: builders, Titans: titans, Winner: winner}
	if !result.Valid() {
		return model.GameResult{}, errs.Extract(nil, "extracted result has an empty team")
	}

	if result.Winner == model.TeamTitan && replay.Header.DurationMs > longTitanStalemateThresholdMs {
		result.Winner = model.TeamTie
	}

	return result, nil
}

func opposite(r role) role {
	if r == roleBuilder {
		return roleTitan
	}
	return roleBuilder
}

// slotFromKey parses a gamecache key ("0".."9") into a slot index.
// Keys that don't parse as a small decimal map to slot 0xFF, a sentinel
// that never matches a real slot, so the event is silently ignored
// rather than panicking on a malformed replay.
func slotFromKey(key string) uint8 {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0xFF
	}
	return key[0] - '0'
}
