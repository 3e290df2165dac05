package w3g

import "time"

// FileHeader is the outer, uncompressed envelope: everything needed to
// locate and decompress the payload blocks.
type FileHeader struct {
	DataOffset          uint32 `json:"data_offset"`
	CompressedSize      uint32 `json:"compressed_size"`
	HeaderVersion       uint32 `json:"header_version"`
	DecompressedSize    uint32 `json:"decompressed_size"`
	NumCompressedBlocks uint32 `json:"num_compressed_blocks"`
}

// ReplayHeader is the 20-byte version/build/duration record that follows
// the file header in the decompressed stream.
type ReplayHeader struct {
	VersionString string `json:"version_string"`
	VersionNumber uint32 `json:"version_number"`
	BuildNumber   uint16 `json:"build_number"`
	Flags         uint16 `json:"flags"`
	DurationMs    uint32 `json:"duration_ms"`
	CRC32         uint32 `json:"crc32"`
}

// Duration returns the replay length as a time.Duration.
func (h ReplayHeader) Duration() time.Duration {
	return time.Duration(h.DurationMs) * time.Millisecond
}

// IsMultiplayer reports whether the multiplayer flag bit is set.
func (h ReplayHeader) IsMultiplayer() bool { return h.Flags&0x8000 != 0 }

// PlayerRecord is one player/host identity entry from the game header.
type PlayerRecord struct {
	RecordTag uint8  `json:"-"`
	PlayerID  uint8  `json:"player_id"`
	Name      string `json:"name"`
	IsHost    bool   `json:"is_host"`
}

// SlotRecord is one lobby slot from the GameRecord's slot table.
type SlotRecord struct {
	PlayerID        uint8      `json:"player_id"`
	DownloadPercent uint8      `json:"download_percent"`
	SlotStatus      SlotStatus `json:"slot_status"`
	IsComputer      bool       `json:"is_computer"`
	Team            uint8      `json:"team"`
	Color           uint8      `json:"color"`
	Race            Race       `json:"race"`
	Handicap        uint8      `json:"handicap"`
}

// SlotStatus is a slot's lobby occupancy state.
type SlotStatus uint8

const (
	SlotEmpty SlotStatus = iota
	SlotClosed
	SlotUsed
)

func slotStatusFromValue(v uint8, offset int) (SlotStatus, error) {
	if v > uint8(SlotUsed) {
		return 0, newInvalidEnumError(offset, "slot_status", v)
	}
	return SlotStatus(v), nil
}

// Race is a slot's configured race.
type Race uint8

const (
	RaceHuman Race = 1 << iota
	RaceOrc
	RaceNightElf
	RaceUndead
	_
	RaceRandom
	RaceSelectable
)

func (r Race) String() string {
	switch r {
	case RaceHuman:
		return "Human"
	case RaceOrc:
		return "Orc"
	case RaceNightElf:
		return "NightElf"
	case RaceUndead:
		return "Undead"
	case RaceRandom:
		return "Random"
	case RaceSelectable:
		return "Selectable"
	default:
		return "Unknown"
	}
}

// RaceFromFlags converts the one-hot race-flags byte stored in a slot or
// player ladder record into a Race value.
func RaceFromFlags(flags uint8) Race {
	return Race(flags)
}

// GameSettings is the decoded lobby configuration embedded in the
// host's encoded settings string.
type GameSettings struct {
	Speed             GameSpeed `json:"speed"`
	Visibility        uint8     `json:"visibility"`
	Observers         uint8     `json:"observers"`
	TeamsTogether     bool      `json:"teams_together"`
	LockTeams         bool      `json:"lock_teams"`
	FullSharedControl bool      `json:"full_shared_control"`
	RandomHero        bool      `json:"random_hero"`
	RandomRaces       bool      `json:"random_races"`
	Referees          bool      `json:"referees"`
	MapChecksum       uint32    `json:"map_checksum"`
}

// GameRecord is the lobby snapshot taken at game start: the slot table
// plus the random seed and selection mode used to seed it.
type GameRecord struct {
	Slots      []SlotRecord       `json:"slots"`
	RandomSeed uint32             `json:"random_seed"`
	Selection  SelectionOperation `json:"selection_mode"`
}

// ChatMessage is a single PlayerChat block.
type ChatMessage struct {
	TimestampMs uint32 `json:"timestamp_ms"`
	PlayerID    uint8  `json:"player_id"`
	Mode        uint32 `json:"mode"`
	Text        string `json:"text"`
}

// Command is one player's batch of actions within a single Tick block.
type Command struct {
	PlayerID uint8    `json:"player_id"`
	NumBytes int      `json:"num_bytes"`
	Actions  []Action `json:"actions"`
}

// Tick is a single time-slot block: the elapsed-time increment plus the
// per-player commands issued during it.
type Tick struct {
	TimestampMs   uint32    `json:"timestamp_ms"`
	TimeIncrement uint16    `json:"time_increment"`
	Commands      []Command `json:"commands"`
}

// LeaveGame records a player's departure.
type LeaveGame struct {
	TimestampMs uint32      `json:"timestamp_ms"`
	PlayerID    uint8       `json:"player_id"`
	Reason      uint32      `json:"reason"`
	Result      LeaveResult `json:"result"`
}

// LeaveResult is the outcome a leaving player's client reported for
// itself. Per spec.md this is advisory only — the outcome extractor
// does not read it.
type LeaveResult uint8

const (
	LeaveResultLeft         LeaveResult = 0x01
	LeaveResultLost         LeaveResult = 0x08
	LeaveResultWon          LeaveResult = 0x09
	LeaveResultDraw         LeaveResult = 0x0A
	LeaveResultObserverLeft LeaveResult = 0x0B
)

func (r LeaveResult) String() string {
	switch r {
	case LeaveResultLeft:
		return "Left"
	case LeaveResultLost:
		return "Lost"
	case LeaveResultWon:
		return "Won"
	case LeaveResultDraw:
		return "Draw"
	case LeaveResultObserverLeft:
		return "ObserverLeft"
	default:
		return "Unknown"
	}
}

// Desync records a tick-level simulation hash mismatch report.
type Desync struct {
	TimestampMs uint32   `json:"timestamp_ms"`
	PlayerIDs   []uint8  `json:"player_ids"`
	Checksum    uint32   `json:"checksum"`
}

// Replay is the fully decoded tree for one .w3g file: everything the
// outcome extractor and debug tooling need, nothing the physical layout
// doesn't actually carry.
type Replay struct {
	File         FileHeader     `json:"file"`
	Header       ReplayHeader   `json:"header"`
	GameName     string         `json:"game_name"`
	HostName     string         `json:"host_name"`
	MapPath      string         `json:"map_path"`
	Settings     GameSettings   `json:"settings"`
	Players      []PlayerRecord `json:"players"`
	Game         GameRecord     `json:"game"`
	Ticks        []Tick         `json:"ticks"`
	ChatMessages []ChatMessage  `json:"chat_messages"`
	Leaves       []LeaveGame    `json:"leaves"`
	Desyncs      []Desync       `json:"desyncs"`
}

// PlayerName resolves a slot's display name, returning the empty string
// for computer-controlled slots that never sent a player record.
func (r *Replay) PlayerName(playerID uint8) string {
	for _, p := range r.Players {
		if p.PlayerID == playerID {
			return p.Name
		}
	}
	return ""
}
