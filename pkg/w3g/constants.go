// Package w3g decodes Warcraft III "Island Defense" replay (.w3g) files
// into a structured tree of header, player, slot and replay-block
// records per spec.md §4.1. The physical layout is third-party and
// immutable; this package targets structural fidelity to that layout,
// not playback.
package w3g

// MagicString is the 28-byte magic header identifying a .w3g file.
var MagicString = []byte("Warcraft III recorded game\x1a\x00")

// Fixed header sizes (spec.md §4.1).
const (
	FileHeaderSize   = 48 // magic(28) + file offset/compressed size/header version/decompressed size/block count (5 dwords)
	ReplayHeaderSize = 20 // version string(4) + version number(4) + build number(2) + flags(2) + duration(4) + crc32(4)
	BlockHeaderSize  = 8  // compressed size (word) + decompressed size (word) + crc32 (dword)
)

// Player record framing tags (spec.md §4.1 step 1).
const (
	RecordHost       uint8 = 0x00
	RecordAdditional uint8 = 0x16
	recordGameStart  uint8 = 0x19
)

// Replay block tags (spec.md §4.1 step 3).
const (
	BlockLeaveGame        uint8 = 0x17
	BlockFirstStartRecord uint8 = 0x1A
	BlockSecondStart      uint8 = 0x1B
	BlockThirdStart       uint8 = 0x1C
	BlockTimeSlotOld      uint8 = 0x1E // TickPreOverflow
	BlockTimeSlot         uint8 = 0x1F // Tick
	BlockChat             uint8 = 0x20 // PlayerChat
	BlockDesync           uint8 = 0x22 // tick-level hash mismatch report
	BlockForcedGameEnd    uint8 = 0x2F
	BlockEnd              uint8 = 0x00
)

// Action tags (spec.md §3/§4.1: a ~70-variant closed union spanning
// orders, selection, trigger-sync, alliance/resource transfer, map
// signal, dialog, arrow keys and the fixed cheat-code list).
const (
	ActionPauseGame         uint8 = 0x01
	ActionResumeGame        uint8 = 0x02
	ActionSetGameSpeed      uint8 = 0x03
	ActionIncreaseGameSpeed uint8 = 0x04
	ActionDecreaseGameSpeed uint8 = 0x05
	ActionSaveGame          uint8 = 0x06
	ActionSaveGameFinished  uint8 = 0x07

	ActionOrderSelf        uint8 = 0x10
	ActionOrderPoint       uint8 = 0x11
	ActionOrderPointObject uint8 = 0x12
	ActionOrderDropItem    uint8 = 0x13
	ActionOrderFog         uint8 = 0x14

	ActionChangeSelection   uint8 = 0x16
	ActionAssignGroupHotkey uint8 = 0x17
	ActionSelectGroupHotkey uint8 = 0x18
	ActionSelectSubgroup    uint8 = 0x19
	ActionPreSubselection   uint8 = 0x1A
	ActionSyncSelection     uint8 = 0x1B
	ActionSelectGroundItem  uint8 = 0x1C
	ActionCancelHeroRevival uint8 = 0x1D
	ActionRemoveFromQueue   uint8 = 0x1E

	ActionCheatPowerOverwhelming uint8 = 0x20
	ActionCheatWhosYourDaddy     uint8 = 0x21
	ActionCheatKeyserSoze        uint8 = 0x22
	ActionCheatGreedIsGood       uint8 = 0x23
	ActionCheatPointBreak        uint8 = 0x24
	ActionCheatWarpTen           uint8 = 0x25
	ActionCheatIocainePowder     uint8 = 0x26
	ActionCheatLeafMeAlone       uint8 = 0x27
	ActionCheatThereIsNoSpoon    uint8 = 0x28
	ActionCheatStrengthAndHonor  uint8 = 0x29
	ActionCheatItVexesMe         uint8 = 0x2A
	ActionCheatWhoIsJohnGalt     uint8 = 0x2B
	ActionCheatDayLightSavings   uint8 = 0x2C
	ActionCheatISeeDeadPeople    uint8 = 0x2D
	ActionCheatSynergy           uint8 = 0x2E
	ActionCheatSharpAndShiny     uint8 = 0x2F
	ActionCheatAllYourBase       uint8 = 0x30
	ActionCheatRiseAndShine      uint8 = 0x31

	ActionChangeAllyOptions uint8 = 0x50
	ActionTransferResources uint8 = 0x51

	ActionMapTriggerChat                uint8 = 0x60
	ActionEscPressed                    uint8 = 0x61
	ActionTriggerSleepOrSyncFinished    uint8 = 0x62
	ActionTriggerSyncReady              uint8 = 0x63
	ActionTriggerMouseClickedTrackable  uint8 = 0x64
	ActionTriggerMouseTouchedTrackable  uint8 = 0x65
	ActionHeroSkillSubmenu              uint8 = 0x66
	ActionBuildingSubmenu               uint8 = 0x67
	ActionMinimapSignal                 uint8 = 0x68
	ActionDialogButtonClicked           uint8 = 0x69
	ActionDialogAnyButtonClicked        uint8 = 0x6A

	ActionSyncStoredInteger uint8 = 0x6B
	ActionSyncStoredReal    uint8 = 0x6C
	ActionSyncStoredBoolean uint8 = 0x6D
	ActionSyncStoredUnit    uint8 = 0x6E
	ActionSyncStoredString  uint8 = 0x6F

	ActionSyncEmptyInteger uint8 = 0x70
	ActionSyncEmptyString  uint8 = 0x71
	ActionSyncEmptyBoolean uint8 = 0x72
	ActionSyncEmptyUnit    uint8 = 0x73
	ActionSyncEmptyReal    uint8 = 0x74

	ActionArrowKeyEvent uint8 = 0x75
)

// cheatNames maps each cheat-code tag to its documented name. Cheats
// carry no gameplay-relevant payload beyond what's decoded per-variant
// in actions.go; the name is kept for logging and debug dumps.
var cheatNames = map[uint8]string{
	ActionCheatPowerOverwhelming: "PowerOverwhelming",
	ActionCheatWhosYourDaddy:     "WhosYourDaddy",
	ActionCheatKeyserSoze:        "KeyserSoze",
	ActionCheatGreedIsGood:       "GreedIsGood",
	ActionCheatPointBreak:        "PointBreak",
	ActionCheatWarpTen:           "WarpTen",
	ActionCheatIocainePowder:     "IocainePowder",
	ActionCheatLeafMeAlone:       "LeafMeAlone",
	ActionCheatThereIsNoSpoon:    "ThereIsNoSpoon",
	ActionCheatStrengthAndHonor:  "StrengthAndHonor",
	ActionCheatItVexesMe:         "ItVexesMe",
	ActionCheatWhoIsJohnGalt:     "WhoIsJohnGalt",
	ActionCheatDayLightSavings:   "DayLightSavings",
	ActionCheatISeeDeadPeople:    "ISeeDeadPeople",
	ActionCheatSynergy:           "Synergy",
	ActionCheatSharpAndShiny:     "SharpAndShiny",
	ActionCheatAllYourBase:       "AllYourBaseAreBelongToUs",
	ActionCheatRiseAndShine:      "RiseAndShine",
}
