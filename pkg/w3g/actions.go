package w3g

import "fmt"

// Action is the closed union of every player-action variant a Command
// can carry. Each concrete type is a direct decode of one action tag;
// Tag lets callers dispatch without a type switch when they only need
// the wire identity (logging, debug dumps).
type Action interface {
	Tag() uint8
}

type action struct{ tag uint8 }

func (a action) Tag() uint8 { return a.tag }

// -- game control --------------------------------------------------

type PauseGame struct{ action }
type ResumeGame struct{ action }

type SetGameSpeed struct {
	action
	Speed GameSpeed
}

type IncreaseGameSpeed struct{ action }
type DecreaseGameSpeed struct{ action }

type SaveGame struct {
	action
	Filename string
}

type SaveGameFinished struct{ action }

// -- orders ----------------------------------------------------------

type OrderSelf struct {
	action
	Order  OrderType
	ItemID uint32
}

type OrderPoint struct {
	action
	Order  OrderType
	ItemID uint32
	X, Y   float32
}

type OrderPointObject struct {
	action
	Order      OrderType
	ItemID     uint32
	X, Y       float32
	TargetID1  uint32
	TargetID2  uint32
}

type OrderDropItem struct {
	action
	Order     OrderType
	ItemID    uint32
	X, Y      float32
	TargetID1 uint32
	TargetID2 uint32
	ItemObjID1, ItemObjID2 uint32
}

type OrderFog struct {
	action
	Order   OrderType
	ItemID  uint32
	X, Y    float32
	Unit1, Unit2 uint32
	FogX, FogY   float32
}

// -- selection / group management ------------------------------------

type ChangeSelection struct {
	action
	Operation SelectionOperation
	ObjectIDs []uint32
}

type AssignGroupHotkey struct {
	action
	Group     uint8
	ObjectIDs []uint32
}

type SelectGroupHotkey struct {
	action
	Group uint8
}

type SelectSubgroup struct {
	action
	ItemID    uint32
	ObjectID1 uint32
	ObjectID2 uint32
}

type PreSubselection struct{ action }

type SyncSelection struct {
	action
	ObjectID1, ObjectID2 uint32
}

type SelectGroundItem struct {
	action
	ObjectID1, ObjectID2 uint32
}

type CancelHeroRevival struct {
	action
	UnitID1, UnitID2 uint32
}

type RemoveFromQueue struct {
	action
	Slot   uint8
	ItemID uint32
}

// -- cheats ------------------------------------------------------------

type Cheat struct {
	action
	Name string
}

// -- alliance / resources ----------------------------------------------

type ChangeAllyOptions struct {
	action
	PlayerSlot uint8
	Flags      AllianceType
}

type TransferResources struct {
	action
	PlayerSlot uint8
	Gold       uint32
	Lumber     uint32
}

// -- trigger / dialog / misc --------------------------------------------

// MapTriggerChat is a trigger-issued chat line addressed to a specific
// event game object.
type MapTriggerChat struct {
	action
	EventObj1, EventObj2 uint32
	Message              string
}

type EscPressed struct{ action }

type TriggerSleepOrSyncFinished struct {
	action
	ThreadObj1, ThreadObj2 uint32
	WaitCount              uint32
}

type TriggerSyncReady struct {
	action
	ThreadObj1, ThreadObj2 uint32
}

type TriggerMouseClickedTrackable struct {
	action
	TrackableObj1, TrackableObj2 uint32
}

type TriggerMouseTouchedTrackable struct {
	action
	TrackableObj1, TrackableObj2 uint32
}

type HeroSkillSubmenu struct{ action }
type BuildingSubmenu struct{ action }

type MinimapSignal struct {
	action
	X, Y, Duration float32
}

type DialogButtonClicked struct {
	action
	DialogObj1, DialogObj2 uint32
	ButtonObj1, ButtonObj2 uint32
}

type DialogAnyButtonClicked struct {
	action
	ButtonObj1, ButtonObj2 uint32
	DialogObj1, DialogObj2 uint32
}

type ArrowKey struct {
	action
	Event ArrowKeyEvent
}

// -- trigger-sync (gamecache) --------------------------------------------

type SyncStoredInteger struct {
	action
	File, Group, Key string
	Value            int32
}

type SyncStoredReal struct {
	action
	File, Group, Key string
	Value            float32
}

type SyncStoredBoolean struct {
	action
	File, Group, Key string
	Value            bool
}

type SyncStoredString struct {
	action
	File, Group, Key string
	Value            string
}

// SyncStoredUnit captures the hero-record game-cache sync. Most of the
// payload (skill point allocation, ability ranks, bonus stat floats) is
// consumed for cursor accuracy but not retained; the outcome extractor
// only ever cares about the integer-valued class/game_start/flag syncs.
type SyncStoredUnit struct {
	action
	File, Group, Key string
	UnitType         uint32
	InventorySize    uint32
	AbilitySize      uint32
	Experience       uint32
	LevelUps         uint32
	SkillPoints      uint32
}

type SyncEmptyInteger struct {
	action
	File, Group, Key string
}
type SyncEmptyReal struct {
	action
	File, Group, Key string
}
type SyncEmptyBoolean struct {
	action
	File, Group, Key string
}
type SyncEmptyString struct {
	action
	File, Group, Key string
}
type SyncEmptyUnit struct {
	action
	File, Group, Key string
}

// actionDecodeFunc decodes one action body (the cursor is positioned
// just past the tag byte) and returns the decoded Action. It must
// consume exactly the bytes the wire format defines for that tag.
type actionDecodeFunc func(c *cursor, tag uint8) (Action, error)

var actionDecoders = map[uint8]actionDecodeFunc{
	ActionPauseGame:         func(c *cursor, t uint8) (Action, error) { return PauseGame{action{t}}, nil },
	ActionResumeGame:        func(c *cursor, t uint8) (Action, error) { return ResumeGame{action{t}}, nil },
	ActionIncreaseGameSpeed: func(c *cursor, t uint8) (Action, error) { return IncreaseGameSpeed{action{t}}, nil },
	ActionDecreaseGameSpeed: func(c *cursor, t uint8) (Action, error) { return DecreaseGameSpeed{action{t}}, nil },
	ActionSaveGameFinished: func(c *cursor, t uint8) (Action, error) {
		if err := c.skip(4); err != nil {
			return nil, err
		}
		return SaveGameFinished{action{t}}, nil
	},
	ActionSetGameSpeed: func(c *cursor, t uint8) (Action, error) {
		v, err := c.u8()
		if err != nil {
			return nil, err
		}
		speed, err := gameSpeedFromValue(v, c.offset())
		if err != nil {
			return nil, err
		}
		return SetGameSpeed{action{t}, speed}, nil
	},
	ActionSaveGame: func(c *cursor, t uint8) (Action, error) {
		name, err := c.cString()
		if err != nil {
			return nil, err
		}
		return SaveGame{action{t}, name}, nil
	},

	ActionOrderSelf: func(c *cursor, t uint8) (Action, error) {
		order, itemID, err := decodeOrderHeader(c)
		if err != nil {
			return nil, err
		}
		return OrderSelf{action{t}, order, itemID}, nil
	},
	ActionOrderPoint: func(c *cursor, t uint8) (Action, error) {
		order, itemID, err := decodeOrderHeader(c)
		if err != nil {
			return nil, err
		}
		x, y, err := decodeTargetPoint(c)
		if err != nil {
			return nil, err
		}
		return OrderPoint{action{t}, order, itemID, x, y}, nil
	},
	ActionOrderPointObject: func(c *cursor, t uint8) (Action, error) {
		order, itemID, err := decodeOrderHeader(c)
		if err != nil {
			return nil, err
		}
		x, y, err := decodeTargetPoint(c)
		if err != nil {
			return nil, err
		}
		t1, err := c.u32()
		if err != nil {
			return nil, err
		}
		t2, err := c.u32()
		if err != nil {
			return nil, err
		}
		return OrderPointObject{action{t}, order, itemID, x, y, t1, t2}, nil
	},
	ActionOrderDropItem: func(c *cursor, t uint8) (Action, error) {
		order, itemID, err := decodeOrderHeader(c)
		if err != nil {
			return nil, err
		}
		x, y, err := decodeTargetPoint(c)
		if err != nil {
			return nil, err
		}
		t1, err := c.u32()
		if err != nil {
			return nil, err
		}
		t2, err := c.u32()
		if err != nil {
			return nil, err
		}
		i1, err := c.u32()
		if err != nil {
			return nil, err
		}
		i2, err := c.u32()
		if err != nil {
			return nil, err
		}
		return OrderDropItem{action{t}, order, itemID, x, y, t1, t2, i1, i2}, nil
	},
	ActionOrderFog: func(c *cursor, t uint8) (Action, error) {
		order, itemID, err := decodeOrderHeader(c)
		if err != nil {
			return nil, err
		}
		x, y, err := decodeTargetPoint(c)
		if err != nil {
			return nil, err
		}
		u1, err := c.u32()
		if err != nil {
			return nil, err
		}
		u2, err := c.u32()
		if err != nil {
			return nil, err
		}
		fx, err := c.f32()
		if err != nil {
			return nil, err
		}
		fy, err := c.f32()
		if err != nil {
			return nil, err
		}
		return OrderFog{action{t}, order, itemID, x, y, u1, u2, fx, fy}, nil
	},

	ActionChangeSelection: func(c *cursor, t uint8) (Action, error) {
		opByte, err := c.u8()
		if err != nil {
			return nil, err
		}
		op, err := selectionOperationFromValue(opByte, c.offset())
		if err != nil {
			return nil, err
		}
		ids, err := decodeObjectIDList(c)
		if err != nil {
			return nil, err
		}
		return ChangeSelection{action{t}, op, ids}, nil
	},
	ActionAssignGroupHotkey: func(c *cursor, t uint8) (Action, error) {
		group, err := c.u8()
		if err != nil {
			return nil, err
		}
		ids, err := decodeObjectIDList(c)
		if err != nil {
			return nil, err
		}
		return AssignGroupHotkey{action{t}, group, ids}, nil
	},
	ActionSelectGroupHotkey: func(c *cursor, t uint8) (Action, error) {
		group, err := c.u8()
		if err != nil {
			return nil, err
		}
		if err := c.skip(1); err != nil {
			return nil, err
		}
		return SelectGroupHotkey{action{t}, group}, nil
	},
	ActionSelectSubgroup: func(c *cursor, t uint8) (Action, error) {
		itemID, err := c.u32()
		if err != nil {
			return nil, err
		}
		id1, err := c.u32()
		if err != nil {
			return nil, err
		}
		id2, err := c.u32()
		if err != nil {
			return nil, err
		}
		return SelectSubgroup{action{t}, itemID, id1, id2}, nil
	},
	ActionPreSubselection: func(c *cursor, t uint8) (Action, error) { return PreSubselection{action{t}}, nil },
	ActionSyncSelection: func(c *cursor, t uint8) (Action, error) {
		if err := c.skip(1); err != nil {
			return nil, err
		}
		id1, err := c.u32()
		if err != nil {
			return nil, err
		}
		id2, err := c.u32()
		if err != nil {
			return nil, err
		}
		return SyncSelection{action{t}, id1, id2}, nil
	},
	ActionSelectGroundItem: func(c *cursor, t uint8) (Action, error) {
		if err := c.skip(1); err != nil {
			return nil, err
		}
		id1, err := c.u32()
		if err != nil {
			return nil, err
		}
		id2, err := c.u32()
		if err != nil {
			return nil, err
		}
		return SelectGroundItem{action{t}, id1, id2}, nil
	},
	ActionCancelHeroRevival: func(c *cursor, t uint8) (Action, error) {
		u1, err := c.u32()
		if err != nil {
			return nil, err
		}
		u2, err := c.u32()
		if err != nil {
			return nil, err
		}
		return CancelHeroRevival{action{t}, u1, u2}, nil
	},
	ActionRemoveFromQueue: func(c *cursor, t uint8) (Action, error) {
		slot, err := c.u8()
		if err != nil {
			return nil, err
		}
		itemID, err := c.u32()
		if err != nil {
			return nil, err
		}
		return RemoveFromQueue{action{t}, slot, itemID}, nil
	},

	ActionChangeAllyOptions: func(c *cursor, t uint8) (Action, error) {
		slot, err := c.u8()
		if err != nil {
			return nil, err
		}
		flags, err := c.u32()
		if err != nil {
			return nil, err
		}
		return ChangeAllyOptions{action{t}, slot, AllianceType(flags)}, nil
	},
	ActionTransferResources: func(c *cursor, t uint8) (Action, error) {
		slot, err := c.u8()
		if err != nil {
			return nil, err
		}
		gold, err := c.u32()
		if err != nil {
			return nil, err
		}
		lumber, err := c.u32()
		if err != nil {
			return nil, err
		}
		return TransferResources{action{t}, slot, gold, lumber}, nil
	},

	ActionMapTriggerChat: func(c *cursor, t uint8) (Action, error) {
		o1, o2, err := decodeGameObject(c)
		if err != nil {
			return nil, err
		}
		msg, err := c.cString()
		if err != nil {
			return nil, err
		}
		return MapTriggerChat{action{t}, o1, o2, msg}, nil
	},
	ActionEscPressed: func(c *cursor, t uint8) (Action, error) { return EscPressed{action{t}}, nil },
	ActionTriggerSleepOrSyncFinished: func(c *cursor, t uint8) (Action, error) {
		o1, o2, err := decodeGameObject(c)
		if err != nil {
			return nil, err
		}
		wait, err := c.u32()
		if err != nil {
			return nil, err
		}
		return TriggerSleepOrSyncFinished{action{t}, o1, o2, wait}, nil
	},
	ActionTriggerSyncReady: func(c *cursor, t uint8) (Action, error) {
		o1, o2, err := decodeGameObject(c)
		if err != nil {
			return nil, err
		}
		return TriggerSyncReady{action{t}, o1, o2}, nil
	},
	ActionTriggerMouseClickedTrackable: func(c *cursor, t uint8) (Action, error) {
		o1, o2, err := decodeGameObject(c)
		if err != nil {
			return nil, err
		}
		return TriggerMouseClickedTrackable{action{t}, o1, o2}, nil
	},
	ActionTriggerMouseTouchedTrackable: func(c *cursor, t uint8) (Action, error) {
		o1, o2, err := decodeGameObject(c)
		if err != nil {
			return nil, err
		}
		return TriggerMouseTouchedTrackable{action{t}, o1, o2}, nil
	},
	ActionHeroSkillSubmenu: func(c *cursor, t uint8) (Action, error) { return HeroSkillSubmenu{action{t}}, nil },
	ActionBuildingSubmenu:  func(c *cursor, t uint8) (Action, error) { return BuildingSubmenu{action{t}}, nil },
	ActionMinimapSignal: func(c *cursor, t uint8) (Action, error) {
		x, y, err := decodeTargetPoint(c)
		if err != nil {
			return nil, err
		}
		d, err := c.f32()
		if err != nil {
			return nil, err
		}
		return MinimapSignal{action{t}, x, y, d}, nil
	},
	ActionDialogButtonClicked: func(c *cursor, t uint8) (Action, error) {
		d1, d2, err := decodeGameObject(c)
		if err != nil {
			return nil, err
		}
		b1, b2, err := decodeGameObject(c)
		if err != nil {
			return nil, err
		}
		return DialogButtonClicked{action{t}, d1, d2, b1, b2}, nil
	},
	ActionDialogAnyButtonClicked: func(c *cursor, t uint8) (Action, error) {
		b1, b2, err := decodeGameObject(c)
		if err != nil {
			return nil, err
		}
		d1, d2, err := decodeGameObject(c)
		if err != nil {
			return nil, err
		}
		return DialogAnyButtonClicked{action{t}, b1, b2, d1, d2}, nil
	},
	ActionArrowKeyEvent: func(c *cursor, t uint8) (Action, error) {
		v, err := c.u8()
		if err != nil {
			return nil, err
		}
		ev, err := arrowKeyEventFromValue(uint32(v), c.offset())
		if err != nil {
			return nil, err
		}
		return ArrowKey{action{t}, ev}, nil
	},

	ActionSyncStoredInteger: func(c *cursor, t uint8) (Action, error) {
		file, group, key, err := decodeSyncTriple(c)
		if err != nil {
			return nil, err
		}
		v, err := c.i32()
		if err != nil {
			return nil, err
		}
		return SyncStoredInteger{action{t}, file, group, key, v}, nil
	},
	ActionSyncStoredReal: func(c *cursor, t uint8) (Action, error) {
		file, group, key, err := decodeSyncTriple(c)
		if err != nil {
			return nil, err
		}
		v, err := c.f32()
		if err != nil {
			return nil, err
		}
		return SyncStoredReal{action{t}, file, group, key, v}, nil
	},
	ActionSyncStoredBoolean: func(c *cursor, t uint8) (Action, error) {
		file, group, key, err := decodeSyncTriple(c)
		if err != nil {
			return nil, err
		}
		v, err := c.u32()
		if err != nil {
			return nil, err
		}
		return SyncStoredBoolean{action{t}, file, group, key, v != 0}, nil
	},
	ActionSyncStoredString: func(c *cursor, t uint8) (Action, error) {
		file, group, key, err := decodeSyncTriple(c)
		if err != nil {
			return nil, err
		}
		v, err := c.cString()
		if err != nil {
			return nil, err
		}
		return SyncStoredString{action{t}, file, group, key, v}, nil
	},
	ActionSyncStoredUnit: func(c *cursor, t uint8) (Action, error) {
		file, group, key, err := decodeSyncTriple(c)
		if err != nil {
			return nil, err
		}
		return decodeSyncStoredUnit(c, t, file, group, key)
	},

	ActionSyncEmptyInteger: func(c *cursor, t uint8) (Action, error) {
		file, group, key, err := decodeSyncTriple(c)
		if err != nil {
			return nil, err
		}
		return SyncEmptyInteger{action{t}, file, group, key}, nil
	},
	ActionSyncEmptyReal: func(c *cursor, t uint8) (Action, error) {
		file, group, key, err := decodeSyncTriple(c)
		if err != nil {
			return nil, err
		}
		return SyncEmptyReal{action{t}, file, group, key}, nil
	},
	ActionSyncEmptyBoolean: func(c *cursor, t uint8) (Action, error) {
		file, group, key, err := decodeSyncTriple(c)
		if err != nil {
			return nil, err
		}
		return SyncEmptyBoolean{action{t}, file, group, key}, nil
	},
	ActionSyncEmptyString: func(c *cursor, t uint8) (Action, error) {
		file, group, key, err := decodeSyncTriple(c)
		if err != nil {
			return nil, err
		}
		return SyncEmptyString{action{t}, file, group, key}, nil
	},
	ActionSyncEmptyUnit: func(c *cursor, t uint8) (Action, error) {
		file, group, key, err := decodeSyncTriple(c)
		if err != nil {
			return nil, err
		}
		return SyncEmptyUnit{action{t}, file, group, key}, nil
	},
}

func init() {
	for tag, name := range cheatNames {
		name := name
		actionDecoders[tag] = func(c *cursor, t uint8) (Action, error) {
			if err := c.skip(4); err != nil {
				return nil, err
			}
			return Cheat{action{t}, name}, nil
		}
	}
}

// decodeOrderHeader reads the three fields common to every order action:
// the queued/autocast/waygate flag word, the target ability/item ID, and
// the acting unit's game object (two plain dwords, no padding between
// any of the three fields).
func decodeOrderHeader(c *cursor) (OrderType, uint32, error) {
	flags, err := c.u16()
	if err != nil {
		return 0, 0, err
	}
	itemID, err := c.u32()
	if err != nil {
		return 0, 0, err
	}
	if err := c.skip(8); err != nil { // acting unit's game object
		return 0, 0, err
	}
	return OrderType(flags), itemID, nil
}

func decodeTargetPoint(c *cursor) (float32, float32, error) {
	x, err := c.f32()
	if err != nil {
		return 0, 0, err
	}
	y, err := c.f32()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func decodeObjectIDList(c *cursor) ([]uint32, error) {
	count, err := c.u16()
	if err != nil {
		return nil, err
	}
	ids := make([]uint32, 0, count)
	for i := uint16(0); i < count; i++ {
		id1, err := c.u32()
		if err != nil {
			return nil, err
		}
		if err := c.skip(4); err != nil { // second handle dword, unused
			return nil, err
		}
		ids = append(ids, id1)
	}
	return ids, nil
}

func decodeSyncTriple(c *cursor) (file, group, key string, err error) {
	if file, err = c.cString(); err != nil {
		return "", "", "", err
	}
	if group, err = c.cString(); err != nil {
		return "", "", "", err
	}
	if key, err = c.cString(); err != nil {
		return "", "", "", err
	}
	return file, group, key, nil
}

// decodeGameObject reads a two-dword game object handle (player object id
// plus generation counter), the wire shape shared by every trigger/dialog
// action that addresses a trigger, thread, trackable or widget.
func decodeGameObject(c *cursor) (uint32, uint32, error) {
	id1, err := c.u32()
	if err != nil {
		return 0, 0, err
	}
	id2, err := c.u32()
	if err != nil {
		return 0, 0, err
	}
	return id1, id2, nil
}

// decodeSyncStoredUnit reads the hero-record payload that follows the
// file/group/key triple: a variable-length inventory and ability list
// bracketing a fixed run of stat scalars. Every field is consumed to
// keep the cursor aligned; only the counts and headline stats are kept.
func decodeSyncStoredUnit(c *cursor, t uint8, file, group, key string) (Action, error) {
	unitType, err := c.u32()
	if err != nil {
		return nil, err
	}
	invSize, err := c.u32()
	if err != nil {
		return nil, err
	}
	if err := c.skip(int(invSize) * 12); err != nil {
		return nil, err
	}
	experience, err := c.u32()
	if err != nil {
		return nil, err
	}
	levelUps, err := c.u32()
	if err != nil {
		return nil, err
	}
	skillPoints, err := c.u32()
	if err != nil {
		return nil, err
	}
	if err := c.skip(2 + 2 + 4 + 4 + 4 + 4 + 4 + 4 + 4 + 4); err != nil {
		// proper_name_index, unknown1, base_strength, bonus_strength_per_level,
		// base_agility, bonus_move_speed, bonus_attack_speed,
		// bonus_agility_per_level, base_intelligence, bonus_intelligence_per_level
		return nil, err
	}
	abilitySize, err := c.u32()
	if err != nil {
		return nil, err
	}
	if err := c.skip(int(abilitySize) * 8); err != nil {
		return nil, err
	}
	if err := c.skip(4 + 4 + 4 + 4 + 4 + 4 + 4 + 2); err != nil {
		// bonus_health, bonus_mana, sight_radius_day, unknown2-5, hotkey_flags
		return nil, err
	}
	return SyncStoredUnit{action{t}, file, group, key, unitType, invSize, abilitySize, experience, levelUps, skillPoints}, nil
}

// decodeAction dispatches on tag. Any tag without a registered decoder
// (including a cheat-range tag missing from cheatNames) is an
// UnknownTagError; no action tag is skipped.
func decodeAction(c *cursor) (Action, error) {
	tag, err := c.u8()
	if err != nil {
		return nil, err
	}
	dec, ok := actionDecoders[tag]
	if !ok {
		return nil, newUnknownTagError(c.offset()-1, tag, fmt.Sprintf("action 0x%02X", tag))
	}
	return dec(c, tag)
}
