package w3g

// decodePlayerRecord reads a player identity record. isHost selects
// which record tag is expected (RecordHost for the leading host record,
// RecordAdditional for every player record that follows it).
func decodePlayerRecord(c *cursor, isHost bool) (PlayerRecord, error) {
	start := c.offset()
	tag, err := c.u8()
	if err != nil {
		return PlayerRecord{}, err
	}
	want := RecordAdditional
	if isHost {
		want = RecordHost
	}
	if tag != want {
		return PlayerRecord{}, newInvalidEnumError(start, "player_record_tag", tag)
	}

	playerID, err := c.u8()
	if err != nil {
		return PlayerRecord{}, err
	}
	name, err := c.cString()
	if err != nil {
		return PlayerRecord{}, err
	}

	extraSize, err := c.u8()
	if err != nil {
		return PlayerRecord{}, err
	}
	switch extraSize {
	case 0x01:
		if err := c.skip(1); err != nil {
			return PlayerRecord{}, err
		}
	case 0x08:
		if err := c.skip(8); err != nil {
			return PlayerRecord{}, err
		}
	default:
		if err := c.skip(int(extraSize)); err != nil {
			return PlayerRecord{}, err
		}
	}

	return PlayerRecord{RecordTag: tag, PlayerID: playerID, Name: name, IsHost: isHost}, nil
}

func slotRecordSize(replayVersion uint32) int {
	switch {
	case replayVersion < 3:
		return 7
	case replayVersion < 7:
		return 8
	default:
		return 9
	}
}

// decodeSlotRecord reads one lobby slot entry from the GameRecord's
// slot table. The record's byte width is version-dependent: earlier
// clients omit the trailing AI-strength and handicap bytes.
func decodeSlotRecord(c *cursor, replayVersion uint32) (SlotRecord, error) {
	size := slotRecordSize(replayVersion)

	playerID, err := c.u8()
	if err != nil {
		return SlotRecord{}, err
	}
	downloadPct, err := c.u8()
	if err != nil {
		return SlotRecord{}, err
	}
	statusByte, err := c.u8()
	if err != nil {
		return SlotRecord{}, err
	}
	status, err := slotStatusFromValue(statusByte, c.offset()-1)
	if err != nil {
		return SlotRecord{}, err
	}
	isComputer, err := c.u8()
	if err != nil {
		return SlotRecord{}, err
	}
	team, err := c.u8()
	if err != nil {
		return SlotRecord{}, err
	}
	color, err := c.u8()
	if err != nil {
		return SlotRecord{}, err
	}
	raceFlags, err := c.u8()
	if err != nil {
		return SlotRecord{}, err
	}

	handicap := uint8(100)
	if size >= 8 {
		if err := c.skip(1); err != nil { // AI strength, not modeled
			return SlotRecord{}, err
		}
	}
	if size >= 9 {
		handicap, err = c.u8()
		if err != nil {
			return SlotRecord{}, err
		}
	}

	return SlotRecord{
		PlayerID:        playerID,
		DownloadPercent: downloadPct,
		SlotStatus:      status,
		IsComputer:      isComputer == 0x01,
		Team:            team,
		Color:           color,
		Race:            RaceFromFlags(raceFlags),
		Handicap:        handicap,
	}, nil
}

// decodeGameRecord reads the GameStartRecord (tag already consumed):
// the slot table, random seed and selection mode used to build it.
func decodeGameRecord(c *cursor, replayVersion uint32) (GameRecord, error) {
	if err := c.skip(2); err != nil { // following-byte count, recomputed from the slot table itself
		return GameRecord{}, err
	}
	numSlots, err := c.u8()
	if err != nil {
		return GameRecord{}, err
	}

	slots := make([]SlotRecord, 0, numSlots)
	for i := uint8(0); i < numSlots; i++ {
		slot, err := decodeSlotRecord(c, replayVersion)
		if err != nil {
			return GameRecord{}, err
		}
		slots = append(slots, slot)
	}

	seed, err := c.u32()
	if err != nil {
		return GameRecord{}, err
	}
	selByte, err := c.u8()
	if err != nil {
		return GameRecord{}, err
	}
	sel, err := selectionOperationFromValue(selByte, c.offset()-1)
	if err != nil {
		return GameRecord{}, err
	}
	if err := c.skip(1); err != nil { // start-spot count, not modeled
		return GameRecord{}, err
	}

	return GameRecord{Slots: slots, RandomSeed: seed, Selection: sel}, nil
}
