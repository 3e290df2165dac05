package w3g

// decodeBlocks walks the tagged replay-block stream until BlockEnd (or
// the stream is exhausted) and appends each block's decoded content
// onto r.
func decodeBlocks(c *cursor, r *Replay) error {
	currentTimeMs := uint32(0)

	for c.remaining() > 0 {
		tag, err := c.u8()
		if err != nil {
			return err
		}

		switch tag {
		case BlockEnd:
			return nil

		case BlockLeaveGame:
			reason, err := c.u32()
			if err != nil {
				return err
			}
			playerID, err := c.u8()
			if err != nil {
				return err
			}
			result, err := c.u32()
			if err != nil {
				return err
			}
			if err := c.skip(4); err != nil { // unused
				return err
			}
			r.Leaves = append(r.Leaves, LeaveGame{
				TimestampMs: currentTimeMs,
				PlayerID:    playerID,
				Reason:      reason,
				Result:      LeaveResult(result),
			})

		case BlockFirstStartRecord, BlockSecondStart, BlockThirdStart:
			if err := c.skip(4); err != nil {
				return err
			}

		case BlockTimeSlot, BlockTimeSlotOld:
			numBytes, err := c.u16()
			if err != nil {
				return err
			}
			timeIncrement, err := c.u16()
			if err != nil {
				return err
			}
			currentTimeMs += uint32(timeIncrement)

			cmdLen := int(numBytes) - 2
			if cmdLen < 0 {
				return newTruncatedDataError(c.offset(), "tick declared negative command length")
			}
			commands, err := decodeCommands(c, cmdLen)
			if err != nil {
				return err
			}
			r.Ticks = append(r.Ticks, Tick{
				TimestampMs:   currentTimeMs,
				TimeIncrement: timeIncrement,
				Commands:      commands,
			})

		case BlockChat:
			msg, err := decodeChatMessage(c, currentTimeMs)
			if err != nil {
				return err
			}
			r.ChatMessages = append(r.ChatMessages, msg)

		case BlockDesync:
			playerCount, err := c.u8()
			if err != nil {
				return err
			}
			ids := make([]uint8, 0, playerCount)
			for i := uint8(0); i < playerCount; i++ {
				id, err := c.u8()
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			checksum, err := c.u32()
			if err != nil {
				return err
			}
			r.Desyncs = append(r.Desyncs, Desync{
				TimestampMs: currentTimeMs,
				PlayerIDs:   ids,
				Checksum:    checksum,
			})

		case BlockForcedGameEnd:
			if err := c.skip(8); err != nil {
				return err
			}

		default:
			return newUnknownTagError(c.offset()-1, tag, "replay block")
		}
	}

	return nil
}

// decodeCommands reads exactly length bytes' worth of per-player
// command batches, enforcing the §8 action-tag-coverage property: the
// actions decoded for a player must consume exactly that player's
// declared byte count.
func decodeCommands(c *cursor, length int) ([]Command, error) {
	end := c.offset() + length
	var commands []Command

	for c.offset() < end {
		playerID, err := c.u8()
		if err != nil {
			return nil, err
		}
		numBytes, err := c.u16()
		if err != nil {
			return nil, err
		}

		cmdStart := c.offset()
		cmdEnd := cmdStart + int(numBytes)

		var actions []Action
		for c.offset() < cmdEnd {
			a, err := decodeAction(c)
			if err != nil {
				return nil, err
			}
			actions = append(actions, a)
		}
		if c.offset() != cmdEnd {
			return nil, newActionSizeMismatchError(cmdStart, int(numBytes), c.offset()-cmdStart)
		}

		commands = append(commands, Command{
			PlayerID: playerID,
			NumBytes: int(numBytes),
			Actions:  actions,
		})
	}

	if c.offset() != end {
		return nil, newTruncatedDataError(end, "tick command data overran declared length")
	}

	return commands, nil
}
