package w3g

const (
	chatFlagStartup uint8 = 0x10
	chatFlagNormal  uint8 = 0x20
)

// decodeChatMessage reads a PlayerChat block (tag already consumed).
func decodeChatMessage(c *cursor, timestampMs uint32) (ChatMessage, error) {
	playerID, err := c.u8()
	if err != nil {
		return ChatMessage{}, err
	}
	if err := c.skip(2); err != nil { // message length, recomputed from the terminator
		return ChatMessage{}, err
	}
	flags, err := c.u8()
	if err != nil {
		return ChatMessage{}, err
	}

	var mode uint32
	if flags == chatFlagNormal {
		mode, err = c.u32()
		if err != nil {
			return ChatMessage{}, err
		}
	}

	text, err := c.cString()
	if err != nil {
		return ChatMessage{}, err
	}

	return ChatMessage{
		TimestampMs: timestampMs,
		PlayerID:    playerID,
		Mode:        mode,
		Text:        text,
	}, nil
}
