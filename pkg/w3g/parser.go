package w3g

// Decode parses a complete .w3g file into a Replay tree. It is a pure
// function: no I/O, no global state, safe to call concurrently.
func Decode(data []byte) (*Replay, error) {
	outer := newCursor(data)
	file, err := decodeFileHeader(outer)
	if err != nil {
		return nil, err
	}

	replayData, err := decompressBlocks(data[FileHeaderSize:], file)
	if err != nil {
		return nil, err
	}

	c := newCursor(replayData)
	header, err := decodeReplayHeader(c)
	if err != nil {
		return nil, err
	}

	r := &Replay{File: file, Header: header}

	host, err := decodePlayerRecord(c, true)
	if err != nil {
		return nil, err
	}
	r.HostName = host.Name
	r.Players = append(r.Players, host)

	gameName, err := c.cString()
	if err != nil {
		return nil, err
	}
	r.GameName = gameName

	if err := c.skip(1); err != nil { // separator NUL
		return nil, err
	}

	encoded, err := decodeEncodedString(c)
	if err != nil {
		return nil, err
	}
	settings, mapPath, err := decodeGameSettings(encoded)
	if err != nil {
		return nil, err
	}
	r.Settings = settings
	r.MapPath = mapPath

	if err := c.skip(12); err != nil { // player count, game type, language ID
		return nil, err
	}

	for {
		tag, err := peekTag(c)
		if err != nil {
			return nil, err
		}
		if tag != RecordAdditional {
			break
		}
		p, err := decodePlayerRecord(c, false)
		if err != nil {
			return nil, err
		}
		r.Players = append(r.Players, p)
	}

	startTag, err := c.u8()
	if err != nil {
		return nil, err
	}
	if startTag != recordGameStart {
		return nil, newUnknownTagError(c.offset()-1, startTag, "game start record")
	}
	game, err := decodeGameRecord(c, header.VersionNumber)
	if err != nil {
		return nil, err
	}
	r.Game = game

	if err := decodeBlocks(c, r); err != nil {
		return nil, err
	}

	return r, nil
}

// peekTag reads the next byte without advancing the cursor.
func peekTag(c *cursor) (uint8, error) {
	if c.remaining() < 1 {
		return 0, shortReadErr(c.offset(), 1, c.remaining())
	}
	return c.buf[c.pos], nil
}
