package w3g

import "encoding/binary"

// decodeEncodedString decodes the W3G control-byte encoding: bits 1-7
// of every control byte say whether each of the following 7 bytes was
// incremented by one when written (bit=0: subtract 1 back out) or left
// literal (bit=1). Terminates on a zero byte, whether it appears in a
// control-byte position or among the data bytes.
func decodeEncodedString(c *cursor) ([]byte, error) {
	var result []byte
	for {
		control, err := c.u8()
		if err != nil {
			return nil, err
		}
		if control == 0 {
			break
		}
		done := false
		for bit := 0; bit < 7; bit++ {
			b, err := c.u8()
			if err != nil {
				return nil, err
			}
			if b == 0 {
				done = true
				break
			}
			if control&(1<<uint(bit+1)) == 0 {
				result = append(result, b-1)
			} else {
				result = append(result, b)
			}
		}
		if done {
			break
		}
	}
	return result, nil
}

// decodeGameSettings parses the fixed 13-byte settings block plus map
// path that the encoded string carries.
func decodeGameSettings(encoded []byte) (GameSettings, string, error) {
	var s GameSettings
	if len(encoded) < 13 {
		return s, "", newTruncatedDataError(0, "encoded settings too short: %d bytes", len(encoded))
	}

	speed, err := gameSpeedFromValue(encoded[0]&0x03, 0)
	if err != nil {
		return s, "", err
	}
	s.Speed = speed

	b1 := encoded[1]
	s.Visibility = b1 & 0x0F
	s.Observers = (b1 >> 4) & 0x03
	s.TeamsTogether = b1&0x40 != 0

	s.LockTeams = encoded[2]&0x06 != 0

	b3 := encoded[3]
	s.FullSharedControl = b3&0x01 != 0
	s.RandomHero = b3&0x02 != 0
	s.RandomRaces = b3&0x04 != 0
	s.Referees = b3&0x40 != 0

	s.MapChecksum = binary.LittleEndian.Uint32(encoded[9:13])

	offset := 13
	if offset < len(encoded) && encoded[offset] == 0 {
		offset++
	}
	pathStart := offset
	for offset < len(encoded) && encoded[offset] != 0 {
		offset++
	}
	mapPath := string(encoded[pathStart:offset])

	return s, mapPath, nil
}
