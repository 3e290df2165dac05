package w3g

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildReplay assembles a minimal but structurally valid .w3g file
// around a caller-supplied decompressed payload, so tests exercise the
// real header/compression pipeline instead of calling internals
// directly.
func buildReplay(t *testing.T, payload []byte) []byte {
	t.Helper()

	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var blockHeader bytes.Buffer
	binary.Write(&blockHeader, binary.LittleEndian, uint16(compressed.Len()))
	binary.Write(&blockHeader, binary.LittleEndian, uint16(len(payload)))
	binary.Write(&blockHeader, binary.LittleEndian, uint32(0))

	var file bytes.Buffer
	file.Write(MagicString)
	binary.Write(&file, binary.LittleEndian, uint32(FileHeaderSize))
	binary.Write(&file, binary.LittleEndian, uint32(blockHeader.Len()+compressed.Len()))
	binary.Write(&file, binary.LittleEndian, uint32(1))
	binary.Write(&file, binary.LittleEndian, uint32(len(payload)))
	binary.Write(&file, binary.LittleEndian, uint32(1))
	file.Write(blockHeader.Bytes())
	file.Write(compressed.Bytes())

	return file.Bytes()
}

// buildDecompressedPayload assembles the portion of the stream that
// lives inside the compressed blocks: replay header, host record, game
// name, encoded settings, player records, game record and a trailing
// block stream.
func buildDecompressedPayload(t *testing.T, blocks []byte) []byte {
	t.Helper()
	var b bytes.Buffer

	b.WriteString("PX3W")
	binary.Write(&b, binary.LittleEndian, uint32(6072))
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, uint16(0x8000))
	binary.Write(&b, binary.LittleEndian, uint32(60000))
	binary.Write(&b, binary.LittleEndian, uint32(0))

	b.WriteByte(RecordHost)
	b.WriteByte(0)
	b.WriteString("HostPlayer")
	b.WriteByte(0)
	b.WriteByte(0x01)
	b.WriteByte(0)

	b.WriteString("Test Game")
	b.WriteByte(0)
	b.WriteByte(0)

	b.Write(encodeTestSettings())

	binary.Write(&b, binary.LittleEndian, uint32(2))
	binary.Write(&b, binary.LittleEndian, uint32(1))
	binary.Write(&b, binary.LittleEndian, uint32(0))

	b.WriteByte(RecordAdditional)
	b.WriteByte(1)
	b.WriteString("SecondPlayer")
	b.WriteByte(0)
	b.WriteByte(0x01)
	b.WriteByte(0)

	b.WriteByte(recordGameStart)
	binary.Write(&b, binary.LittleEndian, uint16(21))
	b.WriteByte(2)
	for _, slot := range []struct{ id, team, race uint8 }{{0, 0, uint8(RaceHuman)}, {1, 1, uint8(RaceOrc)}} {
		b.WriteByte(slot.id)
		b.WriteByte(100)
		b.WriteByte(uint8(SlotUsed))
		b.WriteByte(0)
		b.WriteByte(slot.team)
		b.WriteByte(slot.id)
		b.WriteByte(slot.race)
		b.WriteByte(0)
		b.WriteByte(100)
	}
	binary.Write(&b, binary.LittleEndian, uint32(0xDEADBEEF))
	b.WriteByte(1)
	b.WriteByte(2)

	b.Write(blocks)
	b.WriteByte(BlockEnd)

	return b.Bytes()
}

// encodeTestSettings builds a 13-byte settings block (all defaults)
// followed by a map path, wrapped in the control-byte encoding that
// decodeEncodedString expects.
func encodeTestSettings() []byte {
	raw := make([]byte, 13)
	raw[0] = 1 // GameSpeedNormal
	raw = append(raw, 0)
	raw = append(raw, []byte("Maps\\IslandDefense.w3x")...)
	raw = append(raw, 0)

	var encoded bytes.Buffer
	for i := 0; i < len(raw); i += 7 {
		chunk := raw[i:min(i+7, len(raw))]
		control := byte(1) // bit 0 is always set, so a control byte is never zero
		out := make([]byte, len(chunk))
		for j, v := range chunk {
			if v%2 == 0 {
				out[j] = v + 1
			} else {
				out[j] = v
				control |= 1 << uint(j+1)
			}
		}
		encoded.WriteByte(control)
		encoded.Write(out)
	}
	encoded.WriteByte(0)
	return encoded.Bytes()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func TestDecode_HeaderAndPlayers(t *testing.T) {
	payload := buildDecompressedPayload(t, nil)
	replay, err := Decode(buildReplay(t, payload))
	require.NoError(t, err)

	require.Equal(t, "Test Game", replay.GameName)
	require.Equal(t, "HostPlayer", replay.HostName)
	require.Len(t, replay.Players, 2)
	require.Equal(t, "SecondPlayer", replay.Players[1].Name)
	require.True(t, replay.Header.IsMultiplayer())
	require.Equal(t, GameSpeedNormal, replay.Settings.Speed)
	require.Len(t, replay.Game.Slots, 2)
}

func TestDecode_TickWithSyncStoredInteger(t *testing.T) {
	var actionBytes bytes.Buffer
	actionBytes.WriteByte(ActionSyncStoredInteger)
	actionBytes.WriteString("ID.D")
	actionBytes.WriteByte(0)
	actionBytes.WriteString("class")
	actionBytes.WriteByte(0)
	actionBytes.WriteString("0")
	actionBytes.WriteByte(0)
	binary.Write(&actionBytes, binary.LittleEndian, int32(1))

	var cmd bytes.Buffer
	cmd.WriteByte(0) // player ID
	binary.Write(&cmd, binary.LittleEndian, uint16(actionBytes.Len()))
	cmd.Write(actionBytes.Bytes())

	var tick bytes.Buffer
	tick.WriteByte(BlockTimeSlot)
	binary.Write(&tick, binary.LittleEndian, uint16(cmd.Len()+2))
	binary.Write(&tick, binary.LittleEndian, uint16(100))
	tick.Write(cmd.Bytes())

	payload := buildDecompressedPayload(t, tick.Bytes())
	replay, err := Decode(buildReplay(t, payload))
	require.NoError(t, err)

	require.Len(t, replay.Ticks, 1)
	require.Len(t, replay.Ticks[0].Commands, 1)
	require.Len(t, replay.Ticks[0].Commands[0].Actions, 1)

	sync, ok := replay.Ticks[0].Commands[0].Actions[0].(SyncStoredInteger)
	require.True(t, ok)
	require.Equal(t, "ID.D", sync.File)
	require.Equal(t, "class", sync.Group)
	require.Equal(t, "0", sync.Key)
	require.Equal(t, int32(1), sync.Value)
}

func TestDecode_OrderSelfAction(t *testing.T) {
	var actionBytes bytes.Buffer
	actionBytes.WriteByte(ActionOrderSelf)
	binary.Write(&actionBytes, binary.LittleEndian, uint16(OrderFlagQueued))
	binary.Write(&actionBytes, binary.LittleEndian, uint32(0xABCD))
	binary.Write(&actionBytes, binary.LittleEndian, uint32(0)) // game object id1
	binary.Write(&actionBytes, binary.LittleEndian, uint32(0)) // game object id2
	actionBytes.WriteByte(ActionEscPressed)                    // trailing action proves the cursor landed exactly on the boundary

	var cmd bytes.Buffer
	cmd.WriteByte(0) // player ID
	binary.Write(&cmd, binary.LittleEndian, uint16(actionBytes.Len()))
	cmd.Write(actionBytes.Bytes())

	var tick bytes.Buffer
	tick.WriteByte(BlockTimeSlot)
	binary.Write(&tick, binary.LittleEndian, uint16(cmd.Len()+2))
	binary.Write(&tick, binary.LittleEndian, uint16(100))
	tick.Write(cmd.Bytes())

	payload := buildDecompressedPayload(t, tick.Bytes())
	replay, err := Decode(buildReplay(t, payload))
	require.NoError(t, err)

	require.Len(t, replay.Ticks[0].Commands[0].Actions, 2)
	order, ok := replay.Ticks[0].Commands[0].Actions[0].(OrderSelf)
	require.True(t, ok)
	require.Equal(t, uint32(0xABCD), order.ItemID)
	_, ok = replay.Ticks[0].Commands[0].Actions[1].(EscPressed)
	require.True(t, ok)
}

func TestDecode_LeaveGameBlock(t *testing.T) {
	var leave bytes.Buffer
	leave.WriteByte(BlockLeaveGame)
	binary.Write(&leave, binary.LittleEndian, uint32(1))
	leave.WriteByte(0)
	binary.Write(&leave, binary.LittleEndian, uint32(LeaveResultWon))
	binary.Write(&leave, binary.LittleEndian, uint32(0))

	payload := buildDecompressedPayload(t, leave.Bytes())
	replay, err := Decode(buildReplay(t, payload))
	require.NoError(t, err)

	require.Len(t, replay.Leaves, 1)
	require.Equal(t, LeaveResultWon, replay.Leaves[0].Result)
}

func TestDecode_UnknownActionTagErrors(t *testing.T) {
	var cmd bytes.Buffer
	cmd.WriteByte(0)
	binary.Write(&cmd, binary.LittleEndian, uint16(1))
	cmd.WriteByte(0xFE) // not a registered tag

	var tick bytes.Buffer
	tick.WriteByte(BlockTimeSlot)
	binary.Write(&tick, binary.LittleEndian, uint16(cmd.Len()+2))
	binary.Write(&tick, binary.LittleEndian, uint16(10))
	tick.Write(cmd.Bytes())

	payload := buildDecompressedPayload(t, tick.Bytes())
	_, err := Decode(buildReplay(t, payload))
	require.Error(t, err)

	var tagErr *UnknownTagError
	require.ErrorAs(t, err, &tagErr)
	require.Equal(t, uint8(0xFE), tagErr.Tag)
}

func TestDecode_TruncatedFileErrors(t *testing.T) {
	_, err := Decode(MagicString)
	require.Error(t, err)
}
