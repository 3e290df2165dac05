package w3g

import "bytes"

// decodeFileHeader reads the 48-byte outer envelope from the start of
// the file and validates the magic string.
func decodeFileHeader(c *cursor) (FileHeader, error) {
	magic, err := c.bytes(28)
	if err != nil {
		return FileHeader{}, err
	}
	if !bytes.Equal(magic, MagicString) {
		return FileHeader{}, newInvalidHeaderError(0, "bad magic string")
	}
	dataOffset, err := c.u32()
	if err != nil {
		return FileHeader{}, err
	}
	compressedSize, err := c.u32()
	if err != nil {
		return FileHeader{}, err
	}
	headerVersion, err := c.u32()
	if err != nil {
		return FileHeader{}, err
	}
	decompressedSize, err := c.u32()
	if err != nil {
		return FileHeader{}, err
	}
	numBlocks, err := c.u32()
	if err != nil {
		return FileHeader{}, err
	}
	return FileHeader{
		DataOffset:          dataOffset,
		CompressedSize:      compressedSize,
		HeaderVersion:       headerVersion,
		DecompressedSize:    decompressedSize,
		NumCompressedBlocks: numBlocks,
	}, nil
}

// decodeReplayHeader reads the 20-byte version/build/duration record
// that immediately follows the file header in the decompressed stream.
func decodeReplayHeader(c *cursor) (ReplayHeader, error) {
	versionString, err := c.fixedString(4)
	if err != nil {
		return ReplayHeader{}, err
	}
	versionNumber, err := c.u32()
	if err != nil {
		return ReplayHeader{}, err
	}
	buildNumber, err := c.u16()
	if err != nil {
		return ReplayHeader{}, err
	}
	flags, err := c.u16()
	if err != nil {
		return ReplayHeader{}, err
	}
	durationMs, err := c.u32()
	if err != nil {
		return ReplayHeader{}, err
	}
	crc32, err := c.u32()
	if err != nil {
		return ReplayHeader{}, err
	}
	return ReplayHeader{
		VersionString: versionString,
		VersionNumber: versionNumber,
		BuildNumber:   buildNumber,
		Flags:         flags,
		DurationMs:    durationMs,
		CRC32:         crc32,
	}, nil
}
