package w3g

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
)

// decompressBlocks concatenates and inflates every compressed block
// following the file header. Each block is framed by an 8-byte header
// (compressed size word, decompressed size word, crc32 dword) followed
// by zlib-compressed payload bytes.
func decompressBlocks(buf []byte, file FileHeader) ([]byte, error) {
	var out bytes.Buffer
	pos := 0

	for i := uint32(0); i < file.NumCompressedBlocks; i++ {
		if pos+BlockHeaderSize > len(buf) {
			return nil, newTruncatedDataError(pos, "block %d header truncated", i)
		}
		compressedSize := int(binary.LittleEndian.Uint16(buf[pos:]))
		pos += BlockHeaderSize

		if pos+compressedSize > len(buf) {
			return nil, newTruncatedDataError(pos, "block %d payload truncated: want %d bytes", i, compressedSize)
		}
		payload := buf[pos : pos+compressedSize]
		pos += compressedSize

		decoded, err := inflateZlib(payload)
		if err != nil {
			return nil, newTruncatedDataError(pos, "block %d zlib decompression failed: %v", i, err)
		}
		out.Write(decoded)
	}

	return out.Bytes(), nil
}

func inflateZlib(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out bytes.Buffer
	buf := make([]byte, 8192)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			out.Write(buf[:n])
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			if out.Len() == 0 {
				return nil, err
			}
			break
		}
	}
	return out.Bytes(), nil
}
