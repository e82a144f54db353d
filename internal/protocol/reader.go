package protocol

import (
	"fmt"
	"math/bits"

	"github.com/google/uuid"
)

// MaxStringLength caps inbound string fields. Handshake and login payloads
// never legitimately exceed this.
const MaxStringLength = 32767

// Reader decodes the payload of a single inbound packet.
// Uses Big-Endian byte order for all multi-byte values.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a packet reader over a decoded payload.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("ReadByte: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBool reads a single byte as a boolean.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0x00, nil
}

// ReadUShort reads a uint16 (2 bytes, BE).
func (r *Reader) ReadUShort() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, fmt.Errorf("ReadUShort: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	val := uint16(r.data[r.pos])<<8 | uint16(r.data[r.pos+1])
	r.pos += 2
	return val, nil
}

// ReadLong reads an int64 (8 bytes, BE).
func (r *Reader) ReadLong() (int64, error) {
	if r.pos+8 > len(r.data) {
		return 0, fmt.Errorf("ReadLong: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	var val uint64
	for i := range 8 {
		val = val<<8 | uint64(r.data[r.pos+i])
	}
	r.pos += 8
	return int64(val), nil
}

// ReadVarInt reads a 7-bit variable-length encoded int32.
func (r *Reader) ReadVarInt() (int32, error) {
	var val uint32
	for i := 0; ; i++ {
		if i == 5 {
			return 0, fmt.Errorf("ReadVarInt: value exceeds 5 bytes")
		}
		b, err := r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("ReadVarInt: %w", err)
		}
		val |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			break
		}
	}
	return int32(val), nil
}

// ReadString reads a VarInt-length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadVarInt()
	if err != nil {
		return "", fmt.Errorf("ReadString: %w", err)
	}
	if n < 0 || n > MaxStringLength {
		return "", fmt.Errorf("ReadString: invalid length %d", n)
	}
	if r.pos+int(n) > len(r.data) {
		return "", fmt.Errorf("ReadString: not enough data (pos=%d, need=%d, len=%d)", r.pos, n, len(r.data))
	}
	s := string(r.data[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

// ReadByteArray reads a VarInt-length-prefixed byte array.
func (r *Reader) ReadByteArray() ([]byte, error) {
	n, err := r.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("ReadByteArray: %w", err)
	}
	if n < 0 || r.pos+int(n) > len(r.data) {
		return nil, fmt.Errorf("ReadByteArray: invalid length %d (pos=%d, len=%d)", n, r.pos, len(r.data))
	}
	data := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return data, nil
}

// ReadUUID reads 16 raw bytes as a UUID.
func (r *Reader) ReadUUID() (uuid.UUID, error) {
	if r.pos+16 > len(r.data) {
		return uuid.UUID{}, fmt.Errorf("ReadUUID: not enough data (pos=%d, len=%d)", r.pos, len(r.data))
	}
	var id uuid.UUID
	copy(id[:], r.data[r.pos:r.pos+16])
	r.pos += 16
	return id, nil
}

// VarIntLen returns the encoded size of val in bytes (1..5).
func VarIntLen(val int32) int {
	if val == 0 {
		return 1
	}
	return (38 - bits.LeadingZeros32(uint32(val))) / 7
}
