package protocol

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/google/uuid"
)

// Writer builds the payload of a single packet (packet ID + fields).
// Uses Big-Endian byte order for all multi-byte values, per the Java
// Edition wire format.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a packet writer for the given packet ID.
// The ID is written immediately as a VarInt.
func NewWriter(packetID int32) *Writer {
	w := &Writer{
		buf: bytes.NewBuffer(make([]byte, 0, 256)),
	}
	w.WriteVarInt(packetID)
	return w
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBool writes a boolean as a single byte (0x00 or 0x01).
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(0x01)
	} else {
		w.buf.WriteByte(0x00)
	}
}

// WriteShort writes an int16 (2 bytes, BE).
func (w *Writer) WriteShort(val int16) {
	w.buf.WriteByte(byte(val >> 8))
	w.buf.WriteByte(byte(val))
}

// WriteUShort writes a uint16 (2 bytes, BE).
func (w *Writer) WriteUShort(val uint16) {
	w.buf.WriteByte(byte(val >> 8))
	w.buf.WriteByte(byte(val))
}

// WriteInt writes an int32 (4 bytes, BE).
func (w *Writer) WriteInt(val int32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(val))
	w.buf.Write(tmp[:])
}

// WriteLong writes an int64 (8 bytes, BE).
func (w *Writer) WriteLong(val int64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(val))
	w.buf.Write(tmp[:])
}

// WriteFloat writes a float32 (4 bytes, BE, IEEE 754).
func (w *Writer) WriteFloat(val float32) {
	w.WriteInt(int32(math.Float32bits(val)))
}

// WriteDouble writes a float64 (8 bytes, BE, IEEE 754).
func (w *Writer) WriteDouble(val float64) {
	w.WriteLong(int64(math.Float64bits(val)))
}

// WriteVarInt writes an int32 in the 7-bit variable-length encoding.
func (w *Writer) WriteVarInt(val int32) {
	v := uint32(val)
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

// WriteString writes a VarInt-length-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) {
	w.WriteVarInt(int32(len(s)))
	w.buf.WriteString(s)
}

// WriteUUID writes a UUID as 16 raw bytes.
func (w *Writer) WriteUUID(id uuid.UUID) {
	w.buf.Write(id[:])
}

// WritePosition writes block coordinates packed into a single long.
// Layout for protocol 477 (1.14) and later: x:26 | z:26 | y:12.
// Earlier versions use x:26 | y:12 | z:26.
func (w *Writer) WritePosition(x, y, z int32, modernLayout bool) {
	xv := int64(x) & 0x3FFFFFF
	yv := int64(y) & 0xFFF
	zv := int64(z) & 0x3FFFFFF
	if modernLayout {
		w.WriteLong(xv<<38 | zv<<12 | yv)
	} else {
		w.WriteLong(xv<<38 | yv<<26 | zv)
	}
}

// WriteBytes writes raw bytes with no length prefix.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteByteArray writes a VarInt-length-prefixed byte array.
func (w *Writer) WriteByteArray(data []byte) {
	w.WriteVarInt(int32(len(data)))
	w.buf.Write(data)
}

// Bytes returns the accumulated payload (packet ID + fields).
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the current payload length.
func (w *Writer) Len() int {
	return w.buf.Len()
}
