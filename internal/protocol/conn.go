package protocol

import (
	"bytes"
	"compress/zlib"
	"crypto/cipher"
	"fmt"
	"io"
	"net"
	"time"
)

// MaxPacketSize is the largest framed packet this server will accept.
// Serverbound traffic for the verification flow is tiny; anything bigger
// is a broken or hostile client.
const MaxPacketSize = 2 * 1024 * 1024

// Conn frames Minecraft packets over a TCP connection: VarInt length
// prefix, optional zlib compression, optional AES-CFB8 encryption.
// Both stream transforms start disabled and are switched on mid-handshake.
type Conn struct {
	conn net.Conn

	r io.Reader
	w io.Writer

	// compression threshold; negative means framing without compression
	threshold int
}

// NewConn wraps an accepted TCP connection.
func NewConn(conn net.Conn) *Conn {
	return &Conn{
		conn:      conn,
		r:         conn,
		w:         conn,
		threshold: -1,
	}
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// SetDeadline sets the read and write deadline on the underlying
// connection. The zero time clears it.
func (c *Conn) SetDeadline(t time.Time) error {
	return c.conn.SetDeadline(t)
}

// EnableEncryption switches both directions to AES-CFB8 with the shared
// secret. Minecraft uses the secret as both key and IV.
func (c *Conn) EnableEncryption(encrypt, decrypt cipher.Stream) {
	c.r = &cipher.StreamReader{S: decrypt, R: c.conn}
	c.w = &cipher.StreamWriter{S: encrypt, W: c.conn}
}

// EnableCompression enables the compressed packet format for all
// subsequent packets in both directions.
func (c *Conn) EnableCompression(threshold int) {
	c.threshold = threshold
}

// WritePacket frames and sends one packet payload (packet ID + fields).
func (c *Conn) WritePacket(payload []byte) error {
	if c.threshold < 0 {
		if err := writeVarInt(c.w, int32(len(payload))); err != nil {
			return fmt.Errorf("writing packet length: %w", err)
		}
		if _, err := c.w.Write(payload); err != nil {
			return fmt.Errorf("writing packet payload: %w", err)
		}
		return nil
	}

	if len(payload) < c.threshold {
		// Below threshold: data length 0 marks an uncompressed body.
		if err := writeVarInt(c.w, int32(len(payload)+1)); err != nil {
			return fmt.Errorf("writing packet length: %w", err)
		}
		if err := writeVarInt(c.w, 0); err != nil {
			return fmt.Errorf("writing data length: %w", err)
		}
		if _, err := c.w.Write(payload); err != nil {
			return fmt.Errorf("writing packet payload: %w", err)
		}
		return nil
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(payload); err != nil {
		return fmt.Errorf("compressing packet: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing packet: %w", err)
	}

	dataLen := int32(len(payload))
	if err := writeVarInt(c.w, int32(compressed.Len())+int32(VarIntLen(dataLen))); err != nil {
		return fmt.Errorf("writing packet length: %w", err)
	}
	if err := writeVarInt(c.w, dataLen); err != nil {
		return fmt.Errorf("writing data length: %w", err)
	}
	if _, err := c.w.Write(compressed.Bytes()); err != nil {
		return fmt.Errorf("writing packet payload: %w", err)
	}
	return nil
}

// ReadPacket reads one framed packet and returns the decoded payload
// (packet ID + fields).
func (c *Conn) ReadPacket() ([]byte, error) {
	total, err := readVarInt(c.r)
	if err != nil {
		return nil, fmt.Errorf("reading packet length: %w", err)
	}
	if total <= 0 || total > MaxPacketSize {
		return nil, fmt.Errorf("invalid packet length: %d", total)
	}

	body := make([]byte, total)
	if _, err := io.ReadFull(c.r, body); err != nil {
		return nil, fmt.Errorf("reading packet body: %w", err)
	}

	if c.threshold < 0 {
		return body, nil
	}

	r := NewReader(body)
	dataLen, err := r.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("reading data length: %w", err)
	}
	rest := body[len(body)-r.Remaining():]
	if dataLen == 0 {
		return rest, nil
	}
	if dataLen < 0 || dataLen > MaxPacketSize {
		return nil, fmt.Errorf("invalid data length: %d", dataLen)
	}

	zr, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return nil, fmt.Errorf("opening compressed packet: %w", err)
	}
	defer zr.Close()

	payload := make([]byte, dataLen)
	if _, err := io.ReadFull(zr, payload); err != nil {
		return nil, fmt.Errorf("decompressing packet: %w", err)
	}
	return payload, nil
}

func writeVarInt(w io.Writer, val int32) error {
	var tmp [5]byte
	n := 0
	v := uint32(val)
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		tmp[n] = b
		n++
		if v == 0 {
			break
		}
	}
	_, err := w.Write(tmp[:n])
	return err
}

func readVarInt(r io.Reader) (int32, error) {
	var val uint32
	var one [1]byte
	for i := 0; ; i++ {
		if i == 5 {
			return 0, fmt.Errorf("varint exceeds 5 bytes")
		}
		if _, err := io.ReadFull(r, one[:]); err != nil {
			return 0, err
		}
		val |= uint32(one[0]&0x7F) << (7 * i)
		if one[0]&0x80 == 0 {
			break
		}
	}
	return int32(val), nil
}
