// Package nbt implements the subset of the Named Binary Tag format the
// server needs to emit: the registry codecs embedded in the join packet.
// Write-only; the verification flow never parses NBT from clients.
package nbt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// Tag type IDs.
const (
	TagEnd      byte = 0
	TagByte     byte = 1
	TagShort    byte = 2
	TagInt      byte = 3
	TagLong     byte = 4
	TagFloat    byte = 5
	TagDouble   byte = 6
	TagString   byte = 8
	TagList     byte = 9
	TagCompound byte = 10
)

// Compound is a set of named tags. Supported value types: int8, int16,
// int32, int64, float32, float64, string, Compound, List.
type Compound map[string]any

// List is a homogeneous sequence of tags.
type List struct {
	ElementType byte
	Items       []any
}

// Marshal encodes root as a full NBT document: an unnamed root compound.
func Marshal(root Compound) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(TagCompound)
	writeName(&buf, "")
	if err := writeCompound(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCompound(buf *bytes.Buffer, c Compound) error {
	// Sorted for deterministic output; clients do not care about order.
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := c[k]
		typ, err := tagType(v)
		if err != nil {
			return fmt.Errorf("tag %q: %w", k, err)
		}
		buf.WriteByte(typ)
		writeName(buf, k)
		if err := writePayload(buf, v); err != nil {
			return fmt.Errorf("tag %q: %w", k, err)
		}
	}
	buf.WriteByte(TagEnd)
	return nil
}

func tagType(v any) (byte, error) {
	switch v.(type) {
	case int8:
		return TagByte, nil
	case int16:
		return TagShort, nil
	case int32:
		return TagInt, nil
	case int64:
		return TagLong, nil
	case float32:
		return TagFloat, nil
	case float64:
		return TagDouble, nil
	case string:
		return TagString, nil
	case List:
		return TagList, nil
	case Compound:
		return TagCompound, nil
	default:
		return 0, fmt.Errorf("unsupported NBT value type %T", v)
	}
}

func writePayload(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case int8:
		buf.WriteByte(byte(val))
	case int16:
		writeBE(buf, uint64(uint16(val)), 2)
	case int32:
		writeBE(buf, uint64(uint32(val)), 4)
	case int64:
		writeBE(buf, uint64(val), 8)
	case float32:
		writeBE(buf, uint64(math.Float32bits(val)), 4)
	case float64:
		writeBE(buf, math.Float64bits(val), 8)
	case string:
		writeName(buf, val)
	case List:
		buf.WriteByte(val.ElementType)
		writeBE(buf, uint64(uint32(len(val.Items))), 4)
		for _, item := range val.Items {
			typ, err := tagType(item)
			if err != nil {
				return err
			}
			if typ != val.ElementType {
				return fmt.Errorf("list element type %d does not match declared type %d", typ, val.ElementType)
			}
			if err := writePayload(buf, item); err != nil {
				return err
			}
		}
	case Compound:
		return writeCompound(buf, val)
	default:
		return fmt.Errorf("unsupported NBT value type %T", v)
	}
	return nil
}

func writeName(buf *bytes.Buffer, s string) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], uint16(len(s)))
	buf.Write(tmp[:])
	buf.WriteString(s)
}

func writeBE(buf *bytes.Buffer, v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		buf.WriteByte(byte(v >> (8 * i)))
	}
}
