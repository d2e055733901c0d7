// Package primitive reads a single NRBF primitive value of a given
// PrimitiveKind from a cursor, per the width/endianness table in spec.md §4.2.
package primitive

import (
	"github.com/zeroed-tech/viewstate-decoder/cursor"
	"github.com/zeroed-tech/viewstate-decoder/errs"
	"github.com/zeroed-tech/viewstate-decoder/format"
	"github.com/zeroed-tech/viewstate-decoder/value"
)

// dateTimeRawWidth is the width in bytes of the opaque, explicitly-not-
// interpreted DateTime payload: a 64-bit tick count with its top two bits
// repurposed as a DateTimeKind discriminator.
const dateTimeRawWidth = 8

// Read decodes one value of the given kind from c.
func Read(c *cursor.Cursor, kind format.PrimitiveKind) (value.Value, error) {
	switch kind {
	case format.Boolean:
		b, err := c.ReadU8()
		if err != nil {
			return value.Value{}, err
		}

		return value.Bool(b != 0), nil

	case format.Byte:
		b, err := c.ReadU8()
		if err != nil {
			return value.Value{}, err
		}

		return value.Uint8(b), nil

	case format.Char:
		// Treated as a raw byte by this decoder, per spec.md §4.2.
		b, err := c.ReadU8()
		if err != nil {
			return value.Value{}, err
		}

		return value.Uint8(b), nil

	case format.SByte:
		b, err := c.ReadU8()
		if err != nil {
			return value.Value{}, err
		}

		return value.Int8(int8(b)), nil //nolint:gosec

	case format.Int16:
		v, err := c.ReadI16()
		if err != nil {
			return value.Value{}, err
		}

		return value.Int16(v), nil

	case format.UInt16:
		v, err := c.ReadU16()
		if err != nil {
			return value.Value{}, err
		}

		return value.Uint16(v), nil

	case format.Int32:
		v, err := c.ReadI32()
		if err != nil {
			return value.Value{}, err
		}

		return value.Int32(v), nil

	case format.UInt32:
		v, err := c.ReadU32()
		if err != nil {
			return value.Value{}, err
		}

		return value.Uint32(v), nil

	case format.Int64:
		v, err := c.ReadI64()
		if err != nil {
			return value.Value{}, err
		}

		return value.Int64(v), nil

	case format.UInt64, format.TimeSpan:
		v, err := c.ReadU64()
		if err != nil {
			return value.Value{}, err
		}

		return value.Uint64(v), nil

	case format.Double:
		v, err := c.ReadF64()
		if err != nil {
			return value.Value{}, err
		}

		return value.Float64(v), nil

	case format.Single:
		v, err := c.ReadF32()
		if err != nil {
			return value.Value{}, err
		}

		return value.Float32(v), nil

	case format.Decimal:
		s, err := c.ReadVarString()
		if err != nil {
			return value.Value{}, err
		}

		return value.String(s), nil

	case format.DateTime:
		raw, err := c.ReadBytes(dateTimeRawWidth)
		if err != nil {
			return value.Value{}, err
		}

		return value.Opaque(raw), nil

	case format.String:
		s, err := c.ReadVarString()
		if err != nil {
			return value.Value{}, err
		}

		return value.String(s), nil

	case format.Null:
		return value.Null(), nil

	default:
		return value.Value{}, errs.Errorf(c.Position(), errs.ErrBadPrimitive, "kind %d", kind)
	}
}
