package record

import (
	"github.com/zeroed-tech/viewstate-decoder/cursor"
	"github.com/zeroed-tech/viewstate-decoder/errs"
	"github.com/zeroed-tech/viewstate-decoder/format"
	"github.com/zeroed-tech/viewstate-decoder/registry"
)

// Dispatch inspects the next tag byte and parses the matching record
// variant. It never consumes the tag itself before delegating: each
// variant's own parser re-reads the tag byte and asserts it matches its
// declared tag (ErrRecordTagMismatch on mismatch), satisfying spec.md
// §4.3's "idempotent with respect to peek" requirement.
func Dispatch(c *cursor.Cursor, reg *registry.Registry) (Record, error) {
	b, err := c.Peek()
	if err != nil {
		return nil, err
	}
	tag := format.RecordTag(b)

	switch tag {
	case format.SerializationHeader:
		return parseHeader(c)
	case format.ClassWithId:
		return parseClassWithId(c, reg)
	case format.SystemClassWithMembers:
		return parseSystemClassWithMembers(c)
	case format.SystemClassWithMembersAndTypes:
		return parseSystemClassWithMembersAndTypes(c, reg)
	case format.ClassWithMembersAndTypes:
		return parseClassWithMembersAndTypes(c, reg)
	case format.BinaryObjectString:
		return parseBinaryObjectString(c)
	case format.BinaryArray:
		return parseBinaryArray(c, reg)
	case format.MemberPrimitiveTyped:
		return parseMemberPrimitiveTyped(c)
	case format.MemberReference:
		return parseMemberReference(c)
	case format.ObjectNull:
		return parseObjectNull(c)
	case format.MessageEnd:
		return parseMessageEnd(c)
	case format.BinaryLibrary:
		return parseBinaryLibrary(c)
	case format.ObjectNullMultiple256:
		return parseObjectNullMultiple256(c)
	case format.ArraySinglePrimitive:
		return parseArraySinglePrimitive(c)
	case format.ArraySingleObject:
		return parseArraySingleObject(c, reg)
	case format.ArraySingleString:
		return parseArraySingleString(c, reg)
	default:
		return nil, errs.Errorf(c.Position(), errs.ErrUnknownRecord, "tag %d", b)
	}
}

// expectTag reads the tag byte and asserts it equals want.
func expectTag(c *cursor.Cursor, want format.RecordTag) error {
	pos := c.Position()
	b, err := c.ReadU8()
	if err != nil {
		return err
	}
	got := format.RecordTag(b)
	if got != want {
		return errs.Errorf(pos, errs.ErrRecordTagMismatch, "expected %s, got %s", want, got)
	}

	return nil
}
