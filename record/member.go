package record

import (
	"github.com/zeroed-tech/viewstate-decoder/cursor"
	"github.com/zeroed-tech/viewstate-decoder/errs"
	"github.com/zeroed-tech/viewstate-decoder/format"
	"github.com/zeroed-tech/viewstate-decoder/primitive"
)

func parseMemberPrimitiveTyped(c *cursor.Cursor) (Record, error) {
	if err := expectTag(c, format.MemberPrimitiveTyped); err != nil {
		return nil, err
	}

	kindByte, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	kind := format.PrimitiveKind(kindByte)
	if !kind.Valid() {
		return nil, errs.Errorf(c.Position(), errs.ErrBadPrimitive, "kind %d", kindByte)
	}

	v, err := primitive.Read(c, kind)
	if err != nil {
		return nil, err
	}

	return MemberPrimitiveTyped{Kind: kind, Value: v}, nil
}

func parseMemberReference(c *cursor.Cursor) (Record, error) {
	if err := expectTag(c, format.MemberReference); err != nil {
		return nil, err
	}

	idRef, err := c.ReadI32()
	if err != nil {
		return nil, err
	}

	return MemberReference{IdRef: idRef}, nil
}

func parseObjectNull(c *cursor.Cursor) (Record, error) {
	if err := expectTag(c, format.ObjectNull); err != nil {
		return nil, err
	}

	return ObjectNull{}, nil
}

func parseObjectNullMultiple256(c *cursor.Cursor) (Record, error) {
	if err := expectTag(c, format.ObjectNullMultiple256); err != nil {
		return nil, err
	}

	count, err := c.ReadU8()
	if err != nil {
		return nil, err
	}

	return ObjectNullMultiple256{NullCount: count}, nil
}
