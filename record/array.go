package record

import (
	"github.com/zeroed-tech/viewstate-decoder/cursor"
	"github.com/zeroed-tech/viewstate-decoder/errs"
	"github.com/zeroed-tech/viewstate-decoder/format"
	"github.com/zeroed-tech/viewstate-decoder/primitive"
	"github.com/zeroed-tech/viewstate-decoder/registry"
	"github.com/zeroed-tech/viewstate-decoder/value"
)

func parseArrayInfo(c *cursor.Cursor) (format.ArrayInfo, error) {
	objectId, err := c.ReadI32()
	if err != nil {
		return format.ArrayInfo{}, err
	}
	length, err := c.ReadI32()
	if err != nil {
		return format.ArrayInfo{}, err
	}
	if length < 0 {
		return format.ArrayInfo{}, errs.Errorf(c.Position(), errs.ErrUnsupportedFeature, "negative array length %d", length)
	}

	return format.ArrayInfo{ObjectId: objectId, Length: length}, nil
}

// readArrayElements reads total element values of the given uniform
// BinaryTypeKind, per spec.md §4.4's "same rules as MemberTypeInfo.
// ReadValues". ObjectNullMultiple256 records expand into NullCount
// consecutive null slots, per spec.md §4.4's ArraySingleObject rule,
// applied uniformly to any object-context array.
func readArrayElements(c *cursor.Cursor, reg *registry.Registry, total int, bt format.BinaryTypeKind, info format.AdditionalInfo) ([]MemberValue, error) {
	elements := make([]MemberValue, 0, total)
	for len(elements) < total {
		switch bt {
		case format.Primitive:
			v, err := primitive.Read(c, info.Primitive)
			if err != nil {
				return nil, err
			}
			elements = append(elements, MemberValue{Primitive: &v})

			continue

		case format.Class:
			ct, err := readClassTypeInfo(c)
			if err != nil {
				return nil, err
			}
			elements = append(elements, MemberValue{ClassType: &ct})

			continue
		}

		rec, err := Dispatch(c, reg)
		if err != nil {
			return nil, err
		}

		if nm, ok := rec.(ObjectNullMultiple256); ok {
			for i := 0; i < int(nm.NullCount) && len(elements) < total; i++ {
				elements = append(elements, MemberValue{Record: ObjectNull{}})
			}

			continue
		}

		elements = append(elements, MemberValue{Record: rec})
	}

	return elements, nil
}

func parseArraySingleObject(c *cursor.Cursor, reg *registry.Registry) (Record, error) {
	if err := expectTag(c, format.ArraySingleObject); err != nil {
		return nil, err
	}

	info, err := parseArrayInfo(c)
	if err != nil {
		return nil, err
	}

	elements, err := readArrayElements(c, reg, int(info.Length), format.Object, format.AdditionalInfo{})
	if err != nil {
		return nil, err
	}

	return ArraySingleObject{Info: info, Elements: elements}, nil
}

// parseArraySingleString reads its Length element records, per the
// specified (not source) behavior in spec.md §9.
func parseArraySingleString(c *cursor.Cursor, reg *registry.Registry) (Record, error) {
	if err := expectTag(c, format.ArraySingleString); err != nil {
		return nil, err
	}

	info, err := parseArrayInfo(c)
	if err != nil {
		return nil, err
	}

	elements, err := readArrayElements(c, reg, int(info.Length), format.StringType, format.AdditionalInfo{})
	if err != nil {
		return nil, err
	}

	return ArraySingleString{Info: info, Elements: elements}, nil
}

func parseArraySinglePrimitive(c *cursor.Cursor) (Record, error) {
	if err := expectTag(c, format.ArraySinglePrimitive); err != nil {
		return nil, err
	}

	info, err := parseArrayInfo(c)
	if err != nil {
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

	values := make([]value.Value, info.Length)
	for i := range values {
		v, err := primitive.Read(c, kind)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	return ArraySinglePrimitive{Info: info, Kind: kind, Values: values}, nil
}

func parseBinaryArray(c *cursor.Cursor, reg *registry.Registry) (Record, error) {
	if err := expectTag(c, format.BinaryArray); err != nil {
		return nil, err
	}

	objectId, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	shapeByte, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	shape := format.BinaryArrayShape(shapeByte)

	rank, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	if rank < 1 {
		return nil, errs.Errorf(c.Position(), errs.ErrUnsupportedFeature, "array rank %d", rank)
	}

	lengths := make([]int32, rank)
	for i := range lengths {
		l, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		lengths[i] = l
	}

	var lowerBounds []int32
	if shape.HasLowerBounds() {
		lowerBounds = make([]int32, rank)
		for i := range lowerBounds {
			l, err := c.ReadI32()
			if err != nil {
				return nil, err
			}
			lowerBounds[i] = l
		}
	}

	typeByte, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	elementType := format.BinaryTypeKind(typeByte)

	info, err := readAdditionalInfo(c, elementType)
	if err != nil {
		return nil, err
	}

	total := int64(1)
	for _, l := range lengths {
		total *= int64(l)
	}
	if total < 0 || total > (1<<32) {
		return nil, errs.Errorf(c.Position(), errs.ErrUnsupportedFeature, "array element count %d out of range", total)
	}

	elements, err := readArrayElements(c, reg, int(total), elementType, info)
	if err != nil {
		return nil, err
	}

	return BinaryArray{
		ObjectId:       objectId,
		Shape:          shape,
		Rank:           rank,
		Lengths:        lengths,
		LowerBounds:    lowerBounds,
		ElementType:    elementType,
		AdditionalInfo: info,
		Elements:       elements,
	}, nil
}
