package record

import (
	"github.com/zeroed-tech/viewstate-decoder/cursor"
	"github.com/zeroed-tech/viewstate-decoder/errs"
	"github.com/zeroed-tech/viewstate-decoder/format"
	"github.com/zeroed-tech/viewstate-decoder/primitive"
	"github.com/zeroed-tech/viewstate-decoder/registry"
)

func parseClassInfo(c *cursor.Cursor) (format.ClassInfo, error) {
	objectId, err := c.ReadI32()
	if err != nil {
		return format.ClassInfo{}, err
	}
	name, err := c.ReadVarString()
	if err != nil {
		return format.ClassInfo{}, err
	}
	count, err := c.ReadI32()
	if err != nil {
		return format.ClassInfo{}, err
	}

	names := make([]string, count)
	for i := range names {
		n, err := c.ReadVarString()
		if err != nil {
			return format.ClassInfo{}, err
		}
		names[i] = n
	}

	return format.ClassInfo{ObjectId: objectId, Name: name, MemberCount: count, MemberNames: names}, nil
}

// parseMemberTypeInfo reads the parallel binTypes/additionalInfo arrays
// that follow a ClassInfo, per spec.md §3 and §4.4.
func parseMemberTypeInfo(c *cursor.Cursor, count int32) (format.MemberTypeInfo, error) {
	binTypes := make([]format.BinaryTypeKind, count)
	for i := range binTypes {
		b, err := c.ReadU8()
		if err != nil {
			return format.MemberTypeInfo{}, err
		}
		binTypes[i] = format.BinaryTypeKind(b)
	}

	additional := make([]format.AdditionalInfo, count)
	for i, bt := range binTypes {
		info, err := readAdditionalInfo(c, bt)
		if err != nil {
			return format.MemberTypeInfo{}, err
		}
		additional[i] = info
	}

	return format.MemberTypeInfo{BinTypes: binTypes, AdditionalInfo: additional}, nil
}

// readAdditionalInfo reads the per-type extra descriptor, per spec.md §3's
// AdditionalInfo rules: string for SystemClass, ClassTypeInfo for Class,
// PrimitiveKind for Primitive/PrimitiveArray, none otherwise.
func readAdditionalInfo(c *cursor.Cursor, bt format.BinaryTypeKind) (format.AdditionalInfo, error) {
	switch bt {
	case format.SystemClass:
		name, err := c.ReadVarString()
		if err != nil {
			return format.AdditionalInfo{}, err
		}

		return format.AdditionalInfo{ClassName: name, HasValue: true}, nil

	case format.Class:
		libName, err := c.ReadVarString()
		if err != nil {
			return format.AdditionalInfo{}, err
		}
		libId, err := c.ReadI32()
		if err != nil {
			return format.AdditionalInfo{}, err
		}

		return format.AdditionalInfo{
			ClassType: format.ClassTypeInfo{LibraryName: libName, LibraryId: libId},
			HasValue:  true,
		}, nil

	case format.Primitive, format.PrimitiveArray:
		b, err := c.ReadU8()
		if err != nil {
			return format.AdditionalInfo{}, err
		}
		kind := format.PrimitiveKind(b)
		if !kind.Valid() {
			return format.AdditionalInfo{}, errs.Errorf(c.Position(), errs.ErrBadPrimitive, "kind %d", b)
		}

		return format.AdditionalInfo{Primitive: kind, HasValue: true}, nil

	default:
		return format.AdditionalInfo{}, nil
	}
}

// readValues reads n member/element values per spec.md §4.6's three-way
// split: Primitive is read inline using the paired additional info; Class
// is read as a raw ClassTypeInfo, not dispatched; every other
// BinaryTypeKind (String/Object/SystemClass/ObjectArray/StringArray/
// PrimitiveArray) is read as a nested record via the dispatcher.
func readValues(c *cursor.Cursor, reg *registry.Registry, binTypes []format.BinaryTypeKind, additional []format.AdditionalInfo) ([]MemberValue, error) {
	values := make([]MemberValue, len(binTypes))
	for i, bt := range binTypes {
		switch bt {
		case format.Primitive:
			v, err := primitive.Read(c, additional[i].Primitive)
			if err != nil {
				return nil, err
			}
			values[i] = MemberValue{Primitive: &v}

		case format.Class:
			ct, err := readClassTypeInfo(c)
			if err != nil {
				return nil, err
			}
			values[i] = MemberValue{ClassType: &ct}

		default:
			rec, err := Dispatch(c, reg)
			if err != nil {
				return nil, err
			}
			values[i] = MemberValue{Record: rec}
		}
	}

	return values, nil
}

// readClassTypeInfo reads a raw ClassTypeInfo value (library-qualified
// class reference) directly off the cursor: a varstring library name
// followed by an i32 library id, mirroring the shape AdditionalInfo uses
// for a Class-typed member's type descriptor.
func readClassTypeInfo(c *cursor.Cursor) (format.ClassTypeInfo, error) {
	libName, err := c.ReadVarString()
	if err != nil {
		return format.ClassTypeInfo{}, err
	}
	libId, err := c.ReadI32()
	if err != nil {
		return format.ClassTypeInfo{}, err
	}

	return format.ClassTypeInfo{LibraryName: libName, LibraryId: libId}, nil
}

func parseClassWithId(c *cursor.Cursor, reg *registry.Registry) (Record, error) {
	if err := expectTag(c, format.ClassWithId); err != nil {
		return nil, err
	}

	objectId, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	metadataId, err := c.ReadI32()
	if err != nil {
		return nil, err
	}

	layout, err := reg.Lookup(metadataId)
	if err != nil {
		return nil, err
	}

	members, err := readValues(c, reg, layout.MemberTypeInfo.BinTypes, layout.MemberTypeInfo.AdditionalInfo)
	if err != nil {
		return nil, err
	}

	return ClassWithId{ObjectId: objectId, MetadataId: metadataId, Layout: layout, Members: members}, nil
}

func parseSystemClassWithMembers(c *cursor.Cursor) (Record, error) {
	if err := expectTag(c, format.SystemClassWithMembers); err != nil {
		return nil, err
	}

	ci, err := parseClassInfo(c)
	if err != nil {
		return nil, err
	}

	return SystemClassWithMembers{ClassInfo: ci}, nil
}

func parseSystemClassWithMembersAndTypes(c *cursor.Cursor, reg *registry.Registry) (Record, error) {
	if err := expectTag(c, format.SystemClassWithMembersAndTypes); err != nil {
		return nil, err
	}

	ci, err := parseClassInfo(c)
	if err != nil {
		return nil, err
	}
	mti, err := parseMemberTypeInfo(c, ci.MemberCount)
	if err != nil {
		return nil, err
	}

	if err := reg.Register(ci.ObjectId, format.Layout{ClassInfo: ci, MemberTypeInfo: mti}); err != nil {
		return nil, err
	}

	members, err := readValues(c, reg, mti.BinTypes, mti.AdditionalInfo)
	if err != nil {
		return nil, err
	}

	return SystemClassWithMembersAndTypes{ClassInfo: ci, MemberTypeInfo: mti, Members: members}, nil
}

func parseClassWithMembersAndTypes(c *cursor.Cursor, reg *registry.Registry) (Record, error) {
	if err := expectTag(c, format.ClassWithMembersAndTypes); err != nil {
		return nil, err
	}

	ci, err := parseClassInfo(c)
	if err != nil {
		return nil, err
	}
	mti, err := parseMemberTypeInfo(c, ci.MemberCount)
	if err != nil {
		return nil, err
	}
	libraryId, err := c.ReadI32()
	if err != nil {
		return nil, err
	}

	if err := reg.Register(ci.ObjectId, format.Layout{ClassInfo: ci, MemberTypeInfo: mti}); err != nil {
		return nil, err
	}

	members, err := readValues(c, reg, mti.BinTypes, mti.AdditionalInfo)
	if err != nil {
		return nil, err
	}

	return ClassWithMembersAndTypes{ClassInfo: ci, MemberTypeInfo: mti, LibraryId: libraryId, Members: members}, nil
}
