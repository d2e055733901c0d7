package record

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroed-tech/viewstate-decoder/cursor"
	"github.com/zeroed-tech/viewstate-decoder/errs"
	"github.com/zeroed-tech/viewstate-decoder/format"
	"github.com/zeroed-tech/viewstate-decoder/registry"
)

func i32(n int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(n)) //nolint:gosec
	return b
}

func varstr(s string) []byte {
	return append([]byte{byte(len(s))}, []byte(s)...)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestDispatchHeader(t *testing.T) {
	buf := concat([]byte{byte(format.SerializationHeader)}, i32(1), i32(0), i32(1), i32(0))
	c := cursor.New(buf)
	rec, err := Dispatch(c, registry.New())
	require.NoError(t, err)

	hdr, ok := rec.(Header)
	require.True(t, ok)
	assert.Equal(t, int32(1), hdr.RootId)
}

func TestDispatchUnknownTag(t *testing.T) {
	c := cursor.New([]byte{0xFE})
	_, err := Dispatch(c, registry.New())
	require.ErrorIs(t, err, errs.ErrUnknownRecord)
}

func TestExpectTagMismatch(t *testing.T) {
	c := cursor.New([]byte{byte(format.MessageEnd)})
	_, err := parseHeader(c)
	require.ErrorIs(t, err, errs.ErrRecordTagMismatch)
}

func TestParseBinaryLibrary(t *testing.T) {
	buf := concat([]byte{byte(format.BinaryLibrary)}, i32(5), varstr("Lib"))
	c := cursor.New(buf)
	rec, err := Dispatch(c, registry.New())
	require.NoError(t, err)

	lib, ok := rec.(BinaryLibrary)
	require.True(t, ok)
	assert.Equal(t, int32(5), lib.LibraryId)
	assert.Equal(t, "Lib", lib.LibraryName)
}

func TestParseBinaryObjectString(t *testing.T) {
	buf := concat([]byte{byte(format.BinaryObjectString)}, i32(3), varstr("hi"))
	c := cursor.New(buf)
	rec, err := Dispatch(c, registry.New())
	require.NoError(t, err)

	s, ok := rec.(BinaryObjectString)
	require.True(t, ok)
	assert.Equal(t, int32(3), s.ObjectId)
	assert.Equal(t, "hi", s.Value)
}

func TestParseMemberPrimitiveTyped(t *testing.T) {
	buf := concat([]byte{byte(format.MemberPrimitiveTyped), byte(format.Int32)}, i32(42))
	c := cursor.New(buf)
	rec, err := Dispatch(c, registry.New())
	require.NoError(t, err)

	m, ok := rec.(MemberPrimitiveTyped)
	require.True(t, ok)
	assert.Equal(t, int64(42), m.Value.AsInt())
}

func TestParseObjectNullMultiple256(t *testing.T) {
	buf := []byte{byte(format.ObjectNullMultiple256), 4}
	c := cursor.New(buf)
	rec, err := Dispatch(c, registry.New())
	require.NoError(t, err)

	n, ok := rec.(ObjectNullMultiple256)
	require.True(t, ok)
	assert.Equal(t, uint8(4), n.NullCount)
}

// systemClassPair builds the wire bytes for a SystemClassWithMembersAndTypes
// named "Pair" with two inline int32 members a=7, b=42, the shared fixture
// for scenario 2 of spec.md §8.
func systemClassPair(objectId int32, a, b int32) []byte {
	return concat(
		[]byte{byte(format.SystemClassWithMembersAndTypes)},
		i32(objectId),
		varstr("Pair"),
		i32(2),
		varstr("a"), varstr("b"),
		[]byte{byte(format.Primitive), byte(format.Primitive)},
		[]byte{byte(format.Int32), byte(format.Int32)},
		i32(a), i32(b),
	)
}

func TestParseSystemClassWithMembersAndTypes(t *testing.T) {
	buf := systemClassPair(1, 7, 42)
	c := cursor.New(buf)
	reg := registry.New()
	rec, err := Dispatch(c, reg)
	require.NoError(t, err)

	cls, ok := rec.(SystemClassWithMembersAndTypes)
	require.True(t, ok)
	assert.Equal(t, "Pair", cls.ClassInfo.Name)
	require.Len(t, cls.Members, 2)
	assert.Equal(t, int64(7), cls.Members[0].Primitive.AsInt())
	assert.Equal(t, int64(42), cls.Members[1].Primitive.AsInt())
	assert.Equal(t, 1, reg.Count())
}

func TestParseClassWithIdReusesLayout(t *testing.T) {
	reg := registry.New()
	c := cursor.New(systemClassPair(1, 7, 42))
	_, err := Dispatch(c, reg)
	require.NoError(t, err)

	buf := concat([]byte{byte(format.ClassWithId)}, i32(9), i32(1), i32(1), i32(2))
	c2 := cursor.New(buf)
	rec, err := Dispatch(c2, reg)
	require.NoError(t, err)

	cls, ok := rec.(ClassWithId)
	require.True(t, ok)
	assert.Equal(t, "Pair", cls.Layout.ClassInfo.Name)
	require.Len(t, cls.Members, 2)
	assert.Equal(t, int64(1), cls.Members[0].Primitive.AsInt())
	assert.Equal(t, int64(2), cls.Members[1].Primitive.AsInt())
}

func TestParseClassWithIdUnknownMetadata(t *testing.T) {
	buf := concat([]byte{byte(format.ClassWithId)}, i32(9), i32(99))
	c := cursor.New(buf)
	_, err := Dispatch(c, registry.New())
	require.ErrorIs(t, err, errs.ErrUnknownClassMetadata)
}

func TestParseArraySinglePrimitiveBytes(t *testing.T) {
	buf := concat(
		[]byte{byte(format.ArraySinglePrimitive)},
		i32(4), i32(3),
		[]byte{byte(format.Byte)},
		[]byte{0x10, 0x20, 0x30},
	)
	c := cursor.New(buf)
	rec, err := Dispatch(c, registry.New())
	require.NoError(t, err)

	arr, ok := rec.(ArraySinglePrimitive)
	require.True(t, ok)
	assert.Equal(t, []byte{0x10, 0x20, 0x30}, arr.Bytes())
}

func TestParseArraySingleStringReadsElements(t *testing.T) {
	buf := concat(
		[]byte{byte(format.ArraySingleString)},
		i32(4), i32(1),
		[]byte{byte(format.BinaryObjectString)}, i32(5), varstr("hi"),
	)
	c := cursor.New(buf)
	rec, err := Dispatch(c, registry.New())
	require.NoError(t, err)

	arr, ok := rec.(ArraySingleString)
	require.True(t, ok)
	require.Len(t, arr.Elements, 1)
	s, ok := arr.Elements[0].Record.(BinaryObjectString)
	require.True(t, ok)
	assert.Equal(t, "hi", s.Value)
}

func TestParseArraySingleObjectExpandsNullRun(t *testing.T) {
	buf := concat(
		[]byte{byte(format.ArraySingleObject)},
		i32(4), i32(5),
		[]byte{byte(format.ObjectNullMultiple256)}, []byte{4},
		[]byte{byte(format.BinaryObjectString)}, i32(6), varstr("hi"),
	)
	c := cursor.New(buf)
	rec, err := Dispatch(c, registry.New())
	require.NoError(t, err)

	arr, ok := rec.(ArraySingleObject)
	require.True(t, ok)
	require.Len(t, arr.Elements, 5)
	for i := 0; i < 4; i++ {
		_, ok := arr.Elements[i].Record.(ObjectNull)
		assert.True(t, ok)
	}
	_, ok = arr.Elements[4].Record.(BinaryObjectString)
	assert.True(t, ok)
}

func TestParseSystemClassWithMembersAndTypesClassMember(t *testing.T) {
	buf := concat(
		[]byte{byte(format.SystemClassWithMembersAndTypes)},
		i32(1),
		varstr("WithClassMember"),
		i32(1),
		varstr("member"),
		[]byte{byte(format.Class)},
		varstr("TypeLib"), i32(10), // additional info: the member's declared class type
		varstr("ValueLib"), i32(20), // the value itself: a raw ClassTypeInfo, per spec.md §4.6
	)
	c := cursor.New(buf)
	rec, err := Dispatch(c, registry.New())
	require.NoError(t, err)

	cls, ok := rec.(SystemClassWithMembersAndTypes)
	require.True(t, ok)
	require.Len(t, cls.Members, 1)

	require.Nil(t, cls.Members[0].Record)
	require.Nil(t, cls.Members[0].Primitive)
	require.NotNil(t, cls.Members[0].ClassType)
	assert.Equal(t, "ValueLib", cls.Members[0].ClassType.LibraryName)
	assert.Equal(t, int32(20), cls.Members[0].ClassType.LibraryId)
}

func TestParseBinaryArrayClassElementReadsRawClassTypeInfo(t *testing.T) {
	buf := concat(
		[]byte{byte(format.BinaryArray)},
		i32(4),
		[]byte{byte(format.SingleDimension)},
		i32(1),
		i32(2),
		[]byte{byte(format.Class)},
		varstr("TypeLib"), i32(10), // element type descriptor
		varstr("ValueLibA"), i32(1), // element 0 value
		varstr("ValueLibB"), i32(2), // element 1 value
	)
	c := cursor.New(buf)
	rec, err := Dispatch(c, registry.New())
	require.NoError(t, err)

	arr, ok := rec.(BinaryArray)
	require.True(t, ok)
	require.Len(t, arr.Elements, 2)
	require.NotNil(t, arr.Elements[0].ClassType)
	require.NotNil(t, arr.Elements[1].ClassType)
	assert.Equal(t, "ValueLibA", arr.Elements[0].ClassType.LibraryName)
	assert.Equal(t, "ValueLibB", arr.Elements[1].ClassType.LibraryName)
}

func TestParseBinaryArrayElementCountIsProduct(t *testing.T) {
	buf := concat(
		[]byte{byte(format.BinaryArray)},
		i32(4),
		[]byte{byte(format.Rectangular)},
		i32(2),
		i32(2), i32(3),
		[]byte{byte(format.Primitive)},
		[]byte{byte(format.Int32)},
		i32(1), i32(2), i32(3), i32(4), i32(5), i32(6),
	)
	c := cursor.New(buf)
	rec, err := Dispatch(c, registry.New())
	require.NoError(t, err)

	arr, ok := rec.(BinaryArray)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 6)
}
