package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroed-tech/viewstate-decoder/format"
	"github.com/zeroed-tech/viewstate-decoder/record"
	"github.com/zeroed-tech/viewstate-decoder/value"
)

func primVal(v value.Value) *value.Value { return &v }

func TestApplyHeaderAndMessageEndAreNoOps(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Apply(record.Header{RootId: 1}))
	require.NoError(t, b.Apply(record.MessageEnd{}))
	assert.Empty(t, b.Root().Members)
}

func TestApplySystemClassAttachesToRoot(t *testing.T) {
	b := NewBuilder()
	cls := record.SystemClassWithMembersAndTypes{
		ClassInfo: format.ClassInfo{ObjectId: 1, Name: "Pair", MemberCount: 2, MemberNames: []string{"a", "b"}},
		Members: []record.MemberValue{
			{Primitive: primVal(value.Int32(7))},
			{Primitive: primVal(value.Int32(42))},
		},
	}
	require.NoError(t, b.Apply(cls))

	require.Len(t, b.Root().Members, 1)
	node := b.Root().Members[0]
	assert.Equal(t, "Pair", node.Type)
	require.Len(t, node.Members, 2)
	assert.Equal(t, "a", node.Members[0].Name)
	assert.Equal(t, int64(7), node.Members[0].Value.AsInt())
	assert.Equal(t, "b", node.Members[1].Name)
	assert.Equal(t, int64(42), node.Members[1].Value.AsInt())
}

func TestApplyLibraryAndClassWithMembersAndTypes(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Apply(record.BinaryLibrary{LibraryId: 5, LibraryName: "MyLib"}))

	cls := record.ClassWithMembersAndTypes{
		ClassInfo: format.ClassInfo{ObjectId: 2, Name: "Widget", MemberCount: 1, MemberNames: []string{"name"}},
		LibraryId: 5,
		Members: []record.MemberValue{
			{Record: record.BinaryObjectString{ObjectId: 3, Value: "hello"}},
		},
	}
	require.NoError(t, b.Apply(cls))

	require.Len(t, b.Root().Members, 1)
	lib := b.Root().Members[0]
	assert.Equal(t, "MyLib", lib.Type)
	require.Len(t, lib.Members, 1)
	widget := lib.Members[0]
	assert.Equal(t, "Widget", widget.Type)
	require.Len(t, widget.Members, 1)
	assert.Equal(t, "String", widget.Members[0].Type)
	assert.Equal(t, "hello", widget.Members[0].Value.AsString())
}

func TestMemberReferenceSharesNode(t *testing.T) {
	b := NewBuilder()
	// A top-level string resolves node id 9 first.
	require.NoError(t, b.Apply(record.BinaryObjectString{ObjectId: 9, Value: "shared"}))

	cls := record.SystemClassWithMembersAndTypes{
		ClassInfo: format.ClassInfo{ObjectId: 1, Name: "Holder", MemberCount: 1, MemberNames: []string{"ref"}},
		Members: []record.MemberValue{
			{Record: record.MemberReference{IdRef: 9}},
		},
	}
	require.NoError(t, b.Apply(cls))

	holder := b.Root().Members[len(b.Root().Members)-1]
	require.Len(t, holder.Members, 1)
	shared := holder.Members[0]
	assert.Equal(t, "String", shared.Type)
	assert.Equal(t, "shared", shared.Value.AsString())
	assert.Same(t, b.NodeFor(9), shared)
}

func TestClassWithIdReusesLayout(t *testing.T) {
	b := NewBuilder()
	layout := format.Layout{
		ClassInfo: format.ClassInfo{ObjectId: 1, Name: "Pair", MemberCount: 2, MemberNames: []string{"a", "b"}},
	}
	first := record.SystemClassWithMembersAndTypes{
		ClassInfo: layout.ClassInfo,
		Members: []record.MemberValue{
			{Primitive: primVal(value.Int32(1))},
			{Primitive: primVal(value.Int32(2))},
		},
	}
	require.NoError(t, b.Apply(first))

	reused := record.ClassWithId{
		ObjectId:   2,
		MetadataId: 1,
		Layout:     layout,
		Members: []record.MemberValue{
			{Primitive: primVal(value.Int32(3))},
			{Primitive: primVal(value.Int32(4))},
		},
	}
	node, err := b.materialize(reused)
	require.NoError(t, err)
	assert.Equal(t, "Pair", node.Type)
	require.Len(t, node.Members, 2)
	assert.Equal(t, int64(3), node.Members[0].Value.AsInt())
}

func TestArraySingleObjectExpandedNullsBecomeChildren(t *testing.T) {
	b := NewBuilder()
	arr := record.ArraySingleObject{
		Info: format.ArrayInfo{ObjectId: 4, Length: 3},
		Elements: []record.MemberValue{
			{Record: record.ObjectNull{}},
			{Record: record.ObjectNull{}},
			{Record: record.BinaryObjectString{ObjectId: 5, Value: "tail"}},
		},
	}
	require.NoError(t, b.Apply(arr))

	node := b.NodeFor(4)
	assert.Equal(t, "Object[]", node.Type)
	require.Len(t, node.Members, 3)
	assert.Equal(t, "Null", node.Members[0].Type)
	assert.Equal(t, "Null", node.Members[1].Type)
	assert.Equal(t, "String", node.Members[2].Type)
	assert.Equal(t, "2", node.Members[2].Name)
}

func TestApplyNestedBlobGraftsSubgraphUnderSyntheticChild(t *testing.T) {
	outer := NewBuilder()
	arr := record.ArraySinglePrimitive{
		Info:   format.ArrayInfo{ObjectId: 7, Length: 3},
		Kind:   format.Byte,
		Values: []value.Value{value.Uint8(1), value.Uint8(2), value.Uint8(3)},
	}

	inner := NewBuilder()
	require.NoError(t, inner.Apply(record.SystemClassWithMembersAndTypes{
		ClassInfo: format.ClassInfo{ObjectId: 1, Name: "Note", MemberCount: 1, MemberNames: []string{"text"}},
		Members: []record.MemberValue{
			{Record: record.BinaryObjectString{ObjectId: 3, Value: "nested-value"}},
		},
	}))

	node := outer.ApplyNestedBlob(arr, inner)
	assert.Equal(t, "Byte[]", node.Type)
	assert.Equal(t, []byte{1, 2, 3}, node.Value.AsBytes())
	require.Len(t, node.Members, 1)
	wrapper := node.Members[0]
	assert.Equal(t, "$nested", wrapper.Name)
	require.Len(t, wrapper.Members, 1)
	note := wrapper.Members[0]
	require.Len(t, note.Members, 1)
	assert.Equal(t, "nested-value", note.Members[0].Value.AsString())
}

func TestDuplicateLibraryIsError(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Apply(record.BinaryLibrary{LibraryId: 1, LibraryName: "A"}))
	err := b.Apply(record.BinaryLibrary{LibraryId: 1, LibraryName: "A"})
	require.Error(t, err)
}

func TestApplySystemClassWithClassTypedMemberRendersRawClassTypeInfo(t *testing.T) {
	b := NewBuilder()
	cls := record.SystemClassWithMembersAndTypes{
		ClassInfo: format.ClassInfo{ObjectId: 1, Name: "WithClassMember", MemberCount: 1, MemberNames: []string{"member"}},
		Members: []record.MemberValue{
			{ClassType: &format.ClassTypeInfo{LibraryName: "ValueLib", LibraryId: 20}},
		},
	}
	require.NoError(t, b.Apply(cls))

	require.Len(t, b.Root().Members, 1)
	node := b.Root().Members[0]
	require.Len(t, node.Members, 1)
	member := node.Members[0]
	assert.Equal(t, "member", member.Name)
	assert.Equal(t, "ClassTypeInfo", member.Type)
	require.NotNil(t, member.Value)
	assert.Contains(t, member.Value.AsString(), "ValueLib")
}

func TestClassWithMembersAndTypesUnknownLibraryIsError(t *testing.T) {
	b := NewBuilder()
	cls := record.ClassWithMembersAndTypes{
		ClassInfo: format.ClassInfo{ObjectId: 2, Name: "Widget"},
		LibraryId: 99,
	}
	err := b.Apply(cls)
	require.Error(t, err)
}
