package decode

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroed-tech/viewstate-decoder/errs"
	"github.com/zeroed-tech/viewstate-decoder/format"
	"github.com/zeroed-tech/viewstate-decoder/record"
	"github.com/zeroed-tech/viewstate-decoder/value"
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

func header(rootId int32) []byte {
	return concat([]byte{byte(format.SerializationHeader)}, i32(rootId), i32(0), i32(1), i32(0))
}

func messageEnd() []byte {
	return []byte{byte(format.MessageEnd)}
}

func binaryObjectString(objectId int32, s string) []byte {
	return concat([]byte{byte(format.BinaryObjectString)}, i32(objectId), varstr(s))
}

func TestDecodeSimpleStream(t *testing.T) {
	buf := concat(header(1), binaryObjectString(1, "hello"), messageEnd())

	result, err := New(buf, nil).Decode()
	require.NoError(t, err)
	assert.Equal(t, int32(1), result.RootId)

	node := result.Graph.NodeFor(1)
	assert.Equal(t, "String", node.Type)
	assert.Equal(t, "hello", node.Value.AsString())
}

func TestDecodeMissingHeaderErrors(t *testing.T) {
	buf := concat(binaryObjectString(1, "hello"), messageEnd())
	_, err := New(buf, nil).Decode()
	require.ErrorIs(t, err, errs.ErrMissingHeader)
}

func TestDecodeCannotBeReused(t *testing.T) {
	buf := concat(header(1), messageEnd())
	d := New(buf, nil)

	_, err := d.Decode()
	require.NoError(t, err)

	_, err = d.Decode()
	require.Error(t, err)
}

func TestDecodeTrailingBytesAfterMessageEndAreIgnored(t *testing.T) {
	buf := concat(header(1), messageEnd(), []byte{0xFF, 0xFF, 0xFF})
	_, err := New(buf, nil).Decode()
	require.NoError(t, err)
}

// innerStream builds a minimal, complete NRBF stream suitable for embedding
// as the packed bytes of an outer Byte[] array. Its root is a one-member
// class (rather than a bare top-level string) since only class records
// attach themselves to the stream's synthetic ROOT node.
func innerStream(classId int32, stringId int32, s string) []byte {
	class := concat(
		[]byte{byte(format.SystemClassWithMembersAndTypes)},
		i32(classId), varstr("Note"),
		i32(1), varstr("text"),
		[]byte{byte(format.StringType)},
	)
	stringRec := binaryObjectString(stringId, s)

	return concat(header(1), class, stringRec, messageEnd())
}

func byteArrayRecord(objectId int32, payload []byte) []byte {
	return concat(
		[]byte{byte(format.ArraySinglePrimitive)},
		i32(objectId), i32(int32(len(payload))),
		[]byte{byte(format.Byte)},
		payload,
	)
}

func TestDecodeDetectsNestedBlobInline(t *testing.T) {
	inner := innerStream(1, 3, "nested-value")
	require.Greater(t, len(inner), 17)

	buf := concat(header(9), byteArrayRecord(2, inner), messageEnd())

	result, err := New(buf, NewNestedBlobDetector()).Decode()
	require.NoError(t, err)
	assert.Empty(t, result.Nested)

	node := result.Graph.NodeFor(2)
	assert.Equal(t, "Byte[]", node.Type)
	require.Len(t, node.Members, 1)
	wrapper := node.Members[0]
	assert.Equal(t, "$nested", wrapper.Name)
	require.Len(t, wrapper.Members, 1)
	note := wrapper.Members[0]
	assert.Equal(t, "Note", note.Type)
	require.Len(t, note.Members, 1)
	assert.Equal(t, "nested-value", note.Members[0].Value.AsString())
}

func TestDecodeDetectsNestedBlobSeparate(t *testing.T) {
	inner := innerStream(1, 3, "nested-value")
	buf := concat(header(9), byteArrayRecord(2, inner), messageEnd())

	result, err := New(buf, NewNestedBlobDetector()).WithNestedMode(NestedSeparate).Decode()
	require.NoError(t, err)
	require.Len(t, result.Nested, 1)
	assert.Equal(t, int32(2), result.Nested[0].ObjectId)

	node := result.Graph.NodeFor(2)
	assert.Equal(t, "Byte[]", node.Type)
	assert.Empty(t, node.Members)
}

func TestDecodeWithNilDetectorSkipsNestedProbing(t *testing.T) {
	inner := innerStream(1, 3, "nested-value")
	buf := concat(header(9), byteArrayRecord(2, inner), messageEnd())

	result, err := New(buf, nil).Decode()
	require.NoError(t, err)
	assert.Empty(t, result.Nested)

	node := result.Graph.NodeFor(2)
	assert.Equal(t, "Byte[]", node.Type)
	assert.Empty(t, node.Members)
}

func TestNestedBlobDetectorRejectsNonBlobBytes(t *testing.T) {
	d := NewNestedBlobDetector()
	short := byteValues([]byte{0x00, 0x01, 0x02})
	arr := record.ArraySinglePrimitive{
		Info:   format.ArrayInfo{ObjectId: 1, Length: int32(len(short))},
		Kind:   format.Byte,
		Values: short,
	}

	sub, err := d.Detect(arr)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func byteValues(raw []byte) []value.Value {
	out := make([]value.Value, len(raw))
	for i, b := range raw {
		out[i] = value.Uint8(b)
	}

	return out
}
