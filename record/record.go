// Package record implements the per-variant NRBF record parsers of spec.md
// §4.4 and the RecordDispatcher of §4.3: a static mapping from record tag to
// variant constructor (design notes §9), replacing runtime reflection.
package record

import (
	"github.com/zeroed-tech/viewstate-decoder/format"
	"github.com/zeroed-tech/viewstate-decoder/value"
)

// Record is the sum type over all NRBF record kinds. Every concrete variant
// retains its parsed payload verbatim for later graph assembly.
type Record interface {
	Tag() format.RecordTag
}

// MemberValue is the result of reading one member/element value per the
// rules in spec.md §4.6. Exactly one field is populated:
//
//	Record    - binType was String/Object/SystemClass/ObjectArray/
//	            StringArray/PrimitiveArray: the value is a nested record,
//	            read via the dispatcher (possibly a MemberReference, an
//	            ObjectNull, an inline class, or an array record).
//	ClassType - binType was Class: the value is a raw ClassTypeInfo
//	            (library-qualified class reference), read directly and
//	            not dispatched as a nested record.
//	Primitive - binType was Primitive: the value was read inline.
type MemberValue struct {
	Record    Record
	ClassType *format.ClassTypeInfo
	Primitive *value.Value
}

// Header is the SerializationHeader record (tag 0): must be the first
// record of a stream; carries no graph effect of its own.
type Header struct {
	RootId       int32
	HeaderId     int32
	MajorVersion int32
	MinorVersion int32
}

func (Header) Tag() format.RecordTag { return format.SerializationHeader }

// MessageEnd is the MessageEnd record (tag 11): no payload, terminates
// stream processing.
type MessageEnd struct{}

func (MessageEnd) Tag() format.RecordTag { return format.MessageEnd }

// ObjectNull is the ObjectNull record (tag 10): a single-element null
// placeholder, no payload.
type ObjectNull struct{}

func (ObjectNull) Tag() format.RecordTag { return format.ObjectNull }

// ObjectNullMultiple256 is the ObjectNullMultiple256 record (tag 13): in
// array contexts stands for NullCount consecutive nulls.
type ObjectNullMultiple256 struct {
	NullCount uint8
}

func (ObjectNullMultiple256) Tag() format.RecordTag { return format.ObjectNullMultiple256 }

// MemberReference is the MemberReference record (tag 9).
type MemberReference struct {
	IdRef int32
}

func (MemberReference) Tag() format.RecordTag { return format.MemberReference }

// MemberPrimitiveTyped is the MemberPrimitiveTyped record (tag 8).
type MemberPrimitiveTyped struct {
	Kind  format.PrimitiveKind
	Value value.Value
}

func (MemberPrimitiveTyped) Tag() format.RecordTag { return format.MemberPrimitiveTyped }

// BinaryLibrary is the BinaryLibrary record (tag 12).
type BinaryLibrary struct {
	LibraryId   int32
	LibraryName string
}

func (BinaryLibrary) Tag() format.RecordTag { return format.BinaryLibrary }

// BinaryObjectString is the BinaryObjectString record (tag 6).
type BinaryObjectString struct {
	ObjectId int32
	Value    string
}

func (BinaryObjectString) Tag() format.RecordTag { return format.BinaryObjectString }

// ClassWithId is the ClassWithId record (tag 1): reuses a previously
// registered class layout, resolved at parse time.
type ClassWithId struct {
	ObjectId   int32
	MetadataId int32
	Layout     format.Layout
	Members    []MemberValue
}

func (ClassWithId) Tag() format.RecordTag { return format.ClassWithId }

// SystemClassWithMembers is the SystemClassWithMembers record (tag 2): a
// members-only variant without types; included for completeness, no value
// read, no graph contribution beyond the node existing.
type SystemClassWithMembers struct {
	ClassInfo format.ClassInfo
}

func (SystemClassWithMembers) Tag() format.RecordTag { return format.SystemClassWithMembers }

// SystemClassWithMembersAndTypes is the SystemClassWithMembersAndTypes
// record (tag 4).
type SystemClassWithMembersAndTypes struct {
	ClassInfo      format.ClassInfo
	MemberTypeInfo format.MemberTypeInfo
	Members        []MemberValue
}

func (SystemClassWithMembersAndTypes) Tag() format.RecordTag {
	return format.SystemClassWithMembersAndTypes
}

// ClassWithMembersAndTypes is the ClassWithMembersAndTypes record (tag 5).
type ClassWithMembersAndTypes struct {
	ClassInfo      format.ClassInfo
	MemberTypeInfo format.MemberTypeInfo
	LibraryId      int32
	Members        []MemberValue
}

func (ClassWithMembersAndTypes) Tag() format.RecordTag { return format.ClassWithMembersAndTypes }

// BinaryArray is the BinaryArray record (tag 7). Element count is the
// product of Lengths (spec.md §4.4 and §9: the source-code summation is a
// documented bug, not reproduced here).
type BinaryArray struct {
	ObjectId       int32
	Shape          format.BinaryArrayShape
	Rank           int32
	Lengths        []int32
	LowerBounds    []int32 // non-nil only when Shape.HasLowerBounds()
	ElementType    format.BinaryTypeKind
	AdditionalInfo format.AdditionalInfo
	Elements       []MemberValue
}

func (BinaryArray) Tag() format.RecordTag { return format.BinaryArray }

// ArraySinglePrimitive is the ArraySinglePrimitive record (tag 15). For
// Kind == format.Byte, Bytes() exposes the packed values as a byte slice
// for NestedBlobDetector probing.
type ArraySinglePrimitive struct {
	Info   format.ArrayInfo
	Kind   format.PrimitiveKind
	Values []value.Value
}

func (ArraySinglePrimitive) Tag() format.RecordTag { return format.ArraySinglePrimitive }

// Bytes returns the packed byte values when Kind == format.Byte, or nil
// otherwise.
func (a ArraySinglePrimitive) Bytes() []byte {
	if a.Kind != format.Byte {
		return nil
	}
	out := make([]byte, len(a.Values))
	for i, v := range a.Values {
		out[i] = byte(v.AsUint())
	}

	return out
}

// ArraySingleObject is the ArraySingleObject record (tag 16).
// ObjectNullMultiple256 elements have already been expanded into repeated
// null slots, per spec.md §4.4.
type ArraySingleObject struct {
	Info     format.ArrayInfo
	Elements []MemberValue
}

func (ArraySingleObject) Tag() format.RecordTag { return format.ArraySingleObject }

// ArraySingleString is the ArraySingleString record (tag 17). Per the
// specified (not source) behavior in spec.md §9, its Length element
// records are read, the same as ArraySingleObject.
type ArraySingleString struct {
	Info     format.ArrayInfo
	Elements []MemberValue
}

func (ArraySingleString) Tag() format.RecordTag { return format.ArraySingleString }
