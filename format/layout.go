package format

// ClassInfo is the common class-description prefix shared by
// ClassWithId's referent, SystemClassWithMembers(AndTypes), and
// ClassWithMembersAndTypes.
type ClassInfo struct {
	ObjectId    int32
	Name        string
	MemberCount int32
	MemberNames []string
}

// AdditionalInfo is the per-member extra type descriptor that accompanies
// a BinaryTypeKind in MemberTypeInfo and in BinaryArray's element type.
// Exactly one field is meaningful, selected by the paired BinaryTypeKind:
//
//	Primitive, PrimitiveArray -> PrimitiveKind
//	SystemClass               -> LibraryName-less type name (string)
//	Class                     -> ClassType
//
// String/Object/StringArray/ObjectArray carry no additional info.
type AdditionalInfo struct {
	Primitive  PrimitiveKind
	ClassName  string
	ClassType  ClassTypeInfo
	HasValue   bool
}

// ClassTypeInfo is the additional-info payload for BinaryTypeKind.Class.
type ClassTypeInfo struct {
	LibraryName string
	LibraryId   int32
}

// MemberTypeInfo holds the per-member type descriptors that follow a
// ClassInfo in SystemClassWithMembersAndTypes / ClassWithMembersAndTypes,
// and the single element-type descriptor of a BinaryArray.
type MemberTypeInfo struct {
	BinTypes       []BinaryTypeKind
	AdditionalInfo []AdditionalInfo
}

// Layout is the reusable (ClassInfo, MemberTypeInfo) pair that a
// ClassLayoutRegistry stores keyed by class object id, so a later
// ClassWithId record can read its members without repeating the
// type descriptors.
type Layout struct {
	ClassInfo      ClassInfo
	MemberTypeInfo MemberTypeInfo
}

// ArrayInfo is the common (objectId, length) prefix of every NRBF array record.
type ArrayInfo struct {
	ObjectId int32
	Length   int32
}
