package graph

import (
	"fmt"
	"strconv"

	"github.com/zeroed-tech/viewstate-decoder/errs"
	"github.com/zeroed-tech/viewstate-decoder/format"
	"github.com/zeroed-tech/viewstate-decoder/record"
	"github.com/zeroed-tech/viewstate-decoder/value"
)

// Builder is the ObjectGraphBuilder of spec.md §4.7. It owns an id-indexed
// arena of nodes so that true reference cycles in the stream resolve to a
// shared pointer instead of duplicating nodes, per the memory-ownership
// model in spec.md §5. A Builder must not be shared across parse instances.
type Builder struct {
	nodes     map[int32]*Node
	root      *Node
	libraries map[int32]*Node
}

// NewBuilder creates an empty graph rooted at a synthetic ROOT node.
func NewBuilder() *Builder {
	return &Builder{
		nodes:     make(map[int32]*Node),
		root:      &Node{Id: UnresolvedId, Type: "ROOT"},
		libraries: make(map[int32]*Node),
	}
}

// Root returns the synthetic ROOT node.
func (b *Builder) Root() *Node {
	return b.root
}

// NodeFor returns the existing node for id, or creates an unresolved
// placeholder, per spec.md §4.7.
func (b *Builder) NodeFor(id int32) *Node {
	if n, ok := b.nodes[id]; ok {
		return n
	}
	n := &Node{Id: id, Type: "Unresolved"}
	b.nodes[id] = n

	return n
}

// Apply offers one top-level (stream-order) record to the graph, per
// spec.md §4.4's per-variant "Graph:" rules. Records with no direct graph
// effect of their own (SerializationHeader, MessageEnd) are no-ops.
func (b *Builder) Apply(rec record.Record) error {
	switch r := rec.(type) {
	case record.Header, record.MessageEnd:
		return nil
	case record.BinaryLibrary:
		return b.applyLibrary(r)
	case record.SystemClassWithMembers:
		node := b.NodeFor(r.ClassInfo.ObjectId)
		node.Type = r.ClassInfo.Name
		node.markResolved()

		return nil
	default:
		_, err := b.materialize(rec)

		return err
	}
}

func (b *Builder) applyLibrary(r record.BinaryLibrary) error {
	if _, exists := b.libraries[r.LibraryId]; exists {
		return errs.Errorf(0, errs.ErrDuplicateLibrary, "library id %d (%q)", r.LibraryId, r.LibraryName)
	}
	node := b.NodeFor(r.LibraryId)
	node.Type = r.LibraryName
	node.markResolved()
	b.libraries[r.LibraryId] = node
	b.root.AddMember(node)

	return nil
}

// materialize turns any record (whether top-level, or the value-record of
// a member/array-element slot) into its graph node, recursing into its own
// members/elements exactly once per object id.
func (b *Builder) materialize(rec record.Record) (*Node, error) {
	switch r := rec.(type) {
	case record.MemberReference:
		return b.NodeFor(r.IdRef), nil

	case record.ObjectNull:
		return &Node{Id: UnresolvedId, Type: "Null", Value: valuePtr(value.Null())}, nil

	case record.ObjectNullMultiple256:
		// Only reached when one appears outside an array context; legal but
		// semantically vacuous per spec.md §4.4 — represented as one null.
		return &Node{Id: UnresolvedId, Type: "Null", Value: valuePtr(value.Null())}, nil

	case record.MemberPrimitiveTyped:
		return &Node{Id: UnresolvedId, Type: r.Kind.String(), Value: valuePtr(r.Value)}, nil

	case record.BinaryObjectString:
		node := b.NodeFor(r.ObjectId)
		if node.Resolved() {
			return node, nil
		}
		node.Type = "String"
		node.Value = valuePtr(value.String(r.Value))
		node.markResolved()

		return node, nil

	case record.ClassWithId:
		node := b.NodeFor(r.ObjectId)
		if node.Resolved() {
			return node, nil
		}
		node.Type = r.Layout.ClassInfo.Name
		node.markResolved()
		if err := b.attachMembers(node, r.Layout.ClassInfo.MemberNames, r.Members); err != nil {
			return nil, err
		}

		return node, nil

	case record.SystemClassWithMembers:
		node := b.NodeFor(r.ClassInfo.ObjectId)
		node.Type = r.ClassInfo.Name
		node.markResolved()

		return node, nil

	case record.SystemClassWithMembersAndTypes:
		node := b.NodeFor(r.ClassInfo.ObjectId)
		if node.Resolved() {
			return node, nil
		}
		node.Type = r.ClassInfo.Name
		node.markResolved()
		b.root.AddMember(node)
		if err := b.attachMembers(node, r.ClassInfo.MemberNames, r.Members); err != nil {
			return nil, err
		}

		return node, nil

	case record.ClassWithMembersAndTypes:
		node := b.NodeFor(r.ClassInfo.ObjectId)
		if node.Resolved() {
			return node, nil
		}
		node.Type = r.ClassInfo.Name
		node.markResolved()
		lib, ok := b.libraries[r.LibraryId]
		if !ok {
			return nil, errs.Errorf(0, errs.ErrUnknownLibrary, "library id %d", r.LibraryId)
		}
		lib.AddMember(node)
		if err := b.attachMembers(node, r.ClassInfo.MemberNames, r.Members); err != nil {
			return nil, err
		}

		return node, nil

	case record.BinaryArray:
		node := b.NodeFor(r.ObjectId)
		if node.Resolved() {
			return node, nil
		}
		node.Type = r.ElementType.String() + "[]"
		node.markResolved()
		if err := b.attachElements(node, r.Elements); err != nil {
			return nil, err
		}

		return node, nil

	case record.ArraySinglePrimitive:
		node := b.NodeFor(r.Info.ObjectId)
		if node.Resolved() {
			return node, nil
		}
		node.Type = r.Kind.String() + "[]"
		node.markResolved()
		if r.Kind == format.Byte {
			node.Value = valuePtr(value.Bytes(r.Bytes()))

			return node, nil
		}
		for i, v := range r.Values {
			node.AddMember(&Node{Id: UnresolvedId, Name: strconv.Itoa(i), Type: r.Kind.String(), Value: valuePtr(v)})
		}

		return node, nil

	case record.ArraySingleObject:
		node := b.NodeFor(r.Info.ObjectId)
		if node.Resolved() {
			return node, nil
		}
		node.Type = "Object[]"
		node.markResolved()
		if err := b.attachElements(node, r.Elements); err != nil {
			return nil, err
		}

		return node, nil

	case record.ArraySingleString:
		node := b.NodeFor(r.Info.ObjectId)
		if node.Resolved() {
			return node, nil
		}
		node.Type = "String[]"
		node.markResolved()
		if err := b.attachElements(node, r.Elements); err != nil {
			return nil, err
		}

		return node, nil

	case record.BinaryLibrary:
		if err := b.applyLibrary(r); err != nil {
			return nil, err
		}

		return b.libraries[r.LibraryId], nil

	default:
		return nil, errs.Errorf(0, errs.ErrUnsupportedFeature, "cannot materialize record of type %T", rec)
	}
}

// ApplyNestedBlob records arr as a Byte[] node the same way materialize
// would, then grafts nested's decoded graph underneath it as a synthetic
// "$nested" child, per spec.md §4.8. nested is itself rooted at a ROOT node;
// only its top-level members are grafted in, since a nested ROOT carries no
// meaning of its own.
func (b *Builder) ApplyNestedBlob(arr record.ArraySinglePrimitive, nested *Builder) *Node {
	node := b.NodeFor(arr.Info.ObjectId)
	if node.Resolved() {
		return node
	}
	node.Type = arr.Kind.String() + "[]"
	node.Value = valuePtr(value.Bytes(arr.Bytes()))
	node.markResolved()

	wrapper := &Node{Id: UnresolvedId, Name: "$nested", Type: "NestedBlob", Members: nested.Root().Members}
	node.AddMember(wrapper)

	return node
}

// attachMembers materializes each class member's value-record (or inline
// primitive) into a child node, naming it from the class layout's member
// names, per spec.md §4.7.
func (b *Builder) attachMembers(parent *Node, names []string, members []record.MemberValue) error {
	for i, mv := range members {
		name := memberName(i, names)
		if mv.Primitive != nil {
			parent.AddMember(&Node{Id: UnresolvedId, Name: name, Type: primitiveValueTypeName(*mv.Primitive), Value: mv.Primitive})

			continue
		}
		if mv.ClassType != nil {
			parent.AddMember(classTypeNode(name, *mv.ClassType))

			continue
		}
		child, err := b.materialize(mv.Record)
		if err != nil {
			return err
		}
		nameIfUnset(child, name)
		parent.AddMember(child)
	}

	return nil
}

// attachElements is attachMembers specialized for array contexts, where the
// name is always the decimal element index, per spec.md §4.7.
func (b *Builder) attachElements(parent *Node, elements []record.MemberValue) error {
	for i, mv := range elements {
		name := strconv.Itoa(i)
		if mv.Primitive != nil {
			parent.AddMember(&Node{Id: UnresolvedId, Name: name, Type: primitiveValueTypeName(*mv.Primitive), Value: mv.Primitive})

			continue
		}
		if mv.ClassType != nil {
			parent.AddMember(classTypeNode(name, *mv.ClassType))

			continue
		}
		child, err := b.materialize(mv.Record)
		if err != nil {
			return err
		}
		nameIfUnset(child, name)
		parent.AddMember(child)
	}

	return nil
}

func memberName(i int, names []string) string {
	if i < len(names) {
		return names[i]
	}

	return strconv.Itoa(i)
}

func nameIfUnset(n *Node, name string) {
	if n.Name == "" {
		n.Name = name
	}
}

func valuePtr(v value.Value) *value.Value {
	return &v
}

// classTypeNode renders a BinaryTypeKind.Class member/element value as a
// leaf node, per spec.md §4.6: the value is the raw library-qualified
// class reference itself, not a materialized nested object.
func classTypeNode(name string, ct format.ClassTypeInfo) *Node {
	ref := value.String(fmt.Sprintf("%s, LibraryId=%d", ct.LibraryName, ct.LibraryId))

	return &Node{Id: UnresolvedId, Name: name, Type: "ClassTypeInfo", Value: &ref}
}

func primitiveValueTypeName(v value.Value) string {
	switch v.Kind {
	case value.KindBool:
		return "Boolean"
	case value.KindInt8:
		return "SByte"
	case value.KindInt16:
		return "Int16"
	case value.KindInt32:
		return "Int32"
	case value.KindInt64:
		return "Int64"
	case value.KindUint8:
		return "Byte"
	case value.KindUint16:
		return "UInt16"
	case value.KindUint32:
		return "UInt32"
	case value.KindUint64:
		return "UInt64"
	case value.KindFloat32:
		return "Single"
	case value.KindFloat64:
		return "Double"
	case value.KindString:
		return "String"
	case value.KindBytes, value.KindOpaque:
		return "Bytes"
	case value.KindNull:
		return "Null"
	default:
		return "Unknown"
	}
}
