// Package value provides the small tagged union used for decoded primitive
// and member values, shared by the record payloads and the object graph.
package value

// Kind discriminates which field of a Value is meaningful.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindOpaque
)

// Value is a decoded scalar: exactly one of its fields is meaningful,
// selected by Kind.
type Value struct {
	Kind  Kind
	b     bool
	i     int64
	u     uint64
	f32   float32
	f64   float64
	s     string
	bytes []byte
}

func Null() Value                    { return Value{Kind: KindNull} }
func Bool(v bool) Value              { return Value{Kind: KindBool, b: v} }
func Int8(v int8) Value              { return Value{Kind: KindInt8, i: int64(v)} }
func Int16(v int16) Value            { return Value{Kind: KindInt16, i: int64(v)} }
func Int32(v int32) Value            { return Value{Kind: KindInt32, i: int64(v)} }
func Int64(v int64) Value            { return Value{Kind: KindInt64, i: v} }
func Uint8(v uint8) Value            { return Value{Kind: KindUint8, u: uint64(v)} }
func Uint16(v uint16) Value          { return Value{Kind: KindUint16, u: uint64(v)} }
func Uint32(v uint32) Value          { return Value{Kind: KindUint32, u: uint64(v)} }
func Uint64(v uint64) Value          { return Value{Kind: KindUint64, u: v} }
func Float32(v float32) Value        { return Value{Kind: KindFloat32, f32: v} }
func Float64(v float64) Value        { return Value{Kind: KindFloat64, f64: v} }
func String(v string) Value          { return Value{Kind: KindString, s: v} }
func Bytes(v []byte) Value           { return Value{Kind: KindBytes, bytes: v} }
func Opaque(v []byte) Value          { return Value{Kind: KindOpaque, bytes: v} }

// AsBool returns the boolean payload; valid only when Kind == KindBool.
func (v Value) AsBool() bool { return v.b }

// AsInt returns the integer payload widened to int64, for any signed-int kind.
func (v Value) AsInt() int64 { return v.i }

// AsUint returns the integer payload widened to uint64, for any unsigned-int kind.
func (v Value) AsUint() uint64 { return v.u }

// AsFloat32 returns the float32 payload; valid only when Kind == KindFloat32.
func (v Value) AsFloat32() float32 { return v.f32 }

// AsFloat64 returns the float64 payload; valid only when Kind == KindFloat64.
func (v Value) AsFloat64() float64 { return v.f64 }

// AsString returns the string payload; valid only when Kind == KindString.
func (v Value) AsString() string { return v.s }

// AsBytes returns the byte-slice payload; valid for KindBytes and KindOpaque.
func (v Value) AsBytes() []byte { return v.bytes }

// Any converts the Value into a plain Go value suitable for JSON encoding
// or text rendering.
func (v Value) Any() any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return v.i
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return v.u
	case KindFloat32:
		return v.f32
	case KindFloat64:
		return v.f64
	case KindString:
		return v.s
	case KindBytes, KindOpaque:
		return v.bytes
	default:
		return nil
	}
}

// IsNull reports whether v represents the null value.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}
