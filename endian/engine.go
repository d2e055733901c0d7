// Package endian provides the byte order engine cursor.Cursor reads through.
//
// This package wraps Go's standard encoding/binary package, combining its
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine
// interface so a cursor can be built against one seam instead of two.
//
// # Basic Usage
//
// NRBF is defined as little-endian only, so cursor.Cursor always binds
// GetLittleEndianEngine():
//
//	engine := endian.GetLittleEndianEngine()
//	v := engine.Uint32(buf)
//
// The engine is threaded through explicitly rather than hardcoded so a
// future big-endian wire variant would only need a different binding here.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. NRBF defines no
// other byte order, so this is the only constructor cursor.New calls.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
