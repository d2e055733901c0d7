// Package nrbf decodes .NET Remoting Binary Format (MS-NRBF) streams —
// the wire format ASP.NET WebForms uses to serialize a page's ViewState —
// into a generic object graph that can be rendered without a copy of the
// original .NET types.
//
// # Basic Usage
//
// Decoding a raw NRBF stream:
//
//	import "github.com/zeroed-tech/viewstate-decoder"
//
//	result, err := nrbf.Decode(raw)
//	if err != nil {
//	    return err
//	}
//	out, _ := render.JSON(result.Graph.Root())
//
// A ViewState payload recovered from a page post is usually base64-encoded
// and sometimes additionally gzip-compressed; unwrap both before decoding:
//
//	raw, err := base64.StdEncoding.DecodeString(viewStateParam)
//	if err != nil {
//	    return err
//	}
//	if compressed {
//	    raw, err = compress.NewGzipCompressor().Decompress(raw)
//	    if err != nil {
//	        return err
//	    }
//	}
//	result, err := nrbf.Decode(raw)
//
// # Package Structure
//
// This file provides a convenience wrapper around the decode package.
// Advanced callers that need control over nested-blob handling should use
// decode.Decoder directly.
package nrbf

import (
	"github.com/zeroed-tech/viewstate-decoder/decode"
)

// Decode parses raw as a complete NRBF stream, with nested-blob detection
// enabled and grafted inline, per spec.md §4.8.
func Decode(raw []byte) (*decode.Result, error) {
	return decode.New(raw, decode.NewNestedBlobDetector()).Decode()
}

// DecodeOpaque parses raw as a complete NRBF stream without attempting to
// detect or unwrap any embedded sub-stream inside a byte array.
func DecodeOpaque(raw []byte) (*decode.Result, error) {
	return decode.New(raw, nil).Decode()
}
