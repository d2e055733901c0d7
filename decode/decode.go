// Package decode implements the top-level Decoder of spec.md §4.9: an
// AwaitHeader → Streaming → Ended state machine that drives the record
// dispatcher and the object-graph builder over one NRBF stream.
package decode

import (
	"github.com/zeroed-tech/viewstate-decoder/cursor"
	"github.com/zeroed-tech/viewstate-decoder/errs"
	"github.com/zeroed-tech/viewstate-decoder/format"
	"github.com/zeroed-tech/viewstate-decoder/graph"
	"github.com/zeroed-tech/viewstate-decoder/record"
	"github.com/zeroed-tech/viewstate-decoder/registry"
)

// state is the Decoder's position in the AwaitHeader/Streaming/Ended
// machine of spec.md §4.9.
type state uint8

const (
	stateAwaitHeader state = iota
	stateStreaming
	stateEnded
)

// NestedMode controls how a detected nested NRBF blob is folded into the
// outer result, per spec.md §6's --nested flag.
type NestedMode uint8

const (
	// NestedInline grafts a detected sub-graph under its owning Byte[] node
	// as a synthetic "$nested" child.
	NestedInline NestedMode = iota
	// NestedSeparate leaves the Byte[] node untouched and reports the
	// sub-graph separately via Result.Nested, for side-by-side rendering.
	NestedSeparate
)

// NestedBlob pairs a detected sub-graph with the object id of the Byte[]
// array it was found inside.
type NestedBlob struct {
	ObjectId int32
	Graph    *graph.Builder
}

// Result is the outcome of a complete decode: the root id declared by the
// stream's header, the graph rooted at its synthetic ROOT node, and any
// nested blobs decoded separately rather than grafted inline.
type Result struct {
	RootId int32
	Graph  *graph.Builder
	Nested []NestedBlob
}

// Decoder drives one NRBF stream from its first byte to MessageEnd. It is
// single-use: construct a fresh Decoder (and, transitively, a fresh
// registry.Registry and graph.Builder) per parse, per spec.md §4.5 and §4.7.
type Decoder struct {
	cursor  *cursor.Cursor
	reg     *registry.Registry
	builder *graph.Builder
	state   state
	rootId  int32

	detector   *NestedBlobDetector
	nestedMode NestedMode
	nested     []NestedBlob
}

// New creates a Decoder over buf. detector may be nil to disable nested-blob
// detection entirely. The Decoder a detector itself spawns gets a child
// detector one level deeper, which stops probing at maxNestedDepth.
func New(buf []byte, detector *NestedBlobDetector) *Decoder {
	return &Decoder{
		cursor:   cursor.New(buf),
		reg:      registry.New(),
		builder:  graph.NewBuilder(),
		detector: detector,
	}
}

// WithNestedMode overrides how detected nested blobs are reported; the
// default is NestedInline.
func (d *Decoder) WithNestedMode(mode NestedMode) *Decoder {
	d.nestedMode = mode

	return d
}

// Decode runs the state machine to completion: the first record must be a
// SerializationHeader (ErrMissingHeader otherwise), subsequent records are
// dispatched and applied to the graph until MessageEnd, after which trailing
// bytes are permitted but ignored, per spec.md §4.9.
func (d *Decoder) Decode() (*Result, error) {
	if d.state != stateAwaitHeader {
		return nil, errs.Errorf(d.cursor.Position(), errs.ErrUnsupportedFeature, "decoder already used")
	}

	rec, err := record.Dispatch(d.cursor, d.reg)
	if err != nil {
		return nil, err
	}
	hdr, ok := rec.(record.Header)
	if !ok {
		return nil, errs.Errorf(0, errs.ErrMissingHeader, "first record was %s", rec.Tag())
	}
	d.rootId = hdr.RootId
	d.state = stateStreaming

	for d.state == stateStreaming {
		rec, err := record.Dispatch(d.cursor, d.reg)
		if err != nil {
			return nil, err
		}

		if _, ok := rec.(record.MessageEnd); ok {
			d.state = stateEnded

			break
		}

		if err := d.applyWithNestedProbe(rec); err != nil {
			return nil, err
		}
	}

	return &Result{RootId: d.rootId, Graph: d.builder, Nested: d.nested}, nil
}

// applyWithNestedProbe applies rec to the graph, first giving the nested-blob
// detector a chance to surface a decoded sub-graph for a Byte[] array, per
// spec.md §4.8.
func (d *Decoder) applyWithNestedProbe(rec record.Record) error {
	if d.detector != nil {
		if arr, ok := rec.(record.ArraySinglePrimitive); ok && arr.Kind == format.Byte {
			sub, err := d.detector.Detect(arr)
			if err != nil {
				return err
			}
			if sub != nil {
				if d.nestedMode == NestedSeparate {
					if err := d.builder.Apply(rec); err != nil {
						return err
					}
					d.nested = append(d.nested, NestedBlob{ObjectId: arr.Info.ObjectId, Graph: sub})

					return nil
				}
				d.builder.ApplyNestedBlob(arr, sub)

				return nil
			}
		}
	}

	return d.builder.Apply(rec)
}
