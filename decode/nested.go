package decode

import (
	"github.com/zeroed-tech/viewstate-decoder/cursor"
	"github.com/zeroed-tech/viewstate-decoder/format"
	"github.com/zeroed-tech/viewstate-decoder/graph"
	"github.com/zeroed-tech/viewstate-decoder/internal/hash"
	"github.com/zeroed-tech/viewstate-decoder/record"
)

// maxNestedDepth bounds how many levels of blob-within-blob the detector
// will chase, per spec.md §4.8's framing of nested-blob detection as a
// best-effort probe rather than a guaranteed unwrap.
const maxNestedDepth = 4

// nestedBlobMinLength and nestedBlobLeadByte are the trigger conditions of
// spec.md §4.8: a Byte[] array longer than this, starting with a null byte
// (the SerializationHeader record tag that opens every stream), is worth
// probing for an embedded stream.
const (
	nestedBlobMinLength = 17
	nestedBlobLeadByte  = 0x00
)

// NestedBlobDetector implements spec.md §4.8: it watches ArraySinglePrimitive
// Byte[] values for an embedded NRBF stream, decodes it with a fresh
// registry and graph on success, and is silently a no-op on failure. Probe
// results are memoized by content hash so a repeated identical blob (a
// common ViewState pattern) is only decoded once.
type NestedBlobDetector struct {
	depth int
	cache map[uint64]*graph.Builder
}

// NewNestedBlobDetector creates a top-level detector.
func NewNestedBlobDetector() *NestedBlobDetector {
	return &NestedBlobDetector{cache: make(map[uint64]*graph.Builder)}
}

func childDetector(depth int) *NestedBlobDetector {
	return &NestedBlobDetector{depth: depth, cache: make(map[uint64]*graph.Builder)}
}

// Detect attempts to treat arr's packed bytes as a nested NRBF stream,
// returning the decoded sub-graph on success or nil if arr does not look
// like, or does not parse as, an embedded stream. Results are memoized by
// content hash.
func (d *NestedBlobDetector) Detect(arr record.ArraySinglePrimitive) (*graph.Builder, error) {
	raw := arr.Bytes()
	if !looksLikeNestedBlob(raw) {
		return nil, nil
	}

	key := hash.IDBytes(raw)
	if cached, seen := d.cache[key]; seen {
		return cached, nil
	}

	sub := d.probe(raw)
	d.cache[key] = sub

	return sub, nil
}

func looksLikeNestedBlob(raw []byte) bool {
	return len(raw) > nestedBlobMinLength && raw[0] == nestedBlobLeadByte
}

// probe attempts a full decode of raw as its own NRBF stream. Any failure —
// wrong leading tag, truncated payload, malformed records — is treated as
// "not a nested blob" rather than propagated, per spec.md §4.8.
func (d *NestedBlobDetector) probe(raw []byte) *graph.Builder {
	if d.depth >= maxNestedDepth {
		return nil
	}

	c := cursor.New(raw)
	tag, err := c.Peek()
	if err != nil || format.RecordTag(tag) != format.SerializationHeader {
		return nil
	}

	sub := New(raw, childDetector(d.depth+1))
	result, err := sub.Decode()
	if err != nil {
		return nil
	}

	return result.Graph
}
