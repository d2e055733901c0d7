// Package render turns a decoded object graph into the two output formats
// the CLI supports: indented JSON and an indented plain-text tree. Both
// walks guard against reference cycles by tracking visited object ids,
// since the graph is not guaranteed to be acyclic (spec.md §5, §9).
package render

import (
	"encoding/json"

	"github.com/zeroed-tech/viewstate-decoder/graph"
	"github.com/zeroed-tech/viewstate-decoder/internal/pool"
)

// jsonNode mirrors graph.Node for marshaling: Id is a pointer so a real id
// of 0 is preserved while graph.UnresolvedId is omitted outright.
type jsonNode struct {
	Id      *int32      `json:"Id,omitempty"`
	Type    string      `json:"Type"`
	Name    string      `json:"Name,omitempty"`
	Value   any         `json:"Value,omitempty"`
	Members []*jsonNode `json:"Members,omitempty"`
}

// JSON renders root as indented JSON.
func JSON(root *graph.Node) ([]byte, error) {
	tree := toJSONNode(root, make(map[int32]bool))

	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func toJSONNode(n *graph.Node, visited map[int32]bool) *jsonNode {
	out := &jsonNode{Type: n.Type, Name: n.Name}
	if n.Id != graph.UnresolvedId {
		id := n.Id
		out.Id = &id
	}
	if n.Value != nil {
		out.Value = n.Value.Any()
	}

	if n.Id != graph.UnresolvedId {
		if visited[n.Id] {
			return out
		}
		visited[n.Id] = true
	}

	for _, m := range n.Members {
		out.Members = append(out.Members, toJSONNode(m, visited))
	}

	return out
}
