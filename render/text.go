package render

import (
	"fmt"

	"github.com/zeroed-tech/viewstate-decoder/graph"
	"github.com/zeroed-tech/viewstate-decoder/internal/pool"
)

// Text renders root as an indented plain-text tree, two spaces per depth
// level. A node whose object id has already been printed (through a
// reference cycle or a second reference) is printed again as its own line,
// but its members are not re-expanded.
func Text(root *graph.Node) ([]byte, error) {
	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	writeTextNode(buf, root, 0, make(map[int32]bool))

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func writeTextNode(buf *pool.ByteBuffer, n *graph.Node, depth int, visited map[int32]bool) {
	indent := make([]byte, depth*2)
	for i := range indent {
		indent[i] = ' '
	}
	buf.MustWrite(indent)
	buf.MustWrite([]byte(textLine(n)))
	buf.MustWrite([]byte("\n"))

	if n.Id != graph.UnresolvedId {
		if visited[n.Id] {
			return
		}
		visited[n.Id] = true
	}

	for _, m := range n.Members {
		writeTextNode(buf, m, depth+1, visited)
	}
}

func textLine(n *graph.Node) string {
	label := n.Type
	if n.Name != "" {
		label = n.Name + ": " + label
	}
	if n.Id != graph.UnresolvedId {
		label = fmt.Sprintf("%s (#%d)", label, n.Id)
	}
	if n.Value != nil {
		label = fmt.Sprintf("%s = %v", label, n.Value.Any())
	}

	return label
}
