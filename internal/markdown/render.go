package markdown

import (
	"iter"
	"strings"
)

// Render classifies every line of text in order. The index yielded with each
// node is the zero-based source line, stable across calls for the same text.
// The sequence can be ranged over any number of times.
func Render(text string) iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for idx, line := range strings.Split(text, "\n") {
			if !yield(idx, Classify(line)) {
				return
			}
		}
	}
}

// Nodes collects Render into a slice.
func Nodes(text string) []Node {
	var nodes []Node
	for _, node := range Render(text) {
		nodes = append(nodes, node)
	}
	return nodes
}

// Group wraps runs of adjacent list items into a single list block.
func Group(nodes []Node) []Block {
	blocks := make([]Block, 0, len(nodes))
	for _, node := range nodes {
		if node.Kind.IsList() && len(blocks) > 0 && blocks[len(blocks)-1].List {
			last := &blocks[len(blocks)-1]
			last.Nodes = append(last.Nodes, node)
			continue
		}

		blocks = append(blocks, Block{
			List:  node.Kind.IsList(),
			Nodes: []Node{node},
		})
	}
	return blocks
}
