// Package dirtreecodec decodes a dirtree netnode's depth-first-serialized
// folder hierarchy into an ordered forest of leaf/directory nodes.
//
// original_source did not retrieve the Rust dirtree module itself (only its
// dump_dirtree_* callers survived pack selection), so the exact marker byte
// used to distinguish a leaf from a directory is not available verbatim.
// This decoder instead follows the discriminated-entry shape the teacher
// uses for its own nested record lists — internal/format/list.go's
// DecodeSubkeyList, which dispatches on a leading marker before reading a
// type-specific body — generalized from a flat marker-then-list into one
// that recurses for directories. See DESIGN.md for this Open Question's
// resolution.
package dirtreecodec

import (
	"fmt"

	"github.com/coredump-go/idb0/internal/bufio0"
	"github.com/coredump-go/idb0/internal/varint"
)

const (
	markerLeaf      = 0
	markerDirectory = 1
)

// Node is one entry in a decoded dirtree: either a Leaf carrying a
// caller-decoded payload, or a Directory carrying a name and its own
// ordered children.
type Node[T any] struct {
	IsLeaf   bool
	Leaf     T
	Name     []byte
	Children []Node[T]
}

// LeafDecoder decodes one leaf payload starting at the cursor's current
// position, advancing it past the payload's bytes.
type LeafDecoder[T any] func(c *bufio0.Cursor) (T, error)

// Decode reads the ordered forest stored in value: a depth-first sequence
// of sibling nodes with no wrapping root node: the top-level entries of
// the tree.
func Decode[T any](value []byte, decodeLeaf LeafDecoder[T]) ([]Node[T], error) {
	c := bufio0.NewCursor(value)
	nodes, err := decodeSiblings(c, decodeLeaf)
	if err != nil {
		return nil, err
	}
	if !c.Empty() {
		return nil, fmt.Errorf("dirtreecodec: %d unparsed trailing bytes", c.Len())
	}
	return nodes, nil
}

func decodeSiblings[T any](c *bufio0.Cursor, decodeLeaf LeafDecoder[T]) ([]Node[T], error) {
	var out []Node[T]
	for !c.Empty() {
		node, err := decodeNode(c, decodeLeaf)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func decodeNode[T any](c *bufio0.Cursor, decodeLeaf LeafDecoder[T]) (Node[T], error) {
	marker, err := varint.DecodeDD(c)
	if err != nil {
		return Node[T]{}, fmt.Errorf("dirtreecodec: marker: %w", err)
	}
	switch marker {
	case markerLeaf:
		v, err := decodeLeaf(c)
		if err != nil {
			return Node[T]{}, fmt.Errorf("dirtreecodec: leaf payload: %w", err)
		}
		return Node[T]{IsLeaf: true, Leaf: v}, nil
	case markerDirectory:
		nameLen, err := varint.DecodeDD(c)
		if err != nil {
			return Node[T]{}, fmt.Errorf("dirtreecodec: name length: %w", err)
		}
		name, err := c.ReadN(int(nameLen))
		if err != nil {
			return Node[T]{}, fmt.Errorf("dirtreecodec: name: %w", err)
		}
		childCount, err := varint.DecodeDD(c)
		if err != nil {
			return Node[T]{}, fmt.Errorf("dirtreecodec: child count: %w", err)
		}
		children := make([]Node[T], 0, childCount)
		for i := uint32(0); i < childCount; i++ {
			child, err := decodeNode(c, decodeLeaf)
			if err != nil {
				return Node[T]{}, fmt.Errorf("dirtreecodec: child %d of %q: %w", i, name, err)
			}
			children = append(children, child)
		}
		return Node[T]{Name: name, Children: children}, nil
	default:
		return Node[T]{}, fmt.Errorf("dirtreecodec: unknown node marker %d", marker)
	}
}
